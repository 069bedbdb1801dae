package repository

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/mxkcz/notehub/internal/domain"
)

// NoteRepository persists private, owner-scoped note records.
type NoteRepository struct {
	driver neo4j.DriverWithContext
}

func NewNoteRepository(driver neo4j.DriverWithContext) *NoteRepository {
	return &NoteRepository{
		driver: driver,
	}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			CREATE (n:Note {
				id: $id,
				owner_id: $owner_id,
				title: $title,
				content: $content,
				compressed: $compressed,
				slug: $slug,
				tags: $tags,
				visibility: $visibility,
				folder_id: $folder_id,
				created_at: datetime($created_at),
				updated_at: datetime($updated_at)
			})
		`

		result, err := tx.Run(ctx, query, map[string]any{
			"id":         note.ID,
			"owner_id":   note.OwnerID,
			"title":      note.Title,
			"content":    note.Content,
			"compressed": note.Compressed,
			"slug":       note.Slug,
			"tags":       note.Tags,
			"visibility": string(note.Visibility),
			"folder_id":  optionalString(note.FolderID),
			"created_at": note.CreatedAt.Format(time.RFC3339),
			"updated_at": note.UpdatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return nil, err
		}

		_, err = result.Consume(ctx)
		return nil, err
	})

	return err
}

func (r *NoteRepository) GetByID(ctx context.Context, ownerID, noteID string) (*domain.Note, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:Note {owner_id: $owner_id, id: $id})
			RETURN n
			LIMIT 1
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"owner_id": ownerID,
			"id":       noteID,
		})
		if err != nil {
			return nil, err
		}

		node, err := firstNode(ctx, res)
		if err != nil {
			return nil, err
		}
		return noteFromNode(node), nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.Note), nil
}

// GetBySlug returns the first owner-scoped match; under normal slug
// uniqueness there is at most one.
func (r *NoteRepository) GetBySlug(ctx context.Context, ownerID, slug string) (*domain.Note, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:Note {owner_id: $owner_id, slug: $slug})
			RETURN n
			LIMIT 1
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"owner_id": ownerID,
			"slug":     slug,
		})
		if err != nil {
			return nil, err
		}

		node, err := firstNode(ctx, res)
		if err != nil {
			return nil, err
		}
		return noteFromNode(node), nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.Note), nil
}

func (r *NoteRepository) ExistsBySlug(ctx context.Context, ownerID, slug string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:Note {owner_id: $owner_id, slug: $slug})
			RETURN count(n) AS count
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"owner_id": ownerID,
			"slug":     slug,
		})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}

		count, _ := record.Get("count")
		return count.(int64) > 0, nil
	})
	if err != nil {
		return false, err
	}

	return result.(bool), nil
}

// ListByOwner returns every note in the owner scope, newest creation first.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:Note {owner_id: $owner_id})
			RETURN n
			ORDER BY n.created_at DESC
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"owner_id": ownerID,
		})
		if err != nil {
			return nil, err
		}

		var notes []*domain.Note
		for res.Next(ctx) {
			val, ok := res.Record().Get("n")
			if !ok {
				continue
			}
			node, ok := val.(neo4j.Node)
			if !ok {
				continue
			}
			notes = append(notes, noteFromNode(node))
		}
		if err = res.Err(); err != nil {
			return nil, err
		}
		return notes, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]*domain.Note), nil
}

// Update rewrites the mutable fields of a private record. The slug is
// deliberately left untouched.
func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:Note {owner_id: $owner_id, id: $id})
			SET n.title = $title,
			    n.content = $content,
			    n.compressed = $compressed,
			    n.tags = $tags,
			    n.visibility = $visibility,
			    n.folder_id = $folder_id,
			    n.updated_at = datetime($updated_at)
			RETURN n
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"owner_id":   note.OwnerID,
			"id":         note.ID,
			"title":      note.Title,
			"content":    note.Content,
			"compressed": note.Compressed,
			"tags":       note.Tags,
			"visibility": string(note.Visibility),
			"folder_id":  optionalString(note.FolderID),
			"updated_at": note.UpdatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return nil, err
		}

		_, err = firstNode(ctx, res)
		return nil, err
	})

	return err
}

// SetFolder sets or clears a note's folder reference and refreshes its
// update timestamp. A nil folderID files the note as unfiled.
func (r *NoteRepository) SetFolder(ctx context.Context, ownerID, noteID string, folderID *string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:Note {owner_id: $owner_id, id: $id})
			SET n.folder_id = $folder_id,
			    n.updated_at = datetime($updated_at)
			RETURN n
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"owner_id":   ownerID,
			"id":         noteID,
			"folder_id":  optionalString(folderID),
			"updated_at": time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return nil, err
		}

		_, err = firstNode(ctx, res)
		return nil, err
	})

	return err
}

// ClearFolderRefs reassigns every note in the folder to unfiled in one bulk
// write. Folder deletion runs it before removing the folder record.
func (r *NoteRepository) ClearFolderRefs(ctx context.Context, ownerID, folderID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:Note {owner_id: $owner_id, folder_id: $folder_id})
			SET n.folder_id = null,
			    n.updated_at = datetime($updated_at)
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"owner_id":   ownerID,
			"folder_id":  folderID,
			"updated_at": time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return nil, err
		}

		_, err = res.Consume(ctx)
		return nil, err
	})

	return err
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, noteID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:Note {owner_id: $owner_id, id: $id})
			DETACH DELETE n
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"owner_id": ownerID,
			"id":       noteID,
		})
		if err != nil {
			return nil, err
		}

		_, err = res.Consume(ctx)
		return nil, err
	})

	return err
}

func optionalString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
