package repository

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/mxkcz/notehub/internal/domain"
)

// PublicNoteRepository persists the shareable projections. The collection is
// global: lookups by slug carry no owner scope.
type PublicNoteRepository struct {
	driver neo4j.DriverWithContext
}

func NewPublicNoteRepository(driver neo4j.DriverWithContext) *PublicNoteRepository {
	return &PublicNoteRepository{
		driver: driver,
	}
}

func (r *PublicNoteRepository) Create(ctx context.Context, note *domain.PublicNote) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			CREATE (n:PublicNote {
				id: $id,
				private_note_id: $private_note_id,
				owner_id: $owner_id,
				title: $title,
				content: $content,
				compressed: $compressed,
				slug: $slug,
				tags: $tags,
				created_at: datetime($created_at),
				updated_at: datetime($updated_at)
			})
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"id":              note.ID,
			"private_note_id": note.PrivateNoteID,
			"owner_id":        note.OwnerID,
			"title":           note.Title,
			"content":         note.Content,
			"compressed":      note.Compressed,
			"slug":            note.Slug,
			"tags":            note.Tags,
			"created_at":      note.CreatedAt.Format(time.RFC3339),
			"updated_at":      note.UpdatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return nil, err
		}

		_, err = res.Consume(ctx)
		return nil, err
	})

	return err
}

func (r *PublicNoteRepository) GetBySlug(ctx context.Context, slug string) (*domain.PublicNote, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:PublicNote {slug: $slug})
			RETURN n
			LIMIT 1
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"slug": slug,
		})
		if err != nil {
			return nil, err
		}

		node, err := firstNode(ctx, res)
		if err != nil {
			return nil, err
		}
		return publicNoteFromNode(node), nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.PublicNote), nil
}

func (r *PublicNoteRepository) GetByPrivateNoteID(ctx context.Context, privateNoteID string) (*domain.PublicNote, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:PublicNote {private_note_id: $private_note_id})
			RETURN n
			LIMIT 1
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"private_note_id": privateNoteID,
		})
		if err != nil {
			return nil, err
		}

		node, err := firstNode(ctx, res)
		if err != nil {
			return nil, err
		}
		return publicNoteFromNode(node), nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.PublicNote), nil
}

// Update rewrites the projection's content-bearing fields in place. The slug
// and back-reference are stable for the projection's lifetime.
func (r *PublicNoteRepository) Update(ctx context.Context, note *domain.PublicNote) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:PublicNote {private_note_id: $private_note_id})
			SET n.title = $title,
			    n.content = $content,
			    n.compressed = $compressed,
			    n.tags = $tags,
			    n.updated_at = datetime($updated_at)
			RETURN n
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"private_note_id": note.PrivateNoteID,
			"title":           note.Title,
			"content":         note.Content,
			"compressed":      note.Compressed,
			"tags":            note.Tags,
			"updated_at":      note.UpdatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return nil, err
		}

		_, err = firstNode(ctx, res)
		return nil, err
	})

	return err
}

// DeleteByPrivateNoteID removes the projection linked to a private note.
// Deleting an absent projection is a no-op.
func (r *PublicNoteRepository) DeleteByPrivateNoteID(ctx context.Context, privateNoteID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:PublicNote {private_note_id: $private_note_id})
			DETACH DELETE n
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"private_note_id": privateNoteID,
		})
		if err != nil {
			return nil, err
		}

		_, err = res.Consume(ctx)
		return nil, err
	})

	return err
}
