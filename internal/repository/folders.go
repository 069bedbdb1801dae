package repository

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/mxkcz/notehub/internal/domain"
)

type FolderRepository struct {
	driver neo4j.DriverWithContext
}

func NewFolderRepository(driver neo4j.DriverWithContext) *FolderRepository {
	return &FolderRepository{
		driver: driver,
	}
}

func (r *FolderRepository) Create(ctx context.Context, folder *domain.Folder) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			CREATE (n:Folder {
				id: $id,
				owner_id: $owner_id,
				name: $name,
				created_at: datetime($created_at)
			})
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"id":         folder.ID,
			"owner_id":   folder.OwnerID,
			"name":       folder.Name,
			"created_at": folder.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return nil, err
		}

		_, err = res.Consume(ctx)
		return nil, err
	})

	return err
}

func (r *FolderRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Folder, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:Folder {owner_id: $owner_id})
			RETURN n
			ORDER BY n.created_at
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"owner_id": ownerID,
		})
		if err != nil {
			return nil, err
		}

		var folders []*domain.Folder
		for res.Next(ctx) {
			val, ok := res.Record().Get("n")
			if !ok {
				continue
			}
			node, ok := val.(neo4j.Node)
			if !ok {
				continue
			}
			folders = append(folders, folderFromNode(node))
		}
		if err = res.Err(); err != nil {
			return nil, err
		}
		return folders, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]*domain.Folder), nil
}

func (r *FolderRepository) GetByID(ctx context.Context, ownerID, folderID string) (*domain.Folder, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:Folder {owner_id: $owner_id, id: $id})
			RETURN n
			LIMIT 1
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"owner_id": ownerID,
			"id":       folderID,
		})
		if err != nil {
			return nil, err
		}

		node, err := firstNode(ctx, res)
		if err != nil {
			return nil, err
		}
		return folderFromNode(node), nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.Folder), nil
}

func (r *FolderRepository) Delete(ctx context.Context, ownerID, folderID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:Folder {owner_id: $owner_id, id: $id})
			DETACH DELETE n
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"owner_id": ownerID,
			"id":       folderID,
		})
		if err != nil {
			return nil, err
		}

		_, err = res.Consume(ctx)
		return nil, err
	})

	return err
}
