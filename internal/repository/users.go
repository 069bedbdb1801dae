package repository

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/mxkcz/notehub/internal/domain"
)

type UserRepository struct {
	driver neo4j.DriverWithContext
}

func NewUserRepository(driver neo4j.DriverWithContext) *UserRepository {
	return &UserRepository{
		driver: driver,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			CREATE (n:User {
				id: $id,
				email: $email,
				name: $name,
				password_hash: $password_hash,
				created_at: datetime($created_at)
			})
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"id":            user.ID,
			"email":         user.Email,
			"name":          user.Name,
			"password_hash": user.PasswordHash,
			"created_at":    user.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return nil, err
		}

		_, err = res.Consume(ctx)
		return nil, err
	})

	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (n:User {email: $email})
			RETURN n
			LIMIT 1
		`

		res, err := tx.Run(ctx, query, map[string]any{
			"email": email,
		})
		if err != nil {
			return nil, err
		}

		node, err := firstNode(ctx, res)
		if err != nil {
			return nil, err
		}
		return userFromNode(node), nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}
