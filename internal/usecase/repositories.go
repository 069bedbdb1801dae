package usecase

import (
	"context"

	"github.com/mxkcz/notehub/internal/domain"
)

// The store boundary: owner-scoped and global collections addressable by id,
// queryable by equality on slug or linked id. Implementations live in
// internal/repository.

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, ownerID, noteID string) (*domain.Note, error)
	GetBySlug(ctx context.Context, ownerID, slug string) (*domain.Note, error)
	ExistsBySlug(ctx context.Context, ownerID, slug string) (bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	SetFolder(ctx context.Context, ownerID, noteID string, folderID *string) error
	ClearFolderRefs(ctx context.Context, ownerID, folderID string) error
	Delete(ctx context.Context, ownerID, noteID string) error
}

type PublicNoteRepository interface {
	Create(ctx context.Context, note *domain.PublicNote) error
	GetBySlug(ctx context.Context, slug string) (*domain.PublicNote, error)
	GetByPrivateNoteID(ctx context.Context, privateNoteID string) (*domain.PublicNote, error)
	Update(ctx context.Context, note *domain.PublicNote) error
	DeleteByPrivateNoteID(ctx context.Context, privateNoteID string) error
}

type FolderRepository interface {
	Create(ctx context.Context, folder *domain.Folder) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Folder, error)
	GetByID(ctx context.Context, ownerID, folderID string) (*domain.Folder, error)
	Delete(ctx context.Context, ownerID, folderID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
