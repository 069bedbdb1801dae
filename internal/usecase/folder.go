package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mxkcz/notehub/internal/domain"
)

// FolderUseCase manages an owner's folders. Folder deletion is a two-phase
// operation: every note in the folder is reassigned to unfiled before the
// folder record is removed, so deleting a folder never deletes a note. If
// reassignment fails the folder stays in place.
type FolderUseCase struct {
	folders FolderRepository
	notes   NoteRepository
	log     zerolog.Logger
}

func NewFolderUseCase(folders FolderRepository, notes NoteRepository, log zerolog.Logger) *FolderUseCase {
	return &FolderUseCase{
		folders: folders,
		notes:   notes,
		log:     log,
	}
}

func (uc *FolderUseCase) Create(ctx context.Context, ownerID, name string) (*domain.Folder, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrFolderNameRequired
	}

	folder := &domain.Folder{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.folders.Create(ctx, folder); err != nil {
		uc.log.Error().Err(err).Str("owner_id", ownerID).Msg("create folder failed")
		return nil, err
	}
	return folder, nil
}

func (uc *FolderUseCase) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Folder, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingID
	}

	folders, err := uc.folders.ListByOwner(ctx, ownerID)
	if err != nil {
		uc.log.Error().Err(err).Str("owner_id", ownerID).Msg("list folders failed")
		return nil, err
	}
	return folders, nil
}

// MoveNote files a note into a folder, or back to unfiled when folderID is
// nil, refreshing the note's update timestamp.
func (uc *FolderUseCase) MoveNote(ctx context.Context, ownerID, noteID string, folderID *string) error {
	if ownerID == "" || noteID == "" {
		return domain.ErrMissingID
	}

	if folderID != nil {
		if _, err := uc.folders.GetByID(ctx, ownerID, *folderID); err != nil {
			return err
		}
	}

	if err := uc.notes.SetFolder(ctx, ownerID, noteID, folderID); err != nil {
		uc.log.Error().Err(err).Str("note_id", noteID).Msg("move note failed")
		return err
	}
	return nil
}

// Delete reassigns the folder's notes to unfiled, then removes the folder.
// Reassignment must complete first so no note is left pointing at a folder
// that no longer exists.
func (uc *FolderUseCase) Delete(ctx context.Context, ownerID, folderID string) error {
	if ownerID == "" || folderID == "" {
		return domain.ErrMissingID
	}

	if err := uc.notes.ClearFolderRefs(ctx, ownerID, folderID); err != nil {
		uc.log.Error().Err(err).Str("folder_id", folderID).Msg("folder reassignment failed, folder kept")
		return err
	}

	if err := uc.folders.Delete(ctx, ownerID, folderID); err != nil {
		uc.log.Error().Err(err).Str("folder_id", folderID).Msg("delete folder failed")
		return err
	}
	return nil
}
