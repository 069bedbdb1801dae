package usecase

import (
	"context"
	"sort"

	"github.com/mxkcz/notehub/internal/domain"
)

// In-memory repositories for exercising the use cases without a store.
// Error fields let individual tests inject failures.

type fakeNoteRepo struct {
	notes    map[string]*domain.Note
	clearErr error
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[string]*domain.Note{}}
}

func (f *fakeNoteRepo) Create(_ context.Context, note *domain.Note) error {
	stored := *note
	f.notes[note.ID] = &stored
	return nil
}

func (f *fakeNoteRepo) GetByID(_ context.Context, ownerID, noteID string) (*domain.Note, error) {
	n, ok := f.notes[noteID]
	if !ok || n.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	out := *n
	return &out, nil
}

func (f *fakeNoteRepo) GetBySlug(_ context.Context, ownerID, slug string) (*domain.Note, error) {
	for _, n := range f.notes {
		if n.OwnerID == ownerID && n.Slug == slug {
			out := *n
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeNoteRepo) ExistsBySlug(_ context.Context, ownerID, slug string) (bool, error) {
	for _, n := range f.notes {
		if n.OwnerID == ownerID && n.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNoteRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Note, error) {
	var out []*domain.Note
	for _, n := range f.notes {
		if n.OwnerID == ownerID {
			copied := *n
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeNoteRepo) Update(_ context.Context, note *domain.Note) error {
	if _, ok := f.notes[note.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *note
	f.notes[note.ID] = &stored
	return nil
}

func (f *fakeNoteRepo) SetFolder(_ context.Context, ownerID, noteID string, folderID *string) error {
	n, ok := f.notes[noteID]
	if !ok || n.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	n.FolderID = folderID
	return nil
}

func (f *fakeNoteRepo) ClearFolderRefs(_ context.Context, ownerID, folderID string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	for _, n := range f.notes {
		if n.OwnerID == ownerID && n.FolderID != nil && *n.FolderID == folderID {
			n.FolderID = nil
		}
	}
	return nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, ownerID, noteID string) error {
	if n, ok := f.notes[noteID]; ok && n.OwnerID == ownerID {
		delete(f.notes, noteID)
	}
	return nil
}

type fakePublicNoteRepo struct {
	notes     map[string]*domain.PublicNote
	createErr error
}

func newFakePublicNoteRepo() *fakePublicNoteRepo {
	return &fakePublicNoteRepo{notes: map[string]*domain.PublicNote{}}
}

func (f *fakePublicNoteRepo) Create(_ context.Context, note *domain.PublicNote) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *note
	f.notes[note.ID] = &stored
	return nil
}

func (f *fakePublicNoteRepo) GetBySlug(_ context.Context, slug string) (*domain.PublicNote, error) {
	for _, n := range f.notes {
		if n.Slug == slug {
			out := *n
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePublicNoteRepo) GetByPrivateNoteID(_ context.Context, privateNoteID string) (*domain.PublicNote, error) {
	for _, n := range f.notes {
		if n.PrivateNoteID == privateNoteID {
			out := *n
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePublicNoteRepo) Update(_ context.Context, note *domain.PublicNote) error {
	for id, n := range f.notes {
		if n.PrivateNoteID == note.PrivateNoteID {
			stored := *note
			stored.ID = id
			f.notes[id] = &stored
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakePublicNoteRepo) DeleteByPrivateNoteID(_ context.Context, privateNoteID string) error {
	for id, n := range f.notes {
		if n.PrivateNoteID == privateNoteID {
			delete(f.notes, id)
		}
	}
	return nil
}

type fakeFolderRepo struct {
	folders map[string]*domain.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: map[string]*domain.Folder{}}
}

func (f *fakeFolderRepo) Create(_ context.Context, folder *domain.Folder) error {
	stored := *folder
	f.folders[folder.ID] = &stored
	return nil
}

func (f *fakeFolderRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Folder, error) {
	var out []*domain.Folder
	for _, folder := range f.folders {
		if folder.OwnerID == ownerID {
			copied := *folder
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeFolderRepo) GetByID(_ context.Context, ownerID, folderID string) (*domain.Folder, error) {
	folder, ok := f.folders[folderID]
	if !ok || folder.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	out := *folder
	return &out, nil
}

func (f *fakeFolderRepo) Delete(_ context.Context, ownerID, folderID string) error {
	if folder, ok := f.folders[folderID]; ok && folder.OwnerID == ownerID {
		delete(f.folders, folderID)
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	stored := *user
	f.users[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *user
	return &out, nil
}
