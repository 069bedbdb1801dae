package usecase

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxkcz/notehub/internal/codec"
	"github.com/mxkcz/notehub/internal/domain"
)

const owner = "owner-1"

func newNoteUseCase() (*NoteUseCase, *fakeNoteRepo, *fakePublicNoteRepo) {
	notes := newFakeNoteRepo()
	public := newFakePublicNoteRepo()
	return NewNoteUseCase(notes, public, zerolog.Nop()), notes, public
}

func TestCreatePublicNote(t *testing.T) {
	ctx := context.Background()
	uc, notes, public := newNoteUseCase()

	slug, err := uc.Create(ctx, owner, NoteInput{
		Title:      "My First Note",
		Content:    "<p>Hello</p>",
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^my-first-note-[a-z0-9]{6}$`, slug)

	assert.Len(t, notes.notes, 1)
	require.Len(t, public.notes, 1, "exactly one projection expected")
	for _, proj := range public.notes {
		assert.Equal(t, slug, proj.Slug, "projection copies the private slug")
		assert.Equal(t, owner, proj.OwnerID)
	}

	got, err := uc.GetPublicBySlug(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello</p>", got.Content)
	assert.Equal(t, "My First Note", got.Title)
}

func TestCreatePrivateNoteHasNoProjection(t *testing.T) {
	ctx := context.Background()
	uc, notes, public := newNoteUseCase()

	slug, err := uc.Create(ctx, owner, NoteInput{
		Title:   "Drafts",
		Content: "<p>wip</p>",
	})
	require.NoError(t, err)

	assert.Len(t, notes.notes, 1)
	assert.Empty(t, public.notes)

	_, err = uc.GetPublicBySlug(ctx, slug)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateRequiresTitle(t *testing.T) {
	ctx := context.Background()
	uc, notes, _ := newNoteUseCase()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := uc.Create(ctx, owner, NoteInput{Title: title, Content: "x"})
		assert.ErrorIs(t, err, domain.ErrTitleRequired)
	}
	assert.Empty(t, notes.notes, "no record written on validation failure")
}

func TestCreateRequiresOwner(t *testing.T) {
	uc, _, _ := newNoteUseCase()

	_, err := uc.Create(context.Background(), "", NoteInput{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrMissingID)
}

func TestCreateRejectsOversizedContent(t *testing.T) {
	ctx := context.Background()
	uc, notes, public := newNoteUseCase()

	b := make([]byte, codec.MaxStoredBytes+1)
	for i := range b {
		b[i] = byte(rand.IntN(256))
	}

	_, err := uc.Create(ctx, owner, NoteInput{
		Title:      "Big",
		Content:    string(b),
		Visibility: domain.VisibilityPublic,
	})
	assert.ErrorIs(t, err, domain.ErrContentTooLarge)
	assert.Empty(t, notes.notes)
	assert.Empty(t, public.notes)
}

func TestContentStoredCompressed(t *testing.T) {
	ctx := context.Background()
	uc, notes, _ := newNoteUseCase()

	body := ""
	for i := 0; i < 300; i++ {
		body += "<p>the same paragraph over and over</p>"
	}

	slug, err := uc.Create(ctx, owner, NoteInput{Title: "Long", Content: body})
	require.NoError(t, err)

	for _, stored := range notes.notes {
		assert.True(t, stored.Compressed)
		assert.NotEqual(t, body, stored.Content)
	}

	got, err := uc.GetByOwnerAndSlug(ctx, owner, slug)
	require.NoError(t, err)
	assert.Equal(t, body, got.Content, "read path decompresses")
	assert.False(t, got.Compressed)
}

func TestUpdateKeepsSlug(t *testing.T) {
	ctx := context.Background()
	uc, notes, _ := newNoteUseCase()

	slug, err := uc.Create(ctx, owner, NoteInput{Title: "Before", Content: "a"})
	require.NoError(t, err)

	var noteID string
	for id := range notes.notes {
		noteID = id
	}

	require.NoError(t, uc.Update(ctx, owner, noteID, NoteInput{Title: "After", Content: "b"}))

	got, err := uc.GetByOwnerAndSlug(ctx, owner, slug)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, slug, got.Slug, "slug never regenerated on update")
}

func TestUpdateToPrivateDeletesProjection(t *testing.T) {
	ctx := context.Background()
	uc, notes, public := newNoteUseCase()

	slug, err := uc.Create(ctx, owner, NoteInput{
		Title:      "Shared",
		Content:    "<p>Hello</p>",
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)
	require.Len(t, public.notes, 1)

	var noteID string
	for id := range notes.notes {
		noteID = id
	}

	require.NoError(t, uc.Update(ctx, owner, noteID, NoteInput{
		Title:      "Shared",
		Content:    "<p>Hello</p>",
		Visibility: domain.VisibilityPrivate,
	}))

	_, err = uc.GetPublicBySlug(ctx, slug)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.GetByOwnerAndSlug(ctx, owner, slug)
	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityPrivate, got.Visibility)
}

func TestUpdateToPublicCreatesProjection(t *testing.T) {
	ctx := context.Background()
	uc, notes, public := newNoteUseCase()

	slug, err := uc.Create(ctx, owner, NoteInput{Title: "Hidden", Content: "x"})
	require.NoError(t, err)
	require.Empty(t, public.notes)

	var noteID string
	for id := range notes.notes {
		noteID = id
	}

	require.NoError(t, uc.Update(ctx, owner, noteID, NoteInput{
		Title:      "Hidden",
		Content:    "x",
		Visibility: domain.VisibilityPublic,
	}))

	require.Len(t, public.notes, 1)
	got, err := uc.GetPublicBySlug(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, slug, got.Slug, "projection copies the existing private slug")
	assert.Equal(t, noteID, got.PrivateNoteID)
}

func TestUpdatePublicKeepsSingleProjection(t *testing.T) {
	ctx := context.Background()
	uc, notes, public := newNoteUseCase()

	_, err := uc.Create(ctx, owner, NoteInput{
		Title:      "Living Doc",
		Content:    "v1",
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	var noteID string
	for id := range notes.notes {
		noteID = id
	}

	for _, content := range []string{"v2", "v3"} {
		require.NoError(t, uc.Update(ctx, owner, noteID, NoteInput{
			Title:      "Living Doc",
			Content:    content,
			Visibility: domain.VisibilityPublic,
		}))
	}

	require.Len(t, public.notes, 1, "projection updated in place, never duplicated")
	for _, proj := range public.notes {
		assert.Equal(t, "v3", codec.Decompress(proj.Content, proj.Compressed))
	}
}

func TestDeleteCascadesToProjection(t *testing.T) {
	ctx := context.Background()
	uc, notes, public := newNoteUseCase()

	slug, err := uc.Create(ctx, owner, NoteInput{
		Title:      "Doomed",
		Content:    "x",
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	var noteID string
	for id := range notes.notes {
		noteID = id
	}

	require.NoError(t, uc.Delete(ctx, owner, noteID))

	assert.Empty(t, notes.notes)
	assert.Empty(t, public.notes, "projection must not outlive its private source")

	_, err = uc.GetPublicBySlug(ctx, slug)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRequiresIdentifiers(t *testing.T) {
	uc, _, _ := newNoteUseCase()

	assert.ErrorIs(t, uc.Delete(context.Background(), "", "note"), domain.ErrMissingID)
	assert.ErrorIs(t, uc.Delete(context.Background(), owner, ""), domain.ErrMissingID)
}

func TestListByOwnerNewestFirst(t *testing.T) {
	ctx := context.Background()
	uc, notes, _ := newNoteUseCase()

	base := time.Now().UTC()
	for i, title := range []string{"oldest", "middle", "newest"} {
		slugVal, err := uc.Create(ctx, owner, NoteInput{Title: title, Content: title})
		require.NoError(t, err)
		// Space out creation times; the fake preserves what we set.
		n, err := notes.GetBySlug(ctx, owner, slugVal)
		require.NoError(t, err)
		n.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, notes.Update(ctx, n))
	}

	got, err := uc.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "oldest", got[2].Title)
}

func TestTagsTrimmedAndEmptyDropped(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newNoteUseCase()

	slug, err := uc.Create(ctx, owner, NoteInput{
		Title:   "Tagged",
		Content: "x",
		Tags:    []string{" go ", "", "notes", "  "},
	})
	require.NoError(t, err)

	got, err := uc.GetByOwnerAndSlug(ctx, owner, slug)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "notes"}, got.Tags)
}

func TestCreateProjectionFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	notes := newFakeNoteRepo()
	public := newFakePublicNoteRepo()
	public.createErr = assert.AnError
	uc := NewNoteUseCase(notes, public, zerolog.Nop())

	_, err := uc.Create(ctx, owner, NoteInput{
		Title:      "Flaky",
		Content:    "x",
		Visibility: domain.VisibilityPublic,
	})
	assert.ErrorIs(t, err, assert.AnError)
	// Best-effort dual write: the private record survives the projection
	// failure and a later update retries the sync.
	assert.Len(t, notes.notes, 1)
}
