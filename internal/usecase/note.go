package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mxkcz/notehub/internal/codec"
	"github.com/mxkcz/notehub/internal/domain"
	"github.com/mxkcz/notehub/internal/slug"
)

// slugAttempts bounds the uniqueness retries when a freshly generated slug
// is already taken in the owner scope.
const slugAttempts = 3

// NoteUseCase implements the note lifecycle: private CRUD plus the policy
// that keeps the public projection in sync with the note's visibility. The
// private write and the projection write are two independent remote calls
// with no transaction spanning them; a projection failure is logged and
// returned, and the stores drift until the next update retries the sync.
type NoteUseCase struct {
	notes  NoteRepository
	public PublicNoteRepository
	log    zerolog.Logger
}

func NewNoteUseCase(notes NoteRepository, public PublicNoteRepository, log zerolog.Logger) *NoteUseCase {
	return &NoteUseCase{
		notes:  notes,
		public: public,
		log:    log,
	}
}

// NoteInput carries the caller-editable fields of a note. FolderID is only
// honored on update; freshly created notes start unfiled.
type NoteInput struct {
	Title      string
	Content    string
	Tags       []string
	Visibility domain.Visibility
	FolderID   *string
}

// Create persists a new private note and, for public visibility, its
// projection. It returns the generated slug.
func (uc *NoteUseCase) Create(ctx context.Context, ownerID string, in NoteInput) (string, error) {
	if ownerID == "" {
		return "", domain.ErrMissingID
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", domain.ErrTitleRequired
	}

	content, compressed, err := codec.Compress(in.Content)
	if err != nil {
		return "", err
	}

	noteSlug, err := uc.newSlug(ctx, ownerID, title)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	note := &domain.Note{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Title:      title,
		Content:    content,
		Compressed: compressed,
		Slug:       noteSlug,
		Tags:       cleanTags(in.Tags),
		Visibility: normalizeVisibility(in.Visibility),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.notes.Create(ctx, note); err != nil {
		uc.log.Error().Err(err).Str("owner_id", ownerID).Msg("create note failed")
		return "", err
	}

	if note.Visibility == domain.VisibilityPublic {
		if err := uc.public.Create(ctx, uc.projectionOf(note, now)); err != nil {
			uc.log.Warn().Err(err).Str("note_id", note.ID).Msg("projection create failed")
			return "", err
		}
	}

	return note.Slug, nil
}

// ListByOwner returns the owner's notes with bodies decompressed, newest
// creation first.
func (uc *NoteUseCase) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingID
	}

	notes, err := uc.notes.ListByOwner(ctx, ownerID)
	if err != nil {
		uc.log.Error().Err(err).Str("owner_id", ownerID).Msg("list notes failed")
		return nil, err
	}

	out := make([]*domain.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, decompressed(n))
	}
	return out, nil
}

func (uc *NoteUseCase) GetByOwnerAndSlug(ctx context.Context, ownerID, noteSlug string) (*domain.Note, error) {
	if ownerID == "" || noteSlug == "" {
		return nil, domain.ErrMissingID
	}

	note, err := uc.notes.GetBySlug(ctx, ownerID, noteSlug)
	if err != nil {
		return nil, err
	}
	return decompressed(note), nil
}

// GetPublicBySlug resolves a share link against the projection collection.
func (uc *NoteUseCase) GetPublicBySlug(ctx context.Context, noteSlug string) (*domain.PublicNote, error) {
	if noteSlug == "" {
		return nil, domain.ErrMissingID
	}

	note, err := uc.public.GetBySlug(ctx, noteSlug)
	if err != nil {
		return nil, err
	}

	out := *note
	out.Content = codec.Decompress(note.Content, note.Compressed)
	out.Compressed = false
	return &out, nil
}

// Update rewrites the private record and then applies the sync policy. The
// slug assigned at creation is never regenerated.
func (uc *NoteUseCase) Update(ctx context.Context, ownerID, noteID string, in NoteInput) error {
	if ownerID == "" || noteID == "" {
		return domain.ErrMissingID
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.ErrTitleRequired
	}

	content, compressed, err := codec.Compress(in.Content)
	if err != nil {
		return err
	}

	note, err := uc.notes.GetByID(ctx, ownerID, noteID)
	if err != nil {
		return err
	}

	note.Title = title
	note.Content = content
	note.Compressed = compressed
	note.Tags = cleanTags(in.Tags)
	note.Visibility = normalizeVisibility(in.Visibility)
	note.FolderID = in.FolderID
	note.UpdatedAt = time.Now().UTC()

	if err := uc.notes.Update(ctx, note); err != nil {
		uc.log.Error().Err(err).Str("note_id", noteID).Msg("update note failed")
		return err
	}

	return uc.syncProjection(ctx, note)
}

// Delete removes the private record and any linked projection; a dangling
// projection must never outlive its private source.
func (uc *NoteUseCase) Delete(ctx context.Context, ownerID, noteID string) error {
	if ownerID == "" || noteID == "" {
		return domain.ErrMissingID
	}

	if err := uc.notes.Delete(ctx, ownerID, noteID); err != nil {
		uc.log.Error().Err(err).Str("note_id", noteID).Msg("delete note failed")
		return err
	}

	if err := uc.public.DeleteByPrivateNoteID(ctx, noteID); err != nil {
		uc.log.Warn().Err(err).Str("note_id", noteID).Msg("projection delete failed")
		return err
	}
	return nil
}

// syncProjection applies the visibility transition table against the current
// state of the projection collection.
func (uc *NoteUseCase) syncProjection(ctx context.Context, note *domain.Note) error {
	proj, err := uc.public.GetByPrivateNoteID(ctx, note.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.log.Warn().Err(err).Str("note_id", note.ID).Msg("projection lookup failed")
		return err
	}
	exists := err == nil

	now := time.Now().UTC()
	switch {
	case note.Visibility == domain.VisibilityPublic && exists:
		proj.Title = note.Title
		proj.Content = note.Content
		proj.Compressed = note.Compressed
		proj.Tags = note.Tags
		proj.UpdatedAt = now
		err = uc.public.Update(ctx, proj)
	case note.Visibility == domain.VisibilityPublic:
		err = uc.public.Create(ctx, uc.projectionOf(note, now))
	case exists:
		err = uc.public.DeleteByPrivateNoteID(ctx, note.ID)
	default:
		return nil
	}

	if err != nil {
		uc.log.Warn().Err(err).Str("note_id", note.ID).Msg("projection sync failed")
	}
	return err
}

func (uc *NoteUseCase) projectionOf(note *domain.Note, now time.Time) *domain.PublicNote {
	noteSlug := note.Slug
	if noteSlug == "" {
		// Should not happen: slugs are assigned at creation. Fall back to a
		// fresh one rather than publishing an unreachable record.
		noteSlug = slug.Make(note.Title)
	}
	return &domain.PublicNote{
		ID:            uuid.NewString(),
		PrivateNoteID: note.ID,
		OwnerID:       note.OwnerID,
		Title:         note.Title,
		Content:       note.Content,
		Compressed:    note.Compressed,
		Slug:          noteSlug,
		Tags:          note.Tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (uc *NoteUseCase) newSlug(ctx context.Context, ownerID, title string) (string, error) {
	var candidate string
	for i := 0; i < slugAttempts; i++ {
		candidate = slug.Make(title)
		exists, err := uc.notes.ExistsBySlug(ctx, ownerID, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	// Collisions are astronomically unlikely to survive every attempt.
	return candidate, nil
}

func decompressed(n *domain.Note) *domain.Note {
	out := *n
	out.Content = codec.Decompress(n.Content, n.Compressed)
	out.Compressed = false
	return &out
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func normalizeVisibility(v domain.Visibility) domain.Visibility {
	if v == domain.VisibilityPublic {
		return domain.VisibilityPublic
	}
	return domain.VisibilityPrivate
}
