package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mxkcz/notehub/internal/domain"
	"github.com/mxkcz/notehub/internal/usecase"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type noteRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Visibility string   `json:"visibility"`
	FolderID   *string  `json:"folder_id"`
}

type folderRequest struct {
	Name string `json:"name"`
}

type moveNoteRequest struct {
	FolderID *string `json:"folder_id"`
}

func (s *Server) handleSignUp(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	token, err := s.auth.SignUp(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}

func (s *Server) handleSignIn(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	token, err := s.auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

func (s *Server) handleListNotes(c *fiber.Ctx) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	notes, err := s.notes.ListByOwner(ctx, ownerID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(notes)
}

func (s *Server) handleCreateNote(c *fiber.Ctx) error {
	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	slug, err := s.notes.Create(ctx, ownerID(c), usecase.NoteInput{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Visibility: domain.Visibility(req.Visibility),
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"slug": slug})
}

func (s *Server) handleGetNote(c *fiber.Ctx) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	note, err := s.notes.GetByOwnerAndSlug(ctx, ownerID(c), c.Params("slug"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(note)
}

func (s *Server) handleGetPublicNote(c *fiber.Ctx) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	note, err := s.notes.GetPublicBySlug(ctx, c.Params("slug"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(note)
}

func (s *Server) handleUpdateNote(c *fiber.Ctx) error {
	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	err := s.notes.Update(ctx, ownerID(c), c.Params("id"), usecase.NoteInput{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Visibility: domain.Visibility(req.Visibility),
		FolderID:   req.FolderID,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	if err := s.notes.Delete(ctx, ownerID(c), c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleMoveNote(c *fiber.Ctx) error {
	var req moveNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	if err := s.folders.MoveNote(ctx, ownerID(c), c.Params("id"), req.FolderID); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleListFolders(c *fiber.Ctx) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	folders, err := s.folders.ListByOwner(ctx, ownerID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(folders)
}

func (s *Server) handleCreateFolder(c *fiber.Ctx) error {
	var req folderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	folder, err := s.folders.Create(ctx, ownerID(c), req.Name)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(folder)
}

func (s *Server) handleDeleteFolder(c *fiber.Ctx) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	if err := s.folders.Delete(ctx, ownerID(c), c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// fail maps the error taxonomy onto HTTP statuses: validation 400, not
// found 404, capacity 413, auth 401/409, anything else 500.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrFolderNameRequired),
		errors.Is(err, domain.ErrMissingID):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrContentTooLarge):
		status = fiber.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailTaken):
		status = fiber.StatusConflict
	default:
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
