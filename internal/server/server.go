// Package server exposes the note, folder and auth use cases over HTTP.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"

	"github.com/mxkcz/notehub/internal/usecase"
)

const ownerKey = "owner_id"

type Server struct {
	app     *fiber.App
	notes   *usecase.NoteUseCase
	folders *usecase.FolderUseCase
	auth    *usecase.AuthUseCase
	log     zerolog.Logger
	timeout time.Duration
}

func New(notes *usecase.NoteUseCase, folders *usecase.FolderUseCase, auth *usecase.AuthUseCase, log zerolog.Logger, timeout time.Duration) *Server {
	s := &Server{
		notes:   notes,
		folders: folders,
		auth:    auth,
		log:     log,
		timeout: timeout,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())
	app.Use(s.logRequests)

	api := app.Group("/api")
	api.Post("/auth/signup", s.handleSignUp)
	api.Post("/auth/login", s.handleSignIn)
	api.Get("/public/:slug", s.handleGetPublicNote)

	authed := api.Group("", s.requireAuth)
	authed.Get("/notes", s.handleListNotes)
	authed.Post("/notes", s.handleCreateNote)
	authed.Get("/notes/:slug", s.handleGetNote)
	authed.Put("/notes/:id", s.handleUpdateNote)
	authed.Delete("/notes/:id", s.handleDeleteNote)
	authed.Put("/notes/:id/folder", s.handleMoveNote)
	authed.Get("/folders", s.handleListFolders)
	authed.Post("/folders", s.handleCreateFolder)
	authed.Delete("/folders/:id", s.handleDeleteFolder)

	s.app = app
	return s
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// requestContext bounds every store operation; all of them are remote calls.
func (s *Server) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), s.timeout)
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request")
	return err
}

func (s *Server) requireAuth(c *fiber.Ctx) error {
	const prefix = "Bearer "

	header := c.Get(fiber.HeaderAuthorization)
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}

	ownerID, err := s.auth.Verify(header[len(prefix):])
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	c.Locals(ownerKey, ownerID)
	return c.Next()
}

func ownerID(c *fiber.Ctx) string {
	id, _ := c.Locals(ownerKey).(string)
	return id
}
