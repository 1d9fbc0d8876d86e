package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"shopassist/app/config"
	"shopassist/app/observability"
	"shopassist/app/service/adminchat"
	"shopassist/app/service/assistant"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const adminPrefix = "ADMIN_"

type Service struct {
	cfg          *config.Config
	assistantSvc *assistant.Service
	adminSvc     *adminchat.Service
	metrics      *observability.Metrics
	app          *fiber.App
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:          do.MustInvoke[*config.Config](di),
		assistantSvc: do.MustInvoke[*assistant.Service](di),
		adminSvc:     do.MustInvoke[*adminchat.Service](di),
		metrics:      do.MustInvoke[*observability.Metrics](di),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           time.Minute,
	})
	app.Use(recover.New())

	app.Post("/api/chat", s.handleChat)
	app.Delete("/api/chat/context", s.handleClearContext)
	app.Post("/api/admin/chat", s.handleAdminChat)
	app.Delete("/api/admin/chat/context", s.handleAdminClearContext)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	s.app = app

	return s, nil
}

// Run serves the API until ctx is cancelled, then drains connections.
func (s *Service) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return s.app.Listen(s.cfg.Server.Addr)
	})

	group.Go(func() error {
		<-ctx.Done()

		slog.Info("Shutting down HTTP server")

		return s.app.ShutdownWithTimeout(10 * time.Second)
	})

	return group.Wait()
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (s *Service) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	resp, err := s.assistantSvc.HandleTurn(c.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyMessage) {
			return badRequest(c, "Tin nhắn không được để trống")
		}

		return err
	}

	return c.JSON(resp)
}

func (s *Service) handleClearContext(c *fiber.Ctx) error {
	sessionID := sessionIDFrom(c)
	if sessionID == "" {
		return badRequest(c, "session_id is required")
	}

	s.assistantSvc.ClearContext(sessionID)

	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Service) handleAdminChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	if strings.TrimSpace(req.Message) == "" {
		return badRequest(c, "Tin nhắn không được để trống")
	}

	reply, err := s.adminSvc.HandleTurn(c.Context(), adminPrefix+req.SessionID, req.Message)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"session_id": req.SessionID,
		"message":    reply,
	})
}

func (s *Service) handleAdminClearContext(c *fiber.Ctx) error {
	sessionID := sessionIDFrom(c)
	if sessionID == "" {
		return badRequest(c, "session_id is required")
	}

	s.adminSvc.ClearContext(adminPrefix + sessionID)

	return c.JSON(fiber.Map{"status": "ok"})
}

func sessionIDFrom(c *fiber.Ctx) string {
	if id := c.Query("session_id"); id != "" {
		return id
	}

	var req chatRequest
	if err := c.BodyParser(&req); err == nil {
		return req.SessionID
	}

	return ""
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
