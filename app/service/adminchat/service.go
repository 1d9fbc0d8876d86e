package adminchat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "embed"

	"shopassist/app/client/genai"
	"shopassist/app/config"
	"shopassist/app/service/session"
	"shopassist/app/store"

	"github.com/samber/do"
)

//go:embed system_prompt.txt
var adminPrompt string

const failureApology = "⚠️ Xin lỗi Admin, hệ thống AI đang gặp sự cố. Vui lòng thử lại sau."

type generator interface {
	Generate(ctx context.Context, turns []genai.Turn) (string, error)
}

// Service is the staff-facing variant of the assistant: same dialogue
// pattern, but a full data aggregation step stands in for the product
// resolver and the persona is the analytics one.
type Service struct {
	store    store.AdminStore
	gen      generator
	sessions *session.Store

	janitorInterval time.Duration
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return newService(
		do.MustInvoke[store.AdminStore](di),
		genai.NewClient(cfg.OpenAI.Admin),
		session.NewStore(time.Duration(cfg.Session.TTLMinutes)*time.Minute),
		time.Duration(cfg.Session.JanitorIntervalSeconds)*time.Second,
	), nil
}

func newService(st store.AdminStore, gen generator, sessions *session.Store,
	janitorInterval time.Duration) *Service {
	return &Service{
		store:           st,
		gen:             gen,
		sessions:        sessions,
		janitorInterval: janitorInterval,
	}
}

func (s *Service) Run(ctx context.Context) {
	s.sessions.RunJanitor(ctx, s.janitorInterval)
}

// HandleTurn answers one admin question over a fresh aggregate of the
// whole system. Failures degrade to a textual apology and the turn is
// still recorded.
func (s *Service) HandleTurn(ctx context.Context, adminID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("empty message")
	}

	s.sessions.BeginTurn(adminID, message)

	reply := s.answer(ctx, adminID, message)
	s.sessions.CommitTurn(adminID, reply, nil)

	return reply, nil
}

func (s *Service) answer(ctx context.Context, adminID, message string) string {
	data, err := s.collectReport(ctx)
	if err != nil {
		slog.Error("Admin report collection failed", "admin", adminID, "error", err)
		return failureApology
	}

	prompt := fmt.Sprintf(
		"════════════════════════════════════════\n"+
			"📊 DỮ LIỆU HỆ THỐNG TECH SHOP\n"+
			"Thời gian: %s\n"+
			"════════════════════════════════════════\n\n"+
			"%s\n\n"+
			"════════════════════════════════════════\n"+
			"❓ CÂU HỎI CỦA ADMIN:\n%s\n"+
			"════════════════════════════════════════",
		time.Now().Format("02/01/2006 15:04:05"),
		data.format(),
		message)

	text, err := s.gen.Generate(ctx, []genai.Turn{
		{Role: genai.RoleSystem, Text: adminPrompt},
		{Role: genai.RoleUser, Text: prompt},
	})
	if err != nil {
		slog.Error("Admin generation failed", "admin", adminID, "error", err)
		return failureApology
	}

	return genai.CollapseBlankLines(text)
}

func (s *Service) ClearContext(adminID string) {
	s.sessions.Clear(adminID)
}
