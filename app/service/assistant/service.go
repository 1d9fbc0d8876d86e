package assistant

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"shopassist/app/client/genai"
	"shopassist/app/config"
	"shopassist/app/observability"
	"shopassist/app/service/session"
	"shopassist/app/store"

	"github.com/samber/do"
)

const (
	generalApology    = "Xin lỗi, em gặp chút vấn đề. Anh/Chị có thể hỏi lại được không ạ?"
	generationApology = "Có lỗi xảy ra. Anh/Chị thử lại sau nhé! 😢"
)

type generator interface {
	Generate(ctx context.Context, turns []genai.Turn) (string, error)
}

// Service is the shopper-facing conversation engine: classify the intent,
// run one handler, format the reply and keep the per-session context.
type Service struct {
	catalog  store.CatalogStore
	gen      generator
	sessions *session.Store
	metrics  *observability.Metrics

	janitorInterval time.Duration
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return newService(
		do.MustInvoke[store.CatalogStore](di),
		genai.NewClient(cfg.OpenAI.Chat),
		session.NewStore(time.Duration(cfg.Session.TTLMinutes)*time.Minute),
		do.MustInvoke[*observability.Metrics](di),
		time.Duration(cfg.Session.JanitorIntervalSeconds)*time.Second,
	), nil
}

func newService(catalog store.CatalogStore, gen generator, sessions *session.Store,
	metrics *observability.Metrics, janitorInterval time.Duration) *Service {
	return &Service{
		catalog:         catalog,
		gen:             gen,
		sessions:        sessions,
		metrics:         metrics,
		janitorInterval: janitorInterval,
	}
}

// Run keeps the session janitor going until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	s.sessions.RunJanitor(ctx, s.janitorInterval)
}

// HandleTurn processes one inbound message. Apart from a blank message,
// every failure degrades to a textual reply and the turn is still recorded
// in the session history.
func (s *Service) HandleTurn(ctx context.Context, sessionID, message string) (Response, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Response{}, ErrEmptyMessage
	}

	start := time.Now()
	snap := s.sessions.BeginTurn(sessionID, message)
	intent := classifyIntent(message, snap)

	resp := s.runTurn(ctx, sessionID, message, snap, intent)
	resp.SessionID = sessionID

	if s.metrics != nil {
		s.metrics.ObserveTurn(string(intent), time.Since(start))
		s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	}

	return resp, nil
}

func (s *Service) ClearContext(sessionID string) {
	s.sessions.Clear(sessionID)
}

func (s *Service) runTurn(ctx context.Context, sessionID, message string,
	snap session.Snapshot, intent Intent) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic during turn",
				"session", sessionID,
				"panic", r,
				"telegram", true)

			resp = Response{Message: generalApology}
			s.sessions.CommitTurn(sessionID, generalApology, nil)
		}
	}()

	// One catalog snapshot per turn: exact resolution and link injection
	// observe the same state even if the catalog mutates mid-turn.
	catalogSnap, err := s.catalog.FindActive(ctx)
	if err != nil {
		slog.Error("Catalog read failed", "session", sessionID, "error", err)
		s.sessions.CommitTurn(sessionID, generalApology, nil)

		return Response{Message: generalApology}
	}

	t := &turn{
		message: message,
		lower:   strings.ToLower(strings.TrimSpace(message)),
		snap:    snap,
		catalog: catalogSnap,
	}

	out, err := s.dispatch(ctx, intent, t)
	if err != nil {
		apology := generalApology
		if errors.Is(err, ErrGenerationFailed) {
			apology = generationApology
			if s.metrics != nil {
				s.metrics.GenerationFailures.Inc()
			}
		}

		slog.Error("Turn handler failed",
			"session", sessionID,
			"intent", intent,
			"error", err)

		s.sessions.CommitTurn(sessionID, apology, nil)

		return Response{Message: apology}
	}

	s.sessions.CommitTurn(sessionID, out.message, func(state *session.State) {
		state.SetIntent(string(intent))
		if out.mutate != nil {
			out.mutate(state)
		}
	})

	return Response{Message: out.message, Products: viewsOf(out.products)}
}

func (s *Service) dispatch(ctx context.Context, intent Intent, t *turn) (outcome, error) {
	switch intent {
	case IntentAnaphoraDetail:
		return s.handleAnaphora(ctx, t)
	case IntentExtremePrice:
		return s.handleExtremePrice(ctx, t)
	case IntentProductSearch:
		return s.handleProductSearch(ctx, t)
	case IntentProductCompare:
		return s.handleCompare(ctx, t)
	case IntentPriceInquiry:
		return s.handlePriceInquiry(ctx, t)
	case IntentRecommendation:
		return s.handleRecommendation(ctx, t)
	default:
		return s.handleGeneral(ctx, t)
	}
}
