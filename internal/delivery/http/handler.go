package http

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aliskhannn/finance-trivia-bot/internal/calculator"
	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/service"
)

// QuizService is the game API the HTTP host drives.
type QuizService interface {
	StartGame(ctx context.Context, playerID string, lang entities.Language, diff entities.Difficulty, count int) (*service.GameView, error)
	Snapshot(playerID string) (*service.GameView, error)
	CurrentQuestion(playerID string) (*service.QuestionView, bool, error)
	SubmitAnswer(playerID string, optionIndex int) (*service.AnswerFeedback, error)
	Advance(playerID string) (*service.GameView, error)
	Restart(playerID string)
	Results(playerID string) (*service.Results, error)
	Language(playerID string) entities.Language
	SetLanguage(playerID string, lang entities.Language) error
}

// ResourceDirectory lists learning resources per language.
type ResourceDirectory interface {
	GetResources(ctx context.Context, lang entities.Language) ([]entities.Resource, error)
}

type Handler struct {
	quiz      QuizService
	resources ResourceDirectory
	auth      *AuthService
	logger    *zap.Logger
}

func NewHandler(quiz QuizService, resources ResourceDirectory, auth *AuthService, logger *zap.Logger) *Handler {
	return &Handler{quiz: quiz, resources: resources, auth: auth, logger: logger}
}

type createPlayerRequest struct {
	Language string `json:"language"`
}

type createPlayerResponse struct {
	PlayerID    string            `json:"player_id"`
	Language    entities.Language `json:"language"`
	AccessToken string            `json:"access_token"`
	ExpiresAt   time.Time         `json:"expires_at"`
}

// CreatePlayer issues a token for a new anonymous player.
func (h *Handler) CreatePlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlayerRequest
		if r.ContentLength != 0 {
			if err := decode(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		lang := entities.LanguageEnglish
		if req.Language != "" {
			parsed, err := entities.ParseLanguage(req.Language)
			if err != nil {
				h.fail(w, r, err)
				return
			}
			lang = parsed
		}

		playerID, token, exp, err := h.auth.Issue()
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.quiz.SetLanguage(playerID, lang); err != nil {
			h.fail(w, r, err)
			return
		}

		h.logger.Info("player created", zap.String("player_id", playerID), zap.String("language", string(lang)))

		writeJSON(w, http.StatusCreated, createPlayerResponse{
			PlayerID:    playerID,
			Language:    lang,
			AccessToken: token,
			ExpiresAt:   exp,
		})
	}
}

type startGameRequest struct {
	Language   string `json:"language"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// StartGame deals a new game. Language defaults to the player's language.
func (h *Handler) StartGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := PlayerFromContext(r.Context())

		var req startGameRequest
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		lang := h.quiz.Language(playerID)
		if req.Language != "" {
			parsed, err := entities.ParseLanguage(req.Language)
			if err != nil {
				h.fail(w, r, err)
				return
			}
			lang = parsed
		}

		diff, err := entities.ParseDifficulty(req.Difficulty)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		view, err := h.quiz.StartGame(r.Context(), playerID, lang, diff, req.Count)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, view)
	}
}

func (h *Handler) GetGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := h.quiz.Snapshot(PlayerFromContext(r.Context()))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// GetQuestion returns the current question or 204 when none is pending.
func (h *Handler) GetQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok, err := h.quiz.CurrentQuestion(PlayerFromContext(r.Context()))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

type answerRequest struct {
	Option *int `json:"option"`
}

func (h *Handler) SubmitAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req answerRequest
		if err := decode(r, &req); err != nil || req.Option == nil {
			writeError(w, http.StatusBadRequest, "option is required")
			return
		}

		fb, err := h.quiz.SubmitAnswer(PlayerFromContext(r.Context()), *req.Option)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, fb)
	}
}

func (h *Handler) Advance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := h.quiz.Advance(PlayerFromContext(r.Context()))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func (h *Handler) Restart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.quiz.Restart(PlayerFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) Results() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.quiz.Results(PlayerFromContext(r.Context()))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (h *Handler) Investment() http.HandlerFunc {
	return calculate(h, calculator.ProjectInvestment)
}

func (h *Handler) Mortgage() http.HandlerFunc {
	return calculate(h, calculator.MortgageQuote)
}

func (h *Handler) Retirement() http.HandlerFunc {
	return calculate(h, calculator.PlanRetirement)
}

type amortizationRequest struct {
	Principal decimal.Decimal `json:"principal"`
	RatePct   decimal.Decimal `json:"rate_pct"`
	Years     int             `json:"years"`
}

type amortizationResponse struct {
	Payment decimal.Decimal              `json:"payment"`
	Rows    []calculator.AmortizationRow `json:"rows"`
}

func (h *Handler) Amortization() http.HandlerFunc {
	return calculate(h, func(in amortizationRequest) (*amortizationResponse, error) {
		rows, err := calculator.Amortize(in.Principal, in.RatePct, in.Years)
		if err != nil {
			return nil, err
		}
		return &amortizationResponse{Payment: rows[0].Payment, Rows: rows}, nil
	})
}

// calculate decodes In, runs fn and encodes its result.
func calculate[In, Out any](h *Handler, fn func(In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decode(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		out, err := fn(in)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type resourcesResponse struct {
	Language  entities.Language   `json:"language"`
	Resources []entities.Resource `json:"resources"`
}

// Resources lists learning resources; language defaults to English.
func (h *Handler) Resources() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := entities.LanguageEnglish
		if raw := r.URL.Query().Get("language"); raw != "" {
			parsed, err := entities.ParseLanguage(raw)
			if err != nil {
				h.fail(w, r, err)
				return
			}
			lang = parsed
		}

		res, err := h.resources.GetResources(r.Context(), lang)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resourcesResponse{Language: lang, Resources: res})
	}
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
