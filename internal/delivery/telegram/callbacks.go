package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/service"
)

// screen is the new content of the message a callback came from.
// An empty text leaves the message as it is.
type screen struct {
	text string
	kb   *tgbotapi.InlineKeyboardMarkup
}

// callbackFunc handles one callback action. notice is shown as a toast.
type callbackFunc func(ctx context.Context, chatID int64, cd callbackData) (s screen, notice string, err error)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	cd := decodeCallback(cb.Data)

	var fn callbackFunc
	switch cd.Action {
	case actionLanguage:
		fn = h.languageCallback
	case actionQuiz:
		fn = h.quizCallback
	case actionDifficulty:
		fn = h.difficultyCallback
	case actionLength:
		fn = h.lengthCallback
	case actionAnswer:
		fn = h.answerCallback
	case actionNext:
		fn = h.nextCallback
	case actionRestart:
		fn = h.restartCallback
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		h.answerCallbackQuery(cb.ID, "")
		return
	}

	s, notice, err := fn(ctx, chatID, cd)
	if err != nil {
		h.logger.Error("callback error",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		notice = h.tr.T(h.quiz.Language(playerID(chatID)), "internal_error", nil)
	}

	if s.text != "" {
		edit := newHTMLEdit(chatID, cb.Message.MessageID, s.text)
		if s.kb != nil {
			edit.ReplyMarkup = s.kb
		}
		h.send(edit)
	}

	// Remove the user's "clock".
	h.answerCallbackQuery(cb.ID, notice)
}

func (h *Handler) answerCallbackQuery(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Error("callback answer error", zap.Error(err))
	}
}

func (h *Handler) languageCallback(_ context.Context, chatID int64, cd callbackData) (screen, string, error) {
	pid := playerID(chatID)

	if len(cd.Params) == 0 {
		kb := buildLanguageKeyboard()
		return screen{text: h.tr.T(h.quiz.Language(pid), "select_language", nil), kb: &kb}, "", nil
	}

	lang, err := entities.ParseLanguage(cd.param(0))
	if err != nil {
		return screen{}, "", nil
	}
	if err := h.quiz.SetLanguage(pid, lang); err != nil {
		return screen{}, "", err
	}

	kb := h.buildMenuKeyboard(lang)
	return screen{text: h.tr.T(lang, "language_set", nil), kb: &kb}, "", nil
}

func (h *Handler) quizCallback(_ context.Context, chatID int64, _ callbackData) (screen, string, error) {
	lang := h.quiz.Language(playerID(chatID))
	kb := h.buildDifficultyKeyboard(lang)
	return screen{text: bold(h.tr.T(lang, "select_difficulty", nil)), kb: &kb}, "", nil
}

func (h *Handler) difficultyCallback(_ context.Context, chatID int64, cd callbackData) (screen, string, error) {
	diff, err := entities.ParseDifficulty(cd.param(0))
	if err != nil {
		return screen{}, "", nil
	}

	lang := h.quiz.Language(playerID(chatID))
	kb := h.buildLengthKeyboard(lang, diff, h.quiz.Config())
	text := difficultyEmoji[diff] + " " + bold(h.tr.Difficulty(lang, diff)) + "\n\n" + h.tr.T(lang, "select_length", nil)
	return screen{text: text, kb: &kb}, "", nil
}

// lengthCallback starts the game and shows its first question.
func (h *Handler) lengthCallback(ctx context.Context, chatID int64, cd callbackData) (screen, string, error) {
	pid := playerID(chatID)
	lang := h.quiz.Language(pid)

	diff, err := entities.ParseDifficulty(cd.param(0))
	if err != nil {
		return screen{}, "", nil
	}
	count, ok := cd.intParam(1)
	if !ok {
		return screen{}, "", nil
	}

	view, err := h.quiz.StartGame(ctx, pid, lang, diff, count)
	switch {
	case errors.Is(err, entities.ErrInvalidStateTransition):
		return screen{}, h.tr.T(lang, "game_in_progress", nil), nil
	case errors.Is(err, service.ErrNoQuestionsAvailable):
		return screen{}, h.tr.T(lang, "no_questions", nil), nil
	case errors.Is(err, service.ErrInvalidCount):
		return screen{}, "", nil
	case err != nil:
		return screen{}, "", err
	}

	return h.questionScreen(view), "", nil
}

// answerCallback grades a pressed option. Presses on a keyboard of an
// earlier question are ignored.
func (h *Handler) answerCallback(_ context.Context, chatID int64, cd callbackData) (screen, string, error) {
	pid := playerID(chatID)
	lang := h.quiz.Language(pid)

	qIndex, ok1 := cd.intParam(0)
	option, ok2 := cd.intParam(1)
	if !ok1 || !ok2 {
		return screen{}, "", nil
	}

	view, err := h.quiz.Snapshot(pid)
	if errors.Is(err, service.ErrGameNotFound) {
		return screen{}, h.tr.T(lang, "no_game", nil), nil
	}
	if err != nil {
		return screen{}, "", err
	}
	if view.State != entities.GameInProgress || view.Index != qIndex {
		return screen{}, h.tr.T(lang, "game_finished", nil), nil
	}

	fb, err := h.quiz.SubmitAnswer(pid, option)
	switch {
	case errors.Is(err, entities.ErrInvalidStateTransition):
		return screen{}, h.tr.T(lang, "already_answered", nil), nil
	case errors.Is(err, entities.ErrOutOfRangeAnswer):
		return screen{}, "", nil
	case err != nil:
		return screen{}, "", err
	}

	kb := h.buildFeedbackKeyboard(lang, qIndex, fb.Last)
	notice := h.tr.T(lang, "wrong", nil)
	if fb.Correct {
		notice = h.tr.T(lang, "correct", nil)
	}
	return screen{text: h.formatFeedback(lang, view.Question, fb), kb: &kb}, notice, nil
}

// nextCallback moves past the answered question, showing results after the last one.
func (h *Handler) nextCallback(_ context.Context, chatID int64, cd callbackData) (screen, string, error) {
	pid := playerID(chatID)
	lang := h.quiz.Language(pid)

	if qIndex, ok := cd.intParam(0); ok {
		view, err := h.quiz.Snapshot(pid)
		if err != nil && !errors.Is(err, service.ErrGameNotFound) {
			return screen{}, "", err
		}
		if view == nil || view.Index != qIndex || view.State != entities.GameInProgress {
			return screen{}, "", nil
		}
	}

	view, err := h.quiz.Advance(pid)
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return screen{}, h.tr.T(lang, "no_game", nil), nil
	case errors.Is(err, entities.ErrInvalidStateTransition):
		return screen{}, h.tr.T(lang, "select_answer", nil), nil
	case err != nil:
		return screen{}, "", err
	}

	if view.State != entities.GameFinished {
		return h.questionScreen(view), "", nil
	}

	res, err := h.quiz.Results(pid)
	if err != nil {
		return screen{}, "", err
	}
	kb := h.buildResultsKeyboard(lang)
	return screen{text: h.formatResults(res), kb: &kb}, "", nil
}

// restartCallback drops the game and asks for a new difficulty.
func (h *Handler) restartCallback(ctx context.Context, chatID int64, cd callbackData) (screen, string, error) {
	h.quiz.Restart(playerID(chatID))
	return h.quizCallback(ctx, chatID, cd)
}

func (h *Handler) questionScreen(view *service.GameView) screen {
	if view.Question == nil {
		return screen{text: h.tr.T(view.Language, "game_finished", nil)}
	}
	kb := buildAnswerKeyboard(view.Question)
	return screen{text: h.formatQuestion(view.Language, view.Question, view.Streak), kb: &kb}
}
