package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/i18n"
	"github.com/aliskhannn/finance-trivia-bot/internal/service"
)

// startHandler greets the user in the language of their Telegram client.
func (h *Handler) startHandler(from *tgbotapi.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		pid := playerID(chatID)

		lang := h.quiz.Language(pid)
		if from != nil && from.LanguageCode != "" {
			lang = i18n.MatchLanguage(from.LanguageCode)
			if err := h.quiz.SetLanguage(pid, lang); err != nil {
				return err
			}
		}

		msg := newHTMLMessage(chatID, h.tr.T(lang, "welcome", nil))
		msg.ReplyMarkup = h.buildMenuKeyboard(lang)
		h.send(msg)
		return nil
	}
}

func (h *Handler) helpHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		lang := h.quiz.Language(playerID(chatID))
		h.send(newHTMLMessage(chatID, h.tr.T(lang, "help", nil)))
		return nil
	}
}

// quizHandler asks for a difficulty unless a game is already running.
func (h *Handler) quizHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		pid := playerID(chatID)
		lang := h.quiz.Language(pid)

		view, err := h.quiz.Snapshot(pid)
		if err != nil && !errors.Is(err, service.ErrGameNotFound) {
			return err
		}
		if view != nil && view.State == entities.GameInProgress {
			h.send(newHTMLMessage(chatID, h.tr.T(lang, "game_in_progress", nil)))
			return nil
		}

		msg := newHTMLMessage(chatID, bold(h.tr.T(lang, "select_difficulty", nil)))
		msg.ReplyMarkup = h.buildDifficultyKeyboard(lang)
		h.send(msg)
		return nil
	}
}

func (h *Handler) languageHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		lang := h.quiz.Language(playerID(chatID))
		msg := newHTMLMessage(chatID, h.tr.T(lang, "select_language", nil))
		msg.ReplyMarkup = buildLanguageKeyboard()
		h.send(msg)
		return nil
	}
}

// statsHandler shows the results of the current or last game.
func (h *Handler) statsHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		pid := playerID(chatID)
		lang := h.quiz.Language(pid)

		res, err := h.quiz.Results(pid)
		switch {
		case errors.Is(err, service.ErrGameNotFound), errors.Is(err, entities.ErrEmptyHistory):
			h.send(newHTMLMessage(chatID, h.tr.T(lang, "no_game", nil)))
			return nil
		case err != nil:
			return err
		}

		msg := newHTMLMessage(chatID, h.formatResults(res))
		if res.Finished {
			msg.ReplyMarkup = h.buildResultsKeyboard(lang)
		}
		h.send(msg)
		return nil
	}
}

func (h *Handler) restartHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		pid := playerID(chatID)
		h.quiz.Restart(pid)

		lang := h.quiz.Language(pid)
		msg := newHTMLMessage(chatID, h.tr.T(lang, "restarted", nil))
		msg.ReplyMarkup = h.buildMenuKeyboard(lang)
		h.send(msg)
		return nil
	}
}

// resourcesHandler sends the learning resources, one message per kind so
// each stays under the Telegram length limit.
func (h *Handler) resourcesHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		lang := h.quiz.Language(playerID(chatID))

		res, err := h.resources.GetResources(ctx, lang)
		if err != nil {
			return err
		}

		for _, text := range h.formatResources(lang, res) {
			msg := newHTMLMessage(chatID, text)
			msg.DisableWebPagePreview = true
			h.send(msg)
		}
		return nil
	}
}
