package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/service"
)

// QuizService runs one game per chat.
type QuizService interface {
	Config() service.QuizConfig
	StartGame(ctx context.Context, playerID string, lang entities.Language, diff entities.Difficulty, count int) (*service.GameView, error)
	Snapshot(playerID string) (*service.GameView, error)
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

// Translator renders localized bot messages.
type Translator interface {
	T(lang entities.Language, id string, data map[string]any) string
	Plural(lang entities.Language, id string, count int, data map[string]any) string
	Difficulty(lang entities.Language, diff entities.Difficulty) string
}

type Handler struct {
	bot       *tgbotapi.BotAPI
	logger    *zap.Logger
	quiz      QuizService
	resources ResourceDirectory
	tr        Translator
}

func NewHandler(bot *tgbotapi.BotAPI, logger *zap.Logger, quiz QuizService, resources ResourceDirectory, tr Translator) *Handler {
	return &Handler{
		bot:       bot,
		logger:    logger,
		quiz:      quiz,
		resources: resources,
		tr:        tr,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		lang := h.quiz.Language(playerID(chatID))
		h.send(newHTMLMessage(chatID, h.tr.T(lang, "unknown_command", nil)))
		return
	}

	args := update.Message.CommandArguments()

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.startHandler(update.Message.From))(ctx, chatID)
	case "help":
		_ = h.withErrorHandling(h.helpHandler())(ctx, chatID)
	case "quiz":
		_ = h.withErrorHandling(h.quizHandler())(ctx, chatID)
	case "language":
		_ = h.withErrorHandling(h.languageHandler())(ctx, chatID)
	case "stats":
		_ = h.withErrorHandling(h.statsHandler())(ctx, chatID)
	case "restart":
		_ = h.withErrorHandling(h.restartHandler())(ctx, chatID)
	case "resources":
		_ = h.withErrorHandling(h.resourcesHandler())(ctx, chatID)
	case "mortgage":
		_ = h.withErrorHandling(h.mortgageHandler(args))(ctx, chatID)
	case "invest":
		_ = h.withErrorHandling(h.investHandler(args))(ctx, chatID)
	case "retire":
		_ = h.withErrorHandling(h.retireHandler(args))(ctx, chatID)
	default:
		lang := h.quiz.Language(playerID(chatID))
		h.send(newHTMLMessage(chatID, h.tr.T(lang, "unknown_command", nil)))
	}
}

// Commands lists the bot commands for the Telegram menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Welcome and main menu"},
		{Command: "quiz", Description: "Start a finance quiz"},
		{Command: "language", Description: "Switch language / Ganti bahasa"},
		{Command: "stats", Description: "Results of the last quiz"},
		{Command: "restart", Description: "Drop the current quiz"},
		{Command: "resources", Description: "Free learning resources"},
		{Command: "mortgage", Description: "Mortgage payment calculator"},
		{Command: "invest", Description: "Investment projection"},
		{Command: "retire", Description: "Retirement planner"},
		{Command: "help", Description: "How to use the bot"},
	}
}

// playerID keys games by chat, so a chat plays one game at a time.
func playerID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newHTMLMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
