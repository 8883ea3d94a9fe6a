package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/service"
)

var languageLabels = map[entities.Language]string{
	entities.LanguageEnglish:    "🇬🇧 English",
	entities.LanguageIndonesian: "🇮🇩 Bahasa Indonesia",
}

var difficultyEmoji = map[entities.Difficulty]string{
	entities.DifficultyEasy:   "🟢",
	entities.DifficultyMedium: "🟡",
	entities.DifficultyHard:   "🔴",
}

// lengthChoices are the game lengths offered on the keyboard.
var lengthChoices = []int{5, 8, 10, 15, 20, 30}

// buildMenuKeyboard builds keyboard for the welcome screen.
func (h *Handler) buildMenuKeyboard(lang entities.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 "+h.tr.T(lang, "start_game", nil), buildQuizCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌐 "+h.tr.T(lang, "select_language", nil), actionLanguage),
		),
	)
}

// buildLanguageKeyboard builds keyboard with one button per quiz language.
func buildLanguageKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, lang := range entities.Languages() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(languageLabels[lang], buildLanguageCallback(lang)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// buildDifficultyKeyboard builds keyboard for choosing the difficulty.
func (h *Handler) buildDifficultyKeyboard(lang entities.Language) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, diff := range entities.Difficulties() {
		label := difficultyEmoji[diff] + " " + h.tr.Difficulty(lang, diff)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildDifficultyCallback(diff)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildLengthKeyboard builds keyboard for the game length, two buttons per row.
func (h *Handler) buildLengthKeyboard(lang entities.Language, diff entities.Difficulty, cfg service.QuizConfig) tgbotapi.InlineKeyboardMarkup {
	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)
	for _, n := range lengthChoices {
		if n < cfg.MinQuestions || n > cfg.MaxQuestions {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			h.tr.Plural(lang, "length_button", n, nil),
			buildLengthCallback(diff, n),
		))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildAnswerKeyboard builds one button per option of the current question.
func buildAnswerKeyboard(q *service.QuestionView) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		button := tgbotapi.NewInlineKeyboardButtonData(optionLabel(i)+" "+option, buildAnswerCallback(q.Number-1, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildFeedbackKeyboard offers the next question or the results.
func (h *Handler) buildFeedbackKeyboard(lang entities.Language, questionIndex int, last bool) tgbotapi.InlineKeyboardMarkup {
	label := "➡️ " + h.tr.T(lang, "next_question", nil)
	if last {
		label = "🏁 " + h.tr.T(lang, "finish_quiz", nil)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildNextCallback(questionIndex)),
		),
	)
}

// buildResultsKeyboard builds keyboard for the results screen.
func (h *Handler) buildResultsKeyboard(lang entities.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 "+h.tr.T(lang, "play_again", nil), buildRestartCallback()),
		),
	)
}

func optionLabel(i int) string {
	return string(rune('A'+i)) + "."
}
