package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/service"
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}

func bold(s string) string {
	return "<b>" + html.EscapeString(s) + "</b>"
}

// buildProgressBar creates a text progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return strings.Repeat("░", length)
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// formatQuestion renders the question header, text and options.
func (h *Handler) formatQuestion(lang entities.Language, q *service.QuestionView, streak int) string {
	var b strings.Builder

	b.WriteString(bold(h.tr.T(lang, "question_header", map[string]any{
		"Number":     q.Number,
		"Total":      q.Total,
		"Difficulty": h.tr.Difficulty(lang, q.Difficulty),
		"Category":   q.Category,
	})))
	b.WriteString("\n")
	b.WriteString(buildProgressBar(q.Number-1, q.Total, 10))
	if streak > 0 {
		fmt.Fprintf(&b, "  🔥 %s: %d", html.EscapeString(h.tr.T(lang, "streak", nil)), streak)
	}
	b.WriteString("\n\n")
	b.WriteString(html.EscapeString(q.Text))
	b.WriteString("\n")

	for i, opt := range q.Options {
		fmt.Fprintf(&b, "\n%s %s", optionLabel(i), html.EscapeString(opt))
	}

	return b.String()
}

// formatFeedback renders the answered question with the verdict and explanation.
func (h *Handler) formatFeedback(lang entities.Language, q *service.QuestionView, fb *service.AnswerFeedback) string {
	var b strings.Builder

	b.WriteString(bold(h.tr.T(lang, "question_header", map[string]any{
		"Number":     q.Number,
		"Total":      q.Total,
		"Difficulty": h.tr.Difficulty(lang, q.Difficulty),
		"Category":   q.Category,
	})))
	b.WriteString("\n\n")
	b.WriteString(html.EscapeString(q.Text))
	b.WriteString("\n")

	for i, opt := range q.Options {
		mark := "▫️"
		switch {
		case i == fb.CorrectIndex:
			mark = "✅"
		case i == fb.Selected:
			mark = "❌"
		}
		fmt.Fprintf(&b, "\n%s %s %s", mark, optionLabel(i), html.EscapeString(opt))
	}

	b.WriteString("\n\n")
	if fb.Correct {
		b.WriteString("✅ " + bold(h.tr.T(lang, "correct", nil)))
	} else {
		b.WriteString("❌ " + bold(h.tr.T(lang, "wrong", nil)))
	}
	if fb.Streak > 0 {
		fmt.Fprintf(&b, "  🔥 %s: %d", html.EscapeString(h.tr.T(lang, "streak", nil)), fb.Streak)
	}

	b.WriteString("\n\n💡 " + bold(h.tr.T(lang, "explanation", nil)) + "\n")
	b.WriteString(html.EscapeString(fb.Explanation))

	return b.String()
}

// formatResults renders the end-of-game statistics.
func (h *Handler) formatResults(res *service.Results) string {
	lang := res.Language
	s := res.Summary
	var b strings.Builder

	b.WriteString("🏆 " + bold(h.tr.T(lang, "statistics", nil)) + "\n")
	fmt.Fprintf(&b, "[%s]\n\n", buildProgressBar(s.Correct, s.Total, 10))

	line := func(id string, value any) {
		fmt.Fprintf(&b, "%s: <b>%v</b>\n", html.EscapeString(h.tr.T(lang, id, nil)), value)
	}
	line("total_questions", s.Total)
	line("correct_ans", s.Correct)
	line("wrong_ans", s.Wrong)
	line("accuracy", fmt.Sprintf("%.1f%%", s.Accuracy))
	line("best_streak", res.BestStreak)

	if len(s.Categories) > 0 {
		b.WriteString("\n" + bold(h.tr.T(lang, "category", nil)) + "\n")
		for _, c := range s.Categories {
			fmt.Fprintf(&b, "• %s: %.1f%% (%d/%d)\n", html.EscapeString(c.Category), c.Accuracy, c.Correct, c.Total)
		}
	}

	if len(s.Trend) > 0 {
		b.WriteString("\n" + bold(h.tr.T(lang, "performance", nil)) + "\n")
		points := make([]string, 0, len(s.Trend))
		for _, p := range s.Trend {
			points = append(points, fmt.Sprintf("%.0f%%", p))
		}
		b.WriteString(strings.Join(points, " → "))
		b.WriteString("\n")
	}

	if len(res.History) > 0 {
		b.WriteString("\n" + bold(h.tr.T(lang, "breakdown", nil)) + "\n")
		for i, rec := range res.History {
			mark := "✅"
			if !rec.Correct {
				mark = "❌"
			}
			fmt.Fprintf(&b, "%d. %s %s\n", i+1, mark, html.EscapeString(rec.Category))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

var resourceIcons = map[entities.ResourceKind]string{
	entities.ResourceYouTube: "🎬",
	entities.ResourceWebsite: "🌐",
}

// formatResources renders one message per resource kind, in kind order.
func (h *Handler) formatResources(lang entities.Language, res []entities.Resource) []string {
	var out []string
	for _, kind := range entities.ResourceKinds() {
		var b strings.Builder
		for _, r := range res {
			if r.Kind != kind {
				continue
			}
			if b.Len() == 0 {
				b.WriteString(bold(h.tr.T(lang, "resources_"+string(kind), nil)) + "\n")
			}
			fmt.Fprintf(&b, "\n%s <a href=\"%s\">%s</a>\n%s\n",
				resourceIcons[kind], html.EscapeString(r.URL), html.EscapeString(r.Name), html.EscapeString(r.Description))
		}
		if b.Len() > 0 {
			out = append(out, strings.TrimRight(b.String(), "\n"))
		}
	}
	return out
}
