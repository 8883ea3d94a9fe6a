package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionLanguage   = "lang"
	actionQuiz       = "quiz"
	actionDifficulty = "diff"
	actionLength     = "len"
	actionAnswer     = "ans"
	actionNext       = "next"
	actionRestart    = "restart"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "" if it is missing.
func (cd callbackData) param(i int) string {
	if i < len(cd.Params) {
		return cd.Params[i]
	}
	return ""
}

// intParam parses the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	return n, err == nil
}

func buildLanguageCallback(lang entities.Language) string {
	return callbackData{Action: actionLanguage, Params: []string{string(lang)}}.encode()
}

func buildQuizCallback() string {
	return actionQuiz
}

func buildDifficultyCallback(diff entities.Difficulty) string {
	return callbackData{Action: actionDifficulty, Params: []string{string(diff)}}.encode()
}

func buildLengthCallback(diff entities.Difficulty, count int) string {
	return callbackData{
		Action: actionLength,
		Params: []string{string(diff), strconv.Itoa(count)},
	}.encode()
}

// buildAnswerCallback carries the question index so presses on an old
// question's keyboard can be told apart from the current one.
func buildAnswerCallback(questionIndex, option int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(questionIndex), strconv.Itoa(option)},
	}.encode()
}

func buildNextCallback(questionIndex int) string {
	return callbackData{Action: actionNext, Params: []string{strconv.Itoa(questionIndex)}}.encode()
}

func buildRestartCallback() string {
	return actionRestart
}
