package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/storage"
)

var ErrGameNotFound = errors.New("game not found")

// QuizConfig bounds the number of questions per game.
type QuizConfig struct {
	DefaultQuestions int
	MinQuestions     int
	MaxQuestions     int
}

// DefaultQuizConfig returns the stock game length settings.
func DefaultQuizConfig() QuizConfig {
	return QuizConfig{
		DefaultQuestions: 8,
		MinQuestions:     5,
		MaxQuestions:     30,
	}
}

// QuestionView is a question as shown to a player, without the answer key.
type QuestionView struct {
	ID         string              `json:"id"`
	Number     int                 `json:"number"`
	Total      int                 `json:"total"`
	Text       string              `json:"text"`
	Options    []string            `json:"options"`
	Category   string              `json:"category"`
	Difficulty entities.Difficulty `json:"difficulty"`
}

// AnswerFeedback is what the player learns after answering.
type AnswerFeedback struct {
	Correct       bool   `json:"correct"`
	Selected      int    `json:"selected"`
	CorrectIndex  int    `json:"correct_index"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	Streak        int    `json:"streak"`
	BestStreak    int    `json:"best_streak"`
	Last          bool   `json:"last"`
}

// GameView is a read-only snapshot of a player's game.
type GameView struct {
	State      entities.GameState  `json:"state"`
	Language   entities.Language   `json:"language"`
	Difficulty entities.Difficulty `json:"difficulty"`
	Index      int                 `json:"index"`
	Total      int                 `json:"total"`
	Correct    int                 `json:"correct"`
	Wrong      int                 `json:"wrong"`
	Streak     int                 `json:"streak"`
	BestStreak int                 `json:"best_streak"`
	Accuracy   float64             `json:"accuracy"` // percent of answered, one decimal
	Question   *QuestionView       `json:"question,omitempty"`
	Feedback   *AnswerFeedback     `json:"feedback,omitempty"`
}

// Results is the end-of-game report.
type Results struct {
	Language   entities.Language       `json:"language"`
	Difficulty entities.Difficulty     `json:"difficulty"`
	Finished   bool                    `json:"finished"`
	BestStreak int                     `json:"best_streak"`
	Summary    *Summary                `json:"summary"`
	History    []entities.AnswerRecord `json:"history"`
}

// QuizService runs games for many players. Each player's game is locked for
// the duration of a call, so hosts may call it from concurrent handlers.
type QuizService struct {
	dealer    *Dealer
	store     GameStore
	explainer Explainer
	cfg       QuizConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewQuizService(
	dealer *Dealer,
	store GameStore,
	explainer Explainer,
	cfg QuizConfig,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		dealer:    dealer,
		store:     store,
		explainer: explainer,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Config returns the game length settings.
func (s *QuizService) Config() QuizConfig {
	return s.cfg
}

// StartGame deals a new session for the player. A count of 0 selects the
// default length. Starting while a game is in progress fails with
// entities.ErrInvalidStateTransition; call Restart first.
func (s *QuizService) StartGame(ctx context.Context, playerID string, lang entities.Language, diff entities.Difficulty, count int) (*GameView, error) {
	if count == 0 {
		count = s.cfg.DefaultQuestions
	}
	if count < s.cfg.MinQuestions || count > s.cfg.MaxQuestions {
		return nil, fmt.Errorf("%w: got %d, want %d..%d", ErrInvalidCount, count, s.cfg.MinQuestions, s.cfg.MaxQuestions)
	}

	session, err := s.dealer.Deal(ctx, lang, diff, count)
	if err != nil {
		return nil, err
	}

	entry := s.acquire(playerID)
	defer entry.Mu.Unlock()

	if err := entry.Game.Start(session); err != nil {
		return nil, err
	}
	entry.Language = lang
	entry.Difficulty = diff
	entry.Count = count
	entry.Touch(s.now())

	s.logger.Info("game started",
		zap.String("player_id", playerID),
		zap.String("language", string(lang)),
		zap.String("difficulty", string(diff)),
		zap.Int("questions", len(session)),
	)

	return s.view(entry), nil
}

// Snapshot returns the player's game as it stands.
func (s *QuizService) Snapshot(playerID string) (*GameView, error) {
	entry, err := s.lock(playerID)
	if err != nil {
		return nil, err
	}
	defer entry.Mu.Unlock()

	return s.view(entry), nil
}

// CurrentQuestion returns the question awaiting an answer.
// The second result is false when the game has no question left.
func (s *QuizService) CurrentQuestion(playerID string) (*QuestionView, bool, error) {
	entry, err := s.lock(playerID)
	if err != nil {
		return nil, false, err
	}
	defer entry.Mu.Unlock()

	q, ok := entry.Game.CurrentQuestion()
	if !ok {
		return nil, false, nil
	}
	return questionView(q, entry.Game.Index(), entry.Game.Total()), true, nil
}

// SubmitAnswer records the player's option for the current question.
func (s *QuizService) SubmitAnswer(playerID string, optionIndex int) (*AnswerFeedback, error) {
	entry, err := s.lock(playerID)
	if err != nil {
		return nil, err
	}
	defer entry.Mu.Unlock()

	g := entry.Game
	q, ok := g.CurrentQuestion()
	if !ok {
		return nil, entities.ErrInvalidStateTransition
	}

	rec, err := g.SubmitAnswer(optionIndex)
	if err != nil {
		return nil, err
	}
	entry.Touch(s.now())

	s.logger.Debug("answer submitted",
		zap.String("player_id", playerID),
		zap.String("question_id", q.ID),
		zap.Bool("correct", rec.Correct),
	)

	return s.feedback(entry, q, rec), nil
}

// Advance moves to the next question, finishing the game after the last one.
func (s *QuizService) Advance(playerID string) (*GameView, error) {
	entry, err := s.lock(playerID)
	if err != nil {
		return nil, err
	}
	defer entry.Mu.Unlock()

	if err := entry.Game.Advance(); err != nil {
		return nil, err
	}
	entry.Touch(s.now())

	if entry.Game.State() == entities.GameFinished {
		s.logger.Info("game finished",
			zap.String("player_id", playerID),
			zap.Int("correct", entry.Game.CorrectAnswers()),
			zap.Int("total", entry.Game.Total()),
		)
	}

	return s.view(entry), nil
}

// Restart drops the player's game, keeping the chosen language.
func (s *QuizService) Restart(playerID string) {
	entry, err := s.lock(playerID)
	if err != nil {
		return
	}
	defer entry.Mu.Unlock()

	entry.Game.Reset()
	entry.Touch(s.now())

	s.logger.Info("game reset", zap.String("player_id", playerID))
}

// Results summarizes the answers given so far.
func (s *QuizService) Results(playerID string) (*Results, error) {
	entry, err := s.lock(playerID)
	if err != nil {
		return nil, err
	}
	defer entry.Mu.Unlock()

	g := entry.Game
	history := g.History()

	summary, err := Summarize(history)
	if err != nil {
		return nil, err
	}

	return &Results{
		Language:   entry.Language,
		Difficulty: entry.Difficulty,
		Finished:   g.State() == entities.GameFinished,
		BestStreak: g.BestStreak(),
		Summary:    summary,
		History:    history,
	}, nil
}

// Language returns the player's language, English for unknown players.
func (s *QuizService) Language(playerID string) entities.Language {
	entry, err := s.lock(playerID)
	if err != nil {
		return entities.LanguageEnglish
	}
	defer entry.Mu.Unlock()
	return entry.Language
}

// SetLanguage stores the player's language for the next game.
func (s *QuizService) SetLanguage(playerID string, lang entities.Language) error {
	if !lang.Valid() {
		return entities.ErrInvalidSelector
	}

	entry := s.acquire(playerID)
	defer entry.Mu.Unlock()

	entry.Language = lang
	entry.Touch(s.now())
	return nil
}

// lock returns the player's entry with its mutex held.
// An entry evicted between lookup and locking counts as missing.
func (s *QuizService) lock(playerID string) (*storage.GameEntry, error) {
	for {
		entry, ok := s.store.Get(playerID)
		if !ok {
			return nil, ErrGameNotFound
		}
		entry.Mu.Lock()
		if !entry.Removed() {
			return entry, nil
		}
		entry.Mu.Unlock()
	}
}

// acquire is lock for callers that create the entry on first use.
func (s *QuizService) acquire(playerID string) *storage.GameEntry {
	for {
		entry := s.store.GetOrCreate(playerID)
		entry.Mu.Lock()
		if !entry.Removed() {
			return entry
		}
		entry.Mu.Unlock()
	}
}

// view builds a snapshot. entry.Mu must be held.
func (s *QuizService) view(entry *storage.GameEntry) *GameView {
	g := entry.Game
	v := &GameView{
		State:      g.State(),
		Language:   entry.Language,
		Difficulty: entry.Difficulty,
		Index:      g.Index(),
		Total:      g.Total(),
		Correct:    g.CorrectAnswers(),
		Wrong:      g.WrongAnswers(),
		Streak:     g.Streak(),
		BestStreak: g.BestStreak(),
		Accuracy:   round1(g.Accuracy()),
	}

	q, ok := g.CurrentQuestion()
	if !ok {
		return v
	}
	v.Question = questionView(q, g.Index(), g.Total())

	if g.Answered() {
		history := g.History()
		v.Feedback = s.feedback(entry, q, history[len(history)-1])
	}

	return v
}

func (s *QuizService) feedback(entry *storage.GameEntry, q entities.Question, rec entities.AnswerRecord) *AnswerFeedback {
	g := entry.Game
	return &AnswerFeedback{
		Correct:       rec.Correct,
		Selected:      rec.Selected,
		CorrectIndex:  rec.CorrectIndex,
		CorrectAnswer: q.CorrectAnswer(),
		Explanation:   s.explainer.Explanation(entry.Language, q),
		Streak:        g.Streak(),
		BestStreak:    g.BestStreak(),
		Last:          g.Index() == g.Total()-1,
	}
}

func questionView(q entities.Question, index, total int) *QuestionView {
	return &QuestionView{
		ID:         q.ID,
		Number:     index + 1,
		Total:      total,
		Text:       q.Text,
		Options:    append([]string(nil), q.Options...),
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}
