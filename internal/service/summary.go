package service

import (
	"math"
	"sort"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
)

// CategoryResult is the accuracy of one category within a game.
type CategoryResult struct {
	Category string  `json:"category"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"` // percent, one decimal
}

// Summary is the end-of-game breakdown of an answer history.
type Summary struct {
	Total            int                `json:"total"`
	Correct          int                `json:"correct"`
	Wrong            int                `json:"wrong"`
	Accuracy         float64            `json:"accuracy"`          // percent, one decimal
	CategoryAccuracy map[string]float64 `json:"category_accuracy"` // percent per category, one decimal
	Categories       []CategoryResult   `json:"categories"`        // sorted by category name
	Trend            []float64          `json:"trend"`             // cumulative accuracy after each answer, percent
}

// Summarize reduces an answer history into per-category accuracy and a
// cumulative accuracy trend. The history is not modified.
func Summarize(history []entities.AnswerRecord) (*Summary, error) {
	if len(history) == 0 {
		return nil, entities.ErrEmptyHistory
	}

	s := &Summary{
		Total:            len(history),
		CategoryAccuracy: make(map[string]float64),
		Trend:            make([]float64, 0, len(history)),
	}

	byCategory := make(map[string]*CategoryResult)
	for i, rec := range history {
		cr, ok := byCategory[rec.Category]
		if !ok {
			cr = &CategoryResult{Category: rec.Category}
			byCategory[rec.Category] = cr
		}
		cr.Total++

		if rec.Correct {
			s.Correct++
			cr.Correct++
		}

		s.Trend = append(s.Trend, percent(s.Correct, i+1))
	}

	s.Wrong = s.Total - s.Correct
	s.Accuracy = round1(percent(s.Correct, s.Total))

	for name, cr := range byCategory {
		cr.Accuracy = round1(percent(cr.Correct, cr.Total))
		s.CategoryAccuracy[name] = cr.Accuracy
		s.Categories = append(s.Categories, *cr)
	}

	sort.Slice(s.Categories, func(i, j int) bool {
		return s.Categories[i].Category < s.Categories[j].Category
	})

	return s, nil
}

func percent(part, total int) float64 {
	return float64(part) / float64(total) * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
