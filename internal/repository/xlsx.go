package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
)

var ErrInvalidSheet = errors.New("invalid question sheet")

const defaultSheet = "Questions"

// Spreadsheet columns. Options are every column whose header starts with "option".
const (
	colLanguage   = "language"
	colDifficulty = "difficulty"
	colCategory   = "category"
	colQuestion   = "question"
	colCorrect    = "correct"
	colOptionPfx  = "option"
)

// LoadQuestionsXLSX reads a question corpus from a spreadsheet.
// The first row is a header; "correct" holds the 1-based number of the right option.
// An empty sheet name selects the first sheet of the workbook.
func LoadQuestionsXLSX(path, sheet string) ([]entities.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet %q has no data rows", ErrInvalidSheet, sheet)
	}

	cols := make(map[string]int)
	var optionCols []int
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if strings.HasPrefix(name, colOptionPfx) {
			optionCols = append(optionCols, i)
			continue
		}
		cols[name] = i
	}

	for _, required := range []string{colLanguage, colDifficulty, colCategory, colQuestion, colCorrect} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", ErrInvalidSheet, required)
		}
	}
	if len(optionCols) < 2 {
		return nil, fmt.Errorf("%w: need at least two option columns", ErrInvalidSheet)
	}

	cell := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	counters := make(map[tierKey]int)
	var questions []entities.Question

	// Skip header row and process each data row.
	for n, row := range rows[1:] {
		line := n + 2
		if cell(row, cols[colQuestion]) == "" {
			continue
		}

		lang, err := entities.ParseLanguage(cell(row, cols[colLanguage]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		diff, err := entities.ParseDifficulty(cell(row, cols[colDifficulty]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		var options []string
		for _, idx := range optionCols {
			if opt := cell(row, idx); opt != "" {
				options = append(options, opt)
			}
		}

		correct, err := strconv.Atoi(cell(row, cols[colCorrect]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: correct column: %v", ErrInvalidSheet, line, err)
		}

		key := tierKey{lang: lang, diff: diff}
		counters[key]++

		q := entities.Question{
			ID:           fmt.Sprintf("%s-%s-%d", lang, diff, counters[key]),
			Text:         cell(row, cols[colQuestion]),
			Options:      options,
			CorrectIndex: correct - 1,
			Category:     cell(row, cols[colCategory]),
			Difficulty:   diff,
			Language:     lang,
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		questions = append(questions, q)
	}

	return questions, nil
}

// ExportQuestionsXLSX writes questions in the layout LoadQuestionsXLSX reads.
func ExportQuestionsXLSX(path string, questions []entities.Question) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), defaultSheet); err != nil {
		return err
	}

	maxOptions := 0
	for _, q := range questions {
		maxOptions = max(maxOptions, len(q.Options))
	}

	header := []any{colLanguage, colDifficulty, colCategory, colQuestion}
	for i := 1; i <= maxOptions; i++ {
		header = append(header, fmt.Sprintf("%s_%d", colOptionPfx, i))
	}
	header = append(header, colCorrect)

	if err := f.SetSheetRow(defaultSheet, "A1", &header); err != nil {
		return err
	}

	for i, q := range questions {
		row := []any{string(q.Language), string(q.Difficulty), q.Category, q.Text}
		for j := 0; j < maxOptions; j++ {
			if j < len(q.Options) {
				row = append(row, q.Options[j])
			} else {
				row = append(row, "")
			}
		}
		row = append(row, q.CorrectIndex+1)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(defaultSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
