package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportThenLoadXLSX(t *testing.T) {
	repo, err := NewQuestionRepository(corpusPath)
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	all, _ := repo.GetAll(context.Background())

	path := filepath.Join(t.TempDir(), "questions.xlsx")
	if err := ExportQuestionsXLSX(path, all); err != nil {
		t.Fatalf("export: %v", err)
	}

	loaded, err := LoadQuestionsXLSX(path, "")
	if err != nil {
		t.Fatalf("load xlsx: %v", err)
	}
	if len(loaded) != len(all) {
		t.Fatalf("loaded %d questions, want %d", len(loaded), len(all))
	}
	if err := CheckCoverage(loaded); err != nil {
		t.Fatalf("coverage: %v", err)
	}

	for i := range all {
		if loaded[i].ID != all[i].ID || loaded[i].CorrectAnswer() != all[i].CorrectAnswer() {
			t.Fatalf("question %d: got %s/%q, want %s/%q",
				i, loaded[i].ID, loaded[i].CorrectAnswer(), all[i].ID, all[i].CorrectAnswer())
		}
	}
}

func TestLoadQuestionsXLSXMissingColumn(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]any{"language", "difficulty", "question", "option_1", "option_2", "correct"})
	_ = f.SetSheetRow(sheet, "A2", &[]any{"en", "easy", "Q", "a", "b", 1})

	path := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	if _, err := LoadQuestionsXLSX(path, ""); !errors.Is(err, ErrInvalidSheet) {
		t.Fatalf("err = %v, want %v", err, ErrInvalidSheet)
	}
}
