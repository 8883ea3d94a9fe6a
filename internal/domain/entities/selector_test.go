package entities

import (
	"errors"
	"testing"
)

func TestParseSelectors(t *testing.T) {
	tests := []struct {
		name    string
		lang    string
		diff    string
		wantErr bool
	}{
		{name: "english easy", lang: "en", diff: "easy"},
		{name: "indonesian hard mixed case", lang: " ID ", diff: "Hard"},
		{name: "unknown language", lang: "fr", diff: "easy", wantErr: true},
		{name: "unknown difficulty", lang: "en", diff: "expert", wantErr: true},
		{name: "empty", lang: "", diff: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, langErr := ParseLanguage(tc.lang)
			_, diffErr := ParseDifficulty(tc.diff)
			err := errors.Join(langErr, diffErr)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidSelector) {
					t.Fatalf("err = %v, want %v", err, ErrInvalidSelector)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestQuestionValidate(t *testing.T) {
	base := Question{
		Text:         "What is inflation?",
		Options:      []string{"Rising prices", "Falling prices"},
		CorrectIndex: 0,
		Difficulty:   DifficultyEasy,
		Language:     LanguageEnglish,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	broken := base.Clone()
	broken.CorrectIndex = 2
	if err := broken.Validate(); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("err = %v, want %v", err, ErrInvalidQuestion)
	}

	clone := base.Clone()
	clone.Options[0] = "changed"
	if base.Options[0] != "Rising prices" {
		t.Fatal("clone shares options with original")
	}
	if base.CorrectAnswer() != "Rising prices" {
		t.Fatalf("correct answer = %q", base.CorrectAnswer())
	}
}
