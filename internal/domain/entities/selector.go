package entities

import (
	"errors"
	"strings"
)

// ErrInvalidSelector is returned for an unknown language or difficulty.
var ErrInvalidSelector = errors.New("invalid language or difficulty")

// Language is a supported quiz language.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageIndonesian Language = "id"
)

// Difficulty is a question difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Languages returns all supported languages in display order.
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageIndonesian}
}

// Difficulties returns all difficulty tiers from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseLanguage converts a raw value into a Language.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", ErrInvalidSelector
	}
	return l, nil
}

// ParseDifficulty converts a raw value into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", ErrInvalidSelector
	}
	return d, nil
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageIndonesian:
		return true
	default:
		return false
	}
}

// Valid reports whether d is one of the known difficulty tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}
