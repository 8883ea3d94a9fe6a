package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
)

var ErrResourcesNotFound = errors.New("no learning resources for language")

//go:embed data/resources.json
var resourcesJSON []byte

// ResourceRepository serves the static directory of learning resources.
type ResourceRepository struct {
	byLang map[entities.Language][]entities.Resource
}

// NewResourceRepository loads the bundled resource directory.
func NewResourceRepository() (*ResourceRepository, error) {
	return NewResourceRepositoryFrom(resourcesJSON)
}

// NewResourceRepositoryFrom parses a resource directory and requires every
// language to list at least one resource.
func NewResourceRepositoryFrom(data []byte) (*ResourceRepository, error) {
	var wrapper struct {
		Resources map[string]map[string][]struct {
			Name        string `json:"name"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"resources"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resources JSON: %w", err)
	}

	r := &ResourceRepository{byLang: make(map[entities.Language][]entities.Resource)}
	for rawLang, kinds := range wrapper.Resources {
		lang, err := entities.ParseLanguage(rawLang)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", rawLang, err)
		}

		for _, kind := range entities.ResourceKinds() {
			for _, item := range kinds[string(kind)] {
				res := entities.Resource{
					Name:        item.Name,
					URL:         item.URL,
					Description: item.Description,
					Kind:        kind,
					Language:    lang,
				}
				if err := res.Validate(); err != nil {
					return nil, err
				}
				r.byLang[lang] = append(r.byLang[lang], res)
			}
		}
		for rawKind := range kinds {
			if !entities.ResourceKind(rawKind).Valid() {
				return nil, fmt.Errorf("%w: unknown kind %q", entities.ErrInvalidResource, rawKind)
			}
		}
	}

	for _, lang := range entities.Languages() {
		if len(r.byLang[lang]) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrResourcesNotFound, lang)
		}
	}

	return r, nil
}

// GetResources returns the resources for lang, channels first.
func (r *ResourceRepository) GetResources(_ context.Context, lang entities.Language) ([]entities.Resource, error) {
	if !lang.Valid() {
		return nil, entities.ErrInvalidSelector
	}
	res := r.byLang[lang]
	if len(res) == 0 {
		return nil, ErrResourcesNotFound
	}
	return append([]entities.Resource(nil), res...), nil
}
