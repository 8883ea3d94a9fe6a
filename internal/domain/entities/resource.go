package entities

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalidResource is returned when a learning resource record is malformed.
var ErrInvalidResource = errors.New("invalid learning resource")

// ResourceKind groups learning resources in the directory.
type ResourceKind string

const (
	ResourceYouTube ResourceKind = "youtube"
	ResourceWebsite ResourceKind = "website"
)

// ResourceKinds returns all kinds in display order.
func ResourceKinds() []ResourceKind {
	return []ResourceKind{ResourceYouTube, ResourceWebsite}
}

func (k ResourceKind) Valid() bool {
	return k == ResourceYouTube || k == ResourceWebsite
}

// Resource is a free channel or website recommended for further study.
type Resource struct {
	Name        string       `json:"name"`
	URL         string       `json:"url"`
	Description string       `json:"description"`
	Kind        ResourceKind `json:"kind"`
	Language    Language     `json:"language"`
}

// Validate checks that the resource has a name and an absolute http(s) link.
func (r Resource) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidResource)
	}
	u, err := url.Parse(r.URL)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return fmt.Errorf("%w: %q has bad url %q", ErrInvalidResource, r.Name, r.URL)
	}
	if !r.Kind.Valid() || !r.Language.Valid() {
		return fmt.Errorf("%w: %q has unknown kind or language", ErrInvalidResource, r.Name)
	}
	return nil
}
