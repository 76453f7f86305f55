// Package resolver maps human country names to the slugs upstream
// source trees use for their folder and file names.
package resolver

import (
	"strings"

	"github.com/jgivc/epgfetch/internal/entity"
)

// defaultOverrides covers countries whose upstream folder name diverges
// structurally from the display name. Everything else falls through to
// the default transform.
var defaultOverrides = map[string]string{
	"United Kingdom": "Unitedkingdom",
	"United States":  "Usa",
}

var slugReplacer = strings.NewReplacer(" ", "", ".", "")

type Resolver struct {
	overrides map[string]string
}

// New builds a resolver with the given override table. A nil table
// selects the built-in defaults.
func New(overrides map[string]string) *Resolver {
	if overrides == nil {
		overrides = defaultOverrides
	}

	return &Resolver{overrides: overrides}
}

// Resolve is pure and total: it never fails, unknown names fall through
// to the default transform (strip spaces and periods, case preserved).
func (r *Resolver) Resolve(displayName string) entity.Country {
	name := strings.TrimSpace(displayName)

	if slug, ok := r.overrides[name]; ok {
		return entity.Country{DisplayName: name, Slug: slug}
	}

	return entity.Country{DisplayName: name, Slug: slugReplacer.Replace(name)}
}
