package acquire

import (
	"iter"
	"strings"

	"github.com/jgivc/epgfetch/internal/entity"
)

// Pattern placeholders. Substituted into every template in template
// order; templates that produce the same filename are tried twice,
// acquisition short-circuits anyway.
const (
	placeholderSlug      = "{slug}"
	placeholderSlugLower = "{slug_lower}"
	placeholderName      = "{name}"
	placeholderNameLower = "{name_lower}"
)

// Candidates yields the ordered candidate URLs for one (country, source)
// pair. The sequence is lazy, finite and restartable: one candidate per
// pattern template, in template order.
func Candidates(country entity.Country, src entity.Source) iter.Seq[entity.Candidate] {
	repl := strings.NewReplacer(
		placeholderSlug, country.Slug,
		placeholderSlugLower, strings.ToLower(country.Slug),
		placeholderName, country.DisplayName,
		placeholderNameLower, strings.ToLower(country.DisplayName),
	)

	return func(yield func(entity.Candidate) bool) {
		for _, pattern := range src.Patterns {
			filename := repl.Replace(pattern)
			cand := entity.Candidate{
				Source:   src.Name,
				Filename: filename,
				URL:      src.FileURL(country.Slug, filename),
			}

			if !yield(cand) {
				return
			}
		}
	}
}
