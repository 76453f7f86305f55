package entity

import "strings"

const (
	// FolderStyleCapitalized uses the resolved slug verbatim as the
	// folder name, FolderStyleLower lower-cases it first.
	FolderStyleCapitalized = "capitalized"
	FolderStyleLower       = "lower"
)

// Source describes one upstream guide tree. Static configuration,
// process lifetime.
type Source struct {
	Name        string
	BaseURL     string
	ListingURL  string
	FolderStyle string
	Patterns    []string
}

// Folder returns the folder name the source uses for the given slug.
func (s Source) Folder(slug string) string {
	if s.FolderStyle == FolderStyleLower {
		return strings.ToLower(slug)
	}

	return slug
}

// FileURL builds the concrete URL for one candidate filename.
func (s Source) FileURL(slug, filename string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + s.Folder(slug) + "/" + filename
}

// Candidate is one concrete URL attempted during acquisition. Ephemeral,
// never persisted.
type Candidate struct {
	Source   string
	Filename string
	URL      string
}
