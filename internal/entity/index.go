package entity

const (
	// SentinelUnknown fills document-level attributes absent from a guide.
	SentinelUnknown = "Unknown"
	// SentinelNA marks freshness fields when no programme start could be parsed.
	SentinelNA = "N/A"
)

// IndexEntry summarizes one persisted guide file. Recomputed fully on
// each index build, never merged with a previous index.
type IndexEntry struct {
	Country              string  `json:"country"`
	FilePath             string  `json:"file_path"`
	SizeMB               float64 `json:"size_mb"`
	LastUpdated          string  `json:"last_updated"`
	SourceLabel          string  `json:"source_label"`
	Channels             int     `json:"channels"`
	Programmes           int     `json:"programmes"`
	GeneratedDate        string  `json:"generated_date"`
	LatestProgrammeStart string  `json:"latest_programme_start"`
	AgeDays              *int    `json:"age_days"`
	GeneratorLabel       string  `json:"generator_label"`

	// Slug is the directory name the entry was scanned from; it keys the
	// index mapping and is not repeated inside the entry itself.
	Slug string `json:"-"`
}
