package domain

import "time"

// SourceID identifies one of the monitored agency pages
type SourceID string

// known sources, the set is closed
const (
	AgencyA SourceID = "AGENCY_A" // prosecutor's office (genproc)
	AgencyB SourceID = "AGENCY_B" // investigative committee (sledcom), items carry an image
	AgencyC SourceID = "AGENCY_C" // interior ministry (mvd)
)

// AllSources returns known sources in processing order
func AllSources() []SourceID {
	return []SourceID{AgencyA, AgencyB, AgencyC}
}

// Valid reports whether id is one of the known sources
func (id SourceID) Valid() bool {
	switch id {
	case AgencyA, AgencyB, AgencyC:
		return true
	}
	return false
}

func (id SourceID) String() string { return string(id) }

// NewsItem is the latest item extracted from a source page.
// Title is the identity used for change detection, body and url changes alone are not detected.
type NewsItem struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	URL       string `json:"url"`
	ImagePath string `json:"image_path,omitempty"` // empty if the source has no image or download failed
}

// HasImage reports whether the item carries a saved image
func (n NewsItem) HasImage() bool { return n.ImagePath != "" }

// SourceRecord is the persisted last-notified state of a source
type SourceRecord struct {
	Source    SourceID  `json:"source"`
	LastTitle string    `json:"last_title"`
	UpdatedAt time.Time `json:"updated_at"`
}
