package models

import "time"

// SummaryListing holds the fields extracted from one listing card on a
// search-results page, before normalization. Text fields keep whatever the
// page gave us; empty string means the element was missing.
type SummaryListing struct {
	Page       int
	Title      string
	Price      string
	Location   string
	Rooms      string
	AreaText   string
	URL        string
	ScrapeDate string // YYYY-MM-DD
}

// DetailFields holds the raw secondary fields scraped from a listing's own
// page. Each field is either the extracted text or the "N/A" sentinel —
// never empty.
type DetailFields struct {
	Bathrooms            string
	ConstructionYear     string
	EnergeticCertificate string
}

// NotAvailable is the sentinel used by the detail extractor for fields it
// could not locate. Normalization turns it into NULL before storage.
const NotAvailable = "N/A"

// Advertising is one row of the advertisings table. Optional columns are
// pointer-typed; nil maps to SQL NULL. The three detail fields stay nil until
// the backfill pass succeeds for the record.
type Advertising struct {
	ID                   int64     `json:"id"`
	Page                 int       `json:"page"`
	URL                  string    `json:"url"`
	Title                string    `json:"title"`
	Price                string    `json:"price"`
	Location             *string   `json:"location"`
	Rooms                *string   `json:"rooms"`
	Area                 *float64  `json:"area"`
	Bathrooms            *int      `json:"bathrooms"`
	ConstructionYear     *int      `json:"construction_year"`
	EnergeticCertificate *string   `json:"energetic_certificate"`
	DateScraped          time.Time `json:"date_scraped"`
}

// Report holds the aggregates computed over the collected dataset.
type Report struct {
	TotalListings       int
	DetailComplete      int
	DetailPending       int
	WithArea            int
	AvgArea             float64
	MinArea             float64
	MaxArea             float64
	ListingsByLocation  map[string]int
	ListingsByScrapeDay map[string]int
}
