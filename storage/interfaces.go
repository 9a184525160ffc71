package storage

import "github.com/BillDFrank/Predict-apartment-price-Project/models"

// PendingAd identifies a record still awaiting its detail backfill.
type PendingAd struct {
	ID  int64
	URL string
}

// Gateway is the typed access layer over the advertisings table. The SQL
// dialect and parameter style are an implementation detail behind it.
type Gateway interface {
	// MaxPageForDate returns the highest page already scraped on the given
	// day (YYYY-MM-DD), or 0 if the day has no records.
	MaxPageForDate(date string) (int, error)

	// InsertListings persists one page of normalized records, one INSERT per
	// record. Per-row failures are logged and skipped; the inserted count is
	// returned.
	InsertListings(ads []*models.Advertising) int

	// UpdateDetails writes the three backfill fields in a single update keyed
	// by record id. nil values map to NULL.
	UpdateDetails(id int64, bathrooms, constructionYear *int, certificate *string) error

	// SelectPendingDetails returns (id, url) for every record whose three
	// detail fields are all NULL, ordered by id ("top" ascending, otherwise
	// descending), optionally restricted to one scrape date.
	SelectPendingDetails(order, dateFilter string) ([]PendingAd, error)

	// FetchAll returns stored records, optionally restricted to one scrape
	// date. This is the bulk export/report path.
	FetchAll(dateFilter string) ([]*models.Advertising, error)

	Close() error
}
