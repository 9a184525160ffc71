package services

import (
	"fmt"

	"github.com/BillDFrank/Predict-apartment-price-Project/models"
	"github.com/BillDFrank/Predict-apartment-price-Project/storage"
	"github.com/BillDFrank/Predict-apartment-price-Project/utils"
)

// DetailFetcher retrieves the secondary fields from a listing's own page.
type DetailFetcher interface {
	FetchDetail(url string) (models.DetailFields, error)
}

// Backfiller drives the detail pass: it selects records whose detail fields
// are still NULL, visits each listing page and fills the three fields with a
// single update per record. A record that fails stays a candidate for the
// next run.
type Backfiller struct {
	fetcher DetailFetcher
	store   storage.Gateway
	logger  *utils.Logger
	pacer   *utils.Pacer
}

// NewBackfiller creates a Backfiller. The pacer spaces out detail requests.
func NewBackfiller(fetcher DetailFetcher, store storage.Gateway, logger *utils.Logger, pacer *utils.Pacer) *Backfiller {
	return &Backfiller{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		pacer:   pacer,
	}
}

// Run processes all pending candidates in id order ("top" ascending,
// otherwise descending), optionally restricted to one scrape date.
func (b *Backfiller) Run(order, dateFilter string) error {
	pending, err := b.store.SelectPendingDetails(order, dateFilter)
	if err != nil {
		return fmt.Errorf("backfill: select pending: %w", err)
	}

	scope := "all dates"
	if dateFilter != "" {
		scope = dateFilter
	}
	b.logger.Info("[backfill] Found %d records needing detail extraction (order: %s, date: %s)",
		len(pending), order, scope)

	for _, rec := range pending {
		details, err := b.fetcher.FetchDetail(rec.URL)
		if err != nil {
			b.logger.Warn("[backfill] Failed to retrieve details for record %d: %v", rec.ID, err)
			continue
		}

		bathrooms := parseCount(details.Bathrooms)
		year := parseCount(details.ConstructionYear)
		cert := normalizeCertificate(details.EnergeticCertificate)

		if err := b.store.UpdateDetails(rec.ID, bathrooms, year, cert); err != nil {
			b.logger.Error("[backfill] Update failed for record %d: %v", rec.ID, err)
		} else {
			b.logger.Info("[backfill] Updated record %d: bathrooms=%s, year=%s, cert=%s",
				rec.ID, details.Bathrooms, details.ConstructionYear, details.EnergeticCertificate)
		}

		b.pacer.Sleep()
	}

	b.logger.Info("[backfill] Detail extraction completed")
	return nil
}
