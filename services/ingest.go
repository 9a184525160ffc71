package services

import (
	"fmt"
	"time"

	"github.com/BillDFrank/Predict-apartment-price-Project/models"
	"github.com/BillDFrank/Predict-apartment-price-Project/storage"
	"github.com/BillDFrank/Predict-apartment-price-Project/utils"
)

// PageFetcher retrieves one search-results page worth of listing summaries.
// An empty result signals end-of-data (or an unrecoverable page failure) and
// stops the ingestion loop.
type PageFetcher interface {
	FetchSummaryPage(page int) ([]models.SummaryListing, error)
}

// Ingester drives the summary pass: it resumes at the right page for the
// current day, walks pages in ascending order and persists each page as one
// batch of inserts.
type Ingester struct {
	fetcher    PageFetcher
	store      storage.Gateway
	normalizer *Normalizer
	logger     *utils.Logger
	pacer      *utils.Pacer
	seen       *utils.URLSet
}

// NewIngester creates an Ingester. The pacer spaces out page requests.
func NewIngester(fetcher PageFetcher, store storage.Gateway, logger *utils.Logger, pacer *utils.Pacer) *Ingester {
	return &Ingester{
		fetcher:    fetcher,
		store:      store,
		normalizer: NewNormalizer(logger),
		logger:     logger,
		pacer:      pacer,
		seen:       utils.NewURLSet(),
	}
}

// ResumePage returns the page to start from for the given day: the highest
// page already scraped that day plus one, or 1 on a fresh day. A run killed
// mid-page may still re-scrape that one page; resumption is page-grained.
func (in *Ingester) ResumePage(today string) (int, error) {
	maxPage, err := in.store.MaxPageForDate(today)
	if err != nil {
		return 0, fmt.Errorf("ingest: resume lookup: %w", err)
	}
	if maxPage == 0 {
		return 1, nil
	}
	return maxPage + 1, nil
}

// Run scrapes pages [start, numPages] where start comes from ResumePage, or
// from forceStartPage when it is > 0. The loop stops entirely at the first
// empty or failed page.
func (in *Ingester) Run(numPages, forceStartPage int) error {
	today := time.Now().Format("2006-01-02")

	start := forceStartPage
	if start <= 0 {
		var err error
		start, err = in.ResumePage(today)
		if err != nil {
			return err
		}
	}

	if start > numPages {
		in.logger.Info("[ingest] Already scraped up to page %d for today (num pages %d) — no new pages to scrape",
			start-1, numPages)
		return nil
	}

	in.logger.Info("[ingest] Scraping pages %d to %d...", start, numPages)

	for page := start; page <= numPages; page++ {
		listings, err := in.fetcher.FetchSummaryPage(page)
		if err != nil {
			in.logger.Error("[ingest] Page %d fetch failed: %v — stopping", page, err)
			break
		}
		if len(listings) == 0 {
			in.logger.Info("[ingest] No data found on page %d — stopping", page)
			break
		}

		batch := make([]*models.Advertising, 0, len(listings))
		for _, l := range listings {
			if l.URL != "" && !in.seen.Add(l.URL) {
				in.logger.Debug("[ingest] Duplicate URL within run skipped: %s", l.URL)
				continue
			}
			batch = append(batch, in.normalizer.Record(l))
		}

		inserted := in.store.InsertListings(batch)
		in.logger.Info("[ingest] Page %d saved — %d rows inserted", page, inserted)

		if page < numPages {
			in.pacer.Sleep()
		}
	}

	in.logger.Info("[ingest] Basic scraping completed")
	return nil
}
