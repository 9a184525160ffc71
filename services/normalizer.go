package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BillDFrank/Predict-apartment-price-Project/models"
	"github.com/BillDFrank/Predict-apartment-price-Project/utils"
)

// digitRunRegexp captures the first run of digits anywhere in a string.
var digitRunRegexp = regexp.MustCompile(`\d+`)

// Normalizer turns raw scraped values into typed, nullable record fields.
// Parse failures degrade to nil (NULL), never to sentinel strings.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Record converts a parsed listing card into an Advertising row ready for
// insertion. The three detail fields stay nil; they belong to the backfill
// pass.
func (n *Normalizer) Record(s models.SummaryListing) *models.Advertising {
	date, err := time.Parse("2006-01-02", s.ScrapeDate)
	if err != nil {
		n.logger.Warn("[normalizer] Bad scrape date %q, using today: %v", s.ScrapeDate, err)
		date = time.Now()
	}

	return &models.Advertising{
		Page:        s.Page,
		URL:         s.URL,
		Title:       strings.TrimSpace(s.Title),
		Price:       strings.TrimSpace(s.Price),
		Location:    optionalText(s.Location),
		Rooms:       optionalText(s.Rooms),
		Area:        n.parseArea(s.AreaText),
		DateScraped: date,
	}
}

// parseArea converts area text like "120 m²" to its numeric value. Empty or
// unparseable text yields nil; the failure is logged, not fatal.
func (n *Normalizer) parseArea(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	fields := strings.Fields(raw)
	val, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		n.logger.Warn("[normalizer] Could not convert area value %q: %v", raw, err)
		return nil
	}
	return &val
}

// parseCount extracts an integer from detail text like "2 banheiros": a
// direct conversion first, otherwise the first run of digits found anywhere.
// Empty text and the "N/A" sentinel yield nil.
func parseCount(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, models.NotAvailable) {
		return nil
	}

	if val, err := strconv.Atoi(raw); err == nil {
		return &val
	}

	match := digitRunRegexp.FindString(raw)
	if match == "" {
		return nil
	}
	val, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &val
}

// normalizeCertificate maps the sentinel to nil and truncates the stored
// value to at most 10 characters, matching the column width.
func normalizeCertificate(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, models.NotAvailable) {
		return nil
	}

	if runes := []rune(raw); len(runes) > 10 {
		raw = string(runes[:10])
	}
	return &raw
}

// optionalText maps missing values to nil rather than a placeholder string.
func optionalText(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}
