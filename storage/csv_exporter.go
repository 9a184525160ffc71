package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BillDFrank/Predict-apartment-price-Project/models"
)

// CSVExporter writes stored advertisings to a CSV file for offline analysis.
type CSVExporter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVExporter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVExporter(path string) (*CSVExporter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"id", "page", "url", "title", "price", "location", "rooms", "area",
		"bathrooms", "construction_year", "energetic_certificate", "date_scraped",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVExporter{file: f, writer: w}, nil
}

// Export appends all given records. NULL columns are written as empty cells.
func (c *CSVExporter) Export(ads []*models.Advertising) error {
	for _, ad := range ads {
		row := []string{
			strconv.FormatInt(ad.ID, 10),
			strconv.Itoa(ad.Page),
			ad.URL,
			ad.Title,
			ad.Price,
			optionalString(ad.Location),
			optionalString(ad.Rooms),
			optionalFloat(ad.Area),
			optionalInt(ad.Bathrooms),
			optionalInt(ad.ConstructionYear),
			optionalString(ad.EnergeticCertificate),
			ad.DateScraped.Format("2006-01-02"),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVExporter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func optionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
