package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/BillDFrank/Predict-apartment-price-Project/models"
	"github.com/BillDFrank/Predict-apartment-price-Project/utils"
)

// Postgres implements Gateway over database/sql with the lib/pq driver.
type Postgres struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgres opens a connection to PostgreSQL, verifies it with a retried
// ping, runs the schema migration and returns a ready-to-use gateway.
func NewPostgres(dsn string, logger *utils.Logger) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pg := &Postgres{db: db, logger: logger}
	if err := pg.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pg, nil
}

func (pg *Postgres) migrate() error {
	_, err := pg.db.Exec(`
		CREATE TABLE IF NOT EXISTS advertisings (
			id                    SERIAL PRIMARY KEY,
			page                  INTEGER      NOT NULL,
			url                   TEXT         NOT NULL,
			title                 TEXT,
			price                 TEXT,
			location              TEXT,
			rooms                 TEXT,
			area                  DOUBLE PRECISION,
			bathrooms             INTEGER,
			construction_year     INTEGER,
			energetic_certificate VARCHAR(10),
			date_scraped          DATE         NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_advertisings_date ON advertisings(date_scraped);
		CREATE INDEX IF NOT EXISTS idx_advertisings_pending ON advertisings(id)
			WHERE bathrooms IS NULL AND construction_year IS NULL AND energetic_certificate IS NULL;
	`)
	return err
}

// MaxPageForDate returns the highest page scraped on the given day, 0 if none.
func (pg *Postgres) MaxPageForDate(date string) (int, error) {
	var maxPage int
	err := pg.db.QueryRow(
		`SELECT COALESCE(MAX(page), 0) FROM advertisings WHERE date_scraped = $1`, date,
	).Scan(&maxPage)
	if err != nil {
		return 0, fmt.Errorf("postgres: max page for %s: %w", date, err)
	}
	return maxPage, nil
}

// InsertListings inserts one row per record with the three detail fields NULL.
// A failed row is logged and skipped; the rest of the batch still commits.
func (pg *Postgres) InsertListings(ads []*models.Advertising) int {
	inserted := 0
	for _, ad := range ads {
		_, err := pg.db.Exec(`
			INSERT INTO advertisings
				(page, url, title, price, location, rooms, area,
				 bathrooms, construction_year, energetic_certificate, date_scraped)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, NULL, NULL, $8)
		`, ad.Page, ad.URL, ad.Title, ad.Price, ad.Location, ad.Rooms, ad.Area, ad.DateScraped)
		if err != nil {
			pg.logger.Error("[postgres] Insert failed for %s: %v", ad.URL, err)
			continue
		}
		inserted++
	}
	return inserted
}

// UpdateDetails sets the three backfill fields in one update keyed by id.
func (pg *Postgres) UpdateDetails(id int64, bathrooms, constructionYear *int, certificate *string) error {
	_, err := pg.db.Exec(`
		UPDATE advertisings
		SET bathrooms = $1, construction_year = $2, energetic_certificate = $3
		WHERE id = $4
	`, bathrooms, constructionYear, certificate, id)
	if err != nil {
		return fmt.Errorf("postgres: update details for id %d: %w", id, err)
	}
	return nil
}

// SelectPendingDetails lists records whose three detail fields are all NULL.
// This predicate is the backfill's idempotence mechanism: an updated record
// can never be selected again.
func (pg *Postgres) SelectPendingDetails(order, dateFilter string) ([]PendingAd, error) {
	direction := "DESC"
	if order == "top" {
		direction = "ASC"
	}

	query := `
		SELECT id, url FROM advertisings
		WHERE bathrooms IS NULL AND construction_year IS NULL AND energetic_certificate IS NULL`
	args := []any{}
	if dateFilter != "" {
		query += " AND date_scraped = $1"
		args = append(args, dateFilter)
	}
	query += " ORDER BY id " + direction

	rows, err := pg.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: select pending details: %w", err)
	}
	defer rows.Close()

	var pending []PendingAd
	for rows.Next() {
		var p PendingAd
		if err := rows.Scan(&p.ID, &p.URL); err != nil {
			return nil, fmt.Errorf("postgres: scan pending row: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// FetchAll retrieves stored records, optionally restricted to one scrape date.
func (pg *Postgres) FetchAll(dateFilter string) ([]*models.Advertising, error) {
	query := `
		SELECT id, page, url, title, price, location, rooms, area,
		       bathrooms, construction_year, energetic_certificate, date_scraped
		FROM advertisings`
	args := []any{}
	if dateFilter != "" {
		query += " WHERE date_scraped = $1"
		args = append(args, dateFilter)
	}
	query += " ORDER BY id"

	rows, err := pg.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var ads []*models.Advertising
	for rows.Next() {
		ad := &models.Advertising{}
		var title, price sql.NullString
		if err := rows.Scan(
			&ad.ID, &ad.Page, &ad.URL, &title, &price, &ad.Location, &ad.Rooms,
			&ad.Area, &ad.Bathrooms, &ad.ConstructionYear, &ad.EnergeticCertificate,
			&ad.DateScraped,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		ad.Title = title.String
		ad.Price = price.String
		ads = append(ads, ad)
	}
	return ads, rows.Err()
}

func (pg *Postgres) Close() error {
	return pg.db.Close()
}
