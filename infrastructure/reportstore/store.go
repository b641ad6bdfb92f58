package reportstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"spscan/database"
	"spscan/domain/scan"
	"spscan/logging"
)

// ScanSummary is one row of scan history.
type ScanSummary struct {
	ID        int64     `json:"id"`
	SiteURL   string    `json:"siteUrl"`
	ScannedAt time.Time `json:"scannedAt"`
}

// Store persists assembled reports as scan-history rows.
type Store struct {
	db     *database.Database
	logger *logging.Logger
}

// New creates a report store over the given database.
func New(db *database.Database) *Store {
	return &Store{
		db:     db,
		logger: logging.Default().WithComponent("report_store"),
	}
}

// Save inserts a report and returns its scan ID.
func (s *Store) Save(ctx context.Context, report *scan.Report) (int64, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	res, err := s.db.Conn().ExecContext(ctx,
		`INSERT INTO scans (site_url, scanned_at, report_json) VALUES (?, ?, ?)`,
		report.Site,
		report.Metrics.ScannedAt.Format(time.RFC3339Nano),
		string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("insert scan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("scan insert id: %w", err)
	}

	s.logger.Database("Saved scan report", "scan_id", id, "site_url", report.Site)
	return id, nil
}

// List returns scan summaries, most recent first.
func (s *Store) List(ctx context.Context) ([]ScanSummary, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, site_url, scanned_at FROM scans ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	summaries := []ScanSummary{}
	for rows.Next() {
		var (
			summary   ScanSummary
			scannedAt string
		)
		if err := rows.Scan(&summary.ID, &summary.SiteURL, &scannedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, scannedAt); err == nil {
			summary.ScannedAt = t
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Get returns one stored report by scan ID.
func (s *Store) Get(ctx context.Context, id int64) (*scan.Report, error) {
	var payload string
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT report_json FROM scans WHERE id = ?`, id,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scan %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get scan %d: %w", id, err)
	}

	var report scan.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("decode stored report %d: %w", id, err)
	}
	return &report, nil
}
