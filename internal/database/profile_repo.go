package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"linkedin-extractor/internal/models"
)

// ProfileStatus represents the processing state of a profile URL
type ProfileStatus string

const (
	ProfileStatusPending         ProfileStatus = "pending"
	ProfileStatusSuccessWithData ProfileStatus = "success_with_data"
	ProfileStatusSuccessNoData   ProfileStatus = "success_without_data"
	ProfileStatusFailed          ProfileStatus = "failed"
)

// ErrNoRecord is returned by GetRecord when the URL has no stored record
var ErrNoRecord = errors.New("no record stored for url")

// ProfileRepository handles the profile URL queue and extracted records
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db.GetConn()}
}

// ImportURLs queues urls as pending. URLs already known keep their status.
func (pr *ProfileRepository) ImportURLs(urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	tx, err := pr.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO profiles (url) VALUES (?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if _, err := stmt.Exec(url); err != nil {
			return fmt.Errorf("failed to insert url %s: %w", url, err)
		}
	}

	return tx.Commit()
}

// GetPendingURLs returns URLs that have not been processed yet, oldest first
func (pr *ProfileRepository) GetPendingURLs(limit int) ([]string, error) {
	query := `SELECT url FROM profiles WHERE status = 'pending' ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := pr.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, rows.Err()
}

// MarkSuccess stores the extracted record and classifies it by HasData
func (pr *ProfileRepository) MarkSuccess(url, runID string, record *models.ProfileRecord) error {
	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	status := ProfileStatusSuccessNoData
	if record.HasData() {
		status = ProfileStatusSuccessWithData
	}

	_, err = pr.db.Exec(`
		UPDATE profiles
		SET status = ?, run_id = ?, record_json = ?, last_error = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE url = ?
	`, status, runID, string(b), url)
	return err
}

// MarkFailed records a page-level failure for url
func (pr *ProfileRepository) MarkFailed(url, runID string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	_, err := pr.db.Exec(`
		UPDATE profiles
		SET status = ?, run_id = ?, last_error = ?, updated_at = CURRENT_TIMESTAMP
		WHERE url = ?
	`, ProfileStatusFailed, runID, msg, url)
	return err
}

// GetStatus returns the current status of url
func (pr *ProfileRepository) GetStatus(url string) (ProfileStatus, error) {
	var status string
	err := pr.db.QueryRow(`SELECT status FROM profiles WHERE url = ?`, url).Scan(&status)
	if err != nil {
		return "", err
	}
	return ProfileStatus(status), nil
}

// GetRecord returns the stored record for url
func (pr *ProfileRepository) GetRecord(url string) (*models.ProfileRecord, error) {
	var raw sql.NullString
	err := pr.db.QueryRow(`SELECT record_json FROM profiles WHERE url = ?`, url).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !raw.Valid) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}

	var record models.ProfileRecord
	if err := json.Unmarshal([]byte(raw.String), &record); err != nil {
		return nil, fmt.Errorf("failed to decode record for %s: %w", url, err)
	}
	return &record, nil
}

// GetStats returns the number of URLs per status plus a "total" key
func (pr *ProfileRepository) GetStats() (map[string]int, error) {
	rows, err := pr.db.Query(`
		SELECT status, COUNT(*) as count
		FROM profiles
		GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]int)
	total := 0
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
		total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	stats["total"] = total

	return stats, nil
}
