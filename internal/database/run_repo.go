package database

import (
	"database/sql"
	"time"
)

// Run is one batch invocation
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt sql.NullTime
	Processed  int
	Succeeded  int
	Failed     int
}

// RunRepository handles run bookkeeping
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db.GetConn()}
}

// CreateRun inserts a new run row
func (rr *RunRepository) CreateRun(id string) error {
	_, err := rr.db.Exec(`INSERT INTO runs (id) VALUES (?)`, id)
	return err
}

// FinishRun stores the final counters of a run
func (rr *RunRepository) FinishRun(id string, processed, succeeded, failed int) error {
	_, err := rr.db.Exec(`
		UPDATE runs
		SET finished_at = CURRENT_TIMESTAMP, processed = ?, succeeded = ?, failed = ?
		WHERE id = ?
	`, processed, succeeded, failed, id)
	return err
}

// GetRun loads a run by id
func (rr *RunRepository) GetRun(id string) (*Run, error) {
	var r Run
	err := rr.db.QueryRow(`
		SELECT id, started_at, finished_at, processed, succeeded, failed
		FROM runs WHERE id = ?
	`, id).Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Processed, &r.Succeeded, &r.Failed)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
