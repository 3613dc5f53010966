package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"gtmaudit/internal/report"
)

// Run is a stored analysis run with its summary columns.
type Run struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	SourceFile      string    `json:"source_file"`
	ContainerType   string    `json:"container_type"`
	TotalVariables  int       `json:"total_variables"`
	TotalTags       int       `json:"total_tags"`
	UnusedVariables int       `json:"unused_variables"`
	DuplicateGroups int       `json:"duplicate_groups"`
}

// SaveRun persists a report snapshot and returns the new run ID.
// The full report is stored zstd-compressed; summary columns are
// denormalized for cheap listing.
func (db *DB) SaveRun(sourceFile string, rep *report.Report) (string, error) {
	data, err := json.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	compressed := enc.EncodeAll(data, nil)
	enc.Close()

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	err = db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO runs (
				id, created_at, source_file, container_type,
				total_variables, total_tags, unused_variables,
				duplicate_groups, report_zstd
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			id, createdAt, sourceFile, rep.Summary.ContainerType,
			rep.Summary.TotalVariables, rep.Summary.TotalTags,
			len(rep.UnusedVariables), rep.Summary.DuplicateGroups,
			compressed,
		)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	db.logger.Info("Analysis run saved", map[string]interface{}{
		"run_id":      id,
		"source_file": sourceFile,
	})

	return id, nil
}

// ListRuns returns stored runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT id, created_at, source_file, container_type,
		       total_variables, total_tags, unused_variables, duplicate_groups
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(
			&r.ID, &createdAt, &r.SourceFile, &r.ContainerType,
			&r.TotalVariables, &r.TotalTags, &r.UnusedVariables, &r.DuplicateGroups,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun loads a stored run's full report by ID.
func (db *DB) GetRun(id string) (*report.Report, error) {
	var compressed []byte
	err := db.QueryRow(`SELECT report_zstd FROM runs WHERE id = ?`, id).Scan(&compressed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}
	defer dec.Close()

	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &rep, nil
}
