package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"impactcompare/internal/domain"
	"impactcompare/internal/ports"
)

func (db *DB) Enqueue(ctx context.Context, comparisonID string) (string, error) {
	var jobID string
	err := db.Pool.QueryRow(ctx, `
        INSERT INTO comparison_jobs (comparison_id) VALUES ($1) RETURNING id::text
    `, comparisonID).Scan(&jobID)
	return jobID, err
}

// ClaimNext selects the next queued job using SKIP LOCKED and marks it running.
func (db *DB) ClaimNext(ctx context.Context) (job ports.ComparisonJob, found bool, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return job, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
        SELECT id::text, comparison_id::text FROM comparison_jobs
        WHERE status = 'queued'
        ORDER BY queued_at
        FOR UPDATE SKIP LOCKED
        LIMIT 1
    `).Scan(&job.ID, &job.ComparisonID)
	if errors.Is(err, pgx.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, err
	}
	if err = start(ctx, tx, job.ID, job.ComparisonID); err != nil {
		return job, false, err
	}
	return job, true, nil
}

// StartJobForComparison claims the queued job of one comparison so it can be
// processed inline.
func (db *DB) StartJobForComparison(ctx context.Context, comparisonID string) (jobID string, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
        SELECT id::text FROM comparison_jobs
        WHERE comparison_id = $1 AND status = 'queued'
        FOR UPDATE SKIP LOCKED
    `, comparisonID).Scan(&jobID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("no queued job for comparison %s: %w", comparisonID, domain.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if err = start(ctx, tx, jobID, comparisonID); err != nil {
		return "", err
	}
	return jobID, nil
}

func start(ctx context.Context, tx pgx.Tx, jobID, comparisonID string) error {
	if _, err := tx.Exec(ctx, `
        UPDATE comparison_jobs SET status='running', started_at=now(), attempts=attempts+1 WHERE id=$1
    `, jobID); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `UPDATE comparisons SET status='running', updated_at=now() WHERE id=$1`, comparisonID)
	return err
}

// MarkCompleted finishes the job and stores the result atomically.
func (db *DB) MarkCompleted(ctx context.Context, jobID string, result domain.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return db.finish(ctx, jobID, "completed", `
        UPDATE comparisons SET status='completed', result=$2, failure='', updated_at=now() WHERE id=$1
    `, payload)
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
	return db.finish(ctx, jobID, "failed", `
        UPDATE comparisons SET status='failed', failure=$2, updated_at=now() WHERE id=$1
    `, reason)
}

func (db *DB) finish(ctx context.Context, jobID, status, comparisonSQL string, arg any) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var comparisonID string
	if err = tx.QueryRow(ctx, `SELECT comparison_id::text FROM comparison_jobs WHERE id=$1`, jobID).Scan(&comparisonID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `UPDATE comparison_jobs SET status=$2, finished_at=now() WHERE id=$1`, jobID, status); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, comparisonSQL, comparisonID, arg)
	return err
}
