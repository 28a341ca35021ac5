package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"impactcompare/internal/adapters/blobcodec"
	"impactcompare/internal/domain"
)

// Save upserts a comparison. Image payloads are stored compressed.
func (db *DB) Save(ctx context.Context, c domain.Comparison) error {
	row, err := encodeRow(c)
	if err != nil {
		return err
	}
	_, err = db.Pool.Exec(ctx, `
        INSERT INTO comparisons (id, status, image_a, image_b, source_domain_a, source_domain_b,
                                 context, result, failure, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (id) DO UPDATE SET
            status = EXCLUDED.status,
            image_a = EXCLUDED.image_a,
            image_b = EXCLUDED.image_b,
            source_domain_a = EXCLUDED.source_domain_a,
            source_domain_b = EXCLUDED.source_domain_b,
            context = EXCLUDED.context,
            result = EXCLUDED.result,
            failure = EXCLUDED.failure,
            updated_at = EXCLUDED.updated_at
    `, c.ID, string(c.Status), row.imageA, row.imageB, c.SourceDomainA, c.SourceDomainB,
		row.context, row.result, c.Failure, c.CreatedAt, c.UpdatedAt)
	return err
}

const selectComparison = `
    SELECT id::text, status, image_a, image_b, source_domain_a, source_domain_b,
           context, result, failure, created_at, updated_at
    FROM comparisons`

func (db *DB) Get(ctx context.Context, id string) (domain.Comparison, error) {
	c, err := scanComparison(db.Pool.QueryRow(ctx, selectComparison+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Comparison{}, domain.ErrNotFound
	}
	return c, err
}

func (db *DB) Delete(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM comparisons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (db *DB) ListAll(ctx context.Context) ([]domain.Comparison, error) {
	rows, err := db.Pool.Query(ctx, selectComparison+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Comparison{}
	for rows.Next() {
		c, err := scanComparison(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (db *DB) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM comparisons WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type encodedRow struct {
	imageA, imageB []byte
	context        []byte
	result         []byte
}

func encodeRow(c domain.Comparison) (encodedRow, error) {
	var row encodedRow
	var err error
	if row.imageA, err = blobcodec.Encode(c.ImageA); err != nil {
		return row, err
	}
	if row.imageB, err = blobcodec.Encode(c.ImageB); err != nil {
		return row, err
	}
	if row.context, err = json.Marshal(c.Context); err != nil {
		return row, fmt.Errorf("encode context: %w", err)
	}
	if c.Result != nil {
		if row.result, err = json.Marshal(c.Result); err != nil {
			return row, fmt.Errorf("encode result: %w", err)
		}
	}
	return row, nil
}

func scanComparison(row pgx.Row) (domain.Comparison, error) {
	var (
		c      domain.Comparison
		status string
		enc    encodedRow
	)
	if err := row.Scan(&c.ID, &status, &enc.imageA, &enc.imageB, &c.SourceDomainA, &c.SourceDomainB,
		&enc.context, &enc.result, &c.Failure, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return c, err
	}
	c.Status = domain.ComparisonStatus(status)
	var err error
	if c.ImageA, err = blobcodec.Decode(enc.imageA); err != nil {
		return c, err
	}
	if c.ImageB, err = blobcodec.Decode(enc.imageB); err != nil {
		return c, err
	}
	if len(enc.context) > 0 {
		if err := json.Unmarshal(enc.context, &c.Context); err != nil {
			return c, fmt.Errorf("decode context: %w", err)
		}
	}
	if len(enc.result) > 0 {
		var res domain.AnalysisResult
		if err := json.Unmarshal(enc.result, &res); err != nil {
			return c, fmt.Errorf("decode result: %w", err)
		}
		c.Result = &res
	}
	return c, nil
}
