// Package sqlite keeps a local comparison history in a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"impactcompare/internal/adapters/blobcodec"
	"impactcompare/internal/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
}

// Open creates the database file if needed and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}
	for _, p := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: pragma %q: %w", p, err)
		}
	}

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		db.Close()
		return nil, err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migration: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Save(ctx context.Context, c domain.Comparison) error {
	imageA, err := blobcodec.Encode(c.ImageA)
	if err != nil {
		return err
	}
	imageB, err := blobcodec.Encode(c.ImageB)
	if err != nil {
		return err
	}
	contextJSON, err := json.Marshal(c.Context)
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}
	var result sql.NullString
	if c.Result != nil {
		b, err := json.Marshal(c.Result)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		result = sql.NullString{String: string(b), Valid: true}
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO comparisons (id, status, image_a, image_b, source_domain_a, source_domain_b,
		                         context, result, failure, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			image_a = excluded.image_a,
			image_b = excluded.image_b,
			source_domain_a = excluded.source_domain_a,
			source_domain_b = excluded.source_domain_b,
			context = excluded.context,
			result = excluded.result,
			failure = excluded.failure,
			updated_at = excluded.updated_at`,
		c.ID, string(c.Status), imageA, imageB, c.SourceDomainA, c.SourceDomainB,
		string(contextJSON), result, c.Failure, c.CreatedAt.UnixNano(), c.UpdatedAt.UnixNano())
	return err
}

const selectComparison = `
	SELECT id, status, image_a, image_b, source_domain_a, source_domain_b,
	       context, result, failure, created_at, updated_at
	FROM comparisons`

func (s *Store) Get(ctx context.Context, id string) (domain.Comparison, error) {
	c, err := scan(s.db.QueryRowContext(ctx, selectComparison+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Comparison{}, domain.ErrNotFound
	}
	return c, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comparisons WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]domain.Comparison, error) {
	rows, err := s.db.QueryContext(ctx, selectComparison+` ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Comparison{}
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comparisons WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (domain.Comparison, error) {
	var (
		c                  domain.Comparison
		status, ctxJSON    string
		imageA, imageB     []byte
		result             sql.NullString
		createdAt, updated int64
	)
	if err := row.Scan(&c.ID, &status, &imageA, &imageB, &c.SourceDomainA, &c.SourceDomainB,
		&ctxJSON, &result, &c.Failure, &createdAt, &updated); err != nil {
		return c, err
	}
	c.Status = domain.ComparisonStatus(status)
	c.CreatedAt = time.Unix(0, createdAt).UTC()
	c.UpdatedAt = time.Unix(0, updated).UTC()

	var err error
	if c.ImageA, err = blobcodec.Decode(imageA); err != nil {
		return c, err
	}
	if c.ImageB, err = blobcodec.Decode(imageB); err != nil {
		return c, err
	}
	if err := json.Unmarshal([]byte(ctxJSON), &c.Context); err != nil {
		return c, fmt.Errorf("decode context: %w", err)
	}
	if result.Valid {
		var res domain.AnalysisResult
		if err := json.Unmarshal([]byte(result.String), &res); err != nil {
			return c, fmt.Errorf("decode result: %w", err)
		}
		c.Result = &res
	}
	return c, nil
}
