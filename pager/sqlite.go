package pager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/voxgo/model"

	_ "modernc.org/sqlite"
)

// SQLitePager stores chunks as rows of a single SQLite table keyed by the
// chunk region.
type SQLitePager struct {
	db *sql.DB
}

var _ Pager = (*SQLitePager)(nil)

// OpenSQLite opens (or creates) a chunk database at path.
func OpenSQLite(path string) (*SQLitePager, error) {
	if path == "" {
		return nil, fmt.Errorf("pager: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSQLite(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLitePager{db: db}, nil
}

func initSQLite(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS chunks (
			lx INTEGER NOT NULL,
			ly INTEGER NOT NULL,
			lz INTEGER NOT NULL,
			ux INTEGER NOT NULL,
			uy INTEGER NOT NULL,
			uz INTEGER NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (lx, ly, lz, ux, uy, uz)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// PageIn reads a chunk row. A missing row leaves h untouched.
func (p *SQLitePager) PageIn(ctx context.Context, region model.Region, h Handle) error {
	var data []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT data FROM chunks WHERE lx=? AND ly=? AND lz=? AND ux=? AND uy=? AND uz=?`,
		regionArgs(region)...,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	h.SetCompressedData(data)
	return nil
}

// PageOut upserts a chunk row.
func (p *SQLitePager) PageOut(ctx context.Context, region model.Region, h Handle) error {
	data := h.CompressedData()
	if data == nil {
		// NOT NULL column; an empty payload is stored as a zero-length blob.
		data = []byte{}
	}
	args := append(regionArgs(region), data)
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO chunks (lx, ly, lz, ux, uy, uz, data) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(lx, ly, lz, ux, uy, uz) DO UPDATE SET data=excluded.data`,
		args...,
	)
	return err
}

// Count returns the number of stored chunks.
func (p *SQLitePager) Count(ctx context.Context) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n)
	return n, err
}

// Close closes the database.
func (p *SQLitePager) Close() error {
	return p.db.Close()
}

func regionArgs(r model.Region) []any {
	return []any{r.Lower.X, r.Lower.Y, r.Lower.Z, r.Upper.X, r.Upper.Y, r.Upper.Z}
}
