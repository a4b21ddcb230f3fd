// Package archive keeps a SQLite history of pipeline runs.
package archive

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ukaji3/haushalt-go/pkg/haushalt/models"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/policy"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNoRunID is returned for artifacts without provenance.
var ErrNoRunID = errors.New("artifact has no run id")

// Archive is a SQLite-backed run history.
type Archive struct {
	db *sql.DB
}

// Run is one archived pipeline run.
type Run struct {
	ID                string
	Source            string
	SourceSHA256      string
	GeneratedAt       string
	TotalItems        int
	Total2025         float64
	Total2026         float64
	TotalsMatch       bool
	AllPrefixesMapped bool
}

// BlockSum is the per-block result of an archived run.
type BlockSum struct {
	Block     policy.Block
	Name      string
	Plan2025  float64
	Plan2026  float64
	ItemCount int
}

// Open opens or creates the archive database at the given path.
func Open(dbPath string) (*Archive, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening archive db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SaveRun stores the metadata and block sums of art. Saving the same run
// twice replaces the earlier record.
func (a *Archive) SaveRun(art *models.Artifact) error {
	md := art.Metadata
	if md.RunID == "" {
		return ErrNoRunID
	}

	tx, err := a.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.Exec(`INSERT OR REPLACE INTO runs
		(run_id, source, source_sha256, generated_at, total_items, total_2025, total_2026,
		 totals_match, all_prefixes_mapped, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		md.RunID, md.Source, md.SourceSHA256, md.GeneratedAt, md.TotalItems, md.Total2025, md.Total2026,
		boolInt(md.Validation.TotalsMatch), boolInt(md.Validation.AllPrefixesMapped), now,
	)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM run_blocks WHERE run_id = ?", md.RunID); err != nil {
		return err
	}

	for _, b := range policy.Blocks() {
		agg, ok := art.Aggregated[b]
		if !ok {
			continue
		}
		_, err = tx.Exec(`INSERT INTO run_blocks
			(run_id, block, name, plan_2025, plan_2026, item_count)
			VALUES (?, ?, ?, ?, ?, ?)`,
			md.RunID, string(agg.Block), agg.Name, agg.Plan2025, agg.Plan2026, agg.ItemCount,
		)
		if err != nil {
			return fmt.Errorf("saving block %s: %w", agg.Block, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns archived runs, newest first. A limit <= 0 returns all.
func (a *Archive) ListRuns(limit int) ([]Run, error) {
	query := `SELECT run_id, source, COALESCE(source_sha256, ''), generated_at, total_items,
		total_2025, total_2026, totals_match, all_prefixes_mapped
		FROM runs ORDER BY generated_at DESC, archived_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var match, mapped int
		if err := rows.Scan(&r.ID, &r.Source, &r.SourceSHA256, &r.GeneratedAt, &r.TotalItems,
			&r.Total2025, &r.Total2026, &match, &mapped); err != nil {
			return nil, err
		}
		r.TotalsMatch = match == 1
		r.AllPrefixesMapped = mapped == 1
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunBlocks returns the block sums of one run in block order.
func (a *Archive) RunBlocks(runID string) ([]BlockSum, error) {
	rows, err := a.db.Query(`SELECT block, name, plan_2025, plan_2026, item_count
		FROM run_blocks WHERE run_id = ? ORDER BY block`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []BlockSum
	for rows.Next() {
		var b BlockSum
		var block string
		if err := rows.Scan(&block, &b.Name, &b.Plan2025, &b.Plan2026, &b.ItemCount); err != nil {
			return nil, err
		}
		b.Block = policy.Block(block)
		out = append(out, b)
	}
	return out, rows.Err()
}
