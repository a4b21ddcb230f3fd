package haushalt

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/aggregate"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/models"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/parser"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/validation"
	"go.uber.org/zap"
)

// checkTotals is the totals gate applied before an artifact is built.
var checkTotals = validation.Check

// Result is the outcome of a processing run.
type Result struct {
	// Artifact is nil unless validation passed.
	Artifact   *models.Artifact
	Audit      *models.Audit
	Validation validation.Report
}

// Process reads the budget sheet at path, classifies and aggregates its rows
// and validates the totals. On ErrEmptyResult and ValidationMismatchError the
// returned Result still carries the audit so callers can report it.
func Process(path string, opts Options) (*Result, error) {
	log := opts.logger()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, err
	}

	digest, err := fileSHA256(path)
	if err != nil {
		return nil, fmt.Errorf("hashing input: %w", err)
	}

	log.Info("opening workbook", zap.String("path", path), zap.String("sheet", opts.Sheet))
	reader, err := parser.OpenSheet(path, opts.Sheet, opts.Columns.Required())
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer reader.Close()
	log.Info("header validated", zap.Int("columns", len(reader.Header())))

	audit := models.NewAudit()
	classifier := parser.NewClassifier(opts.Columns, audit)

	var items []models.BudgetItem
	for reader.Next() {
		out, err := classifier.Classify(reader.Row())
		if err != nil {
			return nil, &RowError{Line: reader.Line(), Err: err}
		}
		if out.Accepted() {
			items = append(items, out.Item)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}

	log.Info("rows classified",
		zap.Int("rows", audit.TotalRows),
		zap.Int("items", audit.Extracted),
		zap.Int("rejected", audit.TotalRejected()),
	)
	if prefixes := audit.UnmappedPrefixes(); len(prefixes) > 0 {
		log.Warn("unmapped product code prefixes", zap.Strings("prefixes", prefixes))
	}

	result := &Result{Audit: audit}
	if len(items) == 0 {
		return result, ErrEmptyResult
	}

	aggs := aggregate.ByBlock(items)
	total2025, total2026 := aggregate.Totals(items)

	result.Validation = checkTotals(aggs, total2025, total2026)
	if miss, bad := result.Validation.FirstMismatch(); bad {
		log.Error("totals do not match block aggregates",
			zap.Int("year", miss.Year),
			zap.Float64("total", miss.GrandTotal),
			zap.Float64("blockSum", miss.BlockSum),
			zap.Float64("diff", miss.Diff),
		)
		return result, NewValidationMismatchError(miss)
	}

	result.Artifact = &models.Artifact{
		Metadata: models.Metadata{
			Source:       path,
			Generated:    true,
			GeneratedAt:  opts.now().UTC().Format(time.RFC3339),
			RunID:        uuid.NewString(),
			SourceSHA256: digest,
			TotalItems:   len(items),
			Total2025:    total2025,
			Total2026:    total2026,
			Total2025Mrd: billions(total2025),
			Total2026Mrd: billions(total2026),
			Validation: models.ValidationStatus{
				TotalsMatch:       true,
				AllPrefixesMapped: len(audit.UnmappedPrefixes()) == 0,
			},
		},
		Aggregated: aggs,
		Items:      items,
	}
	return result, nil
}

// billions scales a euro amount to Mrd € rounded to three decimals.
func billions(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Shift(-9).Round(3).Float64()
	return f
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
