package haushalt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/haushalt-go/internal/testutil"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/aggregate"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/models"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/policy"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/validation"
)

func fixedOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return opts
}

func TestProcess_FiveRowSheet(t *testing.T) {
	path := testutil.WriteWorkbook(t, DefaultSheet, testutil.FiveRowSheet())

	result, err := Process(path, fixedOptions())
	require.NoError(t, err)
	require.NotNil(t, result.Artifact)

	art := result.Artifact
	require.Len(t, art.Items, 2)
	assert.Equal(t, 2, art.Metadata.TotalItems)
	assert.Equal(t, "11010100", art.Items[0].ProductCode)
	assert.Equal(t, "53010100", art.Items[1].ProductCode)

	require.Len(t, art.Aggregated, 2)
	assert.Contains(t, art.Aggregated, policy.BlockA)
	assert.Contains(t, art.Aggregated, policy.BlockG)
	assert.InDelta(t, 1000.5, art.Aggregated[policy.BlockA].Plan2025, 1e-9)
	assert.InDelta(t, 260.25, art.Aggregated[policy.BlockG].Plan2026, 1e-9)

	md := art.Metadata
	assert.Equal(t, path, md.Source)
	assert.True(t, md.Generated)
	assert.Equal(t, "2025-03-01T12:00:00Z", md.GeneratedAt)
	assert.NotEmpty(t, md.RunID)
	assert.Len(t, md.SourceSHA256, 64)
	assert.InDelta(t, 1250.5, md.Total2025, 1e-9)
	assert.InDelta(t, 1360.25, md.Total2026, 1e-9)
	assert.Equal(t, 0.0, md.Total2025Mrd)
	assert.True(t, md.Validation.TotalsMatch)
	assert.False(t, md.Validation.AllPrefixesMapped)

	audit := result.Audit
	assert.Equal(t, 5, audit.TotalRows)
	assert.Equal(t, 2, audit.Extracted)
	assert.Equal(t, 1, audit.Rejected(models.ReasonNotExpense))
	assert.Equal(t, 1, audit.Rejected(models.ReasonNotProductLevel))
	assert.Equal(t, 1, audit.Rejected(models.ReasonUnmappedPrefix))
	assert.Equal(t, []string{"99"}, audit.UnmappedPrefixes())
	assert.True(t, result.Validation.OK())
}

func TestProcess_EveryItemHasMappedPrefix(t *testing.T) {
	path := testutil.WriteWorkbook(t, DefaultSheet, testutil.FiveRowSheet())

	result, err := Process(path, fixedOptions())
	require.NoError(t, err)

	var sum float64
	for _, item := range result.Artifact.Items {
		b, ok := policy.Lookup(item.Prefix)
		require.True(t, ok, item.Prefix)
		assert.Equal(t, b, item.PolicyBlock)
		sum += item.Plan2025
	}
	assert.Equal(t, result.Artifact.Metadata.Total2025, sum)
}

func TestProcess_AllPrefixesMapped(t *testing.T) {
	rows := testutil.FiveRowSheet()[:3]
	path := testutil.WriteWorkbook(t, DefaultSheet, rows)

	result, err := Process(path, fixedOptions())
	require.NoError(t, err)
	assert.True(t, result.Artifact.Metadata.Validation.AllPrefixesMapped)
}

func TestProcess_BillionsRounding(t *testing.T) {
	path := testutil.WriteWorkbook(t, DefaultSheet, [][]interface{}{
		testutil.Header,
		{"2 ordentliche Aufwendungen", "PR", "61010100", 1234567890.12, 987654321},
	})

	result, err := Process(path, fixedOptions())
	require.NoError(t, err)
	assert.Equal(t, 1.235, result.Artifact.Metadata.Total2025Mrd)
	assert.Equal(t, 0.988, result.Artifact.Metadata.Total2026Mrd)
}

func TestProcess_MissingInput(t *testing.T) {
	_, err := Process(filepath.Join(t.TempDir(), "nope.xlsx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestProcess_InvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	_, err := Process(path, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestProcess_SchemaError(t *testing.T) {
	path := testutil.WriteWorkbook(t, DefaultSheet, [][]interface{}{
		{"Zuordnung_Kostenart.Ebene", "Objektart", "Zielstruktur.PC", "Plan 2025"},
		{"2 ordentliche Aufwendungen", "PR", "11010100", 1},
	})

	result, err := Process(path, DefaultOptions())
	assert.Nil(t, result)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Plan 2026"}, schemaErr.Missing)
}

func TestProcess_WrongSheet(t *testing.T) {
	path := testutil.WriteWorkbook(t, "Tabelle1", testutil.FiveRowSheet())

	_, err := Process(path, DefaultOptions())

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.True(t, schemaErr.NoSheet)
}

func TestProcess_EmptyResult(t *testing.T) {
	path := testutil.WriteWorkbook(t, DefaultSheet, [][]interface{}{
		testutil.Header,
		{"1 ordentliche Erträge", "PR", "11010100", 1, 1},
		{"2 ordentliche Aufwendungen", "OR", "11010100", 1, 1},
	})

	result, err := Process(path, DefaultOptions())
	require.ErrorIs(t, err, ErrEmptyResult)
	require.NotNil(t, result)
	assert.Nil(t, result.Artifact)
	assert.Equal(t, 2, result.Audit.TotalRows)
}

func TestProcess_AmountError(t *testing.T) {
	path := testutil.WriteWorkbook(t, DefaultSheet, [][]interface{}{
		testutil.Header,
		{"2 ordentliche Aufwendungen", "PR", "11010100", 1, 1},
		{"2 ordentliche Aufwendungen", "PR", "12010100", "k.A.", 1},
	})

	_, err := Process(path, DefaultOptions())

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Line)

	var amountErr *AmountError
	require.ErrorAs(t, err, &amountErr)
	assert.Equal(t, "Plan 2025", amountErr.Column)
}

func TestProcess_ValidationMismatch(t *testing.T) {
	orig := checkTotals
	t.Cleanup(func() { checkTotals = orig })

	// drop 5 € from the 2026 block sum
	checkTotals = func(aggs map[policy.Block]*models.Aggregate, total2025, total2026 float64) validation.Report {
		sum2025, sum2026 := aggregate.BlockSums(aggs)
		return validation.Report{Years: []validation.YearCheck{
			validation.Compare(2025, total2025, sum2025),
			validation.Compare(2026, total2026, sum2026-5),
		}}
	}

	path := testutil.WriteWorkbook(t, DefaultSheet, testutil.FiveRowSheet())
	result, err := Process(path, fixedOptions())

	var mismatch *ValidationMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2026, mismatch.Year)
	assert.InDelta(t, 5, mismatch.Diff, 1e-9)
	assert.InDelta(t, 1360.25, mismatch.GrandTotal, 1e-9)

	require.NotNil(t, result)
	assert.Nil(t, result.Artifact)
	require.NotNil(t, result.Audit)
	assert.Equal(t, 2, result.Audit.Extracted)
	assert.False(t, result.Validation.OK())
	require.Len(t, result.Validation.Years, 2)
	assert.True(t, result.Validation.Years[0].Match)
}

func TestValidationMismatchError(t *testing.T) {
	err := error(NewValidationMismatchError(validation.Compare(2025, 100, 90)))

	var mismatch *ValidationMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2025, mismatch.Year)
	assert.InDelta(t, 10, mismatch.Diff, 1e-9)
	assert.Contains(t, err.Error(), "difference=10.00")
}
