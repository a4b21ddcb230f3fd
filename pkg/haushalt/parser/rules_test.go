package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/models"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/policy"
)

func expenseRow(objektart, pc, plan2025, plan2026 string) models.Row {
	cols := DefaultColumns()
	return models.Row{
		cols.CostTypeLevel: "2 ordentliche Aufwendungen (Summe)",
		cols.ObjectType:    objektart,
		cols.ProductCode:   pc,
		cols.Plan2025:      plan2025,
		cols.Plan2026:      plan2026,
	}
}

func TestClassify_Rejections(t *testing.T) {
	cols := DefaultColumns()

	tests := []struct {
		name   string
		row    models.Row
		reason models.Reason
	}{
		{
			name: "not ordinary expense",
			row: models.Row{
				cols.CostTypeLevel: "1 something else",
				cols.ObjectType:    "PR",
				cols.ProductCode:   "11010100",
			},
			reason: models.ReasonNotExpense,
		},
		{
			name:   "missing cost type level",
			row:    models.Row{cols.ObjectType: "PR", cols.ProductCode: "11010100"},
			reason: models.ReasonNotExpense,
		},
		{
			name:   "object level row",
			row:    expenseRow("OR", "11010100", "10", "10"),
			reason: models.ReasonNotProductLevel,
		},
		{
			name:   "object type is case sensitive",
			row:    expenseRow("pr", "11010100", "10", "10"),
			reason: models.ReasonNotProductLevel,
		},
		{
			name:   "empty product code",
			row:    expenseRow("PR", "", "10", "10"),
			reason: models.ReasonNoProductCode,
		},
		{
			name:   "null product code",
			row:    expenseRow("PR", "None", "10", "10"),
			reason: models.ReasonNoProductCode,
		},
		{
			name:   "short product code",
			row:    expenseRow("PR", "1", "10", "10"),
			reason: models.ReasonNoProductCode,
		},
		{
			name:   "unmapped prefix",
			row:    expenseRow("PR", "99", "10", "10"),
			reason: models.ReasonUnmappedPrefix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audit := models.NewAudit()
			c := NewClassifier(cols, audit)

			out, err := c.Classify(tt.row)
			require.NoError(t, err)
			assert.False(t, out.Accepted())
			assert.Equal(t, tt.reason, out.Reason)
			assert.Equal(t, 1, audit.Rejected(tt.reason))
			assert.Equal(t, 1, audit.TotalRows)
			assert.Zero(t, audit.Extracted)
		})
	}
}

func TestClassify_UnmappedPrefixRecorded(t *testing.T) {
	audit := models.NewAudit()
	c := NewClassifier(DefaultColumns(), audit)

	for _, pc := range []string{"99", "99123", "3210"} {
		out, err := c.Classify(expenseRow("PR", pc, "1", "1"))
		require.NoError(t, err)
		assert.Equal(t, models.ReasonUnmappedPrefix, out.Reason)
	}

	assert.Equal(t, 3, audit.Rejected(models.ReasonUnmappedPrefix))
	assert.Equal(t, []string{"32", "99"}, audit.UnmappedPrefixes())
}

func TestClassify_Accepted(t *testing.T) {
	cols := DefaultColumns()
	audit := models.NewAudit()
	c := NewClassifier(cols, audit)

	row := expenseRow("PR", "53020100", "1234.5", "")
	row[cols.Description] = "Abfallwirtschaft"
	row[cols.Office] = "Amt 36"
	row[cols.SubBudget] = "Stadtreinigung"
	row[cols.CostTypePosition] = "2.1"
	row[cols.AccountDescription] = "Sachaufwand"

	out, err := c.Classify(row)
	require.NoError(t, err)
	require.True(t, out.Accepted())

	item := out.Item
	assert.Equal(t, "53020100", item.ProductCode)
	assert.Equal(t, "53", item.Prefix)
	assert.Equal(t, policy.BlockG, item.PolicyBlock)
	assert.Equal(t, "Ver- & Entsorgung", item.PolicyBlockName)
	assert.Equal(t, "PR", item.Objektart)
	assert.Equal(t, "2 ordentliche Aufwendungen (Summe)", item.CostTypeEbene)
	assert.Equal(t, "Abfallwirtschaft", item.Description)
	assert.Equal(t, "Amt 36", item.Amt)
	assert.Equal(t, "Stadtreinigung", item.Teilhaushalt)
	assert.Equal(t, "2.1", item.CostTypePosition)
	assert.Equal(t, "Sachaufwand", item.AccountDescription)
	assert.Equal(t, 1234.5, item.Plan2025)
	assert.Zero(t, item.Plan2026)

	assert.Equal(t, 1, audit.Extracted)
	assert.Zero(t, audit.TotalRejected())
}

func TestClassify_ProductLevelGuard(t *testing.T) {
	audit := models.NewAudit()
	c := NewClassifier(DefaultColumns(), audit)

	pr, err := c.Classify(expenseRow("PR", "11010100", "500", "600"))
	require.NoError(t, err)
	or, err := c.Classify(expenseRow("OR", "11010100", "500", "600"))
	require.NoError(t, err)

	assert.True(t, pr.Accepted())
	assert.False(t, or.Accepted())
	assert.Equal(t, models.ReasonNotProductLevel, or.Reason)
}

func TestClassify_AmountError(t *testing.T) {
	cols := DefaultColumns()
	c := NewClassifier(cols, models.NewAudit())

	_, err := c.Classify(expenseRow("PR", "11010100", "n/a", "1"))
	require.Error(t, err)

	var amountErr *AmountError
	require.ErrorAs(t, err, &amountErr)
	assert.Equal(t, cols.Plan2025, amountErr.Column)
	assert.Equal(t, "n/a", amountErr.Value)
}

func TestClassify_RejectedRowsSkipAmountParsing(t *testing.T) {
	c := NewClassifier(DefaultColumns(), models.NewAudit())

	out, err := c.Classify(expenseRow("OR", "11010100", "n/a", "n/a"))
	require.NoError(t, err)
	assert.Equal(t, models.ReasonNotProductLevel, out.Reason)
}
