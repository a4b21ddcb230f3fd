package parser

import (
	"strings"

	"github.com/ukaji3/haushalt-go/pkg/haushalt/models"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/policy"
)

const (
	// OrdinaryExpenseMarker is contained in the cost-type level of every
	// ordinary expense row; the field carries further qualifying text.
	OrdinaryExpenseMarker = "2 ordentliche Aufwendungen"

	// ProductLevelMarker marks product-level summary rows. Object-level
	// rows ("OR") are already included in them and must be skipped.
	ProductLevelMarker = "PR"

	prefixLen = 2
)

// Outcome is the result of classifying one row: either an accepted item or
// the reason the row was dropped.
type Outcome struct {
	Item   models.BudgetItem
	Reason models.Reason
	// Prefix is set for accepted items and unmapped-prefix rejections.
	Prefix string
}

// Accepted reports whether the row became a BudgetItem.
func (o Outcome) Accepted() bool {
	return o.Reason == ""
}

// candidate carries the fields the rules look at.
type candidate struct {
	ebene       string
	objektart   string
	productCode string
	prefix      string
	block       policy.Block
}

type rule struct {
	reject models.Reason
	pass   func(c *candidate) bool
}

// rules run in order; the first failing rule decides the rejection reason.
var rules = []rule{
	{models.ReasonNotExpense, func(c *candidate) bool {
		return strings.Contains(c.ebene, OrdinaryExpenseMarker)
	}},
	{models.ReasonNotProductLevel, func(c *candidate) bool {
		return c.objektart == ProductLevelMarker
	}},
	{models.ReasonNoProductCode, func(c *candidate) bool {
		return c.productCode != "" && c.productCode != nullMarker &&
			len([]rune(c.productCode)) >= prefixLen
	}},
	{models.ReasonUnmappedPrefix, func(c *candidate) bool {
		c.prefix = string([]rune(c.productCode)[:prefixLen])
		b, ok := policy.Lookup(c.prefix)
		c.block = b
		return ok
	}},
}

// Classifier applies the row rules and keeps the audit counters.
type Classifier struct {
	cols  Columns
	audit *models.Audit
}

// NewClassifier creates a Classifier that records outcomes in audit.
func NewClassifier(cols Columns, audit *models.Audit) *Classifier {
	return &Classifier{cols: cols, audit: audit}
}

// Classify decides whether row is a product-level ordinary expense with a
// mapped prefix. Rejections are outcomes, not errors; an error is returned
// only when an accepted row has an unparseable planned amount.
func (c *Classifier) Classify(row models.Row) (Outcome, error) {
	cand := &candidate{
		ebene:       row.Text(c.cols.CostTypeLevel),
		objektart:   row.Text(c.cols.ObjectType),
		productCode: row.Text(c.cols.ProductCode),
	}

	for _, r := range rules {
		if r.pass(cand) {
			continue
		}
		if r.reject == models.ReasonUnmappedPrefix {
			c.audit.RecordUnmapped(cand.prefix)
		}
		c.audit.Reject(r.reject)
		return Outcome{Reason: r.reject, Prefix: cand.prefix}, nil
	}

	item, err := c.buildItem(row, cand)
	if err != nil {
		return Outcome{}, err
	}
	c.audit.Accept()
	return Outcome{Item: item, Prefix: cand.prefix}, nil
}

func (c *Classifier) buildItem(row models.Row, cand *candidate) (models.BudgetItem, error) {
	plan2025, err := c.amount(row, c.cols.Plan2025)
	if err != nil {
		return models.BudgetItem{}, err
	}
	plan2026, err := c.amount(row, c.cols.Plan2026)
	if err != nil {
		return models.BudgetItem{}, err
	}

	info, _ := policy.Describe(cand.block)
	return models.BudgetItem{
		ProductCode:        cand.productCode,
		Description:        row.Text(c.cols.Description),
		Amt:                row.Text(c.cols.Office),
		Teilhaushalt:       row.Text(c.cols.SubBudget),
		CostTypeEbene:      cand.ebene,
		CostTypePosition:   row.Text(c.cols.CostTypePosition),
		AccountDescription: row.Text(c.cols.AccountDescription),
		Objektart:          cand.objektart,
		Prefix:             cand.prefix,
		PolicyBlock:        cand.block,
		PolicyBlockName:    info.Name,
		Plan2025:           plan2025,
		Plan2026:           plan2026,
	}, nil
}

func (c *Classifier) amount(row models.Row, column string) (float64, error) {
	raw := row.Text(column)
	v, err := ParseAmount(raw)
	if err != nil {
		return 0, &AmountError{Column: column, Value: raw, Err: err}
	}
	return v, nil
}
