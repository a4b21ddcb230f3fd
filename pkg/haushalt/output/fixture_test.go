package output

import (
	"github.com/ukaji3/haushalt-go/pkg/haushalt/aggregate"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/models"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/policy"
)

func item(code, desc, account string, p25, p26 float64) models.BudgetItem {
	block, _ := policy.Lookup(code[:2])
	info, _ := policy.Describe(block)
	return models.BudgetItem{
		ProductCode:        code,
		Description:        desc,
		Amt:                "Amt " + code[:2],
		Teilhaushalt:       "TH " + code[:2],
		CostTypeEbene:      "2 ordentliche Aufwendungen",
		CostTypePosition:   "11 Personalaufwendungen",
		AccountDescription: account,
		Objektart:          "PR",
		Prefix:             code[:2],
		PolicyBlock:        block,
		PolicyBlockName:    info.Name,
		Plan2025:           p25,
		Plan2026:           p26,
	}
}

// sampleArtifact has two blocks: A (two products, one with two bookings)
// and G (one product).
func sampleArtifact() *models.Artifact {
	items := []models.BudgetItem{
		item("11010100", "Rat", "Personal", 100, 110),
		item("11010100", "Rat", "Sachkosten", 50, 40),
		item("12010100", "Ordnung", "Personal", 30, 30),
		item("53010100", "Abfall", "Entsorgung", 400, 300),
	}
	t25, t26 := aggregate.Totals(items)
	return &models.Artifact{
		Metadata: models.Metadata{
			Source:       "haushalt.xlsx",
			Generated:    true,
			TotalItems:   len(items),
			Total2025:    t25,
			Total2026:    t26,
			Total2025Mrd: 0,
			Total2026Mrd: 0,
			Validation:   models.ValidationStatus{TotalsMatch: true, AllPrefixesMapped: true},
		},
		Aggregated: aggregate.ByBlock(items),
		Items:      items,
	}
}
