package models

import "github.com/ukaji3/haushalt-go/pkg/haushalt/policy"

// BudgetItem is a product-level expense row that passed every filter.
type BudgetItem struct {
	// ProductCode is the full product code (Zielstruktur.PC).
	ProductCode string `json:"productCode"`
	// Description is the product description (PCBeschreibung).
	Description string `json:"description"`
	// Amt is the responsible office.
	Amt string `json:"amt"`
	// Teilhaushalt is the sub-budget designation.
	Teilhaushalt string `json:"teilhaushalt"`
	// CostTypeEbene is the cost-type level label the row was selected by.
	CostTypeEbene string `json:"costTypeEbene"`
	// CostTypePosition is the cost-type position.
	CostTypePosition string `json:"costTypePosition"`
	// AccountDescription is the account (Kostenart) description.
	AccountDescription string `json:"accountDescription"`
	// Objektart is always the product-level marker for accepted items.
	Objektart string `json:"objektart"`
	// Prefix is the first two characters of ProductCode.
	Prefix string `json:"prefix"`
	// PolicyBlock is the block Prefix maps to.
	PolicyBlock policy.Block `json:"policyBlock"`
	// PolicyBlockName is the display name of PolicyBlock.
	PolicyBlockName string `json:"policyBlockName"`
	// Plan2025 is the planned amount for the first fiscal year.
	Plan2025 float64 `json:"plan2025"`
	// Plan2026 is the planned amount for the second fiscal year.
	Plan2026 float64 `json:"plan2026"`
}
