package models

import "github.com/ukaji3/haushalt-go/pkg/haushalt/policy"

// Aggregate holds the running sums of one policy block.
type Aggregate struct {
	Block     policy.Block `json:"block"`
	Name      string       `json:"name"`
	Color     string       `json:"color"`
	Plan2025  float64      `json:"plan2025"`
	Plan2026  float64      `json:"plan2026"`
	ItemCount int          `json:"itemCount"`
	// Items are kept in input order for drill-down.
	Items []BudgetItem `json:"items"`
}
