package models

import "github.com/ukaji3/haushalt-go/pkg/haushalt/policy"

// Artifact is the JSON document consumed by the visualization.
type Artifact struct {
	Metadata   Metadata                    `json:"metadata"`
	Aggregated map[policy.Block]*Aggregate `json:"aggregated"`
	Items      []BudgetItem                `json:"items"`
}

// Metadata describes the run that produced an Artifact.
type Metadata struct {
	// Source is the input workbook path as given.
	Source string `json:"source"`
	// Generated is always true; kept for existing consumers.
	Generated    bool   `json:"generated"`
	GeneratedAt  string `json:"generatedAt,omitempty"`
	RunID        string `json:"runId,omitempty"`
	SourceSHA256 string `json:"sourceSha256,omitempty"`

	TotalItems   int     `json:"totalItems"`
	Total2025    float64 `json:"total2025"`
	Total2026    float64 `json:"total2026"`
	Total2025Mrd float64 `json:"total2025Mrd"`
	Total2026Mrd float64 `json:"total2026Mrd"`

	Validation ValidationStatus `json:"validation"`
}

// ValidationStatus records the checks an Artifact passed.
type ValidationStatus struct {
	TotalsMatch       bool `json:"totalsMatch"`
	AllPrefixesMapped bool `json:"allPrefixesMapped"`
}
