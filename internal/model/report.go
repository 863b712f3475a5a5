package model

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Issue is a single compatibility finding between two or more slots.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Slots    []Slot   `json:"involvedSlots"`
}

type CompatibilityReport struct {
	// Critical findings in rule order.
	Issues []Issue `json:"issues"`
	// Warning findings in rule order.
	Warnings     []Issue `json:"warnings"`
	IsCompatible bool    `json:"isCompatible"`
	HasWarnings  bool    `json:"hasWarnings"`
}

type Tier string

const (
	TierEntryLevel Tier = "Entry-Level"
	TierBudget     Tier = "Budget"
	TierMidRange   Tier = "Mid-Range"
	TierHighEnd    Tier = "High-End"
	TierExtreme    Tier = "Extreme"
)

type PerformanceAssessment struct {
	// Percentage of the achievable score, 0..100.
	Score int  `json:"score"`
	Tier  Tier `json:"category"`
}
