package entities

// EstimateView pairs an estimate with its read-time display status.
type EstimateView struct {
	Estimate      Estimate
	DisplayStatus DisplayStatus
}

// EstimateReview is the advisory critique of a draft estimate. It never blocks saving.
type EstimateReview struct {
	OverallAssessment     string                `json:"overall_assessment"`
	Warnings              []string              `json:"warnings"`
	Suggestions           []string              `json:"suggestions"`
	PricingAnalysis       PricingAnalysis       `json:"pricing_analysis"`
	RecommendedTotal      *float64              `json:"recommended_total,omitempty"`
	ProfitabilityAnalysis ProfitabilityAnalysis `json:"profitability_analysis"`
}

type PricingAnalysis struct {
	MarketComparison string `json:"market_comparison"`
	IsCompetitive    bool   `json:"is_competitive"`
}

type ProfitabilityAnalysis struct {
	EstimatedProfitMargin float64  `json:"estimated_profit_margin"`
	BreakEvenAnalysis     string   `json:"break_even_analysis"`
	RiskFactors           []string `json:"risk_factors"`
}
