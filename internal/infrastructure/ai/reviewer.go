package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/pricing"
	"fieldservice/internal/infrastructure/config"
	"fieldservice/internal/usecase/interfaces"
)

const (
	defaultModel     = "claude-sonnet-4-5-20250929"
	defaultMaxTokens = 1500
	defaultAPIURL    = "https://api.anthropic.com/v1/messages"
	apiVersion       = "2023-06-01"
	requestTimeout   = 60 * time.Second
)

var ErrNoReviewInResponse = errors.New("review response did not contain a JSON object")

// Reviewer asks a text-generation model to critique a draft estimate and
// parses the JSON answer into an EstimateReview.
type Reviewer struct {
	apiKey    string
	model     string
	url       string
	maxTokens int
	client    *http.Client
}

var _ interfaces.IEstimateReviewer = (*Reviewer)(nil)

func NewReviewer(cfg config.ReviewConfig) *Reviewer {
	r := &Reviewer{
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		url:       cfg.URL,
		maxTokens: defaultMaxTokens,
		client:    &http.Client{Timeout: requestTimeout},
	}
	if r.model == "" {
		r.model = defaultModel
	}
	if r.url == "" {
		r.url = defaultAPIURL
	}
	return r
}

func (r *Reviewer) Review(ctx context.Context, draft entities.EstimateDraft, totals pricing.Totals) (entities.EstimateReview, error) {
	log.Printf("[review][ai] review start title=%q items=%d mode=%s total=%.2f", draft.Title, len(draft.LineItems), totals.Mode, totals.Total)

	text, err := r.callAPI(ctx, buildPrompt(draft, totals))
	if err != nil {
		log.Printf("[review][ai] api call failed err=%v", err)
		return entities.EstimateReview{}, err
	}

	review, err := parseReview(text)
	if err != nil {
		log.Printf("[review][ai] parse failed err=%v", err)
		return entities.EstimateReview{}, err
	}
	log.Printf("[review][ai] review success warnings=%d suggestions=%d", len(review.Warnings), len(review.Suggestions))
	return review, nil
}

func (r *Reviewer) callAPI(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(apiRequest{
		Model:     r.model,
		MaxTokens: r.maxTokens,
		System:    systemPrompt,
		Messages: []apiMessage{{
			Role:    "user",
			Content: []apiContentBlock{{Type: "text", Text: prompt}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", r.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling review API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	var parts []string
	for _, block := range result.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, ""), nil
}

const systemPrompt = "You are an experienced estimator for a home-services business " +
	"(lawn care, landscaping, repairs, installs). You review draft estimates before " +
	"they are sent to customers. Answer with a single JSON object and nothing else."

func buildPrompt(d entities.EstimateDraft, totals pricing.Totals) string {
	var sb strings.Builder

	sb.WriteString("Review this draft estimate.\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", d.Title)
	if d.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", d.Description)
	}
	if totals.Mode == entities.PricingModePricebook {
		sb.WriteString("Priced from the service catalog (tax inclusive).\n")
	}
	sb.WriteString("Line items:\n")
	for _, li := range d.LineItems {
		lineTotal := li.ManualTotal()
		if li.Total != nil {
			lineTotal = *li.Total
		}
		if totals.Mode == entities.PricingModePricebook {
			fmt.Fprintf(&sb, "- %s: %g %s = $%.2f", li.Description, li.Quantity, li.Unit, lineTotal)
		} else {
			fmt.Fprintf(&sb, "- %s: %g %s x $%.2f = $%.2f", li.Description, li.Quantity, li.Unit, li.UnitPrice, lineTotal)
		}
		if li.MaterialCost != nil {
			fmt.Fprintf(&sb, " (material cost $%.2f)", *li.MaterialCost)
		}
		if li.Tier != "" {
			fmt.Fprintf(&sb, " [tier %s]", li.Tier)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Subtotal: $%.2f\n", totals.Subtotal)
	if totals.Mode == entities.PricingModeManual {
		fmt.Fprintf(&sb, "Tax (%g%%): $%.2f\n", d.TaxRate, totals.TaxAmount)
		if totals.Discount > 0 {
			fmt.Fprintf(&sb, "Discount: $%.2f\n", totals.Discount)
		}
	}
	if totals.AppliedMinimum {
		sb.WriteString("Minimum charge applied.\n")
	}
	fmt.Fprintf(&sb, "Total: $%.2f\n", totals.Total)
	if d.PaymentTerms != "" {
		fmt.Fprintf(&sb, "Payment terms: %s\n", d.PaymentTerms)
	}

	sb.WriteString("\nRespond with JSON using exactly these keys:\n")
	sb.WriteString(`{"overall_assessment": string, "warnings": [string], "suggestions": [string], `)
	sb.WriteString(`"pricing_analysis": {"market_comparison": string, "is_competitive": boolean}, `)
	sb.WriteString(`"recommended_total": number or null, `)
	sb.WriteString(`"profitability_analysis": {"estimated_profit_margin": number, "break_even_analysis": string, "risk_factors": [string]}}`)

	return sb.String()
}

// parseReview extracts the outermost JSON object from text. Models sometimes
// wrap the answer in a code fence or add a sentence around it.
func parseReview(text string) (entities.EstimateReview, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return entities.EstimateReview{}, ErrNoReviewInResponse
	}

	var review entities.EstimateReview
	if err := json.Unmarshal([]byte(text[start:end+1]), &review); err != nil {
		return entities.EstimateReview{}, fmt.Errorf("decoding review: %w", err)
	}
	if review.Warnings == nil {
		review.Warnings = []string{}
	}
	if review.Suggestions == nil {
		review.Suggestions = []string{}
	}
	if review.ProfitabilityAnalysis.RiskFactors == nil {
		review.ProfitabilityAnalysis.RiskFactors = []string{}
	}
	return review, nil
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string            `json:"role"`
	Content []apiContentBlock `json:"content"`
}

type apiContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type apiResponse struct {
	ID         string            `json:"id"`
	Content    []apiContentBlock `json:"content"`
	Model      string            `json:"model"`
	StopReason string            `json:"stop_reason"`
}

type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
