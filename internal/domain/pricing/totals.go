package pricing

import "fieldservice/internal/domain/entities"

// Result is the resolved valuation of an estimate: either Manual or Pricebook.
type Result interface {
	Totals() Totals
	isResult()
}

// Totals are the figures persisted on an estimate.
type Totals struct {
	Subtotal       float64
	TaxAmount      float64
	Discount       float64
	Total          float64
	Mode           entities.PricingMode
	AppliedMinimum bool
}

// Manual is quantity x unit price, plus tax, minus discount.
type Manual struct {
	Subtotal  float64
	TaxAmount float64
	Discount  float64
}

// Pricebook is the catalog-based valuation. It is treated as tax inclusive.
type Pricebook struct {
	Subtotal       float64
	AdjustedTotal  float64
	AppliedMinimum bool
	Lines          []PricedLine
}

func (Manual) isResult()    {}
func (Pricebook) isResult() {}

func (m Manual) Totals() Totals {
	return Totals{
		Subtotal:  m.Subtotal,
		TaxAmount: m.TaxAmount,
		Discount:  m.Discount,
		Total:     Round2(m.Subtotal + m.TaxAmount - m.Discount),
		Mode:      entities.PricingModeManual,
	}
}

func (p Pricebook) Totals() Totals {
	return Totals{
		Subtotal:       p.Subtotal,
		Total:          p.AdjustedTotal,
		Mode:           entities.PricingModePricebook,
		AppliedMinimum: p.AppliedMinimum,
	}
}

// ManualSubtotal is the sum of quantity x unit price over items.
func ManualSubtotal(items []entities.LineItem) float64 {
	var sum float64
	for _, li := range items {
		sum += li.ManualTotal()
	}
	return Round2(sum)
}

// ComputeManual applies tax rate (percent) and discount to the manual subtotal.
func ComputeManual(items []entities.LineItem, taxRate, discount float64) Manual {
	subtotal := ManualSubtotal(items)
	return Manual{
		Subtotal:  subtotal,
		TaxAmount: Round2(subtotal * taxRate / 100),
		Discount:  Round2(discount),
	}
}

// UsesPricebook reports whether items take the pricebook path: there is at least
// one item and every item references a catalog service.
func UsesPricebook(items []entities.LineItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, li := range items {
		if li.ServiceID == "" {
			return false
		}
	}
	return true
}

// PricebookItems converts line items to calculator input.
func PricebookItems(items []entities.LineItem) []PricebookItem {
	out := make([]PricebookItem, 0, len(items))
	for _, li := range items {
		tier, _ := entities.ParseTier(string(li.Tier))
		out = append(out, PricebookItem{
			CatalogID:    li.ServiceID,
			Quantity:     li.Quantity,
			MaterialCost: li.MaterialCostValue(),
			Tier:         tier,
		})
	}
	return out
}

// Resolve returns the pricebook valuation when one is supplied, else the manual one.
func Resolve(items []entities.LineItem, taxRate, discount float64, pb *PricebookResult) Result {
	if pb != nil {
		return Pricebook{
			Subtotal:       pb.Subtotal,
			AdjustedTotal:  pb.AdjustedTotal,
			AppliedMinimum: pb.AppliedMinimum,
			Lines:          pb.LineItems,
		}
	}
	return ComputeManual(items, taxRate, discount)
}

// Apply writes r onto e. On the pricebook path each line item also gets its
// computed total and catalog code.
func Apply(e *entities.Estimate, r Result) {
	t := r.Totals()
	e.Subtotal = t.Subtotal
	e.TaxAmount = t.TaxAmount
	e.Total = t.Total
	e.PricingMode = t.Mode
	e.AppliedMinimum = t.AppliedMinimum

	pb, ok := r.(Pricebook)
	if !ok {
		for i := range e.LineItems {
			total := Round2(e.LineItems[i].ManualTotal())
			e.LineItems[i].Total = &total
		}
		return
	}
	for i := range e.LineItems {
		if i >= len(pb.Lines) {
			break
		}
		total := pb.Lines[i].LineTotal
		e.LineItems[i].Total = &total
		e.LineItems[i].Code = pb.Lines[i].Code
	}
}
