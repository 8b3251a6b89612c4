package domain

import (
	"github.com/shopspring/decimal"
)

// DisplayOption configures how the catalog renders multipliers.
type DisplayOption func(*displayOptions)

type displayOptions struct {
	legacyPercent bool
}

// WithLegacyPercentFormat renders non-positive multiplier deltas as bare numbers ("-50")
// instead of percentages ("-50%"), matching older UI clients.
func WithLegacyPercentFormat(enabled bool) DisplayOption {
	return func(o *displayOptions) {
		o.legacyPercent = enabled
	}
}

// GetToolPricingDisplay returns the UI view of an operation's pricing.
func (c *PricingCatalog) GetToolPricingDisplay(category ToolCategory, operation OperationType) (PricingDisplay, error) {
	op, err := c.lookup(category, operation)
	if err != nil {
		return PricingDisplay{}, err
	}

	display := PricingDisplay{
		Category:    category,
		Operation:   operation,
		Name:        op.Name,
		BaseCost:    op.BaseCost,
		Description: op.Description,
	}

	if len(op.CostMultipliers) > 0 {
		display.Multipliers = make(map[string]string, len(op.CostMultipliers))
		for name, factor := range op.CostMultipliers {
			display.Multipliers[name] = formatMultiplier(factor, c.display.legacyPercent)
		}
	}

	return display, nil
}

// GetPricingInfo is an alias of GetToolPricingDisplay kept for older call sites.
func (c *PricingCatalog) GetPricingInfo(category ToolCategory, operation OperationType) (PricingDisplay, error) {
	return c.GetToolPricingDisplay(category, operation)
}

// CatalogDisplay renders every operation in the catalog, ordered by category then operation.
func (c *PricingCatalog) CatalogDisplay() []PricingDisplay {
	var out []PricingDisplay
	for _, category := range c.Categories() {
		ops, _ := c.Operations(category)
		for _, operation := range ops {
			display, _ := c.GetToolPricingDisplay(category, operation)
			out = append(out, display)
		}
	}
	return out
}

// formatMultiplier renders a factor as a signed percentage delta.
// Rounding matches JavaScript Math.round: floor(x + 0.5).
func formatMultiplier(factor decimal.Decimal, legacy bool) string {
	hundred := decimal.NewFromInt(100)
	half := decimal.RequireFromString("0.5")

	percentage := factor.Sub(decimal.NewFromInt(1)).Mul(hundred).Add(half).Floor()

	if percentage.IsPositive() {
		return "+" + percentage.String() + "%"
	}
	if legacy {
		return percentage.String()
	}
	return percentage.String() + "%"
}
