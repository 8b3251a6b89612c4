package domain

import (
	"github.com/shopspring/decimal"
)

// CalculateOperationCost computes the credit cost of an operation.
//
// Known multipliers are multiplied together and applied to the base cost, and the
// product is rounded up to a whole credit. Unknown multiplier names are ignored.
// When no known multiplier applies, the base cost is returned unrounded.
func (c *PricingCatalog) CalculateOperationCost(
	category ToolCategory,
	operation OperationType,
	multipliers ...string,
) (decimal.Decimal, error) {
	op, err := c.lookup(category, operation)
	if err != nil {
		return decimal.Zero, err
	}

	return applyMultipliers(op, multipliers), nil
}

// GetOperationCost is an alias of CalculateOperationCost.
func (c *PricingCatalog) GetOperationCost(
	category ToolCategory,
	operation OperationType,
	multipliers ...string,
) (decimal.Decimal, error) {
	return c.CalculateOperationCost(category, operation, multipliers...)
}

func applyMultipliers(op ToolOperation, names []string) decimal.Decimal {
	if len(names) == 0 || len(op.CostMultipliers) == 0 {
		return op.BaseCost
	}

	factor := decimal.NewFromInt(1)
	applied := false
	for _, name := range names {
		m, known := op.CostMultipliers[name]
		if !known {
			continue
		}
		factor = factor.Mul(m)
		applied = true
	}

	if !applied {
		return op.BaseCost
	}

	return op.BaseCost.Mul(factor).Ceil()
}
