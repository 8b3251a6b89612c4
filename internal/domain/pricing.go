package domain

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// CostCalculator prices operations against a catalog.
type CostCalculator interface {
	// CalculateOperationCost returns the credit cost of an operation with the given multipliers.
	CalculateOperationCost(category ToolCategory, operation OperationType, multipliers ...string) (decimal.Decimal, error)

	// CheckOperationBalance reports whether balance covers the operation.
	CheckOperationBalance(
		balance decimal.Decimal,
		category ToolCategory,
		operation OperationType,
		multipliers ...string,
	) (BalanceCheckResult, error)
}

// PricingCatalog is the read-only table of priceable operations.
// Build one with CatalogBuilder; it is never mutated afterwards.
type PricingCatalog struct {
	tools   map[ToolCategory]map[OperationType]ToolOperation
	display displayOptions
}

// Operation returns a copy of the catalog entry for category/operation.
func (c *PricingCatalog) Operation(category ToolCategory, operation OperationType) (ToolOperation, error) {
	op, err := c.lookup(category, operation)
	if err != nil {
		return ToolOperation{}, err
	}
	return cloneOperation(op), nil
}

// Categories returns every category in the catalog, sorted.
func (c *PricingCatalog) Categories() []ToolCategory {
	return slices.Sorted(maps.Keys(c.tools))
}

// Operations returns the operations of a category, sorted.
func (c *PricingCatalog) Operations(category ToolCategory) ([]OperationType, error) {
	ops, exists := c.tools[category]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return slices.Sorted(maps.Keys(ops)), nil
}

func (c *PricingCatalog) lookup(category ToolCategory, operation OperationType) (ToolOperation, error) {
	ops, exists := c.tools[category]
	if !exists {
		return ToolOperation{}, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	op, exists := ops[operation]
	if !exists {
		return ToolOperation{}, fmt.Errorf("%w: %s/%s", ErrUnknownOperation, category, operation)
	}

	return op, nil
}

func cloneOperation(op ToolOperation) ToolOperation {
	if op.CostMultipliers != nil {
		op.CostMultipliers = maps.Clone(op.CostMultipliers)
	}
	return op
}
