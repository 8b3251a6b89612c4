package domain

import "github.com/shopspring/decimal"

// CheckOperationBalance reports whether balance covers the cost of an operation.
// An exact match is sufficient. Insufficient balance is a normal result, not an error.
func (c *PricingCatalog) CheckOperationBalance(
	balance decimal.Decimal,
	category ToolCategory,
	operation OperationType,
	multipliers ...string,
) (BalanceCheckResult, error) {
	required, err := c.CalculateOperationCost(category, operation, multipliers...)
	if err != nil {
		return BalanceCheckResult{}, err
	}

	return checkBalance(balance, required), nil
}

func checkBalance(balance, required decimal.Decimal) BalanceCheckResult {
	enough := balance.GreaterThanOrEqual(required)

	shortfall := decimal.Zero
	if !enough {
		shortfall = required.Sub(balance)
	}

	return BalanceCheckResult{
		HasEnoughBalance: enough,
		CurrentBalance:   balance,
		RequiredBalance:  required,
		Shortfall:        shortfall,
	}
}
