package domain

import (
	"errors"
	"fmt"
	"sync"
)

// CatalogBuilder collects operations before freezing them into a PricingCatalog.
type CatalogBuilder struct {
	mu      sync.Mutex
	tools   map[ToolCategory]map[OperationType]ToolOperation
	display displayOptions
}

// NewCatalogBuilder creates an empty builder.
func NewCatalogBuilder(opts ...DisplayOption) *CatalogBuilder {
	b := &CatalogBuilder{
		mu:    sync.Mutex{},
		tools: make(map[ToolCategory]map[OperationType]ToolOperation),
	}
	for _, opt := range opts {
		opt(&b.display)
	}
	return b
}

// NewCatalogBuilderFrom seeds a builder with every entry of an existing catalog.
func NewCatalogBuilderFrom(catalog *PricingCatalog, opts ...DisplayOption) *CatalogBuilder {
	b := NewCatalogBuilder(opts...)
	if catalog == nil {
		return b
	}

	for category, ops := range catalog.tools {
		b.tools[category] = make(map[OperationType]ToolOperation, len(ops))
		for opType, op := range ops {
			b.tools[category][opType] = cloneOperation(op)
		}
	}
	return b
}

// Register adds or replaces the pricing of one operation.
func (b *CatalogBuilder) Register(category ToolCategory, operation OperationType, op ToolOperation) error {
	if category == "" {
		return errors.New("category cannot be empty")
	}
	if operation == "" {
		return errors.New("operation cannot be empty")
	}
	if err := validateOperation(op); err != nil {
		return fmt.Errorf("%s/%s: %w", category, operation, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tools[category] == nil {
		b.tools[category] = make(map[OperationType]ToolOperation)
	}
	if op.ID == "" {
		op.ID = string(operation)
	}
	b.tools[category][operation] = cloneOperation(op)

	return nil
}

// Build freezes the registered operations into an immutable catalog.
func (b *CatalogBuilder) Build() (*PricingCatalog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.tools) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidPricing)
	}

	tools := make(map[ToolCategory]map[OperationType]ToolOperation, len(b.tools))
	for category, ops := range b.tools {
		if len(ops) == 0 {
			return nil, fmt.Errorf("%w: category %s has no operations", ErrInvalidPricing, category)
		}
		tools[category] = make(map[OperationType]ToolOperation, len(ops))
		for opType, op := range ops {
			tools[category][opType] = cloneOperation(op)
		}
	}

	return &PricingCatalog{
		tools:   tools,
		display: b.display,
	}, nil
}

func validateOperation(op ToolOperation) error {
	if !op.BaseCost.IsPositive() {
		return fmt.Errorf("%w: base cost must be positive, got %s", ErrInvalidPricing, op.BaseCost.String())
	}
	for name, factor := range op.CostMultipliers {
		if name == "" {
			return fmt.Errorf("%w: multiplier name cannot be empty", ErrInvalidPricing)
		}
		if !factor.IsPositive() {
			return fmt.Errorf("%w: multiplier %s must be positive, got %s", ErrInvalidPricing, name, factor.String())
		}
	}
	return nil
}
