package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/davidbz/creditledger/internal/domain"
)

// File is the YAML layout of a catalog override.
//
//	replace: false
//	tools:
//	  image-generation:
//	    text-to-image:
//	      name: Text to image
//	      description: Generate an image from a text prompt
//	      base_cost: 6
//	      cost_multipliers:
//	        high-quality: 1.75
type File struct {
	// Replace drops the base catalog instead of merging over it.
	Replace bool                                `koanf:"replace"`
	Tools   map[string]map[string]OperationFile `koanf:"tools"`
}

// OperationFile is one operation entry of a catalog override.
type OperationFile struct {
	Name            string             `koanf:"name"`
	Description     string             `koanf:"description"`
	BaseCost        float64            `koanf:"base_cost"`
	CostMultipliers map[string]float64 `koanf:"cost_multipliers"`
}

// LoadFile merges the override file at path over base and validates the result.
// A nil base means the built-in catalog. An empty or missing path yields base
// rebuilt with opts, so callers don't need to check existence first.
func LoadFile(path string, base *domain.PricingCatalog, opts ...domain.DisplayOption) (*domain.PricingCatalog, error) {
	if base == nil {
		base = domain.DefaultCatalog()
	}

	if path == "" {
		return domain.NewCatalogBuilderFrom(base, opts...).Build()
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return domain.NewCatalogBuilderFrom(base, opts...).Build()
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var overrides File
	if err := k.Unmarshal("", &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}

	return Apply(overrides, base, opts...)
}

// Apply merges decoded overrides over base.
func Apply(overrides File, base *domain.PricingCatalog, opts ...domain.DisplayOption) (*domain.PricingCatalog, error) {
	builder := domain.NewCatalogBuilder(opts...)
	if !overrides.Replace {
		builder = domain.NewCatalogBuilderFrom(base, opts...)
	}

	for category, operations := range overrides.Tools {
		for operation, entry := range operations {
			op := domain.ToolOperation{
				ID:          operation,
				Name:        entry.Name,
				Description: entry.Description,
				BaseCost:    decimal.NewFromFloat(entry.BaseCost),
			}
			if op.Name == "" {
				op.Name = operation
			}
			if len(entry.CostMultipliers) > 0 {
				op.CostMultipliers = make(map[string]decimal.Decimal, len(entry.CostMultipliers))
				for name, factor := range entry.CostMultipliers {
					op.CostMultipliers[name] = decimal.NewFromFloat(factor)
				}
			}

			if err := builder.Register(domain.ToolCategory(category), domain.OperationType(operation), op); err != nil {
				return nil, fmt.Errorf("invalid catalog entry: %w", err)
			}
		}
	}

	return builder.Build()
}
