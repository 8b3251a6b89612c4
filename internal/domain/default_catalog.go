package domain

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Multiplier names understood by the default catalog.
const (
	MultiplierStandardQuality = "standard-quality"
	MultiplierHighQuality     = "high-quality"
	MultiplierUltraQuality    = "ultra-quality"
	MultiplierDuration5s      = "duration-5s"
	MultiplierDuration10s     = "duration-10s"
	MultiplierDuration15s     = "duration-15s"
	MultiplierDuration30s     = "duration-30s"
	MultiplierHDQuality       = "hd-quality"
	Multiplier4KQuality       = "4k-quality"
	MultiplierLongForm        = "long-form"
)

//nolint:gochecknoglobals // Built once, read-only afterwards
var defaultCatalog = sync.OnceValue(func() *PricingCatalog {
	catalog, err := NewDefaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("default pricing catalog is invalid: %v", err))
	}
	return catalog
})

// DefaultCatalog returns the process-wide built-in catalog.
func DefaultCatalog() *PricingCatalog {
	return defaultCatalog()
}

// NewDefaultCatalog builds a fresh copy of the built-in catalog with the given display options.
func NewDefaultCatalog(opts ...DisplayOption) (*PricingCatalog, error) {
	builder := NewCatalogBuilder(opts...)
	if err := RegisterDefaultPricing(builder); err != nil {
		return nil, err
	}
	return builder.Build()
}

// RegisterDefaultPricing registers the built-in operations with a builder.
func RegisterDefaultPricing(b *CatalogBuilder) error {
	for _, register := range []func(*CatalogBuilder) error{
		registerImagePricing,
		registerVideoPricing,
		registerScriptPricing,
		registerPromptEnhancementPricing,
	} {
		if err := register(b); err != nil {
			return fmt.Errorf("failed to register default pricing: %w", err)
		}
	}
	return nil
}

// FreeBalanceByUserType returns the starting credits of a newly provisioned account per user type.
func FreeBalanceByUserType() map[UserType]int64 {
	return map[UserType]int64{
		UserTypeGuest:   50,
		UserTypeRegular: 100,
		UserTypeDemo:    100,
	}
}

func registerImagePricing(b *CatalogBuilder) error {
	quality := map[string]decimal.Decimal{
		MultiplierStandardQuality: decimal.NewFromInt(1),
		MultiplierHighQuality:     decimal.RequireFromString("1.5"),
		MultiplierUltraQuality:    decimal.NewFromInt(2),
	}

	if err := b.Register(CategoryImageGeneration, OperationTextToImage, ToolOperation{
		Name:            "Text to image",
		Description:     "Generate an image from a text prompt",
		BaseCost:        decimal.NewFromInt(5),
		CostMultipliers: quality,
	}); err != nil {
		return err
	}

	return b.Register(CategoryImageGeneration, OperationImageToImage, ToolOperation{
		Name:            "Image to image",
		Description:     "Transform an existing image guided by a prompt",
		BaseCost:        decimal.NewFromInt(5),
		CostMultipliers: quality,
	})
}

func registerVideoPricing(b *CatalogBuilder) error {
	videoMultipliers := map[string]decimal.Decimal{
		MultiplierDuration5s:  decimal.NewFromInt(1),
		MultiplierDuration10s: decimal.NewFromInt(2),
		MultiplierDuration15s: decimal.NewFromInt(3),
		MultiplierDuration30s: decimal.NewFromInt(6),
		MultiplierHDQuality:   decimal.NewFromInt(1),
		Multiplier4KQuality:   decimal.NewFromInt(2),
	}

	if err := b.Register(CategoryVideoGeneration, OperationTextToVideo, ToolOperation{
		Name:            "Text to video",
		Description:     "Short video (5s) generated from a text prompt",
		BaseCost:        decimal.RequireFromString("7.5"),
		CostMultipliers: videoMultipliers,
	}); err != nil {
		return err
	}

	return b.Register(CategoryVideoGeneration, OperationImageToVideo, ToolOperation{
		Name:            "Image to video",
		Description:     "Short video (5s) animated from a source image",
		BaseCost:        decimal.RequireFromString("11.25"),
		CostMultipliers: videoMultipliers,
	})
}

func registerScriptPricing(b *CatalogBuilder) error {
	return b.Register(CategoryScriptGeneration, OperationBasicScript, ToolOperation{
		Name:        "Basic script",
		Description: "Generate a scene script from a brief",
		BaseCost:    decimal.NewFromInt(1),
		CostMultipliers: map[string]decimal.Decimal{
			MultiplierLongForm: decimal.NewFromInt(2),
		},
	})
}

func registerPromptEnhancementPricing(b *CatalogBuilder) error {
	if err := b.Register(CategoryPromptEnhancement, OperationBasicEnhancement, ToolOperation{
		Name:        "Basic enhancement",
		Description: "Rewrite a prompt for better generation results",
		BaseCost:    decimal.NewFromInt(1),
	}); err != nil {
		return err
	}

	return b.Register(CategoryPromptEnhancement, OperationVeo3Enhancement, ToolOperation{
		Name:        "Veo3 enhancement",
		Description: "Expand a prompt into a structured Veo3 video prompt",
		BaseCost:    decimal.NewFromInt(2),
	})
}
