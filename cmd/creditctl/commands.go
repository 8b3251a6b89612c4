package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/davidbz/creditledger/internal/catalog"
	"github.com/davidbz/creditledger/internal/domain"
)

var errMissingOperation = errors.New("expected <category> <operation>")

var catalogFlag = &cli.StringFlag{
	Name:    "catalog",
	Usage:   "YAML file merged over the built-in pricing catalog",
	Sources: cli.EnvVars("PRICING_CATALOG_FILE"),
}

// RootCommand builds the creditctl command tree.
func RootCommand() *cli.Command {
	return &cli.Command{
		Name:            "creditctl",
		Usage:           "Inspect credit pricing offline",
		HideHelpCommand: true,
		Writer:          os.Stdout,
		Flags: []cli.Flag{
			catalogFlag,
			&cli.BoolFlag{
				Name:  "legacy-percent",
				Usage: "Render non-positive multiplier deltas without a percent sign",
			},
		},
		Commands: []*cli.Command{
			PricingCommand(),
			QuoteCommand(),
			CheckCommand(),
		},
	}
}

func PricingCommand() *cli.Command {
	return &cli.Command{
		Name:  "pricing",
		Usage: "List priced operations and their multipliers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Usage: "Only show one tool category",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			categories := c.Categories()
			if filter := cmd.String("category"); filter != "" {
				if _, err := c.Operations(domain.ToolCategory(filter)); err != nil {
					return err
				}
				categories = []domain.ToolCategory{domain.ToolCategory(filter)}
			}

			out := writer(cmd)
			for _, category := range categories {
				ops, err := c.Operations(category)
				if err != nil {
					return err
				}

				displays := make([]domain.PricingDisplay, 0, len(ops))
				for _, op := range ops {
					display, err := c.GetToolPricingDisplay(category, op)
					if err != nil {
						return err
					}
					displays = append(displays, display)
				}
				renderCategory(out, category, displays)
			}
			return nil
		},
	}
}

func operationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "multiplier",
			Aliases: []string{"m"},
			Usage:   "Multiplier name, repeatable",
		},
		&cli.StringFlag{
			Name:  "quality",
			Usage: "Image quality: standard, high or ultra",
		},
		&cli.IntFlag{
			Name:  "duration",
			Usage: "Video length in seconds",
		},
		&cli.StringFlag{
			Name:  "resolution",
			Usage: "Video resolution, e.g. 1080p or 4k",
		},
		&cli.BoolFlag{
			Name:  "long-form",
			Usage: "Long-form script",
		},
	}
}

func QuoteCommand() *cli.Command {
	return &cli.Command{
		Name:      "quote",
		Usage:     "Price one operation",
		ArgsUsage: "<category> <operation>",
		Flags:     operationFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			category, operation, err := operationArgs(cmd)
			if err != nil {
				return err
			}

			multipliers := collectMultipliers(cmd)
			cost, err := c.CalculateOperationCost(category, operation, multipliers...)
			if err != nil {
				return err
			}

			renderQuote(writer(cmd), category, operation, multipliers, cost)
			return nil
		},
	}
}

func CheckCommand() *cli.Command {
	flags := append(operationFlags(), &cli.StringFlag{
		Name:     "balance",
		Usage:    "Balance to check against",
		Required: true,
	})

	return &cli.Command{
		Name:      "check",
		Usage:     "Check whether a balance covers an operation",
		ArgsUsage: "<category> <operation>",
		Flags:     flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			category, operation, err := operationArgs(cmd)
			if err != nil {
				return err
			}

			balance, err := decimal.NewFromString(cmd.String("balance"))
			if err != nil {
				return fmt.Errorf("%w: %q", domain.ErrInvalidAmount, cmd.String("balance"))
			}

			result, err := c.CheckOperationBalance(balance, category, operation, collectMultipliers(cmd)...)
			if err != nil {
				return err
			}

			renderCheck(writer(cmd), result)
			return nil
		},
	}
}

func loadCatalog(cmd *cli.Command) (*domain.PricingCatalog, error) {
	return catalog.LoadFile(
		cmd.String("catalog"),
		nil,
		domain.WithLegacyPercentFormat(cmd.Bool("legacy-percent")),
	)
}

func operationArgs(cmd *cli.Command) (domain.ToolCategory, domain.OperationType, error) {
	if cmd.Args().Len() != 2 { //nolint:mnd
		return "", "", errMissingOperation
	}
	return domain.ToolCategory(cmd.Args().Get(0)), domain.OperationType(cmd.Args().Get(1)), nil
}

func collectMultipliers(cmd *cli.Command) []string {
	names := append([]string(nil), cmd.StringSlice("multiplier")...)
	names = append(names, domain.ImageQualityMultipliers(cmd.String("quality"))...)
	names = append(names, domain.VideoMultipliers(cmd.Int("duration"), cmd.String("resolution"))...)
	names = append(names, domain.ScriptMultipliers(cmd.Bool("long-form"))...)
	return names
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
