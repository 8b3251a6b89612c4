package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/davidbz/creditledger/internal/domain"
)

var (
	colorCyan   = lipgloss.Color("#00d4ff")
	colorOrange = lipgloss.Color("#f97316")
	colorField  = lipgloss.Color("#0099cc")
	colorRed    = lipgloss.Color("#ef4444")

	headingStyle = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorField)
	valueStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	okStyle      = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

func renderCategory(w io.Writer, category domain.ToolCategory, displays []domain.PricingDisplay) {
	fmt.Fprintln(w, headingStyle.Render(string(category)))

	for _, d := range displays {
		fmt.Fprintf(w, "  %-20s %s credits  %s\n",
			labelStyle.Render(string(d.Operation)),
			valueStyle.Render(d.BaseCost.String()),
			d.Name,
		)

		names := make([]string, 0, len(d.Multipliers))
		for name := range d.Multipliers {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(w, "      %-18s %s\n", name, d.Multipliers[name])
		}
	}
}

func renderQuote(
	w io.Writer,
	category domain.ToolCategory,
	operation domain.OperationType,
	multipliers []string,
	cost decimal.Decimal,
) {
	fmt.Fprintln(w, headingStyle.Render(string(category)+"/"+string(operation)))
	if len(multipliers) > 0 {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("multipliers:"), strings.Join(multipliers, ", "))
	}
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("cost:"), valueStyle.Render(cost.String()))
}

func renderCheck(w io.Writer, result domain.BalanceCheckResult) {
	verdict := okStyle.Render("sufficient")
	if !result.HasEnoughBalance {
		verdict = errorStyle.Render("insufficient")
	}

	fmt.Fprintln(w, headingStyle.Render("balance check"), verdict)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("current:"), result.CurrentBalance.String())
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("required:"), result.RequiredBalance.String())
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("shortfall:"), result.Shortfall.String())
}
