// Package ui renders machine state for the terminal.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"vending-sim/internal/domain"
)

var (
	purple = lipgloss.Color("99")
	green  = lipgloss.Color("76")
	red    = lipgloss.Color("204")
	yellow = lipgloss.Color("214")
	dim    = lipgloss.Color("243")
	faint  = lipgloss.Color("238")
)

var (
	AccentStyle  = lipgloss.NewStyle().Foreground(purple)
	SuccessStyle = lipgloss.NewStyle().Foreground(green)
	ErrorStyle   = lipgloss.NewStyle().Foreground(red)
	WarnStyle    = lipgloss.NewStyle().Foreground(yellow)
	MutedStyle   = lipgloss.NewStyle().Foreground(dim)
	LabelStyle   = lipgloss.NewStyle().Foreground(dim)
)

// DisableColor forces plain ASCII output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func Muted(s string) string { return MutedStyle.Render(s) }

func SuccessMsg(format string, a ...any) string {
	return SuccessStyle.Render("✓") + " " + fmt.Sprintf(format, a...)
}

func WarnMsg(format string, a ...any) string {
	return WarnStyle.Render("!") + " " + fmt.Sprintf(format, a...)
}

func InfoMsg(format string, a ...any) string {
	return AccentStyle.Render("●") + " " + fmt.Sprintf(format, a...)
}

// Pair holds a key-value pair for KeyValues output.
type Pair struct {
	key   string
	value string
}

// KV creates a key-value pair.
func KV(key, value string) Pair {
	return Pair{key: key, value: value}
}

// KeyValues renders aligned "key:  value" lines without a trailing newline.
func KeyValues(indent string, pairs ...Pair) string {
	maxLen := 0
	for _, p := range pairs {
		if len(p.key) > maxLen {
			maxLen = len(p.key)
		}
	}

	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		label := fmt.Sprintf("%-*s", maxLen+1, p.key+":")
		lines = append(lines, indent+LabelStyle.Render(label)+" "+p.value)
	}
	return strings.Join(lines, "\n")
}

// Table renders a styled table with rounded borders.
func Table(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(purple).
		Bold(true).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	oddStyle := cellStyle.Foreground(dim)
	evenStyle := cellStyle

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(faint)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenStyle
			default:
				return oddStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String()
}

// Catalog renders the available items. hasItems tells an empty catalog
// apart from one where everything is sold out.
func Catalog(available []domain.Item, hasItems bool) string {
	if !hasItems {
		return WarnMsg("The machine has no items.")
	}
	if len(available) == 0 {
		return WarnMsg("All items are sold out.")
	}

	rows := make([][]string, 0, len(available))
	for _, item := range available {
		rows = append(rows, []string{
			strconv.Itoa(item.ID),
			item.Name,
			strconv.Itoa(item.Price),
			strconv.Itoa(item.Stock),
		})
	}
	return Table([]string{"ID", "NAME", "PRICE", "STOCK"}, rows)
}

// Status renders the observable machine state.
func Status(state domain.State, balance int, txID string) string {
	if txID == "" {
		txID = Muted("-")
	}
	return KeyValues("",
		KV("State", stateLabel(state)),
		KV("Balance", strconv.Itoa(balance)),
		KV("Transaction", txID),
	)
}

func stateLabel(s domain.State) string {
	switch s {
	case domain.StateReadyToSelect:
		return SuccessStyle.Render(s.String())
	case domain.StateOutOfStockSelected, domain.StateInsufficientFunds:
		return WarnStyle.Render(s.String())
	case domain.StateIdle:
		return MutedStyle.Render(s.String())
	default:
		return AccentStyle.Render(s.String())
	}
}
