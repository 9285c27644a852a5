// Package render formats conversion results for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vadiminshakov/crossrate/internal/domain"
	"github.com/vadiminshakov/crossrate/internal/storage/journal"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	failure   = lipgloss.AdaptiveColor{Light: "#E0245E", Dark: "#FF5F87"}

	titleStyle  = lipgloss.NewStyle().Foreground(highlight).Bold(true)
	amountStyle = lipgloss.NewStyle().Foreground(special).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(highlight).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(failure)
)

// Amount returns the rounded result, the only thing printed per file by default.
func Amount(conv domain.Conversion) string {
	return conv.Amount.String()
}

// Explain returns a report of the path taken, one row per hop.
func Explain(origin string, conv domain.Conversion) string {
	var b strings.Builder

	title := conv.Request.String()
	if origin != "" {
		title = origin + "  " + title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if conv.Hops() == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(subtle).Render("same currency, no conversion needed"))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, conv.Hops())
		for i, hop := range conv.Path {
			rows = append(rows, []string{strconv.Itoa(i + 1), hop.From.String(), hop.To.String(), hop.Rate.String()})
		}
		b.WriteString(newTable("#", "From", "To", "Rate").Rows(rows...).Render())
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("exact  %s\n", conv.Exact.String()))
	b.WriteString(fmt.Sprintf("amount %s %s\n", amountStyle.Render(conv.Amount.String()), conv.Request.Target))

	return b.String()
}

// Failure formats a failed conversion as "origin: message".
func Failure(origin string, err error) string {
	if origin == "" {
		return errorStyle.Render(err.Error())
	}
	return errorStyle.Render(fmt.Sprintf("%s: %v", origin, err))
}

// History returns journal records as a table, oldest first.
func History(records []journal.Record) string {
	if len(records) == 0 {
		return lipgloss.NewStyle().Foreground(subtle).Render("journal is empty")
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		e := rec.Entry
		result := e.Amount
		if !e.Succeeded() {
			result = "error: " + e.Error
		}
		rows = append(rows, []string{
			strconv.FormatUint(rec.Index, 10),
			e.Time.Format("2006-01-02 15:04:05"),
			e.Origin,
			fmt.Sprintf("%s;%s;%s", e.Source, e.Notional, e.Target),
			e.Route,
			result,
		})
	}

	return newTable("#", "Time (UTC)", "File", "Request", "Route", "Result").Rows(rows...).Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(subtle)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
