package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/sells-group/opportunity-cli/internal/model"
)

const previewLen = 500

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Padding(0, 1)
	previewStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// renderState formats a finished run for the terminal.
func renderState(s model.State) string {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	b.WriteString(bannerStyle.Render(rule) + "\n")
	b.WriteString(bannerStyle.Render("CONSULTATION RESULTS") + "\n")
	b.WriteString(bannerStyle.Render(rule) + "\n\n")

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Company:"), s.CompanyName)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Industry:"), s.IndustryOr(model.NotAvailable))

	writeList(&b, "Key Offerings", s.KeyOfferings)
	writeList(&b, "Strategic Focus Areas", s.StrategicFocus)

	b.WriteString("\n" + headingStyle.Render(fmt.Sprintf("Generated Use Cases (%d)", len(s.UseCases))) + "\n")
	for i, uc := range s.UseCases {
		fmt.Fprintf(&b, "\n  %d. %s\n", i+1, orNA(uc.Title))
		fmt.Fprintf(&b, "     %s %s\n", labelStyle.Render("Description:"), orNA(uc.Description))
		fmt.Fprintf(&b, "     %s %s\n", labelStyle.Render("Impact:"), orNA(uc.Impact))
		fmt.Fprintf(&b, "     %s %s\n", labelStyle.Render("Technologies:"), strings.Join(uc.Technologies, ", "))
	}

	report := ""
	if s.FinalReport != nil {
		report = *s.FinalReport
	}
	fmt.Fprintf(&b, "\n%s\n", headingStyle.Render(fmt.Sprintf("Final Report generated (%d characters)", utf8.RuneCountInString(report))))

	if s.HasError() {
		b.WriteString("\n" + errorStyle.Render("Errors: "+s.Error) + "\n")
	}

	if report != "" {
		b.WriteString("\n" + labelStyle.Render("Report Preview:") + "\n")
		b.WriteString(previewStyle.Render(preview(report, previewLen)) + "\n")
	}

	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	b.WriteString("\n" + headingStyle.Render(heading+":") + "\n")
	for _, it := range items {
		fmt.Fprintf(b, "  • %s\n", it)
	}
}

// preview returns the first n characters of report, marked with "..." when cut.
func preview(report string, n int) string {
	r := []rune(report)
	if len(r) <= n {
		return report
	}
	return string(r[:n]) + "..."
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
