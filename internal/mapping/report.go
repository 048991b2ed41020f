// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapping

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("34")
	colorWarning = lipgloss.Color("214")
	colorError   = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("245")
)

// Write prints the human-readable report: unmapped shapes, warnings, then
// either the itemized errors or the coverage summary. Colors are used only
// when w is a terminal.
func (r *Report) Write(w io.Writer) error {
	re := lipgloss.NewRenderer(w)
	warn := re.NewStyle().Foreground(colorWarning).Bold(true)
	fail := re.NewStyle().Foreground(colorError).Bold(true)
	ok := re.NewStyle().Foreground(colorSuccess).Bold(true)
	item := re.NewStyle().Foreground(colorMuted)

	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("\n%s\n", warn.Render(fmt.Sprintf("⚠️  %d unmapped paths:", len(r.Unmapped))))
	for _, id := range r.Unmapped {
		printf("   - %s\n", item.Render(id))
	}

	if len(r.Warnings) > 0 {
		printf("\n%s\n", warn.Render(fmt.Sprintf("⚠️  %d warnings:", len(r.Warnings))))
		for _, issue := range r.Warnings {
			printf("   - %s\n", issue.Message)
		}
	}

	if !r.Valid() {
		printf("\n%s\n", fail.Render(fmt.Sprintf("❌ %d validation errors:", len(r.Errors))))
		for _, e := range r.Errors {
			printf("   - %s\n", e.Message)
		}
		return err
	}

	printf("\n%s\n", ok.Render("✓ Mapping is valid!"))
	printf("  - %d/%d paths mapped\n", r.Mapped, r.Total)
	return err
}
