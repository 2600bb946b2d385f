package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

type styles struct {
	title   lipgloss.Style
	dim     lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	path    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("240")),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("220")),
		path:    r.NewStyle().Foreground(lipgloss.Color("81")),
	}
}

// Render writes a human-readable report of findings to w.
func Render(w io.Writer, summaryPath string, findings []Finding) error {
	s := newStyles(w)

	if len(findings) == 0 {
		_, err := fmt.Fprintf(w, "%s every document is listed in %s\n",
			s.success.Render("✓"), summaryPath)
		return err
	}

	noun := "documents"
	if len(findings) == 1 {
		noun = "document"
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", s.warn.Render("!"),
		s.title.Render(fmt.Sprintf("%d %s missing from %s", len(findings), noun, summaryPath))); err != nil {
		return err
	}

	width := lo.Max(lo.Map(findings, func(f Finding, _ int) int { return lipgloss.Width(f.Path) }))
	for _, f := range findings {
		if _, err := fmt.Fprintf(w, "  %s  %s\n",
			s.path.Width(width).Render(f.Path), s.dim.Render(f.Title)); err != nil {
			return err
		}
	}
	return nil
}
