package tui

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
	"github.com/muesli/termenv"

	"github.com/travislint/travislint/internal/domain"
)

// ── palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

// Renderer formats lint output for one writer. Styles degrade to plain text
// when the writer is not a color terminal or color is disabled.
type Renderer struct {
	markerStyle lipgloss.Style
	scopeStyle  lipgloss.Style
	headerStyle lipgloss.Style
	dimStyle    lipgloss.Style
	errorStyle  lipgloss.Style
	passStyle   lipgloss.Style
	countStyle  lipgloss.Style
}

// NewRenderer binds styles to w's terminal capabilities.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		markerStyle: r.NewStyle().Bold(true).Foreground(danger),
		scopeStyle:  r.NewStyle().Foreground(warning),
		headerStyle: r.NewStyle().Bold(true).Foreground(accent),
		dimStyle:    r.NewStyle().Foreground(dim),
		errorStyle:  r.NewStyle().Foreground(danger),
		passStyle:   r.NewStyle().Foreground(success),
		countStyle:  r.NewStyle().Bold(true).Foreground(fg),
	}
}

// Report renders one report line without a trailing newline. The message
// itself is never styled.
func (r *Renderer) Report(rep domain.Report) string {
	var b strings.Builder
	b.WriteString(r.markerStyle.Render(strings.TrimSpace(domain.ReportMarker)))
	b.WriteString(" ")
	if len(rep.Key) > 0 {
		b.WriteString(r.scopeStyle.Render("in " + rep.Scope() + ":"))
		b.WriteString(" ")
	}
	b.WriteString(rep.Message)
	return b.String()
}

// Reports renders every report of result, one per line.
func (r *Renderer) Reports(result *domain.LintResult) string {
	var b strings.Builder
	for _, rep := range result.Reports() {
		b.WriteString(r.Report(rep))
		b.WriteString("\n")
	}
	return b.String()
}

// RequestHeader opens the verbose narration before parsing path.
func (r *Renderer) RequestHeader(path, revision string) string {
	var b strings.Builder
	b.WriteString(r.headerStyle.Render("Request..."))
	b.WriteString("\n")
	b.WriteString(r.dimStyle.Render("----------"))
	b.WriteString("\n")
	if revision != "" {
		fmt.Fprintf(&b, "%s\n", r.dimStyle.Render("Commit "+revision))
	}
	fmt.Fprintf(&b, "Parsing %s...\n", path)
	return b.String()
}

// PostingLine is narrated right before the request is sent.
func (r *Renderer) PostingLine() string {
	return "POSTing to the linter...\n"
}

// ResponseHeader is narrated once the linter has answered.
func (r *Renderer) ResponseHeader() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.headerStyle.Render("Response..."))
	b.WriteString("\n")
	b.WriteString(r.dimStyle.Render("-----------"))
	b.WriteString("\n")
	return b.String()
}

// Summary renders report counts per category on one line, e.g.
// "3 reports (warnings: 2, errors: 1)".
func (r *Renderer) Summary(result *domain.LintResult) string {
	total := result.ReportCount()
	if total == 0 {
		return r.passStyle.Render("No reports.") + "\n"
	}

	parts := make([]string, 0, len(result.Categories))
	for _, c := range result.Categories {
		if len(c.Reports) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d", HumanizeCategory(c.Name), len(c.Reports)))
	}

	noun := "reports"
	if total == 1 {
		noun = "report"
	}
	return fmt.Sprintf("%s %s\n",
		r.countStyle.Render(fmt.Sprintf("%d %s", total, noun)),
		r.dimStyle.Render("("+strings.Join(parts, ", ")+")"),
	)
}

// Error renders a failure message without a trailing newline.
func (r *Renderer) Error(err error) string {
	return r.errorStyle.Render(err.Error())
}

// HumanizeCategory turns an API category name such as "unknownKeys" or
// "deprecated_keys" into lower-case words.
func HumanizeCategory(name string) string {
	var words []string
	for _, w := range camelcase.Split(name) {
		if strings.IndexFunc(w, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) < 0 {
			continue
		}
		words = append(words, strings.ToLower(w))
	}
	if len(words) == 0 {
		return name
	}
	return strings.Join(words, " ")
}
