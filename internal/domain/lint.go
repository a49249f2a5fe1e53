package domain

import "strings"

// ReportMarker prefixes every printed report line.
const ReportMarker = "[X] "

// Report is one diagnostic returned by the remote linter.
type Report struct {
	Key     []string `json:"key"`
	Message string   `json:"message"`
}

// Scope returns the dot-joined key path, or "" for an unscoped report.
func (r Report) Scope() string {
	return strings.Join(r.Key, ".")
}

// Line formats the report the way it is printed:
// "[X] in a.b: message", or "[X] message" when the key is empty.
func (r Report) Line() string {
	var b strings.Builder
	b.WriteString(ReportMarker)
	if len(r.Key) > 0 {
		b.WriteString("in ")
		b.WriteString(r.Scope())
		b.WriteString(": ")
	}
	b.WriteString(r.Message)
	return b.String()
}

// Category groups the reports the linter filed under one name.
type Category struct {
	Name    string   `json:"name"`
	Reports []Report `json:"reports"`
}

// LintResult is the decoded lint payload. Categories keep response order.
type LintResult struct {
	Categories []Category `json:"categories"`
}

// ReportCount returns the total number of reports across all categories.
func (r *LintResult) ReportCount() int {
	n := 0
	for _, c := range r.Categories {
		n += len(c.Reports)
	}
	return n
}

// Reports flattens the result in print order.
func (r *LintResult) Reports() []Report {
	out := make([]Report, 0, r.ReportCount())
	for _, c := range r.Categories {
		out = append(out, c.Reports...)
	}
	return out
}

// Lines returns the printed form of every report in print order.
func (r *LintResult) Lines() []string {
	reports := r.Reports()
	lines := make([]string, len(reports))
	for i, rep := range reports {
		lines[i] = rep.Line()
	}
	return lines
}
