package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

// rendererStyles holds the lipgloss styles for the console summary.
type rendererStyles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Added   lipgloss.Style
	Removed lipgloss.Style
	Muted   lipgloss.Style
}

func defaultRendererStyles() rendererStyles {
	return rendererStyles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Added:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Removed: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func plainRendererStyles() rendererStyles {
	plain := lipgloss.NewStyle()
	return rendererStyles{Title: plain, Section: plain, Added: plain, Removed: plain, Muted: plain}
}

// Renderer writes a human-readable changelog summary to a console.
type Renderer struct {
	out    io.Writer
	styles rendererStyles
}

// NewRenderer returns a Renderer writing to out. Styling is enabled only when
// out is a terminal and neither NO_COLOR nor CI is set, so piped output stays
// plain text.
func NewRenderer(out io.Writer) *Renderer {
	if colorEnabled(out) {
		return &Renderer{out: out, styles: defaultRendererStyles()}
	}
	return NewPlainRenderer(out)
}

// NewPlainRenderer returns a Renderer with styling disabled.
func NewPlainRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, styles: plainRendererStyles()}
}

func colorEnabled(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Render prints the changelog summary: version pair, per-category table
// lists, status transitions and a per-table breakdown.
func (r *Renderer) Render(c *clifdict.Changelog) {
	fmt.Fprintln(r.out, r.styles.Title.Render(
		fmt.Sprintf("Changelog %s -> %s", c.Metadata.OldVersion, c.Metadata.NewVersion)))
	fmt.Fprintln(r.out, r.styles.Muted.Render(
		fmt.Sprintf("generated %s", c.Metadata.GeneratedAt.Format("2006-01-02 15:04:05 MST"))))
	fmt.Fprintln(r.out)

	if c.Summary.TotalChanges == 0 {
		fmt.Fprintln(r.out, "No changes detected between versions.")
		return
	}

	r.section("Tables added", c.Summary.TablesAdded, r.styles.Added)
	r.section("Tables removed", c.Summary.TablesRemoved, r.styles.Removed)
	r.section("Tables modified", c.Summary.TablesModified, r.styles.Section)

	for _, key := range sortedTransitionKeys(c.Summary.StatusChanges) {
		bucket := c.Summary.StatusChanges[key]
		r.section("Status "+strings.ReplaceAll(key, "_", " "), bucket.Tables, r.styles.Section)
	}

	r.renderChangesTable(c)
	fmt.Fprintf(r.out, "Total changes: %d\n", c.Summary.TotalChanges)
}

func (r *Renderer) section(label string, tables []string, style lipgloss.Style) {
	if len(tables) == 0 {
		return
	}
	fmt.Fprintf(r.out, "%s (%d): %s\n",
		style.Render(label), len(tables), strings.Join(tables, ", "))
}

func (r *Renderer) renderChangesTable(c *clifdict.Changelog) {
	if len(c.Changes) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "Change", "Details"})

	for _, name := range sortedChangeNames(c.Changes) {
		change := c.Changes[name]
		t.AppendRow(table.Row{name, changeKinds(change), changeDetails(change)})
	}

	t.Render()
}

func changeKinds(change *clifdict.TableChange) string {
	kinds := make([]string, len(change.ChangeTypes))
	for i, ct := range change.ChangeTypes {
		kinds[i] = strings.TrimPrefix(string(ct), "table_")
	}
	return strings.Join(kinds, ", ")
}

func changeDetails(change *clifdict.TableChange) string {
	var parts []string
	if change.Has(clifdict.ChangeTableStatusChanged) {
		parts = append(parts, fmt.Sprintf("%s -> %s", change.OldStatus, change.NewStatus))
	}
	if n := len(change.VariablesAdded); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d variables", n))
	}
	if n := len(change.VariablesRemoved); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d variables", n))
	}
	if n := len(change.VariablesModified); n > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", n))
	}
	return strings.Join(parts, ", ")
}

func sortedChangeNames(changes map[string]*clifdict.TableChange) []string {
	set := make(map[string]bool, len(changes))
	for name := range changes {
		set[name] = true
	}
	return sortedNames(set)
}

func sortedTransitionKeys(buckets map[string]*clifdict.StatusTransition) []string {
	set := make(map[string]bool, len(buckets))
	for key := range buckets {
		set[key] = true
	}
	return sortedNames(set)
}
