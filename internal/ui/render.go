// Package ui renders human-readable command summaries.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/phoenixveritas/vaultasg/internal/descriptor"
	"github.com/phoenixveritas/vaultasg/internal/publish"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)
)

const checkMark = "[OK]"

// IsInteractiveTTY reports whether f is attached to a terminal.
func IsInteractiveTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderSynthSummary describes a synthesized stack and the files written for it.
func RenderSynthSummary(d *descriptor.Descriptor, files []string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  vaultasg synth: %s", d.StackName)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "    Environment:  %s\n", d.Environment)
	fmt.Fprintf(&b, "    Template:     %s\n", d.TemplateFile)
	fmt.Fprintf(&b, "    Hash:         %s\n", shortHash(d.TemplateHash))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Resources"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")
	for _, c := range d.Summary {
		fmt.Fprintf(&b, "    %-42s %3d\n", c.Type, c.Count)
	}
	fmt.Fprintf(&b, "    %-42s %3d\n", "Total", d.ResourceTotal())

	if len(files) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Files"))
		b.WriteString("\n")
		for _, f := range files {
			b.WriteString("    ")
			b.WriteString(okStyle.Render(checkMark))
			b.WriteString(" ")
			b.WriteString(f)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderPublishSummary describes the objects uploaded by publish.
func RenderPublishSummary(stackName string, res *publish.Result) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  vaultasg publish: %s", stackName)))
	b.WriteString("\n\n")

	template := res.TemplateURL
	if res.TemplateReused {
		template += dimStyle.Render(" (unchanged)")
	}
	b.WriteString("    ")
	b.WriteString(okStyle.Render(checkMark))
	fmt.Fprintf(&b, " template  %s\n", template)
	b.WriteString("    ")
	b.WriteString(okStyle.Render(checkMark))
	fmt.Fprintf(&b, " manifest  %s\n", res.ManifestURL)

	return b.String()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
