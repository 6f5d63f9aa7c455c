package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "gooze.dev/pkg/gomutest/internal/model"
)

// SimpleUI implements UI by printing to the cobra command's output.
type SimpleUI struct {
	cmd    *cobra.Command
	styles verdictStyles
}

type verdictStyles map[m.Verdict]lipgloss.Style

// NewSimpleUI creates a new SimpleUI. With color disabled verdicts are
// printed as plain text.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, styles: newVerdictStyles(color)}
}

// SetColor switches verdict coloring on or off.
func (s *SimpleUI) SetColor(color bool) {
	s.styles = newVerdictStyles(color)
}

func newVerdictStyles(color bool) verdictStyles {
	styles := verdictStyles{
		m.Survived: lipgloss.NewStyle(),
		m.Detected: lipgloss.NewStyle(),
		m.Errored:  lipgloss.NewStyle(),
		m.Unknown:  lipgloss.NewStyle(),
	}

	if !color {
		return styles
	}

	styles[m.Survived] = styles[m.Survived].Foreground(lipgloss.Color("1")).Bold(true)
	styles[m.Detected] = styles[m.Detected].Foreground(lipgloss.Color("2"))
	styles[m.Errored] = styles[m.Errored].Foreground(lipgloss.Color("3"))
	styles[m.Unknown] = styles[m.Unknown].Foreground(lipgloss.Color("8"))

	return styles
}

func (v verdictStyles) render(verdict m.Verdict) string {
	return v[verdict].Render(verdict.String())
}

// DisplayTargets prints one row per candidate site.
func (s *SimpleUI) DisplayTargets(ctx context.Context, rows []TargetRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderTargetTable(rows))

	return nil
}

func renderTargetTable(rows []TargetRow) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Site", "Category", "Alternatives", "Covered"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})

	files := make(map[m.Path]struct{})
	covered := 0

	for _, row := range rows {
		files[row.Source] = struct{}{}

		mark := "-"
		if row.Covered {
			mark = "yes"
			covered++
		}

		table.Append([]string{
			string(row.Source),
			row.Site.String(),
			string(row.Category),
			strings.Join(row.Alternatives, " "),
			mark,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(files)),
		fmt.Sprintf("%d sites", len(rows)),
		"",
		"",
		fmt.Sprintf("%d", covered),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayMutant prints where a mutant was written and its diff.
func (s *SimpleUI) DisplayMutant(ctx context.Context, mutant m.Mutant, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Mutant %s -> %s written to %s\n", mutant.Site, mutant.Replacement, mutant.CachePath)
	s.printf("Run with: go test %s ./...\n", mutant.OverlayFlag())

	if diff != "" {
		s.printf("%s\n", diff)
	}

	return nil
}

// StartRun prints how many trials the run will try.
func (s *SimpleUI) StartRun(ctx context.Context, total int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %d mutants\n", total)
}

// DisplayTrial prints the verdict of one trial.
func (s *SimpleUI) DisplayTrial(ctx context.Context, result m.TrialResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", s.trialLine(result))
}

// FinishRun has nothing to tear down for plain output.
func (s *SimpleUI) FinishRun(context.Context) {}

func (s *SimpleUI) trialLine(result m.TrialResult) string {
	return fmt.Sprintf("%s %s %s -> %s (exit %d)",
		s.styles.render(result.Verdict),
		result.Mutant.Source,
		result.Mutant.Site,
		result.Mutant.Replacement,
		result.Status,
	)
}

// DisplaySummary prints verdict counts and the mutation score.
func (s *SimpleUI) DisplaySummary(ctx context.Context, tally m.Tally) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%d mutants: %s %d, %s %d, %s %d, %s %d\n",
		tally.Total(),
		s.styles.render(m.Detected), tally.Detected,
		s.styles.render(m.Survived), tally.Survived,
		s.styles.render(m.Errored), tally.Errored,
		s.styles.render(m.Unknown), tally.Unknown,
	)
	s.printf("Mutation score: %.2f%%\n", tally.Score())
}

// DisplayReports prints stored trial reports as a table.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("No reports found.\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Site", "Replacement", "Verdict"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, r := range reports {
		table.Append([]string{
			string(r.Source),
			r.Site,
			r.Replacement,
			s.styles.render(m.ParseVerdict(r.Verdict)),
		})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
