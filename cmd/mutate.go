package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gooze.dev/pkg/gomutest/internal/domain"
	m "gooze.dev/pkg/gomutest/internal/model"
)

const mutateLongDescription = `Build a single mutant and write it to the file's __gomutest__ cache slot.

SITE is printed by the list command, e.g. BinaryExpr@7:11(+). The mutant
stays in place and can be exercised with the printed -overlay flag, e.g.

  gomutest mutate calc/calc.go 'BinaryExpr@7:11(+)' '*'
  go test -overlay=calc/__gomutest__/calc.gomutest-go1.25.overlay.json ./calc`

// mutateCmd represents the mutate command.
var mutateCmd = newMutateCmd()

func newMutateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mutate FILE SITE OPERATOR",
		Short: "Write one mutant and show its diff",
		Long:  mutateLongDescription,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := m.ParseSite(args[1])
			if err != nil {
				return fmt.Errorf("invalid site: %w", err)
			}

			return workflow.Mutate(cmd.Context(), domain.MutateArgs{
				Source:      m.Path(args[0]),
				Site:        site,
				Replacement: args[2],
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(mutateCmd)
}
