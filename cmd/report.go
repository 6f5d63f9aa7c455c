package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gooze.dev/pkg/gomutest/internal/domain"
	m "gooze.dev/pkg/gomutest/internal/model"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the reports of the last run",
		Long:  "Show the trial reports stored by the last run and the resulting mutation score.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Report(cmd.Context(), domain.ReportArgs{
				Reports:      m.Path(viper.GetString(outputFlagName)),
				ReportFormat: viper.GetString(reportFormatConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
