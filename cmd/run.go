package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/gomutest/internal/domain"
	m "gooze.dev/pkg/gomutest/internal/model"
)

var mutationTimeoutFlag time.Duration

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run mutation testing",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(cmd.Context(), domain.RunArgs{
				ListArgs:        listArgs(args),
				Reports:         m.Path(viper.GetString(outputFlagName)),
				ReportFormat:    viper.GetString(reportFormatConfigKey),
				MutationTimeout: viper.GetDuration(mutationTimeoutConfigKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVarP(&mutationTimeoutFlag, mutationTimeoutFlagName, "t", viper.GetDuration(mutationTimeoutConfigKey), "timeout for the go test run of a single mutant")
	bindFlagToConfig(cmd.Flags().Lookup(mutationTimeoutFlagName), mutationTimeoutConfigKey)
}
