package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"gooze.dev/pkg/gomutest/internal/domain"
)

const unknownVersion = "unknown"

// buildVersion returns the module version and VCS revision recorded in the binary.
func buildVersion(info *debug.BuildInfo, ok bool) (version, revision string) {
	version, revision = unknownVersion, ""
	if !ok {
		return version, revision
	}

	if info.Main.Version != "" {
		version = info.Main.Version
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			revision = setting.Value
		}
	}

	return version, revision
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show gomutest build information",
		Long: `Displays the gomutest version, the Go toolchain it runs with and the tag
used to name mutant cache slots (files under __gomutest__ directories).`,
		Run: func(cmd *cobra.Command, _ []string) {
			version, revision := buildVersion(debug.ReadBuildInfo())
			if revision != "" {
				version = fmt.Sprintf("%s (%s)", version, revision)
			}

			cmd.Println("gomutest\t", version)
			cmd.Println("go\t\t", runtime.Version())
			cmd.Println("cache tag\t", domain.CacheTag())
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
