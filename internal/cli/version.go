package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Set with -ldflags at release time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

type buildInfo struct {
	Version   string `yaml:"version"`
	Commit    string `yaml:"commit"`
	BuildDate string `yaml:"built"`
	GoVersion string `yaml:"go"`
	Platform  string `yaml:"platform"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Prints the swapfs version with its commit and build date.

--short prints the bare version, for scripts. --yaml adds the Go toolchain
and platform and prints everything as a YAML document.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		info := currentBuild()

		switch {
		case mustGetBool(cmd, "short"):
			fmt.Fprintln(out, info.Version)
		case mustGetBool(cmd, "yaml"):
			data, err := yaml.Marshal(info)
			if err != nil {
				return fmt.Errorf("encoding version: %w", err)
			}
			_, err = out.Write(data)
			return err
		default:
			fmt.Fprintf(out, "swapfs version %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.BuildDate)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version number")
	versionCmd.Flags().Bool("yaml", false, "Print build details as YAML")
	versionCmd.MarkFlagsMutuallyExclusive("short", "yaml")
	rootCmd.AddCommand(versionCmd)
}
