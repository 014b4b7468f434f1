package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/artisanexperiences/swapfs/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "swapfs",
	Short: "Inspect and move file trees between disk and memory",
	Long: `swapfs drives the same file system operations against the real disk or an
in-memory virtual file system. Use it to look at fixtures, hash their
contents and move trees between a virtual file system and a disk directory.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || !isInteractive() {
			ui.SetPlain()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if noColor || !isInteractive() {
			return cmd.Help()
		}
		printBanner(cmd)
		return nil
	},
}

var (
	noColor       bool
	isInteractive = ui.IsInteractive
)

func printBanner(cmd *cobra.Command) {
	blockLetters := [][]string{
		{"█▀▀", "▀▀█", "▀▀▀"},
		{"█ █ █", "█▄▀▄█", "▀   ▀"},
		{"▄▀█", "█▀█", "▀ ▀"},
		{"█▀█", "█▀▀", "▀  "},
		{"█▀▀", "█▀ ", "▀  "},
		{"█▀▀", "▀▀█", "▀▀▀"},
	}

	colors := []lipgloss.Color{
		lipgloss.Color("#7DD3FC"),
		lipgloss.Color("#38BDF8"),
		lipgloss.Color("#0EA5E9"),
		lipgloss.Color("#0284C7"),
		lipgloss.Color("#0369A1"),
		lipgloss.Color("#075985"),
	}

	out := cmd.OutOrStdout()
	for row := 0; row < 3; row++ {
		var lineParts []string
		for i, letter := range blockLetters {
			style := lipgloss.NewStyle().
				Foreground(colors[i]).
				Bold(true).
				MarginRight(1)
			lineParts = append(lineParts, style.Render(letter[row]))
		}
		fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top, lineParts...))
	}

	versionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginTop(1)

	commandsStyle := lipgloss.NewStyle().
		Foreground(ui.Text)

	commands := `
Commands:
  init     Write a swapfs.yaml for this directory
  tree     Show a directory tree from the configured backend
  hash     Print SHA-256 hashes and digests of files
  export   Copy a backend tree into a disk directory
  import   Read a disk directory into a fixture document
  version  Show swapfs version

Run 'swapfs <command> --help' for more information.`

	versionLine := fmt.Sprintf("Version %s (commit: %s, built: %s)", Version, Commit, BuildDate)
	fmt.Fprintln(out, versionStyle.Render(versionLine))
	fmt.Fprintln(out, commandsStyle.Render(commands))
}

func Execute() error {
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		if ui.IsAbort(err) {
			return nil
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("config-dir", "", "Directory holding swapfs.yaml (defaults to the working directory)")
	rootCmd.PersistentFlags().String("backend", "", "File system backend: disk or memory")
	rootCmd.PersistentFlags().String("fixture", "", "Fixture document seeding the memory backend")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Preview operations without executing")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Bool("no-interactive", false, "Disable interactive prompts")
}

func mustGetString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}

func mustGetInt(cmd *cobra.Command, name string) int {
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}
