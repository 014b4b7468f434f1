package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/swapfs/internal/config"
	"github.com/artisanexperiences/swapfs/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a swapfs.yaml for this directory",
	Long: `Writes the resolved configuration to swapfs.yaml in the config directory.

Values come from an existing swapfs.yaml, SWAPFS_* environment variables and
the flags given here, in increasing priority. Keys swapfs does not know about
are kept when the file is updated.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, dir, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if v := mustGetString(cmd, "app-name"); v != "" {
			cfg.AppName = v
		}
		if v := mustGetString(cmd, "user-data-path"); v != "" {
			cfg.UserDataPath = v
		}
		if cmd.Flags().Changed("overwrite") {
			cfg.Export.Overwrite = mustGetBool(cmd, "overwrite")
		}

		configPath := filepath.Join(dir, config.ConfigName+".yaml")
		_, statErr := os.Stat(configPath)
		exists := statErr == nil

		if exists && !mustGetBool(cmd, "force") {
			if !isInteractive() || mustGetBool(cmd, "no-interactive") {
				return fmt.Errorf("%s already exists (use --force to update it)", configPath)
			}
			confirmed, err := ui.Confirm("Update existing configuration?", configPath)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if mustGetBool(cmd, "dry-run") {
			fmt.Fprintf(cmd.OutOrStdout(), "would write %s (backend: %s)\n", configPath, cfg.Backend)
			return nil
		}

		if err := config.Save(dir, cfg); err != nil {
			return err
		}

		verb := "created"
		if exists {
			verb = "updated"
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("%s %s", verb, configPath)))
		return nil
	},
}

func init() {
	initCmd.Flags().String("app-name", "", "Application name used for the user data directory")
	initCmd.Flags().String("user-data-path", "", "Fixed user data directory")
	initCmd.Flags().Bool("overwrite", false, "Let export replace existing files by default")
	initCmd.Flags().BoolP("force", "f", false, "Update an existing swapfs.yaml without asking")
	rootCmd.AddCommand(initCmd)
}
