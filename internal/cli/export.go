package cli

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/artisanexperiences/swapfs/internal/fs"
	"github.com/artisanexperiences/swapfs/internal/transfer"
	"github.com/artisanexperiences/swapfs/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export SOURCE DEST",
	Short: "Copy a backend tree into a disk directory",
	Long: `Copies every file and directory below SOURCE in the configured backend
into the disk directory DEST, creating it when needed.

Arguments:
  SOURCE  Directory in the backend (e.g. "/" for a whole fixture)
  DEST    Directory on disk

Existing files in DEST stop the export unless --overwrite is given or
export.overwrite is set in swapfs.yaml. Read-only files are written
without write permission and keep their last-write time.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, dest := args[0], args[1]

		cc, err := OpenContext(cmd)
		if err != nil {
			return err
		}

		overwrite := cc.Config.Export.Overwrite
		if cmd.Flags().Changed("overwrite") {
			overwrite = mustGetBool(cmd, "overwrite")
		}
		dryRun := mustGetBool(cmd, "dry-run")

		if !cc.FS.DirectoryExists(source) {
			return fmt.Errorf("directory %s: %w", source, fs.ErrNotFound)
		}

		if dryRun {
			count := 0
			err := walkFiles(cc.FS, source, fs.FilePatternAll, func(path string) error {
				count++
				fmt.Fprintf(cc.Out, "would export %s\n", path)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cc.Out, "%d file(s) would be written to %s\n", count, dest)
			return nil
		}

		if !overwrite && !isEmptyDir(dest) && cc.Interactive(cmd) {
			confirmed, err := ui.Confirm(
				fmt.Sprintf("%s is not empty", dest),
				"Overwrite files that already exist?",
			)
			if err != nil {
				return err
			}
			overwrite = confirmed
		}

		if err := os.MkdirAll(dest, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dest, err)
		}

		var stats transfer.Stats
		err = ui.RunWithSpinner(fmt.Sprintf("Exporting %s", source), func() error {
			var err error
			stats, err = transfer.Export(cc.FS, source, osfs.New(dest), "/", transfer.Options{
				Overwrite: overwrite,
				Logger:    cc.Logger,
			})
			return err
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cc.Out, ui.Success(fmt.Sprintf(
			"exported %d file(s), %d director(ies), %s to %s",
			stats.Files, stats.Directories, ui.FormatSize(stats.Bytes), dest,
		)))
		return nil
	},
}

func isEmptyDir(path string) bool {
	entries, err := os.ReadDir(path)
	return err != nil || len(entries) == 0
}

func init() {
	exportCmd.Flags().Bool("overwrite", false, "Replace files that already exist in DEST")
	rootCmd.AddCommand(exportCmd)
}
