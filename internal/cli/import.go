package cli

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/artisanexperiences/swapfs/internal/fixture"
	"github.com/artisanexperiences/swapfs/internal/fs"
	"github.com/artisanexperiences/swapfs/internal/transfer"
	"github.com/artisanexperiences/swapfs/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import SOURCE [TARGET]",
	Short: "Read a disk directory into a fixture document",
	Long: `Reads the disk directory SOURCE into a virtual file system below TARGET
and prints the result as a fixture document.

Arguments:
  SOURCE  Directory on disk
  TARGET  Directory in the virtual file system (defaults to "/")

With the memory backend the import is layered on top of the configured
fixture. Use --output to write the document to a file instead of stdout.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		target := "/"
		if len(args) > 1 {
			target = args[1]
		}

		cc, err := OpenContext(cmd)
		if err != nil {
			return err
		}

		info, err := os.Stat(source)
		if err != nil {
			return fmt.Errorf("directory %s: %w", source, fs.ErrNotFound)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory: %w", source, fs.ErrWrongKind)
		}

		vfs, ok := cc.FS.(*fs.VirtualFS)
		if !ok {
			vfs = fs.NewVirtualFS()
		}

		var stats transfer.Stats
		err = ui.RunWithSpinner(fmt.Sprintf("Importing %s", source), func() error {
			var err error
			stats, err = transfer.Import(osfs.New(source), "/", vfs, target, transfer.Options{
				Overwrite: mustGetBool(cmd, "overwrite"),
				Logger:    cc.Logger,
			})
			return err
		})
		if err != nil {
			return err
		}
		cc.Logger.Info("imported", "files", stats.Files, "directories", stats.Directories, "bytes", stats.Bytes)

		doc := fixture.Snapshot(vfs)
		output := mustGetString(cmd, "output")
		if output == "" {
			data, err := fixture.Marshal(doc)
			if err != nil {
				return err
			}
			_, err = cc.Out.Write(data)
			return err
		}

		if err := fixture.Save(fs.NewRealFS(cc.Config.AppName), output, doc); err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, ui.Success(fmt.Sprintf("wrote %d entries to %s", len(doc.Entries), output)))
		return nil
	},
}

func init() {
	importCmd.Flags().StringP("output", "o", "", "Write the fixture document to this file")
	importCmd.Flags().Bool("overwrite", false, "Replace files already present in the virtual file system")
	rootCmd.AddCommand(importCmd)
}
