package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/swapfs/internal/fs"
	"github.com/artisanexperiences/swapfs/internal/ui"
)

var hashCmd = &cobra.Command{
	Use:   "hash PATH...",
	Short: "Print SHA-256 hashes and digests of files",
	Long: `Hashes each file with SHA-256 and prints the base64 hash used by the
file system API alongside the hex digest.

Arguments:
  PATH  A file, or with --recursive a directory whose files are hashed

With --plain the output is one "<digest>  <path>" line per file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cc, err := OpenContext(cmd)
		if err != nil {
			return err
		}

		recursive := mustGetBool(cmd, "recursive")
		pattern := mustGetString(cmd, "pattern")
		plain := mustGetBool(cmd, "plain")

		var rows [][]string
		add := func(path string) error {
			sum, err := cc.FS.GetFileHashAsString(path)
			if err != nil {
				return err
			}
			d, err := fs.Digest(cc.FS, path)
			if err != nil {
				return err
			}
			rows = append(rows, []string{path, sum, d.String()})
			return nil
		}

		for _, path := range args {
			switch {
			case cc.FS.FileExists(path):
				err = add(path)
			case cc.FS.DirectoryExists(path) && recursive:
				err = walkFiles(cc.FS, path, pattern, add)
			case cc.FS.DirectoryExists(path):
				err = fmt.Errorf("%s is a directory (use --recursive): %w", path, fs.ErrWrongKind)
			default:
				err = fmt.Errorf("file %s: %w", path, fs.ErrNotFound)
			}
			if err != nil {
				return err
			}
		}

		cc.Logger.Debug("hashed files", "count", len(rows))

		if plain {
			for _, row := range rows {
				fmt.Fprintf(cc.Out, "%s  %s\n", row[2], row[0])
			}
			return nil
		}

		fmt.Fprintln(cc.Out, ui.RenderTable([]string{"PATH", "SHA256 (BASE64)", "DIGEST"}, rows))
		return nil
	},
}

func init() {
	hashCmd.Flags().BoolP("recursive", "r", false, "Hash every file below directory arguments")
	hashCmd.Flags().String("pattern", fs.FilePatternAll, "With --recursive, only hash files whose name contains this text")
	hashCmd.Flags().Bool("plain", false, "Print one digest per line instead of a table")
	rootCmd.AddCommand(hashCmd)
}
