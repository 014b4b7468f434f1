package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/swapfs/internal/fs"
	"github.com/artisanexperiences/swapfs/internal/ui"
)

var treeCmd = &cobra.Command{
	Use:   "tree [PATH]",
	Short: "Show a directory tree from the configured backend",
	Long: `Prints the directories and files below PATH as a tree.

Arguments:
  PATH  Directory to start from (defaults to "/" for the memory backend and
        the config directory for the disk backend)

Files are filtered with --pattern, which matches a substring of the file
name. The pattern "*.*" matches every file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cc, err := OpenContext(cmd)
		if err != nil {
			return err
		}

		root := cc.DefaultRoot()
		if len(args) > 0 {
			root = args[0]
		}

		if !cc.FS.DirectoryExists(root) {
			return fmt.Errorf("directory %s: %w", root, fs.ErrNotFound)
		}

		node, err := buildTree(cc.FS, root, mustGetString(cmd, "pattern"), mustGetInt(cmd, "depth"))
		if err != nil {
			return err
		}
		node.Name = root

		fmt.Fprint(cc.Out, ui.RenderTree(node))
		return nil
	},
}

// buildTree reads dir and, while depth allows, its subdirectories. A
// negative depth means unlimited.
func buildTree(fsys fs.FileSystem, dir, pattern string, depth int) (ui.TreeNode, error) {
	node := ui.TreeNode{Name: fsys.GetFileName(dir), Dir: true}

	dirs, err := fsys.GetDirectories(dir)
	if err != nil {
		return node, err
	}
	files, err := fsys.GetFilesMatching(dir, pattern)
	if err != nil {
		return node, err
	}
	sortByName(fsys, dirs)
	sortByName(fsys, files)

	for _, d := range dirs {
		child := ui.TreeNode{Name: fsys.GetFileName(d), Dir: true}
		if depth != 0 {
			child, err = buildTree(fsys, d, pattern, depth-1)
			if err != nil {
				return node, err
			}
		}
		node.Children = append(node.Children, child)
	}

	for _, f := range files {
		size, err := fsys.GetFileSize(f)
		if err != nil {
			return node, err
		}
		attrs, err := fsys.GetAttributes(f)
		if err != nil {
			return node, err
		}
		node.Children = append(node.Children, ui.TreeNode{
			Name:     fsys.GetFileName(f),
			Size:     size,
			ReadOnly: attrs.Has(fs.AttrReadOnly),
		})
	}

	return node, nil
}

// walkFiles calls fn for every file below dir whose name matches pattern,
// directories first in name order.
func walkFiles(fsys fs.FileSystem, dir, pattern string, fn func(path string) error) error {
	dirs, err := fsys.GetDirectories(dir)
	if err != nil {
		return err
	}
	sortByName(fsys, dirs)
	for _, d := range dirs {
		if err := walkFiles(fsys, d, pattern, fn); err != nil {
			return err
		}
	}

	files, err := fsys.GetFilesMatching(dir, pattern)
	if err != nil {
		return err
	}
	sortByName(fsys, files)
	for _, f := range files {
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func sortByName(fsys fs.FileSystem, paths []string) {
	slices.SortFunc(paths, func(a, b string) int {
		return strings.Compare(strings.ToLower(fsys.GetFileName(a)), strings.ToLower(fsys.GetFileName(b)))
	})
}

func init() {
	treeCmd.Flags().String("pattern", fs.FilePatternAll, "Only show files whose name contains this text")
	treeCmd.Flags().Int("depth", -1, "Maximum directory depth to descend (-1 for unlimited)")
	rootCmd.AddCommand(treeCmd)
}
