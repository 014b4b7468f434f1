// Package transfer copies directory trees between a swapfs file system and a
// go-billy file system. It is how a virtual tree gets materialized on disk
// and how a real directory gets snapshotted into memory for a test.
package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/artisanexperiences/swapfs/internal/fs"
	"github.com/artisanexperiences/swapfs/internal/logging"
)

// Options controls a transfer.
type Options struct {
	// Overwrite replaces files that already exist at the destination.
	Overwrite bool
	// Logger receives one debug line per copied entry. Nil discards.
	Logger *log.Logger
}

// Stats summarizes a completed transfer.
type Stats struct {
	Directories int
	Files       int
	Bytes       int64
}

func relative(root, p string) string {
	rel := strings.TrimPrefix(p, root)
	return strings.TrimLeft(rel, `/\`)
}

// Import copies the tree at src inside from into dst below target. Missing
// directories above target are created. File timestamps and the read-only
// and hidden flags are carried over.
func Import(from billy.Filesystem, src string, dst *fs.VirtualFS, target string, opts Options) (Stats, error) {
	logger := logging.OrDiscard(opts.Logger)
	var stats Stats

	if err := dst.EnsurePath(target); err != nil {
		return stats, fmt.Errorf("creating import target: %w", err)
	}

	err := util.Walk(from, src, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := relative(src, p)
		if rel == "" {
			return nil
		}
		dest := fs.CombinePath(target, filepath.ToSlash(rel))

		if info.IsDir() {
			if err := dst.EnsurePath(dest); err != nil {
				return err
			}
			stats.Directories++
			logger.Debug("imported directory", "path", dest)
			return nil
		}

		if dst.FileExists(dest) {
			if !opts.Overwrite {
				return &fs.PathError{Op: "import", Path: dest, Err: fs.ErrAlreadyExists}
			}
			if err := dst.DeleteFile(dest); err != nil {
				return err
			}
		}

		data, err := util.ReadFile(from, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		entry := fs.NewFileEntry(dest, data)
		entry.LastWriteTime = info.ModTime()
		if info.Mode().Perm()&0o200 == 0 {
			entry.Attributes |= fs.AttrReadOnly
		}
		if strings.HasPrefix(info.Name(), ".") {
			entry.Attributes |= fs.AttrHidden
		}
		if err := dst.AddEntry(entry, true); err != nil {
			return err
		}

		stats.Files++
		stats.Bytes += int64(len(data))
		logger.Debug("imported file", "path", dest, "bytes", len(data))
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("importing %s: %w", src, err)
	}
	return stats, nil
}

// Export writes the tree at root inside src into to below target. Existing
// files stop the export unless opts.Overwrite is set.
func Export(src fs.FileSystem, root string, to billy.Filesystem, target string, opts Options) (Stats, error) {
	logger := logging.OrDiscard(opts.Logger)
	var stats Stats

	if !src.DirectoryExists(root) {
		return stats, &fs.PathError{Op: "export", Path: root, Err: fs.ErrNotFound}
	}
	if err := to.MkdirAll(target, 0o755); err != nil {
		return stats, fmt.Errorf("creating export target %s: %w", target, err)
	}

	if err := exportDir(src, root, root, to, target, opts, logger, &stats); err != nil {
		return stats, fmt.Errorf("exporting %s: %w", root, err)
	}
	return stats, nil
}

func exportDir(src fs.FileSystem, root, dir string, to billy.Filesystem, target string, opts Options, logger *log.Logger, stats *Stats) error {
	files, err := src.GetFiles(dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := exportFile(src, f, to, to.Join(target, relative(root, f)), opts, logger, stats); err != nil {
			return err
		}
	}

	dirs, err := src.GetDirectories(dir)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		dest := to.Join(target, relative(root, d))
		if err := to.MkdirAll(dest, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dest, err)
		}
		stats.Directories++
		logger.Debug("exported directory", "path", dest)

		if err := exportDir(src, root, d, to, target, opts, logger, stats); err != nil {
			return err
		}
	}
	return nil
}

func exportFile(src fs.FileSystem, path string, to billy.Filesystem, dest string, opts Options, logger *log.Logger, stats *Stats) error {
	if _, err := to.Stat(dest); err == nil {
		if !opts.Overwrite {
			return &fs.PathError{Op: "export", Path: dest, Err: fs.ErrAlreadyExists}
		}
		// A read-only file from an earlier export cannot be opened for writing.
		if err := to.Remove(dest); err != nil {
			return fmt.Errorf("replacing %s: %w", dest, err)
		}
	}

	data, err := src.ReadAllBytes(path)
	if err != nil {
		return err
	}
	attrs, err := src.GetAttributes(path)
	if err != nil {
		return err
	}
	perm := os.FileMode(0o644)
	if attrs.Has(fs.AttrReadOnly) {
		perm = 0o444
	}

	if err := util.WriteFile(to, dest, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if change, ok := to.(billy.Change); ok {
		if mtime, err := src.GetLastWriteTime(path); err == nil {
			_ = change.Chtimes(dest, mtime, mtime)
		}
	}

	stats.Files++
	stats.Bytes += int64(len(data))
	logger.Debug("exported file", "path", dest, "bytes", len(data))
	return nil
}
