// Package fixture reads and writes YAML descriptions of a virtual file
// system so tests can seed a VirtualFS from a checked-in file and dump one
// back out for inspection.
package fixture

import (
	"encoding/base64"
	"fmt"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/swapfs/internal/fs"
)

const (
	TypeFile      = "file"
	TypeDirectory = "directory"
)

// Document is the root of a fixture file.
type Document struct {
	UserDataPath string  `yaml:"user_data_path,omitempty"`
	Entries      []Entry `yaml:"entries"`
}

// Entry describes one file or directory. Text content goes in Content;
// binary content goes base64-encoded in Base64.
type Entry struct {
	Path       string     `yaml:"path"`
	Type       string     `yaml:"type,omitempty"`
	Content    string     `yaml:"content,omitempty"`
	Base64     string     `yaml:"base64,omitempty"`
	Attributes []string   `yaml:"attributes,omitempty"`
	Modified   *time.Time `yaml:"modified,omitempty"`
}

// Parse decodes a fixture document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	for i, e := range doc.Entries {
		if e.Path == "" {
			return nil, fmt.Errorf("fixture entry %d: path is required", i)
		}
		switch e.Type {
		case "", TypeFile, TypeDirectory:
		default:
			return nil, fmt.Errorf("fixture entry %s: unknown type %q", e.Path, e.Type)
		}
		if e.Content != "" && e.Base64 != "" {
			return nil, fmt.Errorf("fixture entry %s: content and base64 are mutually exclusive", e.Path)
		}
	}
	return &doc, nil
}

// Load reads and parses the fixture at path through fsys.
func Load(fsys fs.FileSystem, path string) (*Document, error) {
	data, err := fsys.ReadAllBytes(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes doc as YAML.
func Marshal(doc *Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling fixture: %w", err)
	}
	return out, nil
}

// Save writes doc to path through fsys.
func Save(fsys fs.FileSystem, path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := fsys.WriteAllBytes(path, data); err != nil {
		return fmt.Errorf("writing fixture %s: %w", path, err)
	}
	return nil
}

func (e Entry) toEntry() (*fs.Entry, error) {
	var entry *fs.Entry
	if e.Type == TypeDirectory {
		entry = fs.NewDirectoryEntry(e.Path)
	} else {
		content := []byte(e.Content)
		if e.Base64 != "" {
			decoded, err := base64.StdEncoding.DecodeString(e.Base64)
			if err != nil {
				return nil, fmt.Errorf("decoding %s: %w", e.Path, err)
			}
			content = decoded
		}
		entry = fs.NewFileEntry(e.Path, content)
	}

	if len(e.Attributes) > 0 {
		attrs, err := fs.ParseAttributes(e.Attributes)
		if err != nil {
			return nil, fmt.Errorf("fixture entry %s: %w", e.Path, err)
		}
		entry.Attributes = attrs
	}
	if e.Modified != nil {
		entry.LastWriteTime = *e.Modified
	}
	return entry, nil
}

// Apply seeds v with the entries of doc, building missing parent
// directories. A directory entry that already exists, for example because
// an earlier file created it, takes the fixture's attributes and timestamp.
func Apply(doc *Document, v *fs.VirtualFS) error {
	for _, e := range doc.Entries {
		entry, err := e.toEntry()
		if err != nil {
			return err
		}

		if existing := v.Entry(entry.Path); existing != nil && existing.IsDir() && entry.IsDir() {
			if err := v.SetAttributes(entry.Path, entry.Attributes); err != nil {
				return err
			}
			if e.Modified != nil {
				if err := v.SetLastWriteTime(entry.Path, *e.Modified); err != nil {
					return err
				}
			}
			continue
		}

		if err := v.AddEntry(entry, true); err != nil {
			return fmt.Errorf("applying fixture entry %s: %w", e.Path, err)
		}
	}
	if doc.UserDataPath != "" {
		if err := v.EnsurePath(doc.UserDataPath); err != nil {
			return err
		}
	}
	return nil
}

// New builds a VirtualFS from doc.
func New(doc *Document, opts ...fs.Option) (*fs.VirtualFS, error) {
	if doc.UserDataPath != "" {
		opts = append(opts, fs.WithUserDataPath(doc.UserDataPath))
	}
	v := fs.NewVirtualFS(opts...)
	if err := Apply(doc, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Snapshot describes every entry of v in insertion order, so applying the
// result to an empty VirtualFS recreates v.
func Snapshot(v *fs.VirtualFS) *Document {
	doc := &Document{}
	for _, e := range v.Entries() {
		modified := e.LastWriteTime.UTC()
		out := Entry{
			Path:       e.Path,
			Type:       TypeFile,
			Attributes: e.Attributes.Names(),
			Modified:   &modified,
		}
		if e.IsDir() {
			out.Type = TypeDirectory
		} else if utf8.Valid(e.Content) {
			out.Content = string(e.Content)
		} else {
			out.Base64 = base64.StdEncoding.EncodeToString(e.Content)
		}
		doc.Entries = append(doc.Entries, out)
	}
	return doc
}
