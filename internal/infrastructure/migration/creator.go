package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// versionLayout keeps generated versions sortable alongside the shipped ones
const versionLayout = "20060102150405"

// Pair is a freshly scaffolded up/down migration
type Pair struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// CreateMigration writes an empty up/down pair into dir. Existing files are
// never overwritten.
func CreateMigration(dir, name, description string) (*Pair, error) {
	return createAt(dir, name, description, time.Now())
}

func createAt(dir, name, description string, now time.Time) (*Pair, error) {
	slug := migrationSlug(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	version := now.UTC().Format(versionLayout)
	base := filepath.Join(dir, version+"_"+slug)
	p := &Pair{
		Version:  version,
		Name:     slug,
		UpPath:   base + ".up.sql",
		DownPath: base + ".down.sql",
	}

	up := "-- Migration: " + slug + "\n"
	if description != "" {
		up += "-- Description: " + description + "\n"
	}
	if err := writeNew(p.UpPath, up+"\n"); err != nil {
		return nil, err
	}
	if err := writeNew(p.DownPath, "-- Migration: "+slug+" (Rollback)\n\n"); err != nil {
		_ = os.Remove(p.UpPath)
		return nil, err
	}
	return p, nil
}

func writeNew(path, body string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if _, err := f.WriteString(body); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// migrationSlug lower-cases name and joins its alphanumeric words with "_"
func migrationSlug(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	parts := words[:0]
	for _, w := range words {
		w = strings.Map(func(r rune) rune {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				return r
			}
			return -1
		}, w)
		if w != "" {
			parts = append(parts, w)
		}
	}
	return strings.Join(parts, "_")
}

func listMigrations(fsys fs.FS) ([]string, error) {
	ups, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(ups))
	for _, up := range ups {
		info, err := fs.Stat(fsys, up)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read migrations: %w", err)
		}
		names = append(names, strings.TrimSuffix(up, ".up.sql"))
	}
	return names, nil
}

// parseVersion reads the numeric prefix of a migration base name
func parseVersion(name string) (uint, error) {
	prefix, _, _ := strings.Cut(name, "_")
	version, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("migration %q has no numeric version: %w", name, err)
	}
	return uint(version), nil
}
