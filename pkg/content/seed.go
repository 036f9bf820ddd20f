package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Seed file names, also the default names inside a data directory.
const (
	VerbsFile       = "verbs.json"
	ComparisonsFile = "comparisons.json"
)

//go:embed data/*.json
var seedData embed.FS

// SeedFS exposes the bundled starter documents.
func SeedFS() fs.FS {
	sub, err := fs.Sub(seedData, "data")
	if err != nil {
		panic(fmt.Sprintf("verbpractice: seed data: %v", err))
	}
	return sub
}

// WriteSeed copies the bundled documents to verbsPath and comparisonsPath
// and returns the paths it wrote. Existing files are left alone and not
// reported.
func WriteSeed(verbsPath, comparisonsPath string) ([]string, error) {
	var written []string
	for _, f := range []struct{ name, dst string }{
		{VerbsFile, verbsPath},
		{ComparisonsFile, comparisonsPath},
	} {
		if _, err := os.Stat(f.dst); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return written, err
		}

		data, err := fs.ReadFile(SeedFS(), f.name)
		if err != nil {
			return written, fmt.Errorf("read seed %s: %w", f.name, err)
		}
		if err := os.MkdirAll(filepath.Dir(f.dst), 0o755); err != nil {
			return written, fmt.Errorf("create data dir: %w", err)
		}
		if err := writeFileAtomic(f.dst, data); err != nil {
			return written, fmt.Errorf("write seed %s: %w", f.dst, err)
		}
		written = append(written, f.dst)
	}
	return written, nil
}
