package capture

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// List returns the capture files of dir whose extension is one of exts, compared
// case-insensitively, in ascending file name order. Sub-directories are not visited.
func List(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing capture directory %q", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !hasExtension(entry.Name(), exts) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	res := make([]string, len(names))
	for i, name := range names {
		res[i] = filepath.Join(dir, name)
	}
	return res, nil
}

func hasExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
