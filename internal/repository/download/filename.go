package download

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CleanFilename reduces name to a single path element safe to store under.
func CleanFilename(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return base, nil
}
