package config

import (
	"os"
	"path/filepath"
	"strings"
)

// resolvePath expands $VAR references and a leading ~ in p, then anchors a
// relative result at root. With an empty root, relative paths are returned
// as expanded.
func resolvePath(root, p string) string {
	if p == "" {
		return p
	}

	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}

	if root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
