package cli

import (
	"path/filepath"

	"github.com/ardnew/ngen/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config.yaml"

// configPath joins the configuration directory with the given elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}
