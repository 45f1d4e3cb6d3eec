package cli

import (
	"os"
	"path/filepath"
)

// AppPaths is an interface to determine application specific paths for configuration
// and logging/tracing.
type AppPaths interface {
	ConfigDir() string
	LogDir() string
}

// DefaultAppPaths returns an AppPaths instance with platform-dependent defaults
// set, given appTag. appTag is a string specific to a client's application to identify it.
func DefaultAppPaths(appTag string) (AppPaths, error) {
	return appHome(appTag)
}

type appPaths struct {
	tag  string
	home string
}

var _ AppPaths = appPaths{}

// defaultConfigFile returns the path of 'essence.toml' in the configuration
// directory, or "" if there is no such file.
func defaultConfigFile(paths AppPaths) string {
	if paths == nil || paths.ConfigDir() == "" {
		return ""
	}
	name := filepath.Join(paths.ConfigDir(), "essence.toml")
	if _, err := os.Stat(name); err != nil {
		return ""
	}
	return name
}
