// FILE: lixenwraith/confinit/discovery.go
package confinit

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions describes where a configuration file may live.
// An explicit CLIFlag value beats EnvVar, which beats the search path.
type FileDiscoveryOptions struct {
	Name          string   // file name without extension
	Extensions    []string // tried in order within each directory
	Paths         []string // searched before the current and XDG directories
	EnvVar        string   // holds an explicit path
	CLIFlag       string   // e.g. "--config"; accepts "--config path" and "--config=path"
	UseXDG        bool
	UseCurrentDir bool
}

// DefaultDiscoveryOptions looks for appName.{toml,yaml,yml,json} named by
// --config or APPNAME_CONFIG, then in the working and XDG directories.
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml", ".json"},
		EnvVar:        strings.ToUpper(strings.ReplaceAll(appName, "-", "_")) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// WithFileDiscovery sets the file to the first location opts resolves to.
// The CLI flag is consumed here and never reaches the overrides.
// Finding nothing leaves the file unset.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	b.fileFlag = opts.CLIFlag
	if path := opts.explicitPath(b.args); path != "" {
		b.file = path
		return b
	}
	for _, candidate := range opts.candidates() {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			b.file = candidate
			break
		}
	}
	return b
}

// explicitPath returns a path named by the CLI flag or the environment
func (o FileDiscoveryOptions) explicitPath(args []string) string {
	if o.CLIFlag != "" {
		for i, arg := range args {
			if value, ok := strings.CutPrefix(arg, o.CLIFlag+"="); ok {
				return value
			}
			if arg == o.CLIFlag && i+1 < len(args) {
				return args[i+1]
			}
		}
	}
	if o.EnvVar != "" {
		return os.Getenv(o.EnvVar)
	}
	return ""
}

// candidates lists every file to probe, directory by directory
func (o FileDiscoveryOptions) candidates() []string {
	dirs := append([]string(nil), o.Paths...)
	if o.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			dirs = append(dirs, cwd)
		}
	}
	if o.UseXDG {
		dirs = append(dirs, xdgConfigDirs(o.Name)...)
	}

	files := make([]string, 0, len(dirs)*len(o.Extensions))
	for _, dir := range dirs {
		for _, ext := range o.Extensions {
			files = append(files, filepath.Join(dir, o.Name+ext))
		}
	}
	return files
}

// xdgConfigDirs follows the XDG base directory layout, user directory first
func xdgConfigDirs(appName string) []string {
	var dirs []string
	if userDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userDir, appName))
	}

	system := filepath.SplitList(os.Getenv("XDG_CONFIG_DIRS"))
	if len(system) == 0 {
		system = []string{"/etc/xdg", "/etc"}
	}
	for _, dir := range system {
		dirs = append(dirs, filepath.Join(dir, appName))
	}
	return dirs
}
