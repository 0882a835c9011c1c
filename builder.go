// File: lixenwraith/confinit/builder.go
package confinit

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ValidatorFunc checks the assembled table before Build returns it.
type ValidatorFunc func(tbl Table) error

// Builder assembles a Table from a configuration file layered with
// environment variable and command-line overrides.
type Builder struct {
	loader       *Loader
	defaults     Table
	file         string
	sources      []Source
	envPrefix    string
	envTransform EnvTransformFunc
	args         []string
	fileFlag     string
	validators   []ValidatorFunc
	logger       *zap.Logger
	err          error
}

// NewBuilder creates a new table builder
func NewBuilder() *Builder {
	return &Builder{
		loader:  NewLoader(),
		sources: DefaultSources,
		args:    os.Args[1:],
		logger:  zap.NewNop(),
	}
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithFormat forces the configuration file format
func (b *Builder) WithFormat(format Format) *Builder {
	b.loader.WithFormat(format)
	return b
}

// WithFS sets the file system the configuration file is read from
func (b *Builder) WithFS(fs FileReader) *Builder {
	b.loader.WithFS(fs)
	return b
}

// WithMaxFileSize limits the size of the configuration file
func (b *Builder) WithMaxFileSize(limit int64) *Builder {
	b.loader.WithMaxFileSize(limit)
	return b
}

// WithEnvPrefix sets the environment variable prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	return b
}

// WithEnvTransform sets a custom environment variable transformer
func (b *Builder) WithEnvTransform(fn EnvTransformFunc) *Builder {
	b.envTransform = fn
	return b
}

// WithArgs sets the command-line arguments
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithSources sets the precedence order for configuration sources (first = highest).
// Sources left out are not consulted.
func (b *Builder) WithSources(sources ...Source) *Builder {
	b.sources = sources
	return b
}

// WithValidator adds a validation function that runs at the end of the build process.
// All validators run; their failures are reported together.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// WithLogger sets the logger for the builder and its loader
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	if logger != nil {
		b.logger = logger
		b.loader.WithLogger(logger)
	}
	return b
}

// Build layers defaults, the file and overrides in precedence order.
// Environment variables only override paths that defaults or the file define;
// command-line arguments may also introduce new paths.
func (b *Builder) Build() (Table, error) {
	if b.err != nil {
		return nil, b.err
	}

	fileTable := make(Table)
	if b.file != "" && b.uses(SourceFile) {
		loaded, err := b.loader.Load(b.file)
		if err != nil {
			return nil, err
		}
		fileTable = loaded
	}

	// Paths known before overrides, used to type env and CLI values
	base := b.defaults.Clone()
	if base == nil {
		base = make(Table)
	}
	mergeTables(base, fileTable)

	result := b.defaults.Clone()
	if result == nil {
		result = make(Table)
	}

	// Apply lowest precedence first
	for i := len(b.sources) - 1; i >= 0; i-- {
		source := b.sources[i]

		switch source {
		case SourceFile:
			mergeTables(result, fileTable)

		case SourceEnv:
			transform := b.envTransform
			if transform == nil {
				transform = defaultEnvTransform(b.envPrefix)
			}
			b.apply(result, source, envOverrides(base, transform))

		case SourceCLI:
			if len(b.args) == 0 {
				continue
			}
			overrides, err := cliOverrides(base, stripFlag(b.args, b.fileFlag))
			if err != nil {
				return nil, err
			}
			b.apply(result, source, overrides)

		default:
			return nil, fmt.Errorf("unknown configuration source %q", source)
		}
	}

	var validationErr error
	for _, validator := range b.validators {
		validationErr = multierr.Append(validationErr, validator(result))
	}
	if validationErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, validationErr)
	}

	return result, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() Table {
	tbl, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return tbl
}

// stripFlag removes a flag and its value so it is not read as an override
func stripFlag(args []string, flag string) []string {
	if flag == "" {
		return args
	}
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == flag:
			i++ // Skip the value too
		case strings.HasPrefix(args[i], flag+"="):
		default:
			out = append(out, args[i])
		}
	}
	return out
}

func (b *Builder) uses(source Source) bool {
	for _, s := range b.sources {
		if s == source {
			return true
		}
	}
	return false
}

func (b *Builder) apply(dst Table, source Source, overrides map[string]any) {
	for _, path := range sortedKeys(overrides) {
		setNestedValue(dst, path, overrides[path])
		b.logger.Debug("override applied",
			zap.String("source", string(source)),
			zap.String("path", path),
		)
	}
}
