// Command `confinit` inspects configuration files the way the confinit package sees them.
//
// The file is layered with environment variables and --set overrides before any
// command runs, so the output reflects exactly what an application would bind.
//
// Usage:
//
//	confinit sections                 - List top-level sections
//	confinit paths [section]          - List leaf paths with their kinds and values
//	confinit get <path>               - Print one value
//	confinit dump [section]           - Re-encode the table (or one section)
//	confinit summary [section]        - Render a section as a parameter/state summary
//
// Examples:
//
//	confinit -f app.toml sections
//	confinit -f app.toml --set server.port=9090 get server.port
//	confinit -f app.yaml --output json dump server
//	confinit -f app.toml summary box --view state --save box.txt
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/confinit"
)

type options struct {
	file      string
	format    string
	envPrefix string
	logLevel  string
	sets      []string
	output    string
}

func main() {
	opts := &options{}

	root := &cobra.Command{
		Use:   "confinit",
		Short: "Inspect layered configuration",
		Long: `confinit loads a TOML, YAML or JSON configuration file, applies environment
and command-line overrides, and shows the resulting table.

Without --file the configuration is discovered from CONFINIT_CONFIG, the current
directory and the XDG config directories.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "", "configuration file")
	flags.StringVar(&opts.format, "format", string(confinit.FormatAuto), "file format: auto, toml, yaml or json")
	flags.StringVar(&opts.envPrefix, "env-prefix", "", "environment variable prefix for overrides")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringArrayVar(&opts.sets, "set", nil, "override a value (key.path=value), repeatable")
	flags.StringVarP(&opts.output, "output", "o", string(confinit.FormatTOML), "output format for dump: toml, yaml or json")

	// ---- sections command ----
	sectionsCmd := &cobra.Command{
		Use:     "sections",
		Short:   "List top-level sections",
		Example: "confinit -f app.toml sections",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			tbl, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			sections := tbl.Sections()
			if len(sections) == 0 {
				color.Yellow("No sections found.")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Section", "Keys", "Leaves"})
			table.SetBorder(false)
			for _, name := range sections {
				sub, err := tbl.Section(name)
				if err != nil {
					return err
				}
				table.Append([]string{name, fmt.Sprint(len(sub)), fmt.Sprint(len(sub.Paths()))})
			}
			table.Render()
			return nil
		},
	}

	// ---- paths command ----
	pathsCmd := &cobra.Command{
		Use:     "paths [section]",
		Short:   "List leaf paths with their kinds and values",
		Example: "confinit -f app.toml paths server",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tbl, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			scope, err := scoped(tbl, args)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Path", "Kind", "Value"})
			table.SetBorder(false)
			table.SetColumnColor(
				tablewriter.Colors{tablewriter.FgHiWhiteColor},
				tablewriter.Colors{tablewriter.FgYellowColor},
				tablewriter.Colors{tablewriter.FgGreenColor},
			)
			for _, path := range scope.Paths() {
				value, _ := scope.Lookup(path)
				table.Append([]string{path, kindOf(value), formatValue(value)})
			}
			table.Render()
			return nil
		},
	}

	// ---- get command ----
	getCmd := &cobra.Command{
		Use:     "get <path>",
		Short:   "Print the value at a dotted path",
		Example: "confinit -f app.toml get server.port",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tbl, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			value, ok := tbl.Lookup(args[0])
			if !ok {
				return fmt.Errorf("path not found: %s", args[0])
			}
			if sub, isTable := value.(confinit.Table); isTable {
				return sub.Encode(os.Stdout, confinit.Format(opts.output))
			}
			fmt.Println(formatValue(value))
			return nil
		},
	}

	// ---- dump command ----
	dumpCmd := &cobra.Command{
		Use:     "dump [section]",
		Short:   "Re-encode the configuration table",
		Example: "confinit -f app.yaml --output json dump server",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tbl, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			scope, err := scoped(tbl, args)
			if err != nil {
				return err
			}
			return scope.Encode(os.Stdout, confinit.Format(opts.output))
		},
	}

	// ---- summary command ----
	var view, save string
	summaryCmd := &cobra.Command{
		Use:   "summary [section]",
		Short: "Render leaves as a parameter/state summary",
		Long: `Render every leaf as one summary position: the parameter line holds
"path=value" and the state line holds "path: kind".

Views: parameters, state or summary (both, interleaved).`,
		Example: "confinit -f app.toml summary box --view state --save box.txt",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tbl, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			scope, err := scoped(tbl, args)
			if err != nil {
				return err
			}

			r := confinit.NewRenderer(os.Stdout).WithLogger(logger)
			leaves := leafSummary{table: scope}
			switch view {
			case "parameters":
				if save != "" {
					return r.SaveParameters(leaves, save)
				}
				return r.PrintParameters(leaves)
			case "state":
				if save != "" {
					return r.SaveState(leaves, save)
				}
				return r.PrintState(leaves)
			case "summary":
				if save != "" {
					return r.SaveSummary(leaves, save)
				}
				return r.PrintSummary(leaves)
			default:
				return fmt.Errorf("unknown view %q", view)
			}
		},
	}
	summaryCmd.Flags().StringVar(&view, "view", "summary", "parameters, state or summary")
	summaryCmd.Flags().StringVar(&save, "save", "", "write to this file instead of stdout")

	root.AddCommand(sectionsCmd, pathsCmd, getCmd, dumpCmd, summaryCmd)
	if err := root.Execute(); err != nil {
		color.New(color.FgHiRed, color.Bold).Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load builds the layered table described by the global flags
func (o *options) load() (confinit.Table, *zap.Logger, error) {
	logger, err := newLogger(o.logLevel)
	if err != nil {
		return nil, nil, err
	}

	args := make([]string, 0, len(o.sets))
	for _, set := range o.sets {
		key, value, ok := strings.Cut(set, "=")
		if !ok {
			return nil, nil, fmt.Errorf("invalid --set %q: expected key.path=value", set)
		}
		args = append(args, "--"+key+"="+value)
	}

	builder := confinit.NewBuilder().
		WithArgs(args).
		WithFormat(confinit.Format(o.format)).
		WithEnvPrefix(o.envPrefix).
		WithLogger(logger)

	if o.file != "" {
		builder.WithFile(o.file)
	} else {
		discovery := confinit.DefaultDiscoveryOptions("confinit")
		discovery.CLIFlag = "" // --set values never name the file
		builder.WithFileDiscovery(discovery)
	}

	tbl, err := builder.Build()
	if err != nil {
		return nil, nil, err
	}
	return tbl, logger, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// scoped returns the whole table or the named section
func scoped(tbl confinit.Table, args []string) (confinit.Table, error) {
	if len(args) == 0 {
		return tbl, nil
	}
	return tbl.Section(args[0])
}

// leafSummary reports each leaf of a table as one summary position
type leafSummary struct {
	table confinit.Table
}

func (l leafSummary) Summary() confinit.Summary {
	out := confinit.EmptySummary()
	for _, path := range l.table.Paths() {
		value, _ := l.table.Lookup(path)
		out = out.Combine(confinit.Entry(
			confinit.Some(path+"="+formatValue(value)),
			confinit.Some(path+": "+kindOf(value)),
		))
	}
	return out
}

func kindOf(v any) string {
	switch v.(type) {
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case string:
		return "string"
	case time.Time:
		return "datetime"
	case []any:
		return "array"
	case confinit.Table:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = formatValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}
