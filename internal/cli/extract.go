package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/doclet-labs/doclet/internal/config"
	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/diag"
	"github.com/doclet-labs/doclet/internal/linkreg"
	"github.com/doclet-labs/doclet/internal/pipeline"
	"github.com/doclet-labs/doclet/internal/tagdict"
	"github.com/doclet-labs/doclet/internal/walker"
)

func newExtractCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Extract a doclet database from annotated source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, configPath)
			if err != nil {
				return err
			}
			return runExtract(cmd.Context(), settings, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to .doclet.yaml config file")
	cmd.Flags().String("grammar", "", "Tag grammar: standard or closure")
	cmd.Flags().String("format", "", "Output format: yaml or json")
	cmd.Flags().StringP("output", "o", "", "Output path, '-' for stdout")
	cmd.Flags().Bool("allow-unknown-tags", false, "Accept unrecognized tags as free-text annotations")
	cmd.Flags().Bool("include-undocumented", false, "Keep symbols without a parseable comment")
	cmd.Flags().StringSlice("access", nil, "Visibility filter: public, protected, private, package, all")
	cmd.Flags().Bool("json-logs", false, "Emit diagnostics as structured JSON")
	return cmd
}

// loadSettings merges config file values with any explicitly set flag.
func loadSettings(cmd *cobra.Command, configPath string) (*config.Settings, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("grammar") {
		settings.Grammar, _ = flags.GetString("grammar")
	}
	if flags.Changed("format") {
		settings.Format, _ = flags.GetString("format")
	}
	if flags.Changed("output") {
		settings.Output, _ = flags.GetString("output")
	}
	if flags.Changed("allow-unknown-tags") {
		settings.AllowUnknownTags, _ = flags.GetBool("allow-unknown-tags")
	}
	if flags.Changed("include-undocumented") {
		settings.IncludeUndocumented, _ = flags.GetBool("include-undocumented")
	}
	if flags.Changed("access") {
		settings.Access, _ = flags.GetStringSlice("access")
	}
	if flags.Changed("json-logs") {
		settings.JSONLogs, _ = flags.GetBool("json-logs")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func runExtract(ctx context.Context, settings *config.Settings, files []string, stdout io.Writer) error {
	reporter, cleanup, err := newReporter(settings)
	if err != nil {
		return err
	}
	defer cleanup()

	// Source files are read concurrently; traversal itself stays
	// single-threaded and strictly in argument order.
	sources := make([][]byte, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(name)
			if err != nil {
				return derrors.Wrapf(err, "reading %s", name)
			}
			sources[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	dict, err := tagdict.Builtin(settings.Grammar, settings.AllowUnknownTags)
	if err != nil {
		return err
	}

	p := pipeline.New(tagdict.NewHolder(dict), reporter)
	p.Begin()

	w := walker.New()
	for i, name := range files {
		if err := w.Walk(ctx, sources[i], name, p); err != nil {
			return err
		}
	}
	if err := p.Finish(); err != nil {
		return err
	}

	links := linkreg.New()
	db := buildDatabase(p.Collection(), links, settings)
	return writeDatabase(db, settings, stdout)
}

// newReporter builds the diagnostic channel: colored console output by
// default, zap JSON when requested.
func newReporter(settings *config.Settings) (diag.Reporter, func(), error) {
	if !settings.JSONLogs {
		return diag.ConsoleReporter{Out: os.Stderr}, func() {}, nil
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, nil, derrors.Wrap(err, "initializing logger")
	}
	return diag.ZapReporter{Log: logger.Sugar()}, func() { _ = logger.Sync() }, nil
}
