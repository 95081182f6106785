package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/benjaminschreck/go-ooxml/pkg/ooxml"
	"github.com/benjaminschreck/go-ooxml/pkg/ooxml/tree"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type cliFlags struct {
	configPath string
	verbose    bool
	format     string
	color      string
	part       string
	logLevel   string
	workers    int
	maxDepth   int
	telemetry  bool
}

func newRootCmd() *cobra.Command {
	var f cliFlags

	cmd := &cobra.Command{
		Use:   "ooxml [flags] FILE.docx...",
		Short: "Print the text of Word documents with the color applied to it",
		Long: `ooxml reads the main document of each .docx archive and prints every
text node together with the w:color of its nearest run properties.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &f, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "YAML configuration file")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "list archive members and dump the event trace and tree to stderr")
	flags.StringVar(&f.format, "format", "text", "output format: text, json or yaml")
	flags.StringVar(&f.color, "color", "auto", "color text output: auto, always or never")
	flags.StringVar(&f.part, "part", "", "archive member to parse (default: the main document)")
	flags.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error or off")
	flags.IntVar(&f.workers, "workers", 4, "number of documents processed at once")
	flags.IntVar(&f.maxDepth, "max-depth", 0, "maximum element nesting, 0 for no limit")
	flags.BoolVar(&f.telemetry, "telemetry", false, "write OpenTelemetry spans and metrics to stderr")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ooxml version %s\n", version)
		},
	}
}

// loadConfig layers defaults, environment, the config file and explicitly
// set flags, in that order.
func loadConfig(cmd *cobra.Command, f *cliFlags) (*ooxml.Config, error) {
	config := ooxml.ConfigFromEnvironment()
	if f.configPath != "" {
		var err error
		if config, err = ooxml.LoadConfigFile(f.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		config.Verbose = f.verbose
	}
	if flags.Changed("format") {
		config.Format = f.format
	}
	if flags.Changed("color") {
		config.ColorMode = f.color
	}
	if flags.Changed("part") {
		config.DocumentPart = f.part
	}
	if flags.Changed("log-level") {
		config.LogLevel = f.logLevel
	}
	if flags.Changed("workers") {
		config.Workers = f.workers
	}
	if flags.Changed("max-depth") {
		config.MaxDepth = f.maxDepth
	}
	if flags.Changed("telemetry") {
		config.Telemetry = f.telemetry
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func run(cmd *cobra.Command, f *cliFlags, files []string) (err error) {
	config, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	ooxml.SetGlobalConfig(config)

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if config.Telemetry {
		shutdown, terr := initTelemetry(stderr)
		if terr != nil {
			return terr
		}
		defer func() {
			if serr := shutdown(context.Background()); serr != nil && err == nil {
				err = serr
			}
		}()
	}

	emitter, err := ooxml.NewEmitter(config.Format, useColor(config.ColorMode, stdout))
	if err != nil {
		return err
	}
	level := ooxml.GetLogger().Level()

	outputs := make([]bytes.Buffer, len(files))
	diagnostics := make([]bytes.Buffer, len(files))
	errs := make([]error, len(files))

	ctx := cmd.Context()
	g := new(errgroup.Group)
	g.SetLimit(config.Workers)
	for i, path := range files {
		g.Go(func() error {
			logger := ooxml.NewLogger(&diagnostics[i], level).WithField("file", path)
			errs[i] = processFile(ctx, path, config, emitter, logger, &outputs[i], &diagnostics[i])
			return nil
		})
	}
	_ = g.Wait()

	merr := ooxml.NewMultiError()
	for i := range files {
		stderr.Write(diagnostics[i].Bytes())
		if errs[i] != nil {
			merr.Add(errs[i])
			continue
		}
		if config.Format == "yaml" && i > 0 {
			io.WriteString(stdout, "---\n")
		}
		stdout.Write(outputs[i].Bytes())
	}
	return merr.Err()
}

func processFile(ctx context.Context, path string, config *ooxml.Config, emitter ooxml.Emitter, logger *ooxml.Logger, out, diag io.Writer) error {
	dr, err := ooxml.DocxReaderFromFile(path)
	if err != nil {
		return err
	}
	defer dr.Close()

	opts := []ooxml.Option{
		ooxml.WithPart(config.DocumentPart),
		ooxml.WithMaxDepth(config.MaxDepth),
		ooxml.WithLogger(logger),
	}
	if config.Verbose {
		for _, name := range dr.ListParts() {
			fmt.Fprintf(diag, "filename: %s\n", name)
		}
		opts = append(opts, ooxml.WithTrace(diag))
	}

	res, err := ooxml.ExtractDocx(ctx, dr, opts...)
	if err != nil {
		return ooxml.WithContext(err, "extract", map[string]interface{}{"file": path})
	}
	res.Source = path
	logger.Info("extracted document", "part", res.Part, "nodes", res.Tree.Len(), "texts", len(res.Runs))

	if config.Verbose {
		if err := tree.Dump(diag, res.Tree); err != nil {
			return err
		}
	}
	return emitter.Emit(out, res)
}
