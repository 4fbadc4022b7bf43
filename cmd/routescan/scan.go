package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"routescan/internal/config"
	"routescan/internal/diag"
	"routescan/internal/driver"
	"routescan/internal/report"
	"routescan/internal/trace"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [directory|file.java]",
	Short: "Extract HTTP endpoints from Java sources",
	Long: `Scan walks the directory (default: current), extracts servlet and Spring MVC
endpoints from every matching source file and prints the inventory.
Descriptor-mapped servlets are resolved through WEB-INF/web.xml files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("format", "", "output format (pretty|json|short), default from config")
	scanCmd.Flags().Int("jobs", 0, "max parallel workers (0 = config or GOMAXPROCS)")
	scanCmd.Flags().StringSlice("include", nil, "include glob, repeatable (replaces config)")
	scanCmd.Flags().StringSlice("exclude", nil, "exclude glob, repeatable (replaces config)")
	scanCmd.Flags().StringSlice("descriptor", nil, "additional web.xml file, repeatable")
	scanCmd.Flags().Bool("no-discover", false, "do not collect WEB-INF/web.xml files under the root")
	scanCmd.Flags().Bool("no-cache", false, "disable the result cache")
	scanCmd.Flags().String("cache-dir", "", "result cache directory")
	scanCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	scanCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	scanCmd.Flags().Bool("quiet", false, "print endpoints only, no diagnostics or summary")
	scanCmd.Flags().Bool("show-info", false, "include informational diagnostics in pretty output")
	scanCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

// scanSettings is the effective configuration after flags were applied.
type scanSettings struct {
	cfg       config.Config
	root      string
	format    report.Format
	color     string
	withNotes bool
	fullPath  bool
	quiet     bool
	showInfo  bool
	ui        uiMode
	timings   bool
}

func loadScanSettings(cmd *cobra.Command, args []string) (scanSettings, error) {
	s := scanSettings{root: "."}
	if len(args) == 1 {
		s.root = args[0]
	}
	cfg, err := config.Load(s.root)
	if err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("jobs") {
		if cfg.Scan.Jobs, err = flags.GetInt("jobs"); err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Changed("include") {
		if cfg.Scan.Include, err = flags.GetStringSlice("include"); err != nil {
			return s, fmt.Errorf("failed to get include flag: %w", err)
		}
	}
	if flags.Changed("exclude") {
		if cfg.Scan.Exclude, err = flags.GetStringSlice("exclude"); err != nil {
			return s, fmt.Errorf("failed to get exclude flag: %w", err)
		}
	}
	extra, err := flags.GetStringSlice("descriptor")
	if err != nil {
		return s, fmt.Errorf("failed to get descriptor flag: %w", err)
	}
	cfg.Descriptor.Files = append(cfg.Descriptor.Files, absAll(extra)...)
	if noDiscover, _ := flags.GetBool("no-discover"); noDiscover {
		cfg.Descriptor.Discover = false
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	if dir, _ := flags.GetString("cache-dir"); dir != "" {
		cfg.Cache.Dir = dir
	}
	if v, _ := flags.GetString("format"); v != "" {
		cfg.Output.Format = v
	}
	if v, _ := cmd.Root().PersistentFlags().GetString("color"); v != "" {
		cfg.Output.Color = v
	}
	if v, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); v > 0 {
		cfg.Scan.MaxDiagnostics = v
	}

	if s.format, err = report.ParseFormat(cfg.Output.Format); err != nil {
		return s, err
	}
	if s.color, err = readColorMode(cfg.Output.Color); err != nil {
		return s, err
	}
	uiValue, _ := flags.GetString("ui")
	if s.ui, err = readUIMode(uiValue); err != nil {
		return s, err
	}
	s.withNotes, _ = flags.GetBool("with-notes")
	s.fullPath, _ = flags.GetBool("fullpath")
	s.quiet, _ = flags.GetBool("quiet")
	s.showInfo, _ = flags.GetBool("show-info")
	s.timings, _ = cmd.Root().PersistentFlags().GetBool("timings")
	cfg.Output.Format, cfg.Output.Color = string(s.format), s.color
	s.cfg = cfg
	return s, cfg.Validate()
}

// openCache returns nil when caching is disabled. A cache that cannot be
// opened is reported and skipped; it never fails the scan.
func openCache(cfg config.Config, errOut io.Writer) *driver.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = driver.DefaultCacheDir("routescan"); err != nil {
			fmt.Fprintf(errOut, "cache: %v\n", err)
			dir = ""
		}
	}
	var disk *driver.DiskCache
	if dir != "" {
		var err error
		if disk, err = driver.OpenDiskCache(dir); err != nil {
			fmt.Fprintf(errOut, "cache: %v\n", err)
		}
	}
	cache, err := driver.NewCache(cfg.Cache.MemoryEntries, disk)
	if err != nil {
		fmt.Fprintf(errOut, "cache: %v\n", err)
		return nil
	}
	return cache
}

func runScan(cmd *cobra.Command, args []string) error {
	s, err := loadScanSettings(cmd, args)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	matcher, err := driver.NewMatcher(s.cfg.Scan.Include, s.cfg.Scan.Exclude)
	if err != nil {
		return err
	}
	project := driver.Project{
		Root:                s.root,
		Matcher:             matcher,
		Descriptors:         s.cfg.DescriptorPaths(),
		DiscoverDescriptors: s.cfg.Descriptor.Discover,
	}
	opts := driver.Options{
		Jobs:           s.cfg.Scan.Jobs,
		MaxDiagnostics: s.cfg.Scan.MaxDiagnostics,
		Cache:          openCache(s.cfg, cmd.ErrOrStderr()),
	}

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "scan", 0).
		WithExtra("root", s.root)
	ctx = trace.WithSpan(ctx, span.ID())

	start := time.Now()
	var batch *driver.Batch
	if s.format == report.FormatPretty && shouldUseTUI(s.ui) {
		batch, err = runScanWithUI(ctx, "routescan", project, opts)
	} else {
		batch, _, err = driver.ScanProject(ctx, project, opts)
	}
	elapsed := time.Since(start)
	span.End("")
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := writeScanReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), batch, elapsed, s); err != nil {
		return err
	}
	if batch.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

func writeScanReport(out, errOut io.Writer, batch *driver.Batch, elapsed time.Duration, s scanSettings) error {
	pathMode := report.PathModeRelative
	if s.fullPath {
		pathMode = report.PathModeAbsolute
	}
	opts := report.Options{
		PathMode:  pathMode,
		ShowNotes: s.withNotes,
		Context:   0,
		Max:       s.cfg.Scan.MaxDiagnostics,
	}
	summary := report.Summarize(batch, elapsed)
	diags := batch.Diagnostics()

	switch s.format {
	case report.FormatJSON:
		if err := report.JSON(out, batch.Endpoints, diags, batch.FileSet, &summary, opts); err != nil {
			return err
		}
	case report.FormatShort:
		if err := report.ShortEndpoints(out, batch.Endpoints); err != nil {
			return err
		}
		if !s.quiet {
			if err := report.ShortDiagnostics(errOut, diags, batch.FileSet, opts); err != nil {
				return err
			}
		}
	default:
		opts.Color = useColor(s.color, os.Stdout)
		if err := report.PrettyEndpoints(out, batch.Endpoints, opts); err != nil {
			return err
		}
		if !s.quiet {
			opts.Color = useColor(s.color, os.Stderr)
			if !s.showInfo {
				diags = withoutInfos(diags)
			}
			if err := report.PrettyDiagnostics(errOut, diags, batch.FileSet, opts); err != nil {
				return err
			}
			if err := report.PrettySummary(errOut, summary, opts); err != nil {
				return err
			}
		}
	}
	if s.timings {
		fmt.Fprint(errOut, batch.Timer.Summary())
	}
	return nil
}

// withoutInfos keeps warnings and errors. JSON and short output always carry
// every diagnostic.
func withoutInfos(diags []diag.Diagnostic) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity != diag.SevInfo {
			out = append(out, d)
		}
	}
	return out
}
