package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/driftbox/internal/analysis"
	"github.com/san-kum/driftbox/internal/automation"
	"github.com/san-kum/driftbox/internal/config"
	"github.com/san-kum/driftbox/internal/cursor"
	"github.com/san-kum/driftbox/internal/export"
	"github.com/san-kum/driftbox/internal/gui"
	"github.com/san-kum/driftbox/internal/metrics"
	"github.com/san-kum/driftbox/internal/obs"
	"github.com/san-kum/driftbox/internal/optim"
	"github.com/san-kum/driftbox/internal/sim"
	"github.com/san-kum/driftbox/internal/storage"
	"github.com/san-kum/driftbox/internal/tui"
	"github.com/san-kum/driftbox/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	configFile string
	preset     string
	count      int
	seed       int64
	fps        int
	level      int
	watch      bool
	logFile    string
	logLevel   string
	// headless runs
	ticks    int
	noSave   bool
	jsonOut  string
	svgOut   string
	ensemble int
	// sweeps
	sweepParams []string
	metricName  string
	maximize    bool
	// window
	width  int
	height int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "driftbox",
		Short:        "particle playground with a smoothed cursor",
		SilenceUsage: true,
		RunE:         runPlay,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".driftbox", "data directory")
	playFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "terminal playground",
		RunE:  runPlay,
	}
	playFlags(playCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "window playground",
		RunE:  runGUI,
	}
	playFlags(guiCmd)
	guiCmd.Flags().IntVar(&width, "width", 0, "window width (default: config viewport)")
	guiCmd.Flags().IntVar(&height, "height", 0, "window height (default: config viewport)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless run with recorded metrics",
		RunE:  runHeadless,
	}
	sourceFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", 600, "number of ticks")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also export the run as JSON to this path")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the final frame as SVG to this path")
	runCmd.Flags().IntVar(&ensemble, "ensemble", 0, "run this many seeds in parallel and summarise")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id|latest]",
		Short: "plot a stored run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "write the kinetic energy chart as SVG to this path")

	exportCmd := &cobra.Command{
		Use:   "export [run_id|latest]",
		Short: "export a stored run as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&jsonOut, "out", "", "output path (default stdout)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search tuning parameters against a metric",
		RunE:  runSweep,
	}
	sourceFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks per grid point")
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&metricName, "metric", "energy_retention", "metric to optimise")
	sweepCmd.Flags().BoolVar(&maximize, "maximize", false, "maximise the metric instead of minimising")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "replay a scripted input scenario headlessly",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id|latest]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSHAPES\tDAMPING\tSPEED\tLEVEL")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.3f\t%.2f\t%d\n",
					name, p.Particles.Count, p.Physics.Damping, p.Particles.InitialSpeed, p.Cursor.Level)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(playCmd, guiCmd, runCmd, listCmd, plotCmd, exportCmd, sweepCmd, scriptCmd, analyzeCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func sourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&count, "count", config.DefaultCount, "number of shapes")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	cmd.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
}

func playFlags(cmd *cobra.Command) {
	sourceFlags(cmd)
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().IntVar(&level, "level", cursor.DefaultLevel, "cursor speed level (1-10)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload --config on change")
}

// loadConfig layers defaults, a preset, a config file and explicit flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Particles.Count = count
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Lookup("level") != nil && flags.Changed("level") {
		cfg.Cursor.Level = level
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	return cfg, cfg.Validate()
}

func newSimulation(cfg *config.Config, log *zap.Logger, extra ...sim.Option) (*sim.Simulation, error) {
	opts := append([]sim.Option{sim.WithLogger(log)}, extra...)
	return sim.New(cfg.SimOptions(), opts...)
}

func watchPath() string {
	if watch {
		return configFile
	}
	return ""
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := obs.NewLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer log.Sync()

	s, err := newSimulation(cfg, log)
	if err != nil {
		return err
	}
	return tui.Run(s, tui.Options{
		FPS:        cfg.FPS,
		CellWidth:  cfg.TUI.CellWidth,
		CellHeight: cfg.TUI.CellHeight,
		Logger:     log,
	}, watchPath())
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := obs.NewLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer log.Sync()

	s, err := newSimulation(cfg, log)
	if err != nil {
		return err
	}
	return gui.Run(s, gui.Options{
		Width:      width,
		Height:     height,
		FPS:        cfg.FPS,
		ConfigPath: watchPath(),
		Logger:     log,
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := obs.NewLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if ensemble > 0 {
		return runEnsemble(ctx, cfg)
	}

	var extra []sim.Option
	for _, m := range metrics.Default() {
		extra = append(extra, sim.WithMetric(m))
	}
	s, err := newSimulation(cfg, log, extra...)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Printf("running %d shapes for %d ticks (seed %d)...\n", s.Len(), ticks, cfg.Seed)
	start := time.Now()
	result, err := s.Run(ctx, ticks)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	b := s.Bounds()
	meta := storage.RunMetadata{
		Preset:    preset,
		Seed:      cfg.Seed,
		Particles: s.Len(),
		FPS:       cfg.FPS,
		Width:     b.Width,
		Height:    b.Height,
	}
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(meta, result)
		if err != nil {
			return err
		}
		meta.ID = id
		fmt.Printf("run id: %s\n", id)
	}
	if jsonOut != "" {
		if err := storage.ExportFile(jsonOut, meta, result); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", jsonOut)
	}
	if svgOut != "" {
		if err := writeFile(svgOut, export.FrameToSVG(s.Frame())); err != nil {
			return err
		}
		fmt.Printf("final frame written to %s\n", svgOut)
	}

	fmt.Printf("completed in %v\n\n", elapsed)
	fmt.Println(viz.Plot(viz.Downsample(result.Kinetic(), 70), 70, 12, "kinetic energy"))
	printMetrics(result.Metrics)
	for _, e := range result.Errors {
		fmt.Println(viz.ErrorText.Render(e.Error()))
	}
	return nil
}

func parseParam(arg string) (string, []float64, error) {
	name, list, ok := strings.Cut(arg, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("bad --param %q, want name=v1,v2", arg)
	}
	var values []float64
	for _, raw := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad value in --param %s: %w", name, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(sweepParams) == 0 {
		return fmt.Errorf("no --param given (available: %s)", strings.Join(config.ParamNames(), ", "))
	}

	var names []string
	var ranges [][]float64
	for _, arg := range sweepParams {
		name, values, err := parseParam(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	goal := optim.Minimize
	if maximize {
		goal = optim.Maximize
	}
	g := optim.NewGridSearch(names, ranges)
	build := func(params map[string]float64) (*sim.Simulation, error) {
		cfg := base.Clone()
		for name, v := range params {
			if err := cfg.Set(name, v); err != nil {
				return nil, err
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		var extra []sim.Option
		for _, m := range metrics.Default() {
			extra = append(extra, sim.WithMetric(m))
		}
		return sim.New(cfg.SimOptions(), extra...)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("searching %d grid points for %d ticks each...\n", g.Size(), ticks)
	best, trials, err := g.Search(ctx, build, ticks, metricName, goal)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(metricName))
	for _, tr := range trials {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", tr.Params[name])
		}
		fmt.Fprintf(w, "%.6f\n", tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s = %.6f at", metricName, best.Value)
	for _, name := range names {
		fmt.Printf(" %s=%g", name, best.Params[name])
	}
	fmt.Println()
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := sc.Config(config.DefaultConfig())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name := sc.Name
	if name == "" {
		name = args[0]
	}
	fmt.Printf("playing %s: %d steps over %d ticks...\n", name, len(sc.Steps), sc.Ticks)

	var extra []sim.Option
	for _, m := range metrics.Default() {
		extra = append(extra, sim.WithMetric(m))
	}
	result, err := automation.RunScenario(ctx, sc, cfg, extra...)
	if err != nil {
		return err
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(storage.RunMetadata{
			Preset:    sc.Preset,
			Seed:      cfg.Seed,
			Particles: result.Series[len(result.Series)-1].Particles,
			FPS:       cfg.FPS,
			Width:     cfg.Viewport.Width,
			Height:    cfg.Viewport.Height,
		}, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", id)
	}

	fmt.Println()
	fmt.Println(viz.Plot(viz.Downsample(result.Kinetic(), 70), 70, 12, "kinetic energy"))
	printMetrics(result.Metrics)
	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config) error {
	fmt.Printf("running %d seeds from %d for %d ticks...\n", ensemble, cfg.Seed, ticks)
	e := sim.NewEnsemble(cfg.SimOptions(), ensemble, cfg.Seed, metrics.Default)
	results, err := e.Run(ctx, ticks)
	if err != nil {
		return err
	}

	names := make([]string, 0)
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, name := range names {
		lo, hi, sum := results[0].Metrics[name], results[0].Metrics[name], 0.0
		for _, r := range results {
			v := r.Metrics[name]
			sum += v
			lo, hi = min(lo, v), max(hi, v)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", name, sum/float64(len(results)), lo, hi)
	}
	return w.Flush()
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s %s\n", viz.MetricLabel.Render(fmt.Sprintf("%-18s", name)), viz.MetricValue.Render(fmt.Sprintf("%.6f", m[name])))
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPRESET\tSEED\tTICKS\tSHAPES\tVIEWPORT")
	for _, run := range runs {
		name := run.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.0fx%.0f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			name,
			run.Seed,
			run.Ticks,
			run.Particles,
			run.Width, run.Height,
		)
	}
	return w.Flush()
}

func resolveRun(st *storage.Store, args []string) (*storage.RunMetadata, error) {
	if len(args) == 0 || args[0] == "latest" {
		return st.Latest()
	}
	return st.Load(args[0])
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(meta.ID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	kinetic := make([]float64, len(series))
	contacts := make([]float64, len(series))
	for i, p := range series {
		kinetic[i] = p.Kinetic
		contacts[i] = float64(p.Contacts)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %d  ticks: %d  shapes: %d\n\n", meta.Seed, meta.Ticks, meta.Particles)
	fmt.Println(viz.Plot(viz.Downsample(kinetic, 70), 70, 12, "kinetic energy"))
	fmt.Println()
	fmt.Println(viz.Plot(viz.Downsample(contacts, 70), 70, 6, "contacts per tick"))
	printMetrics(meta.Metrics)

	if svgOut != "" {
		if err := writeFile(svgOut, export.SeriesToSVG(kinetic, 800, 300, "#14b8a6")); err != nil {
			return err
		}
		fmt.Printf("\nchart written to %s\n", svgOut)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(meta.ID)
	if err != nil {
		return err
	}
	rate := meta.FPS
	if rate <= 0 {
		rate = config.DefaultFPS
	}

	kinetic := make([]float64, len(series))
	contacts := make([]float64, len(series))
	for i, p := range series {
		kinetic[i] = p.Kinetic
		contacts[i] = float64(p.Contacts)
	}

	fmt.Printf("run: %s (%d ticks at %d fps)\n\n", meta.ID, len(series), rate)
	for _, col := range []struct {
		name   string
		values []float64
	}{{"kinetic", kinetic}, {"contacts", contacts}} {
		mean, std := analysis.Stats(col.values)
		fmt.Printf("%s: mean %.4f  std %.4f", col.name, mean, std)
		if b, ok := analysis.Dominant(col.values, rate); ok {
			fmt.Printf("  dominant %.3f Hz (every %.1f ticks)", b.Freq, b.Period)
		}
		fmt.Println()
	}
	if hl := analysis.HalfLife(kinetic); hl >= 0 {
		fmt.Printf("kinetic half-life: %d ticks\n", hl)
	}

	bins := analysis.Spectrum(kinetic, rate)
	if len(bins) > 0 {
		fmt.Println()
		fmt.Println(viz.Plot(viz.Downsample(analysis.Powers(bins), 70), 70, 10, "kinetic energy spectrum"))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(meta.ID)
	if err != nil {
		return err
	}
	result := &sim.Result{Ticks: meta.Ticks, Series: series, Metrics: meta.Metrics}

	if jsonOut == "" {
		return storage.ExportJSON(os.Stdout, *meta, result)
	}
	if err := storage.ExportFile(jsonOut, *meta, result); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", jsonOut)
	return nil
}

func writeFile(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Write(f, content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
