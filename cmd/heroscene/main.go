package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/heroscene/internal/config"
	"github.com/san-kum/heroscene/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	frameRate  int
	width      int
	height     int
	frames     int
	damping    float64
	pointerX   float64
	pointerY   float64
	sweep      float64
	theme      string
	logLevel   string
	logFile    string
	// gui
	windowWidth  int
	windowHeight int
	// bench
	runs    int
	workers int
	// export-json, export-svg, snapshot
	outPath  string
	svgScale float64
)

// main registers the commands and runs the terminal viewer when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "heroscene",
		Short:         "animated 3D landing-page hero",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".heroscene", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 1, "random seed for the scene")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.IntVar(&width, "width", config.DefaultWidth, "target width")
	pf.IntVar(&height, "height", config.DefaultHeight, "target height")
	pf.Float64Var(&damping, "damping", config.DefaultDamping, "camera easing per frame")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
	pf.StringVar(&logFile, "log-file", "", "log file (viewers default to <data>/heroscene.log)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "terminal landing page with the hero",
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "hero in a desktop window",
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&windowWidth, "window-width", config.DefaultWindowWidth, "window width in pixels")
	guiCmd.Flags().IntVar(&windowHeight, "window-height", config.DefaultWindowHeight, "window height in pixels")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless run with a scripted pointer",
		RunE:  runHeadless,
	}
	addRunFlags(runCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run an ensemble of seeds in parallel",
		RunE:  benchEnsemble,
	}
	addRunFlags(benchCmd)
	benchCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")
	benchCmd.Flags().IntVar(&workers, "workers", 4, "parallel runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a run's camera path as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.svg)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame of the hero to SVG",
		RunE:  snapshotFrame,
	}
	addRunFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "hero.svg", "output file")
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 4, "svg units per sub-pixel")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	convertCmd := &cobra.Command{
		Use:   "convert [amount...]",
		Short: "convert EUR amounts to GBP at the demo rate",
		Args:  cobra.MinimumNArgs(1),
		RunE:  convertAmounts,
	}

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, benchCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, snapshotCmd, presetsCmd, convertCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to run")
	cmd.Flags().Float64Var(&pointerX, "pointer-x", 0, "pointer offset from center")
	cmd.Flags().Float64Var(&pointerY, "pointer-y", 0, "pointer offset from center")
	cmd.Flags().Float64Var(&sweep, "sweep", 0, "circle the pointer with this radius")
}

// loadConfig resolves preset, file and environment, then applies the flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(preset, configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("damping") {
		cfg.Damping = damping
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("window-width") {
		cfg.Window.Width = windowWidth
	}
	if flags.Changed("window-height") {
		cfg.Window.Height = windowHeight
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("pointer-x") {
		cfg.Pointer.X = pointerX
	}
	if flags.Changed("pointer-y") {
		cfg.Pointer.Y = pointerY
	}
	if flags.Changed("sweep") {
		cfg.Pointer.Sweep = sweep
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger for cfg. Screen-owning hosts log to a file
// under the data directory unless one is configured.
func newLogger(cfg *config.Config, ownsScreen bool) (*zap.Logger, error) {
	file := cfg.Log.File
	if file == "" && ownsScreen {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, err
		}
		file = filepath.Join(dataDir, "heroscene.log")
	}
	return logging.New(cfg.Log.Level, file)
}
