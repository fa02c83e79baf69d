package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/heroscene/internal/config"
	"github.com/san-kum/heroscene/internal/experiment"
	"github.com/san-kum/heroscene/internal/export"
	"github.com/san-kum/heroscene/internal/gui"
	"github.com/san-kum/heroscene/internal/metrics"
	"github.com/san-kum/heroscene/internal/page"
	"github.com/san-kum/heroscene/internal/storage"
	"github.com/san-kum/heroscene/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Config sizes are in sub-pixels; the canvas counts braille cells.
	return viz.Run(viz.Options{
		Width:        cfg.Width / 2,
		Height:       cfg.Height / 4,
		FPS:          cfg.FPS,
		Seed:         cfg.Seed,
		Damping:      cfg.Damping,
		PointerScale: cfg.Pointer.Scale,
		Theme:        cfg.Theme,
	}, log)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	return gui.Run(gui.Options{
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		FPS:          cfg.FPS,
		Seed:         cfg.Seed,
		Damping:      cfg.Damping,
		PointerScale: cfg.Pointer.Scale,
	}, log)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp := experiment.New(cfg)
	if err := exp.Setup(metrics.Default()); err != nil {
		return err
	}

	fmt.Printf("running %d frames at %d fps...\n", cfg.Frames, cfg.FPS)
	start := time.Now()
	out, err := exp.Run(ctx)
	if err != nil {
		log.Error("run stopped", zap.Error(err))
		if out == nil {
			return err
		}
	}
	elapsed := time.Since(start)

	runID, saveErr := st.Save(storage.RunMetadata{
		Preset:   preset,
		Seed:     cfg.Seed,
		FPS:      cfg.FPS,
		Frames:   out.Frames,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Damping:  cfg.Damping,
		PointerX: cfg.Pointer.X,
		PointerY: cfg.Pointer.Y,
		Sweep:    cfg.Pointer.Sweep,
		Metrics:  out.Metrics,
	}, out.Samples)
	if saveErr != nil {
		return saveErr
	}
	log.Info("run saved", zap.String("run_id", runID), zap.Int("frames", out.Frames), zap.Duration("wall", elapsed))

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", out.Frames)
	fmt.Println("\nmetrics:")
	for _, name := range slices.Sorted(maps.Keys(out.Metrics)) {
		fmt.Printf("  %s: %.6f\n", name, out.Metrics[name])
	}
	return err
}

func benchEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	seeds := make([]int64, runs)
	for i := range seeds {
		seeds[i] = cfg.Seed + int64(i)
	}

	fmt.Printf("benchmarking %d seeds x %d frames (%d workers)\n\n", runs, cfg.Frames, workers)
	start := time.Now()
	outs, err := experiment.RunEnsemble(cmd.Context(), cfg, seeds, workers)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.Info("ensemble finished", zap.Int("runs", runs), zap.Duration("wall", elapsed))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV\tMIN\tMAX")
	for _, s := range experiment.Summarize(outs) {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\t%.6f\n", s.Name, s.Mean, s.StdDev, s.Min, s.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	total := runs * cfg.Frames
	fmt.Printf("\n%d frames in %v (%.0f frames/sec)\n", total, elapsed, float64(total)/elapsed.Seconds())
	return nil
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSEED\tFRAMES\tFPS\tCAMERA LAG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.4f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Frames,
			run.FPS,
			run.Metrics["camera_lag"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("frames: %d\n\n", len(records))

	series := []struct {
		caption string
		value   func(*storage.FrameRecord) float64
	}{
		{"camera x", func(r *storage.FrameRecord) float64 { return r.CameraX }},
		{"camera y", func(r *storage.FrameRecord) float64 { return r.CameraY }},
		{"target x", func(r *storage.FrameRecord) float64 { return r.TargetX }},
		{"torus spin", func(r *storage.FrameRecord) float64 { return r.Spin }},
		{"orbit drift", func(r *storage.FrameRecord) float64 { return r.OrbitDrift }},
	}

	for _, s := range series {
		data := make([]float64, len(records))
		for i, r := range records {
			data[i] = s.value(r)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outPath == "" {
		return st.WriteJSON(args[0], os.Stdout)
	}
	if err := st.ExportJSON(args[0], outPath); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], outPath)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	records, err := storage.New(dataDir).LoadFrames(runID)
	if err != nil {
		return err
	}

	points := make([]export.Point, len(records))
	for i, r := range records {
		points[i] = export.Point{X: r.CameraX, Y: r.CameraY}
	}
	svg := export.PathToSVG(points, 600, 600, string(viz.CurrentTheme.Primary))
	if svg == "" {
		return fmt.Errorf("run %s has too few frames to draw", runID)
	}

	path := outPath
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote camera path to %s\n", path)
	return nil
}

func snapshotFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	viz.SetTheme(cfg.Theme)

	canvas := viz.NewCanvas(cfg.Width/2, cfg.Height/4)
	exp := experiment.New(cfg).WithRenderer(viz.NewSceneRenderer(canvas))
	if err := exp.Setup(nil); err != nil {
		return err
	}
	if _, err := exp.Run(cmd.Context()); err != nil {
		return err
	}

	if err := os.WriteFile(outPath, []byte(export.CanvasToSVG(canvas, svgScale)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote frame %d to %s\n", cfg.Frames, outPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFPS\tFRAMES\tDAMPING\tPOINTER\tSWEEP")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t(%+.0f, %+.0f)\t%.0f\n",
			name, p.FPS, p.Frames, p.Damping, p.Pointer.X, p.Pointer.Y, p.Pointer.Sweep)
	}
	return w.Flush()
}

func convertAmounts(cmd *cobra.Command, args []string) error {
	for _, a := range args {
		fmt.Printf("%s EUR = %s GBP\n", a, page.Convert(a))
	}
	return nil
}
