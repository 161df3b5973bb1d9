package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/qwell/internal/analysis"
	"github.com/san-kum/qwell/internal/config"
	"github.com/san-kum/qwell/internal/frames"
	"github.com/san-kum/qwell/internal/quantum"
	"github.com/san-kum/qwell/internal/render"
	"github.com/san-kum/qwell/internal/storage"
	"github.com/san-kum/qwell/internal/viz"
)

var (
	dataDir    string
	boxLength  float64
	mass       float64
	hbar       float64
	gridPoints int
	nmax       int
	frameCount int
	fps        int
	periods    float64
	output     string
	workers    int
	configFile string
	preset     string
	// plot / export selection
	frameIdx int
	// analyze probe position as a fraction of the box length
	probe float64
	// svg canvas
	svgWidth  int
	svgHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qwell",
		Short: "infinite square well probability density animator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".qwell", "data directory")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "compute frames and write the animated GIF",
		RunE:  renderGIF,
	}
	addComputeFlags(renderCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute frames and store the run",
		RunE:  runStore,
	}
	addComputeFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "play the animation in the terminal",
		RunE:  runLive,
	}
	addComputeFlags(liveCmd)

	coeffsCmd := &cobra.Command{
		Use:   "coeffs",
		Short: "tabulate the expansion coefficients",
		RunE:  printCoeffs,
	}
	coeffsCmd.Flags().IntVar(&nmax, "nmax", config.DefaultNMax, "truncation order")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one stored frame in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&frameIdx, "frame", 0, "frame index")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "beat frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&probe, "probe", 0.25, "probe position as a fraction of L")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one stored frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&frameIdx, "frame", 0, "frame index")
	exportSVGCmd.Flags().StringVar(&output, "out", "frame.svg", "output path")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "svg width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "svg height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tNMAX\tFRAMES\tFPS\tPERIODS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%.3f\n",
					name, p.GridPoints, p.NMax, p.Frames, p.FPS, p.Periods)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(renderCmd, runCmd, liveCmd, coeffsCmd, listCmd, plotCmd,
		analyzeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addComputeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&boxLength, "box", config.DefaultBoxLength, "box length in meters")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass in kg")
	cmd.Flags().Float64Var(&hbar, "hbar", config.DefaultHbar, "reduced Planck constant")
	cmd.Flags().IntVar(&gridPoints, "grid", config.DefaultGridPoints, "spatial grid points")
	cmd.Flags().IntVar(&nmax, "nmax", config.DefaultNMax, "truncation order")
	cmd.Flags().IntVar(&frameCount, "frames", config.DefaultFrames, "animation frames")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "animation frame rate")
	cmd.Flags().Float64Var(&periods, "periods", config.DefaultPeriods, "t_max in units of tau")
	cmd.Flags().StringVar(&output, "out", config.DefaultOutput, "output path")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel frame workers (0 = all cpus)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves preset, config file and CLI flags in ascending
// precedence, matching flag semantics elsewhere: an explicitly set flag
// always wins.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		tmp := *p
		cfg = &tmp
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("box") {
		cfg.BoxLength = boxLength
	}
	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("hbar") {
		cfg.Hbar = hbar
	}
	if cmd.Flags().Changed("grid") {
		cfg.GridPoints = gridPoints
	}
	if cmd.Flags().Changed("nmax") {
		cfg.NMax = nmax
	}
	if cmd.Flags().Changed("frames") {
		cfg.Frames = frameCount
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("periods") {
		cfg.Periods = periods
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = output
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}

	return cfg, nil
}

func sample(ctx context.Context, cfg *config.Config) (*frames.Result, []float64, float64, error) {
	params := quantum.Params{BoxLength: cfg.BoxLength, Mass: cfg.Mass, Hbar: cfg.Hbar}
	grid := params.Grid(cfg.GridPoints)

	well, err := quantum.NewWell(params, grid, cfg.NMax)
	if err != nil {
		return nil, nil, 0, err
	}

	tmax := cfg.Periods * params.Tau()
	sampler := frames.NewSampler(well, quantum.TimeSequence(tmax, cfg.Frames))
	result, err := sampler.SampleParallel(ctx, cfg.Workers)
	if err != nil {
		return nil, nil, 0, err
	}
	return result, grid, tmax, nil
}

func printMetrics(metrics map[string]float64) {
	fmt.Println("\nmetrics:")
	for name, val := range metrics {
		fmt.Printf("  %s: %.6e\n", name, val)
	}
}

func renderGIF(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("sampling %d frames (grid=%d, nmax=%d)...\n", cfg.Frames, cfg.GridPoints, cfg.NMax)
	start := time.Now()

	result, grid, _, err := sample(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	opts := render.DefaultOptions()
	opts.FPS = cfg.FPS
	if err := render.WriteGIF(cfg.Output, grid, result, opts); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("wrote %s\n", cfg.Output)
	printMetrics(result.Metrics)
	return nil
}

func runStore(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("sampling %d frames (grid=%d, nmax=%d)...\n", cfg.Frames, cfg.GridPoints, cfg.NMax)
	start := time.Now()

	result, _, tmax, err := sample(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		BoxLength:  cfg.BoxLength,
		Mass:       cfg.Mass,
		Hbar:       cfg.Hbar,
		GridPoints: cfg.GridPoints,
		NMax:       cfg.NMax,
		FPS:        cfg.FPS,
		TMax:       tmax,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	printMetrics(result.Metrics)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	result, grid, _, err := sample(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(grid, result, cfg.FPS, cfg.Output)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func printCoeffs(cmd *cobra.Command, args []string) error {
	if nmax < 1 {
		return quantum.ErrInvalidMode
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tC_N\tC_N^2\tCUMULATIVE")

	sum := 0.0
	for n, c := range quantum.Coefficients(nmax) {
		sum += c * c
		fmt.Fprintf(w, "%d\t%+.6f\t%.6f\t%.6f\n", n+1, c, c*c, sum)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nsum of squares: %.6f (1 at nmax -> inf)\n", sum)
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
	fmt.Fprintln(w, "ID\tTIME\tGRID\tNMAX\tFRAMES\tT_MAX")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.3e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.GridPoints,
			run.NMax,
			run.Frames,
			run.TMax,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, [][]float64, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	densities, times, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(densities) == 0 {
		return nil, nil, nil, fmt.Errorf("no frame data in run %s", runID)
	}
	return meta, densities, times, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, densities, times, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if frameIdx < 0 || frameIdx >= len(densities) {
		return fmt.Errorf("frame %d out of range [0,%d)", frameIdx, len(densities))
	}

	// plot L*|psi|^2 so the axis labels stay near unity
	scaled := make([]float64, len(densities[frameIdx]))
	for i, v := range densities[frameIdx] {
		scaled[i] = v * meta.BoxLength
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frame: %d/%d  t = %.2e s\n\n", frameIdx+1, len(densities), times[frameIdx])

	graph := asciigraph.Plot(scaled,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("L*|psi|^2 across the well"),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, densities, times, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(times) < 4 {
		return fmt.Errorf("run %s too short to analyze", meta.ID)
	}

	if probe < 0 {
		probe = 0
	}
	if probe > 1 {
		probe = 1
	}
	idx := int(probe * float64(len(densities[0])-1))

	series := make([]float64, len(densities))
	for i := range densities {
		series[i] = densities[i][idx]
	}

	fmt.Printf("beat analysis: %s\n", meta.ID)
	fmt.Printf("probe: x = %.2f L\n\n", probe)

	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("|psi|^2 at the probe vs frame"),
	)
	fmt.Println(graph)
	fmt.Println()

	ps := analysis.Spectrum(series)
	graph = asciigraph.Plot(ps[:len(ps)/4],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	dt := times[1] - times[0]
	freq, power := analysis.DominantFrequency(series, dt)
	fmt.Printf("dominant beat: %.4e hz (power %.3e)\n\n", freq, power)

	params := quantum.Params{BoxLength: meta.BoxLength, Mass: meta.Mass, Hbar: meta.Hbar}
	fmt.Println("analytic beat lines:")
	pairs := [][2]int{{1, 2}, {1, 3}, {2, 3}}
	for _, pr := range pairs {
		f := (params.Energy(pr[1]) - params.Energy(pr[0])) / (2 * math.Pi * params.Hbar)
		fmt.Printf("  n=%d<->%d: %.4e hz\n", pr[0], pr[1], f)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, densities, times, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range densities[0] {
		header = append(header, fmt.Sprintf("p%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range densities {
		row := []string{strconv.FormatFloat(times[i], 'e', 9, 64)}
		for _, val := range densities[i] {
			row = append(row, strconv.FormatFloat(val, 'e', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, densities, times, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, densities, times)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, densities, times, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if frameIdx < 0 || frameIdx >= len(densities) {
		return fmt.Errorf("frame %d out of range [0,%d)", frameIdx, len(densities))
	}

	params := quantum.Params{BoxLength: meta.BoxLength, Mass: meta.Mass, Hbar: meta.Hbar}
	grid := params.Grid(meta.GridPoints)

	peak := meta.Metrics["peak_density"]
	if peak <= 0 {
		for _, v := range densities[0] {
			if v > peak {
				peak = v
			}
		}
	}
	bounds := frames.Bounds{XMin: 0, XMax: meta.BoxLength, YMax: 1.4 * peak}
	frame := frames.Frame{
		Index:   frameIdx,
		Time:    times[frameIdx],
		Label:   fmt.Sprintf("t = %.2e s", times[frameIdx]),
		Density: densities[frameIdx],
	}

	svg := render.DensityToSVG(grid, frame, bounds, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("frame %d has no drawable data", frameIdx)
	}
	if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}
