package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/coach/internal/config"
	"github.com/wesleyorama2/coach/internal/models"
	"github.com/wesleyorama2/coach/internal/output"
	"github.com/wesleyorama2/coach/internal/recording"
	"github.com/wesleyorama2/coach/internal/report"
	"github.com/wesleyorama2/coach/internal/runner"
	"github.com/wesleyorama2/coach/internal/watch"
	"github.com/wesleyorama2/coach/pkg/coach"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a simulation scenario",
	Long: `Run a simulation described by a YAML or JSON scenario file, print a summary
of every recorded variable and draw the configured plots.

Examples:
  coach run freefall.yaml
  coach run freefall.yaml --set v0=8 --terminal
  coach run spring.yaml --html spring.html --export spring.coachz
  coach run freefall.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runScenario,
}

func init() {
	runCmd.Flags().StringArray("set", nil, "override a model parameter (name=value, repeatable)")
	runCmd.Flags().String("html", "", "write the plots to an HTML report")
	runCmd.Flags().String("export", "", "save the recording (.json, .yaml, .csv, .coachz)")
	runCmd.Flags().Bool("terminal", false, "draw the plots in the terminal")
	runCmd.Flags().BoolP("quiet", "q", false, "only print the run outcome")
	runCmd.Flags().BoolP("watch", "w", false, "re-run the scenario whenever the file changes")
}

func runScenario(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if w, _ := cmd.Flags().GetBool("watch"); w {
		return watchScenario(ctx, cmd, args[0])
	}
	return executeScenario(ctx, cmd, args[0])
}

// watchScenario runs the scenario once, then again after every change to the
// file, until ctx is cancelled. Failed runs are reported without stopping.
func watchScenario(ctx context.Context, cmd *cobra.Command, path string) error {
	log := newLogger(cmd)

	w, err := watch.New(watch.Config{Path: path})
	if err != nil {
		return err
	}
	defer w.Stop()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	rerun := func() {
		if err := executeScenario(ctx, cmd, path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes (Ctrl+C to stop)\n", path)
	}
	rerun()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			log.Info().Str("scenario", path).Msg("scenario changed, re-running")
			rerun()
		case err := <-w.Errors():
			log.Warn().Err(err).Str("scenario", path).Msg("watch error")
		}
	}
}

func executeScenario(ctx context.Context, cmd *cobra.Command, path string) error {
	sc, err := config.LoadScenario(path)
	if err != nil {
		return err
	}

	sets, _ := cmd.Flags().GetStringArray("set")
	overrides, err := parseParams(sets)
	if err != nil {
		return err
	}
	if len(overrides) > 0 && sc.Params == nil {
		sc.Params = make(map[string]float64, len(overrides))
	}
	for k, v := range overrides {
		sc.Params[k] = v
	}

	if html, _ := cmd.Flags().GetString("html"); html != "" {
		sc.Output.HTML = html
	}
	if export, _ := cmd.Flags().GetString("export"); export != "" {
		sc.Output.Export = export
	}
	if terminal, _ := cmd.Flags().GetBool("terminal"); terminal {
		sc.Output.Terminal = true
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	m, err := models.New(sc.Model, sc.Params)
	if err != nil {
		return err
	}

	log := newLogger(cmd)
	console := output.NewConsoleOutput(output.ConsoleOutputConfig{
		Writer:  cmd.OutOrStdout(),
		Quiet:   quiet,
		NoColor: settings.NoColor,
	})
	console.PrintHeader(sc.Name, sc.Model, effectiveParams(sc.Model, sc.Params))

	sim := coach.NewSessionWithConfig(coach.Config{Title: sc.Name, Logger: log})
	if err := runner.DeclareMetadata(sim, m); err != nil {
		return err
	}
	if err := applyMetadata(sim, sc.Metadata); err != nil {
		return err
	}

	res, err := runner.Run(ctx, sim, m, runner.Config{
		Dt:       sc.Dt,
		MaxSteps: sc.MaxSteps,
		Timeout:  sc.Timeout.Duration(),
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("run %s: %w", sc.Name, err)
	}
	console.PrintSummary(sim, res)

	if sim.Len() == 0 {
		console.PrintNotice("no data recorded, skipping plots")
	} else {
		plots := sc.Plots
		if len(plots) == 0 {
			plots = []config.PlotConfig{defaultPlot(sim)}
		}
		if err := drawPlots(cmd, console, sim, plots, sc.Output); err != nil {
			return err
		}
	}

	if sc.Output.Export != "" {
		path := outputPath(sc.Output.Export)
		if err := recording.Save(path, recording.FromSession(sim)); err != nil {
			return err
		}
		console.PrintSaved("recording", path)
	}

	return nil
}

// drawPlots sends every plot to the terminal and/or an HTML report. With no
// destination configured at all, plots go to the terminal.
func drawPlots(cmd *cobra.Command, console *output.ConsoleOutput, sim *coach.Session, plots []config.PlotConfig, out config.OutputConfig) error {
	terminal := out.Terminal || (out.HTML == "" && out.Export == "")

	var renderers []coach.Renderer
	if terminal {
		renderers = append(renderers, output.NewTerminalRenderer(cmd.OutOrStdout(), settings.NoColor))
	}

	var collector *report.Collector
	if out.HTML != "" {
		collector = report.NewCollector()
		renderers = append(renderers, collector)
	}

	for _, p := range plots {
		for _, r := range renderers {
			if err := sim.PlotWith(r, p.Options(), p.Y...); err != nil {
				return fmt.Errorf("plot %s: %w", strings.Join(p.Y, ","), err)
			}
		}
	}

	if collector != nil {
		path := outputPath(out.HTML)
		if err := collector.WriteHTML(sim.Title(), path); err != nil {
			return err
		}
		console.PrintSaved("report", path)
	}

	return nil
}

// defaultPlot draws every variable against the first one recorded, or
// against the step index when only one variable exists.
func defaultPlot(sim *coach.Session) config.PlotConfig {
	names := sim.Names()
	if len(names) < 2 {
		return config.PlotConfig{Y: names}
	}
	return config.PlotConfig{Against: names[0], Y: names[1:]}
}

func applyMetadata(sim *coach.Session, md map[string]config.MetadataConfig) error {
	names := make([]string, 0, len(md))
	for name := range md {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := sim.SetMetadata(name, md[name].Unit, md[name].Label); err != nil {
			return err
		}
	}
	return nil
}

// parseParams parses name=value pairs.
func parseParams(pairs []string) (map[string]float64, error) {
	params := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for parameter %q: %w", name, err)
		}
		params[name] = v
	}
	return params, nil
}

// effectiveParams merges overrides onto the model defaults for display.
func effectiveParams(model string, overrides map[string]float64) map[string]float64 {
	_, defaults, _ := models.Describe(model)
	out := make(map[string]float64, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
