package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/coach/internal/config"
	"github.com/wesleyorama2/coach/internal/output"
	"github.com/wesleyorama2/coach/internal/recording"
	"github.com/wesleyorama2/coach/pkg/coach"
)

var plotCmd = &cobra.Command{
	Use:   "plot <recording>",
	Short: "Plot variables from a saved recording",
	Long: `Replay a saved recording and plot one or more variables against another.

Examples:
  coach plot run.json -y y --against t
  coach plot run.coachz -y x,v --layout separate --html spring.html`,
	Args: cobra.ExactArgs(1),
	RunE: plotRecording,
}

func init() {
	plotCmd.Flags().StringP("y", "y", "", "comma-separated dependent variables (default: all but the first)")
	plotCmd.Flags().StringP("against", "x", "", "independent variable (default: the first recorded, or the step index)")
	plotCmd.Flags().String("title", "", "chart title")
	plotCmd.Flags().String("xlabel", "", "x axis label")
	plotCmd.Flags().String("ylabel", "", "y axis label")
	plotCmd.Flags().String("layout", "", "overlay or separate")
	plotCmd.Flags().Int("width", 0, "chart width")
	plotCmd.Flags().Int("height", 0, "chart height")
	plotCmd.Flags().String("html", "", "write an HTML report instead of drawing in the terminal")
}

func plotRecording(cmd *cobra.Command, args []string) error {
	r, err := recording.Load(args[0])
	if err != nil {
		return err
	}

	sim, err := r.Replay(coach.Config{Logger: newLogger(cmd)})
	if err != nil {
		return err
	}

	p := defaultPlot(sim)
	if ys, _ := cmd.Flags().GetString("y"); ys != "" {
		p.Y = splitList(ys)
	}
	if against, _ := cmd.Flags().GetString("against"); against != "" {
		p.Against = against
	} else if cmd.Flags().Changed("y") {
		p.Against = againstFor(sim, p.Y)
	}
	p.Title, _ = cmd.Flags().GetString("title")
	p.XLabel, _ = cmd.Flags().GetString("xlabel")
	p.YLabel, _ = cmd.Flags().GetString("ylabel")
	layout, _ := cmd.Flags().GetString("layout")
	p.Layout = coach.Layout(layout)
	p.Width, _ = cmd.Flags().GetInt("width")
	p.Height, _ = cmd.Flags().GetInt("height")

	html, _ := cmd.Flags().GetString("html")
	console := output.NewConsoleOutput(output.ConsoleOutputConfig{
		Writer:  cmd.OutOrStdout(),
		NoColor: settings.NoColor,
	})

	return drawPlots(cmd, console, sim, []config.PlotConfig{p}, config.OutputConfig{
		HTML:     html,
		Terminal: html == "",
	})
}

// againstFor picks the first recorded variable not being plotted, falling
// back to the step index.
func againstFor(sim *coach.Session, ys []string) string {
	plotted := make(map[string]bool, len(ys))
	for _, y := range ys {
		plotted[y] = true
	}
	for _, name := range sim.Names() {
		if !plotted[name] {
			return name
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
