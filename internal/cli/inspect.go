package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/coach/internal/output"
	"github.com/wesleyorama2/coach/internal/recording"
	"github.com/wesleyorama2/coach/pkg/coach"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <recording>",
	Short: "Summarise or query a saved recording",
	Long: `Print a per-variable summary of a saved recording, extract a single value with
a JSONPath-style expression, or convert the recording to another format.

Examples:
  coach inspect run.json
  coach inspect run.coachz --path '$.metadata.y.unit'
  coach inspect run.json --convert run.csv`,
	Args: cobra.ExactArgs(1),
	RunE: inspectRecording,
}

func init() {
	inspectCmd.Flags().StringP("path", "p", "", "JSONPath-style expression to extract")
	inspectCmd.Flags().String("convert", "", "write the recording in the format of this file's extension (csv drops title and metadata)")
}

func inspectRecording(cmd *cobra.Command, args []string) error {
	r, err := recording.Load(args[0])
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("path"); path != "" {
		value, err := r.Query(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	}

	console := output.NewConsoleOutput(output.ConsoleOutputConfig{
		Writer:  cmd.OutOrStdout(),
		NoColor: settings.NoColor,
	})

	if target, _ := cmd.Flags().GetString("convert"); target != "" {
		target = outputPath(target)
		if err := recording.Save(target, r); err != nil {
			return err
		}
		console.PrintSaved("recording", target)
		return nil
	}

	sim, err := r.Replay(coach.Config{Logger: newLogger(cmd)})
	if err != nil {
		return err
	}
	console.PrintSummary(sim, nil)
	return nil
}
