package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/coach/internal/models"
)

var modelsCmd = &cobra.Command{
	Use:   "models [name]",
	Short: "List the built-in simulation models",
	Args:  cobra.MaximumNArgs(1),
	RunE:  listModels,
}

func listModels(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		desc, defaults, ok := models.Describe(args[0])
		if !ok {
			return fmt.Errorf("%w: %q", models.ErrUnknownModel, args[0])
		}

		m, err := models.New(args[0], nil)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s: %s\n\nParameters:\n", args[0], desc)
		keys := make([]string, 0, len(defaults))
		for k := range defaults {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %-10s %g\n", k, defaults[k])
		}

		fmt.Fprintln(out, "\nVariables:")
		for _, v := range m.Variables() {
			fmt.Fprintf(out, "  %-10s %-10s %s\n", v.Name, v.Unit, v.Label)
		}
		return nil
	}

	for _, name := range models.Names() {
		desc, _, _ := models.Describe(name)
		fmt.Fprintf(out, "%-12s %s\n", name, desc)
	}
	return nil
}
