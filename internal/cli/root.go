package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wesleyorama2/coach/internal/logging"
)

var version = "0.1.0"

// defaultConfigFile is read from the working directory when --config is not given.
const defaultConfigFile = ".coach.yaml"

// Settings are the global CLI settings, read from flags, COACH_* environment
// variables and the config file, in that order of precedence.
type Settings struct {
	LogLevel  string `mapstructure:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty"`
	NoColor   bool   `mapstructure:"no_color"`
	OutputDir string `mapstructure:"output_dir"`
}

var (
	cfgFile   string
	settings  Settings
	configErr error
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "coach",
	Short:   "Record classroom simulations and plot them",
	Version: version,
	Long: `Coach runs small physics simulations step by step, records every tracked
variable into aligned series and plots any variable against another, in the
terminal or as an HTML report. Recordings can be exported, inspected and
plotted again later.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configErr
	},
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: ./"+defaultConfigFile+")")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.Bool("log-pretty", false, "human-readable log output")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("output-dir", "", "directory for relative output paths")

	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(plotCmd)
	RootCmd.AddCommand(inspectCmd)
	RootCmd.AddCommand(modelsCmd)
}

func initConfig() {
	configErr = nil
	settings = Settings{}

	flags := RootCmd.PersistentFlags()
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log_pretty", flags.Lookup("log-pretty"))
	_ = viper.BindPFlag("no_color", flags.Lookup("no-color"))
	_ = viper.BindPFlag("output_dir", flags.Lookup("output-dir"))

	viper.SetDefault("log_level", "warn")
	viper.SetEnvPrefix("COACH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	explicit := cfgFile != ""
	switch {
	case explicit:
		viper.SetConfigFile(cfgFile)
	default:
		if _, err := os.Stat(defaultConfigFile); err == nil {
			viper.SetConfigFile(defaultConfigFile)
		}
	}

	if viper.ConfigFileUsed() != "" {
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if explicit || !errors.As(err, &notFound) {
				configErr = err
			}
		}
	}

	if err := viper.Unmarshal(&settings); err != nil && configErr == nil {
		configErr = err
	}
}

// newLogger builds the command logger from the global settings.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	return logging.New(logging.Config{
		Level:  settings.LogLevel,
		Pretty: settings.LogPretty,
		Writer: cmd.ErrOrStderr(),
	})
}

// outputPath resolves a relative output path against output_dir.
func outputPath(path string) string {
	if path == "" || settings.OutputDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(settings.OutputDir, path)
}
