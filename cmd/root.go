package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tonegen",
	Short: "Procedural music generator",
	Long: `Composes short pieces from chord progressions and rhythm patterns and
renders them through a modular synth to WAV, MIDI or the speaker.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging at debug level")
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// Run executes the CLI with args instead of os.Args.
func Run(args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
