package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/jsphweid/tonegen/constants"
	"github.com/jsphweid/tonegen/render"
	"github.com/jsphweid/tonegen/sample"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	playFlags  pieceFlags
	playFrom   float64
	playLength float64
)

func init() {
	addPieceFlags(playCmd, &playFlags)
	playCmd.Flags().Float64Var(&playFrom, "from", 0, "start of the excerpt in seconds")
	playCmd.Flags().Float64Var(&playLength, "length", 0, "excerpt length in seconds (default: whole piece)")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Composes a piece and plays it",
	Long:  `Composes a piece and plays it on the default audio device. Ctrl-C stops playback.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := playFlags.build(cmd)
		if err != nil {
			return err
		}
		if playFrom > 0 || playLength > 0 {
			length := playLength
			if length <= 0 {
				length = c.sound.Duration
			}
			c.tracks = sample.Excerpt(c.tracks, playFrom, length)
			if err := c.instrument(logger); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return play(ctx, c)
	},
}

func play(ctx context.Context, c *composition) error {
	timer := c.Timer()
	return render.Play(ctx, c.sound, constants.GetSampleRate(),
		render.WithLogger(logger),
		render.WithProgress(func(float64) {
			logger.Info("progress",
				zap.Float64("position", timer.Now()),
				zap.Float64("duration", c.sound.Duration))
		}))
}
