package cmd

import (
	"fmt"

	"github.com/jsphweid/tonegen/constants"
	"github.com/jsphweid/tonegen/file"
	"github.com/jsphweid/tonegen/midi"
	"github.com/jsphweid/tonegen/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	composeFlags pieceFlags
	outDir       string
	outName      string
	writeWAV     bool
	writeMIDI    bool
	sampleRate   int
)

func init() {
	addPieceFlags(composeCmd, &composeFlags)
	composeCmd.Flags().StringVar(&outDir, "out", constants.GetOutputDir(), "output directory")
	composeCmd.Flags().StringVar(&outName, "name", "", "output file name without extension (default: uuid)")
	composeCmd.Flags().BoolVar(&writeWAV, "wav", true, "render a WAV file")
	composeCmd.Flags().BoolVar(&writeMIDI, "midi", true, "export a MIDI file")
	composeCmd.Flags().IntVar(&sampleRate, "sample-rate", constants.GetSampleRate(), "WAV sample rate")
	rootCmd.AddCommand(composeCmd)
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Composes a piece and renders it to files",
	Long:  `Composes a piece and renders it to a WAV file and/or a MIDI file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := composeFlags.build(cmd)
		if err != nil {
			return err
		}
		return writeOutputs(c)
	},
}

func writeOutputs(c *composition) error {
	paths, err := file.CreatePaths(outDir, outName)
	if err != nil {
		return err
	}
	if writeMIDI {
		bpm := 120
		if c.piece != nil {
			bpm = c.piece.BPM
		}
		if err := midi.WriteTones(paths.MIDI, c.tracks, bpm); err != nil {
			return err
		}
		logger.Info("wrote midi", zap.String("path", paths.MIDI))
		fmt.Println(paths.MIDI)
	}
	if writeWAV {
		if err := render.WAV(paths.WAV, c.sound, sampleRate); err != nil {
			return err
		}
		logger.Info("wrote wav", zap.String("path", paths.WAV), zap.Float64("seconds", c.sound.Duration))
		fmt.Println(paths.WAV)
	}
	return nil
}
