package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/tonegen/chord"
	"github.com/jsphweid/tonegen/midi"
	"github.com/jsphweid/tonegen/model"
	"github.com/jsphweid/tonegen/sample"
	"github.com/jsphweid/tonegen/util"
	"github.com/spf13/cobra"
)

var (
	inspectFlags pieceFlags
	inspectNotes int
)

func init() {
	addPieceFlags(inspectCmd, &inspectFlags)
	inspectCmd.Flags().IntVar(&inspectNotes, "notes", 8, "tones listed per track")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [midi files or dirs...]",
	Short: "Prints a piece's chords and tones",
	Long: `Prints the chord progression and the first tones of every voice of a
generated piece. Given paths, inspects the MIDI files found there instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return inspectFiles(args)
		}
		c, err := inspectFlags.build(cmd)
		if err != nil {
			return err
		}
		inspect(c)
		return nil
	},
}

func inspect(c *composition) {
	if c.piece != nil {
		fmt.Printf("seed: %v\n", c.seed)
		fmt.Printf("key: %v %v\n", c.piece.Key, c.piece.Key.Scale())
		fmt.Printf("bpm: %v\n", c.piece.BPM)
		for n, phrase := range c.piece.Phrases {
			fmt.Printf("phrase %v:\n", n)
			for _, ch := range phrase.Harmony {
				p := ch.Compact().Pitches()
				fmt.Printf("  %-8v %v\n", ch.Name(), chord.CreateChordKey(p[:]))
			}
		}
	}
	printTracks(c.tracks)
}

func printTracks(tracks []model.Track) {
	for _, t := range sample.Head(tracks, inspectNotes) {
		fmt.Printf("%v:\n", t.Name)
		for _, tone := range t.Tones {
			if tone.IsRest() {
				fmt.Printf("  %7.3fs  rest  %.3fs\n", tone.Start, tone.Duration)
				continue
			}
			fmt.Printf("  %7.3fs  %3v  %.3fs  vel %.2f\n", tone.Start, tone.Note(), tone.Duration, tone.Velocity)
		}
	}
}

func inspectFiles(args []string) error {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := util.GatherAllMidiPaths(arg, 0)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	for _, path := range paths {
		tracks, err := midi.ReadTones(path)
		if err != nil {
			return fmt.Errorf("%v: %w", path, err)
		}
		fmt.Printf("== %v\n", path)
		printTracks(tracks)
	}
	return nil
}
