package cmd

import (
	"fmt"

	"github.com/jsphweid/tonegen/constants"
	"github.com/jsphweid/tonegen/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reportFlags pieceFlags

func init() {
	addPieceFlags(reportCmd, &reportFlags)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Creates a per-voice report of a piece: tone counts, ranges, durations and peak polyphony.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := reportFlags.build(cmd)
		if err != nil {
			return err
		}
		report(c)
		return nil
	},
}

type voiceReport struct {
	tones     int
	rests     int
	low, high int
	meanVel   float64
	duration  float64
	restEnd   float64
	polyphony int
}

func analyzeVoices(c *composition) map[string]voiceReport {
	res := make(map[string]voiceReport)
	for n, inst := range c.insts {
		var notes []int
		var velocities []float64
		r := voiceReport{
			duration:  inst.Duration(),
			restEnd:   inst.RestEnd(),
			polyphony: inst.Polyphony(),
		}
		for _, tone := range c.tracks[n].Tones {
			if tone.IsRest() {
				r.rests++
				continue
			}
			notes = append(notes, tone.Note())
			velocities = append(velocities, tone.Velocity)
		}
		r.tones = len(notes)
		if len(notes) > 0 {
			r.low, r.high = util.Min(notes...), util.Max(notes...)
		}
		r.meanVel = util.Mean(velocities)
		res[c.voices[n].Name] = r
	}
	return res
}

func report(c *composition) {
	voices := analyzeVoices(c)
	var polyphonies []int
	for _, name := range util.GetKeys(voices) {
		r := voices[name]
		fmt.Printf("%v:\n", name)
		fmt.Printf("  tones: %v (rests: %v)\n", r.tones, r.rests)
		fmt.Printf("  range: %v-%v\n", r.low, r.high)
		fmt.Printf("  mean velocity: %.2f\n", r.meanVel)
		fmt.Printf("  duration: %.2fs (rests end at %.2fs)\n", r.duration, r.restEnd)
		fmt.Printf("  peak polyphony: %v\n", r.polyphony)
		polyphonies = append(polyphonies, r.polyphony)
		if r.polyphony > constants.PolyphonyWarning {
			logger.Warn("high polyphony",
				zap.String("voice", name),
				zap.Int("polyphony", r.polyphony),
				zap.Int("threshold", constants.PolyphonyWarning))
		}
	}
	fmt.Printf("total duration: %.2fs\n", c.sound.Duration)
	fmt.Printf("total polyphony: %v\n", util.Sum(polyphonies))
}
