package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-trackgeo/dsp/waveband"
	"github.com/cwbudde/algo-trackgeo/stats/series"
	"github.com/cwbudde/algo-trackgeo/track"
)

// viperKey annotates flags with the parameter key they override.
const viperKey = "trackplan/viper-key"

func bindFloat(fs *pflag.FlagSet, name, key string, def float64, usage string) {
	fs.Float64(name, def, usage)
	_ = fs.SetAnnotation(name, viperKey, []string{key})
}

func bindInt(fs *pflag.FlagSet, name, key string, def int, usage string) {
	fs.Int(name, def, usage)
	_ = fs.SetAnnotation(name, viperKey, []string{key})
}

func bindString(fs *pflag.FlagSet, name, key, def, usage string) {
	fs.String(name, def, usage)
	_ = fs.SetAnnotation(name, viperKey, []string{key})
}

func bindBool(fs *pflag.FlagSet, name, key string, def bool, usage string) {
	fs.Bool(name, def, usage)
	_ = fs.SetAnnotation(name, viperKey, []string{key})
}

func bindRestoreFlags(fs *pflag.FlagSet) {
	d := DefaultParams().Restore
	bindFloat(fs, "min-wavelength", "restore.min_wavelength", d.MinWavelength, "shortest restored wavelength in m")
	bindFloat(fs, "max-wavelength", "restore.max_wavelength", d.MaxWavelength, "longest restored wavelength in m")
	bindFloat(fs, "interval", "restore.sampling_interval", d.SamplingInterval, "sampling interval in m (0 = infer)")
	bindBool(fs, "exact-length", "restore.exact_length", d.ExactLength, "transform at the series length instead of padding")
}

func newRestoreCmd(a *app) *cobra.Command {
	var printSeries bool
	cmd := &cobra.Command{
		Use:   "restore <series-file>",
		Short: "Band-limit a measurement series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSeriesFile(args[0])
			if err != nil {
				return err
			}
			res, err := a.engine.RestoreWaveform(s, a.params.Restore)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "window %g-%g m, interval %g m",
				a.params.Restore.MinWavelength, a.params.Restore.MaxWavelength, res.SamplingInterval)
			if a.params.Restore.ExactLength {
				fmt.Fprint(out, ", exact length")
			}
			fmt.Fprintln(out)
			printStats(out, res.Statistics)
			if printSeries {
				printPoints(out, res.Restored)
			}
			return nil
		},
	}
	bindRestoreFlags(cmd.Flags())
	cmd.Flags().BoolVar(&printSeries, "print-series", false, "print the restored series")
	return cmd
}

func newWavebandsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wavebands <series-file>",
		Short: "Decompose a measurement series into wavelength bands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSeriesFile(args[0])
			if err != nil {
				return err
			}
			res, err := a.engine.AnalyzeWavebands(s, a.params.Wavebands)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dominant wavelength %s m, effective wavelength %s m\n",
				formatWavelength(res.DominantWavelength), formatWavelength(res.EffectiveWavelength))
			fmt.Fprintf(out, "spectral flatness %.3f, rolloff wavelength %s m, bandwidth %.4f 1/m\n",
				res.Shape.Flatness, formatWavelength(res.Shape.RolloffWavelength), res.Shape.Bandwidth)
			printBands(out, res.Wavebands)
			return nil
		},
	}
	bindFloat(cmd.Flags(), "interval", "wavebands.sampling_interval", 0, "sampling interval in m (0 = infer)")
	return cmd
}

func newPlanCmd(a *app) *cobra.Command {
	var printMovements bool
	cmd := &cobra.Command{
		Use:   "plan <series-file>",
		Short: "Restore, generate and optimize a plan line, then compute movements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSeriesFile(args[0])
			if err != nil {
				return err
			}
			p := a.params

			restored, err := a.engine.RestoreWaveform(s, p.Restore)
			if err != nil {
				return err
			}
			initial, err := a.engine.GenerateInitialPlanLine(restored.Restored, p.PlanLine)
			if err != nil {
				return err
			}
			opt := p.Optimize
			if len(opt.FixedPoints) == 0 {
				opt.FixedPoints = p.Movement.FixedPoints
			}
			if opt.SamplingInterval == 0 {
				opt.SamplingInterval = restored.SamplingInterval
			}
			optimized, err := a.engine.OptimizePlanLine(restored.Restored, initial.PlanLine, opt)
			if err != nil {
				return err
			}
			moves, err := a.engine.CalculateMovement(optimized.PlanLine, restored.Restored, p.Movement)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "restored %d points, sigma %.3f mm\n", restored.Statistics.Count, restored.Statistics.Sigma)
			fmt.Fprintf(out, "plan line: %s, %d points, max gradient %.3f mm/m, valid %t\n",
				initial.Method, len(initial.PlanLine), initial.Validation.MaxGradient, initial.Validation.Valid)
			for _, w := range initial.Validation.Warnings {
				fmt.Fprintf(out, "  warning: %s\n", w)
			}
			fmt.Fprintf(out, "optimizer: %d iterations, converged %t, upward ratio %.3f -> %.3f\n",
				optimized.Iterations, optimized.Converged,
				optimized.Improvement.InitialUpwardRatio, optimized.Improvement.FinalUpwardRatio)
			if len(optimized.Improvement.Bands.Bands) > 0 {
				printImprovement(out, optimized.Improvement.Bands)
			}

			sum := moves.Summary
			fmt.Fprintf(out, "movements: high %d, medium %d, low %d, clamped %d, over standard %d\n",
				sum.High, sum.Medium, sum.Low, sum.Clamped, sum.ExceedsStandard)
			fmt.Fprintf(out, "max lift %.3f mm, max lowering %.3f mm, upward ratio %.3f\n",
				sum.MaxLift, sum.MaxLowering, sum.UpwardRatio)
			if printMovements {
				printMovementTable(out, moves.Movements)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	bindRestoreFlags(fs)
	d := DefaultParams()
	bindString(fs, "method", "plan_line.method", d.PlanLine.Method, "plan-line method (moving-average, zero-crossing)")
	bindInt(fs, "window", "plan_line.window_size", d.PlanLine.WindowSize, "moving-average window in samples")
	bindFloat(fs, "target-ratio", "optimize.target_upward_ratio", d.Optimize.TargetUpwardRatio, "target upward ratio")
	bindInt(fs, "iterations", "optimize.iteration_limit", d.Optimize.IterationLimit, "optimizer iteration limit")
	bindFloat(fs, "standard-limit", "movement.standard_limit", d.Movement.StandardLimit, "standard movement limit in mm")
	bindFloat(fs, "maximum-limit", "movement.maximum_limit", d.Movement.MaximumLimit, "maximum movement limit in mm")
	fs.BoolVar(&printMovements, "print-movements", false, "print one row per position")
	return cmd
}

func printStats(w io.Writer, st series.Stats) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "count\tmean\tsigma\trms\tmax\tmin")
	fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n", st.Count, st.Mean, st.Sigma, st.RMS, st.Max, st.Min)
	tw.Flush()
}

func printPoints(w io.Writer, s track.Series) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "distance\tvalue")
	for _, p := range s {
		fmt.Fprintf(tw, "%.3f\t%.4f\n", p.Distance, p.Value)
	}
	tw.Flush()
}

func printBands(w io.Writer, bands []waveband.BandResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "band\trange [m]\tpower\tcontribution %\tsigma\tbins")
	for _, b := range bands {
		fmt.Fprintf(tw, "%s\t%s-%s\t%.4f\t%.1f\t%.3f\t%d\n",
			b.Band.Name, formatWavelength(b.Band.MinWavelength), formatWavelength(b.Band.MaxWavelength),
			b.Power, b.ContributionPercent, b.Stats.Sigma, b.BinCount)
	}
	tw.Flush()
}

func printImprovement(w io.Writer, im waveband.Improvement) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "band\tbefore\tafter\treduction %\tflag")
	for _, b := range im.Bands {
		flag := ""
		if b.NeedsCorrection {
			flag = "needs correction"
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.1f\t%s\n", b.Name, b.BeforePower, b.AfterPower, b.ReductionPercent, flag)
	}
	tw.Flush()
}

func printMovementTable(w io.Writer, moves []track.MovementResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "distance\tcurrent\ttarget\tmovement\tpriority\tflags")
	for _, m := range moves {
		flags := ""
		if m.Clamped {
			flags += "C"
		}
		if m.InFixedPoint {
			flags += "F"
		}
		if m.ExceedsStandard {
			flags += "S"
		}
		fmt.Fprintf(tw, "%.3f\t%.3f\t%.3f\t%.3f\t%s\t%s\n",
			m.Distance, m.CurrentValue, m.TargetValue, m.Movement, m.Priority, flags)
	}
	tw.Flush()
}

func formatWavelength(wl float64) string {
	if math.IsInf(wl, 1) {
		return "inf"
	}
	return fmt.Sprintf("%g", wl)
}
