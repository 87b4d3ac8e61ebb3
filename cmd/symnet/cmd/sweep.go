package cmd

import (
	"fmt"

	"github.com/edp1096/symnet/pkg/analysis"
	"github.com/edp1096/symnet/pkg/oneport"
	"github.com/edp1096/symnet/pkg/util"
	"github.com/spf13/cobra"
)

var (
	sweepStart  float64
	sweepStop   float64
	sweepPoints int
	sweepType   string
	sweepRs     float64
	sweepRl     float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <section> <element>...",
	Short: "AC sweep a terminated section",
	Long: `Terminate a canonical section with a unit voltage source behind Rs at
port 1 and a load Rl at port 2, then sweep it over frequency, printing the
load voltage and the transfer V2/V1 per point.

Examples:
  symnet sweep lsection 1000 "1/(s*159e-9)" --start 10 --stop 100000
  symnet sweep tsection 10 20 30 --type LIN --points 11`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().Float64Var(&sweepStart, "start", 1, "start frequency in Hz")
	sweepCmd.Flags().Float64Var(&sweepStop, "stop", 1e6, "stop frequency in Hz")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 61, "number of sweep points")
	sweepCmd.Flags().StringVar(&sweepType, "type", "DEC", "point spacing: DEC, OCT or LIN")
	sweepCmd.Flags().Float64Var(&sweepRs, "rs", 1e-3, "source resistance in ohm")
	sweepCmd.Flags().Float64Var(&sweepRl, "rl", 1e9, "load resistance in ohm")
}

func runSweep(cmd *cobra.Command, args []string) error {
	tp, err := buildSection(args[0], args[1:])
	if err != nil {
		return err
	}

	vsrc, err := oneport.V(1)
	if err != nil {
		return err
	}
	rs, err := oneport.R(sweepRs)
	if err != nil {
		return err
	}
	src, err := oneport.Ser(vsrc, rs)
	if err != nil {
		return err
	}
	load, err := oneport.R(sweepRl)
	if err != nil {
		return err
	}

	ac, err := analysis.NewAC(sweepStart, sweepStop, sweepPoints, sweepType)
	if err != nil {
		return err
	}
	if err := ac.Execute(src, tp, load); err != nil {
		return err
	}

	res := ac.GetResults()
	freqs := res["FREQ"]
	for i, f := range freqs {
		fmt.Printf("%s  %s  H=%s\n",
			util.FormatFrequency(f),
			util.FormatMagnitudePhase("V(2)", res["V(2)_MAG"][i], res["V(2)_PHASE"][i]),
			util.FormatDB(res["H_MAG"][i]))
	}
	if verbose {
		fmt.Printf("%d points, %s spacing\n", len(freqs), sweepType)
	}
	return nil
}
