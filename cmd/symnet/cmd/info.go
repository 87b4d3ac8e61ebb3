package cmd

import (
	"fmt"

	"github.com/edp1096/symnet/pkg/twoport"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <section> <element>...",
	Short: "Print the parameter matrices of a canonical section",
	Long: `Build a canonical two-port section from impedance expressions and print
its matrix representations, structural predicates, and forward gains.

Sections: series Z, shunt Z, lsection Z1 Z2, tsection Z1 Z2 Z3,
pisection Z1 Z2 Z3, transformer alpha, gyrator R.

Examples:
  symnet info series "s*1e-3"
  symnet info tsection 10 20 30
  symnet info lsection 50 "1/(s*1e-6)"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	tp, err := buildSection(args[0], args[1:])
	if err != nil {
		return err
	}

	kinds := []twoport.MatrixKind{
		twoport.KindA, twoport.KindB, twoport.KindG,
		twoport.KindH, twoport.KindY, twoport.KindZ,
	}
	for _, k := range kinds {
		m := tp.Matrix(k)
		if m.Degenerate() {
			fmt.Printf("%s: no valid representation\n", k)
			continue
		}
		fmt.Println(m)
	}

	fmt.Printf("buffered=%t bilateral=%t symmetrical=%t series=%t shunt=%t\n",
		tp.IsBuffered(), tp.IsBilateral(), tp.IsSymmetrical(), tp.IsSeries(), tp.IsShunt())
	fmt.Printf("Vgain12 = %s\n", tp.Vgain12())
	fmt.Printf("Igain12 = %s\n", tp.Igain12())

	if verbose {
		fmt.Printf("Ytrans12 = %s\n", tp.Ytrans12())
		fmt.Printf("Ztrans12 = %s\n", tp.Ztrans12())
	}
	return nil
}
