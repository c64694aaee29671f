package cli

import (
	"fmt"

	"github.com/lazypower/hologram/internal/hooks"
	"github.com/spf13/cobra"
)

var decayScope string

var decayCmd = &cobra.Command{
	Use:   "decay",
	Short: "Apply one decay pass to pressure scores",
	RunE:  runDecay,
}

func init() {
	decayCmd.Flags().StringVar(&decayScope, "scope", "", "Limit the pass to one scope (default: all scopes)")
}

func runDecay(cmd *cobra.Command, args []string) error {
	rt, err := hooks.NewRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	changed := rt.Pressure.DecayAll(decayScope)
	fmt.Printf("%d rows decayed\n", changed)
	return nil
}
