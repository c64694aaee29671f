package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lazypower/hologram/internal/hooks"
	"github.com/lazypower/hologram/internal/phase"
	"github.com/lazypower/hologram/internal/pressure"
	"github.com/lazypower/hologram/internal/ranking"
	"github.com/lazypower/hologram/internal/suggest"
	"github.com/spf13/cobra"
)

var contextPrompt string

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print a context suggestion for the current project",
	RunE:  runContext,
}

func init() {
	contextCmd.Flags().StringVarP(&contextPrompt, "prompt", "p", "", "Prompt to rank against")
}

func runContext(cmd *cobra.Command, args []string) error {
	rt, err := hooks.NewRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve cwd: %w", err)
	}
	scope := pressure.ScopeFor(filepath.Base(cwd))
	rel := phase.ScanPlans(rt.Cfg.PlansDir(cwd))

	var boost []string
	for f := range rel.Active {
		boost = append(boost, f)
	}
	sort.Strings(boost)

	var recent []string
	for _, row := range rt.Pressure.Query(scope, pressure.Cold) {
		recent = append(recent, row.FilePath)
	}

	s := rt.Engine.Suggest(scope, ranking.RequestPayload{
		Prompt:     contextPrompt,
		ProjectDir: cwd,
		BoostFiles: boost,
	}, recent)
	s = suggest.Boosted(s, rel)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
