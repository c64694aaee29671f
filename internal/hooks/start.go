package hooks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lazypower/hologram/internal/checkpoint"
	"github.com/lazypower/hologram/internal/phase"
	"github.com/lazypower/hologram/internal/pressure"
	"github.com/lazypower/hologram/internal/ranking"
	"github.com/lazypower/hologram/internal/suggest"
)

// recentLimit caps how many store rows feed the recency fallback.
const recentLimit = 20

func handleStart(rt *Runtime, input *HookInput) {
	var b strings.Builder

	if res := checkpoint.Recover(rt.CheckpointDir); res != nil {
		resume := input.Source == "resume" || input.Source == "compact"
		secs := checkpoint.Sections(res.Checkpoint, resume, nil)
		b.WriteString(checkpoint.Format(res.Checkpoint, secs))
		if res.RecoveryPath != "" {
			fmt.Fprintf(&b, "\n_(recovered via %s)_\n", res.RecoveryPath)
		}
	}

	scope := pressure.ScopeFor(input.Project())
	rel := phase.ScanPlans(rt.Cfg.PlansDir(input.CWD))

	payload := ranking.RequestPayload{
		ProjectDir:   input.CWD,
		SessionState: &ranking.SessionState{SessionID: input.SessionID},
		BoostFiles:   activeFiles(rel),
	}
	s := rt.Engine.Suggest(scope, payload, recentPaths(rt, scope))
	s = suggest.Boosted(s, rel)

	if text := formatSuggestion(s); text != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}

	WriteSessionStartOutput(b.String())
}

// activeFiles flattens the active-plan set into a stable list for the
// sidecar's boost_files field.
func activeFiles(rel phase.Relevance) []string {
	if len(rel.Active) == 0 {
		return nil
	}
	files := make([]string, 0, len(rel.Active))
	for f := range rel.Active {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// recentPaths returns the most recently scored paths for the terminal
// recency fallback, newest pressure first.
func recentPaths(rt *Runtime, scope string) []string {
	rows := rt.Pressure.Query(scope, pressure.Cold)
	if len(rows) > recentLimit {
		rows = rows[:recentLimit]
	}
	paths := make([]string, 0, len(rows))
	for _, r := range rows {
		paths = append(paths, r.FilePath)
	}
	return paths
}

func formatSuggestion(s suggest.Suggestion) string {
	if len(s.Hot) == 0 && len(s.Warm) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## Relevant files (%s)\n", s.Source)
	writeTier(&b, "Hot", s.Hot)
	writeTier(&b, "Warm", s.Warm)
	return b.String()
}

func writeTier(b *strings.Builder, label string, files []pressure.ScoredFile) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, f := range files {
		fmt.Fprintf(b, "- %s\n", f.Path)
	}
}
