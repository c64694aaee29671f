package hooks

import (
	"log"
	"strings"

	"github.com/lazypower/hologram/internal/phase"
	"github.com/lazypower/hologram/internal/pressure"
)

// signalTriggers are phrases that indicate the user wants something
// remembered immediately, without waiting for a checkpoint.
var signalTriggers = []string{
	"remember this", "don't forget",
	"always use", "never use", "always do", "never do",
	"architecture decision", "we decided",
	"this pattern", "the trick is",
	"bug was", "root cause", "the fix was",
}

// hasSignal returns true if the prompt contains any signal trigger phrase.
func hasSignal(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, trigger := range signalTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

func handleSubmit(rt *Runtime, input *HookInput) {
	scope := pressure.ScopeFor(input.Project())

	// Age existing scores before this turn's activity lands on top of them.
	rt.Pressure.DecayAll(scope)

	if input.Prompt != "" && hasSignal(input.Prompt) {
		if _, err := rt.DB.RouteLearnings(scope, input.SessionID, []string{input.Prompt}); err != nil {
			log.Printf("hooks: store signal: %v", err)
		}
	}

	rel := phase.ScanPlans(rt.Cfg.PlansDir(input.CWD))
	rt.Engine.Rescore(scope, nil, activeFiles(rel))
}
