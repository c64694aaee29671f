package hooks

import (
	"log"
	"time"

	"github.com/lazypower/hologram/internal/checkpoint"
	"github.com/lazypower/hologram/internal/pressure"
)

// writeSnapshot persists a checkpoint built from what this invocation can
// see: the session identity, the last assistant message as the working
// summary, and the currently-hot files. Richer sections (decisions, thread,
// learnings) are filled by the host when it drives checkpointing itself.
func writeSnapshot(rt *Runtime, input *HookInput, trigger string) {
	scope := pressure.ScopeFor(input.Project())

	var hot []string
	for _, row := range rt.Pressure.Query(scope, pressure.Hot) {
		hot = append(hot, row.FilePath)
	}

	cp := &checkpoint.Checkpoint{
		Meta: checkpoint.Meta{
			SessionID: input.SessionID,
			Scope:     scope,
			Trigger:   trigger,
		},
		Working:       input.LastAssistantMessage,
		Decisions:     []string{},
		Files:         checkpoint.Files{Changed: []string{}, Read: []string{}, Hot: hot},
		OpenQuestions: []string{},
		Learnings:     []string{},
	}

	if _, err := checkpoint.Write(rt.CheckpointDir, cp, time.Now()); err != nil {
		log.Printf("hooks: write checkpoint: %v", err)
	}
}
