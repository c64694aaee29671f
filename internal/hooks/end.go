package hooks

import (
	"log"
	"time"

	"github.com/lazypower/hologram/internal/checkpoint"
	"github.com/lazypower/hologram/internal/pressure"
)

// memoryFloor is the score below which a non-immune memory item is pruned
// during end-of-session maintenance.
const memoryFloor = 0.05

// handleEnd closes out a session: route the latest checkpoint's learnings
// into long-term memory, write a final snapshot, then run one maintenance
// pass over scores and memories.
func handleEnd(rt *Runtime, input *HookInput) {
	scope := pressure.ScopeFor(input.Project())

	if res := checkpoint.Recover(rt.CheckpointDir); res != nil && len(res.Checkpoint.Learnings) > 0 {
		n, err := rt.DB.RouteLearnings(scope, res.Checkpoint.Meta.SessionID, res.Checkpoint.Learnings)
		if err != nil {
			log.Printf("hooks: route learnings: %v", err)
		} else if n > 0 {
			log.Printf("hooks: routed %d learnings to memory", n)
		}
	}

	writeSnapshot(rt, input, "session-end")

	now := time.Now()
	rt.Pressure.DecayAll(scope)
	if _, err := rt.DB.RescoreMemories(now); err != nil {
		log.Printf("hooks: rescore memories: %v", err)
	}
	if _, err := rt.DB.PruneMemories(now, memoryFloor); err != nil {
		log.Printf("hooks: prune memories: %v", err)
	}
}
