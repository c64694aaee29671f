// Package hooks implements the Claude Code hook entry points. Each hook
// invocation is a short-lived independent process: it builds its runtime,
// does its one job, and exits 0 no matter what — a hook failure must never
// take the host down with it.
package hooks

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lazypower/hologram/internal/config"
	"github.com/lazypower/hologram/internal/pressure"
	"github.com/lazypower/hologram/internal/ranking"
	"github.com/lazypower/hologram/internal/store"
	"github.com/lazypower/hologram/internal/suggest"
)

// Runtime wires together everything a single hook invocation needs.
type Runtime struct {
	Cfg           config.Config
	DB            *store.DB
	Pressure      *pressure.Store
	Engine        *suggest.Engine
	CheckpointDir string
}

// NewRuntime loads config and opens the store. The caller must Close.
func NewRuntime() (*Runtime, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cpDir, err := cfg.CheckpointDir()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("resolve checkpoint dir: %w", err)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	ps := pressure.NewStore(db, cfg.Pressure.DecayRate)
	client := ranking.NewClient(dataDir, cfg.RankingTimeout())

	return &Runtime{
		Cfg:           cfg,
		DB:            db,
		Pressure:      ps,
		Engine:        suggest.NewEngine(client, ps, cfg.RankingTimeout()),
		CheckpointDir: cpDir,
	}, nil
}

func (rt *Runtime) Close() {
	if rt.DB != nil {
		rt.DB.Close()
	}
}

// Handle reads HookInput from the given reader and dispatches on the event
// argument. Every failure path degrades: SessionStart answers with empty
// context, everything else exits silently.
func Handle(event string, stdin io.Reader) {
	var input HookInput
	if err := json.NewDecoder(stdin).Decode(&input); err != nil {
		// Stdin may be empty for some events
		if event == "start" {
			WriteSessionStartOutput("")
			return
		}
		ExitError(fmt.Errorf("decode stdin: %w", err))
		return
	}

	rt, err := NewRuntime()
	if err != nil {
		if event == "start" {
			WriteSessionStartOutput("")
			return
		}
		ExitError(err)
		return
	}
	defer rt.Close()

	switch event {
	case "start":
		handleStart(rt, &input)
	case "submit":
		handleSubmit(rt, &input)
	case "tool":
		handleTool(rt, &input)
	case "compact":
		handleCompact(rt, &input)
	case "stop":
		handleStop(rt, &input)
	case "end":
		handleEnd(rt, &input)
	default:
		ExitError(fmt.Errorf("unknown hook event: %s", event))
	}
}
