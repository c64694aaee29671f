package hooks

func handleStop(rt *Runtime, input *HookInput) {
	// Re-entrant stop hooks would snapshot the snapshot
	if input.StopHookActive {
		return
	}
	writeSnapshot(rt, input, "stop")
}
