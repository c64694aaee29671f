package hooks

// handleCompact runs just before the host compacts the conversation. The
// checkpoint written here is what SessionStart recovers from afterwards.
func handleCompact(rt *Runtime, input *HookInput) {
	writeSnapshot(rt, input, "compaction")
}
