package hooks

func handleTool(rt *Runtime, input *HookInput) {
	if input.ShouldSkipTool() {
		return
	}
	project := input.Project()
	for _, file := range input.TouchedFiles() {
		rt.Pressure.Accumulate(file, project, rt.Cfg.Pressure.TouchIncrement)
	}
}
