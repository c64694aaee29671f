package hooks

import (
	"encoding/json"
	"path/filepath"
)

// HookInput represents the JSON that Claude Code sends on stdin to hook
// handlers. All fields are optional — different events populate different
// subsets.
type HookInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	CWD            string `json:"cwd"`
	HookEventName  string `json:"hook_event_name"`

	// SessionStart
	Source string `json:"source,omitempty"`
	Model  string `json:"model,omitempty"`

	// UserPromptSubmit
	Prompt string `json:"prompt,omitempty"`

	// PostToolUse
	ToolName     string          `json:"tool_name,omitempty"`
	ToolUseID    string          `json:"tool_use_id,omitempty"`
	ToolInput    json.RawMessage `json:"tool_input,omitempty"`
	ToolResponse json.RawMessage `json:"tool_response,omitempty"`

	// Stop
	StopHookActive       bool   `json:"stop_hook_active,omitempty"`
	LastAssistantMessage string `json:"last_assistant_message,omitempty"`

	// PreCompact
	Trigger string `json:"trigger,omitempty"`

	// SessionEnd
	Reason string `json:"reason,omitempty"`
}

// skipTools are meta-tools whose use says nothing about file relevance.
var skipTools = map[string]bool{
	"TodoRead":   true,
	"TodoWrite":  true,
	"Thinking":   true,
	"TaskList":   true,
	"TaskCreate": true,
	"TaskGet":    true,
	"TaskUpdate": true,
}

// ShouldSkipTool returns true if this tool use should not count as a touch.
func (h *HookInput) ShouldSkipTool() bool {
	return skipTools[h.ToolName]
}

// Project derives the pressure scope name from the working directory.
// Empty when no cwd was provided, which maps to the global scope.
func (h *HookInput) Project() string {
	if h.CWD == "" {
		return ""
	}
	return filepath.Base(h.CWD)
}

// TouchedFiles extracts file paths from tool_input. File-oriented tools
// (Read, Edit, Write, NotebookEdit) carry a file_path or notebook_path
// field; anything else yields nothing.
func (h *HookInput) TouchedFiles() []string {
	if len(h.ToolInput) == 0 {
		return nil
	}
	var params struct {
		FilePath     string `json:"file_path"`
		NotebookPath string `json:"notebook_path"`
	}
	if err := json.Unmarshal(h.ToolInput, &params); err != nil {
		return nil
	}
	var files []string
	if params.FilePath != "" {
		files = append(files, params.FilePath)
	}
	if params.NotebookPath != "" {
		files = append(files, params.NotebookPath)
	}
	return files
}
