package checkpoint

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// maxPreviousHops bounds the backward-link walk from any starting candidate.
const maxPreviousHops = 3

var cpSuffix = regexp.MustCompile(`_cp(\d+)`)

// sequenceOf extracts the numeric _cpN suffix from a basename, or -1.
func sequenceOf(basename string) int {
	m := cpSuffix.FindStringSubmatch(basename)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}

// sortCandidates orders checkpoint basenames oldest-first: date prefix
// compared lexically, then the numeric _cpN suffix, so cp10 sorts after
// cp9 rather than before it.
func sortCandidates(names []string) {
	sort.Slice(names, func(i, j int) bool {
		di, dj := datePrefix(names[i]), datePrefix(names[j])
		if di != dj {
			return di < dj
		}
		return sequenceOf(names[i]) < sequenceOf(names[j])
	})
}

func datePrefix(basename string) string {
	if idx := strings.Index(basename, "_cp"); idx >= 0 {
		return basename[:idx]
	}
	return basename
}

// listCandidates returns the checkpoint basenames in dir, excluding the
// pointer file. A missing or unreadable directory yields nothing.
func listCandidates(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == PointerFile || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, name)
	}
	return names
}

// List returns the checkpoint basenames in dir, newest first. A missing
// directory yields nothing.
func List(dir string) []string {
	names := listCandidates(dir)
	sortCandidates(names)
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// previousLink extracts meta.previous_checkpoint from a candidate file
// without full validation — even a corrupt checkpoint may carry a usable
// back-reference.
func previousLink(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var doc struct {
		Meta struct {
			Previous string `json:"previous_checkpoint"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	return doc.Meta.Previous
}

// Recover reconstructs the most recent valid checkpoint in dir.
//
// Three tiers, each tolerating corrupt candidates:
//  1. Pointer read — resolve the pointer file's ref and validate it.
//  2. Directory scan — try every candidate newest-first.
//  3. Previous-link walk — from every file visited so far, follow
//     meta.previous_checkpoint up to 3 hops with a shared visited set.
//     A reappearing basename is a cycle: the walk aborts rather than loops.
//
// Returns nil when no tier produces a valid checkpoint. Never returns an
// error: every read or parse failure just disqualifies one candidate.
func Recover(dir string) *RecoveryResult {
	var tried []string
	seen := make(map[string]bool)
	note := func(name string) {
		if !seen[name] {
			seen[name] = true
			tried = append(tried, name)
		}
	}

	// Tier 1: pointer file
	if ref, err := ReadPointer(dir); err == nil {
		note(ref)
		if cp, err := Load(filepath.Join(dir, ref)); err == nil {
			return &RecoveryResult{Checkpoint: cp}
		} else {
			log.Printf("checkpoint: pointer target %s invalid: %v", ref, err)
		}
	}

	// Tier 2: directory scan, newest first
	names := listCandidates(dir)
	sortCandidates(names)
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		alreadyTried := seen[name]
		note(name)
		if alreadyTried {
			continue // pointer target already failed validation
		}
		if cp, err := Load(filepath.Join(dir, name)); err == nil {
			return &RecoveryResult{Checkpoint: cp, RecoveryPath: "dir-scan"}
		} else {
			log.Printf("checkpoint: candidate %s invalid: %v", name, err)
		}
	}

	// Tier 3: previous-link walk from every file visited above. The visited
	// set spans the whole walk; a basename reappearing means the chain is
	// cyclic and the walk stops rather than looping.
	visited := make(map[string]bool, len(tried))
	for _, name := range tried {
		visited[name] = true
	}
	for _, origin := range tried {
		cur := previousLink(filepath.Join(dir, origin))
		for hop := 1; hop <= maxPreviousHops && cur != ""; hop++ {
			cur = sanitizeBasename(cur)
			if cur == "" {
				break
			}
			if visited[cur] {
				log.Printf("checkpoint: cycle detected at %s, aborting recovery walk", cur)
				return nil
			}
			visited[cur] = true
			if cp, err := Load(filepath.Join(dir, cur)); err == nil {
				return &RecoveryResult{
					Checkpoint:   cp,
					RecoveryPath: fmt.Sprintf("previous-link(%d-hop)", hop),
				}
			}
			cur = previousLink(filepath.Join(dir, cur))
		}
	}

	return nil
}
