package phase

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// completeMarkers end a plan's claim on relevance. Checked in the first few
// lines so a plan mentioning "complete" in prose isn't retired by accident.
var completeMarkers = []string{
	"status: complete",
	"status: done",
	"- [x] complete",
}

const completeMarkerWindow = 10 // lines

// ScanPlans reads markdown plan files from dir and builds the tiered
// relevance set: the most recently modified incomplete plan contributes the
// Active set, every other incomplete plan contributes to Other. Completed
// plans are excluded entirely. Malformed or unreadable files are skipped.
// A missing directory yields an empty Relevance.
func ScanPlans(dir string) Relevance {
	rel := Relevance{Active: map[string]bool{}, Other: map[string]bool{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return rel
	}

	type plan struct {
		refs  []string
		mtime time.Time
	}
	var plans []plan

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("phase: skipping plan %s: %v", e.Name(), err)
			continue
		}
		if planComplete(data) {
			continue
		}
		refs := fileRefs(data)
		if len(refs) == 0 {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		plans = append(plans, plan{refs: refs, mtime: info.ModTime()})
	}

	if len(plans) == 0 {
		return rel
	}

	// Newest plan is the active one
	sort.Slice(plans, func(i, j int) bool { return plans[i].mtime.After(plans[j].mtime) })
	for _, ref := range plans[0].refs {
		rel.Active[ref] = true
	}
	for _, p := range plans[1:] {
		for _, ref := range p.refs {
			if !rel.Active[ref] { // active membership wins
				rel.Other[ref] = true
			}
		}
	}
	return rel
}

// planComplete reports whether the opening lines carry a completion marker.
func planComplete(data []byte) bool {
	lines := strings.SplitN(string(data), "\n", completeMarkerWindow+1)
	if len(lines) > completeMarkerWindow {
		lines = lines[:completeMarkerWindow]
	}
	for _, line := range lines {
		l := strings.ToLower(strings.TrimSpace(line))
		for _, m := range completeMarkers {
			if strings.HasPrefix(l, m) {
				return true
			}
		}
	}
	return false
}

// fileRefs extracts file path references from a plan's markdown: code spans
// and link destinations that look like relative paths.
func fileRefs(src []byte) []string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	seen := make(map[string]bool)
	var refs []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if !looksLikePath(s) || seen[s] {
			return
		}
		seen[s] = true
		refs = append(refs, s)
	}

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.CodeSpan:
			var buf bytes.Buffer
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					buf.Write(t.Segment.Value(src))
				}
			}
			add(buf.String())
		case *ast.Link:
			add(string(node.Destination))
		}
		return ast.WalkContinue, nil
	})
	return refs
}

// looksLikePath filters code spans down to plausible repo-relative paths:
// no spaces, no URL scheme, and either a separator or a file extension.
func looksLikePath(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	if strings.Contains(s, "://") || strings.HasPrefix(s, "#") {
		return false
	}
	return strings.Contains(s, "/") || strings.Contains(filepath.Base(s), ".")
}
