package checkpoint

import (
	"fmt"
	"strings"
)

// Section names a formattable checkpoint section.
type Section string

const (
	SectionMeta          Section = "meta"
	SectionWorking       Section = "working"
	SectionDecisions     Section = "decisions"
	SectionFiles         Section = "files"
	SectionGSD           Section = "gsd"
	SectionOpenQuestions Section = "open_questions"
	SectionThread        Section = "thread"
	// SectionLearnings exists in the document but is never formatted:
	// learnings are routed to the long-term memory store at write time and
	// must not be re-injected into the session.
	SectionLearnings Section = "learnings"
)

// sectionOrder is the canonical formatting order.
var sectionOrder = []Section{
	SectionMeta, SectionWorking, SectionDecisions, SectionFiles,
	SectionGSD, SectionOpenQuestions, SectionThread,
}

// Sections computes which sections to format for a recovered checkpoint.
//
// Baseline: meta, working, open_questions. Resume mode adds decisions,
// thread, and files. The gsd section joins when the checkpoint carries an
// active planning state. A non-empty include list then intersects the set.
// Learnings are removed last, whatever the include list asked for.
func Sections(cp *Checkpoint, resume bool, include []string) []Section {
	set := map[Section]bool{
		SectionMeta:          true,
		SectionWorking:       true,
		SectionOpenQuestions: true,
	}
	if resume {
		set[SectionDecisions] = true
		set[SectionThread] = true
		set[SectionFiles] = true
	}
	if cp.GSD != nil && cp.GSD.Active {
		set[SectionGSD] = true
	}

	if len(include) > 0 {
		wanted := make(map[Section]bool, len(include))
		for _, name := range include {
			wanted[Section(strings.ToLower(strings.TrimSpace(name)))] = true
		}
		for s := range set {
			if !wanted[s] {
				delete(set, s)
			}
		}
	}

	// The exclusion wins over everything, including an explicit include
	delete(set, SectionLearnings)

	var out []Section
	for _, s := range sectionOrder {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}

// Format renders the selected sections as context text for injection.
func Format(cp *Checkpoint, sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		switch s {
		case SectionMeta:
			fmt.Fprintf(&b, "## Session %s\n", cp.Meta.SessionID)
			fmt.Fprintf(&b, "Checkpoint %s (trigger: %s", cp.Meta.CheckpointID, cp.Meta.Trigger)
			if cp.Meta.TokenUsage > 0 {
				fmt.Fprintf(&b, ", token usage %.0f%%", cp.Meta.TokenUsage*100)
			}
			b.WriteString(")\n\n")
		case SectionWorking:
			if cp.Working != "" {
				b.WriteString("## Working on\n")
				b.WriteString(cp.Working)
				b.WriteString("\n\n")
			}
		case SectionDecisions:
			writeList(&b, "## Decisions", cp.Decisions)
		case SectionFiles:
			if len(cp.Files.Changed)+len(cp.Files.Read)+len(cp.Files.Hot) > 0 {
				b.WriteString("## Files\n")
				writeList(&b, "Changed:", cp.Files.Changed)
				writeList(&b, "Hot:", cp.Files.Hot)
				writeList(&b, "Read:", cp.Files.Read)
				b.WriteString("\n")
			}
		case SectionGSD:
			if cp.GSD != nil {
				b.WriteString("## Plan\n")
				if cp.GSD.Goal != "" {
					fmt.Fprintf(&b, "Goal: %s\n", cp.GSD.Goal)
				}
				if cp.GSD.Phase != "" {
					fmt.Fprintf(&b, "Phase: %s\n", cp.GSD.Phase)
				}
				b.WriteString("\n")
			}
		case SectionOpenQuestions:
			writeList(&b, "## Open questions", cp.OpenQuestions)
		case SectionThread:
			if cp.Thread != "" {
				b.WriteString("## Thread\n")
				b.WriteString(cp.Thread)
				b.WriteString("\n\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(header)
	b.WriteString("\n")
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	if strings.HasPrefix(header, "#") {
		b.WriteString("\n")
	}
}
