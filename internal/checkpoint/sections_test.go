package checkpoint

import (
	"reflect"
	"strings"
	"testing"
)

func sampleCheckpoint() *Checkpoint {
	return &Checkpoint{
		Schema:  Schema,
		Version: Version,
		Meta: Meta{
			CheckpointID: "cp-1",
			SessionID:    "sess-001",
			Scope:        "proj",
			Trigger:      "manual",
		},
		Working:       "building the recovery chain",
		Decisions:     []string{"keep the pointer file in yaml"},
		Files:         Files{Changed: []string{"a.go"}, Hot: []string{"a.go", "b.go"}},
		OpenQuestions: []string{"pointer rotation?"},
		Learnings:     []string{"sorting needed a numeric suffix"},
		Thread:        "mid-refactor",
	}
}

func TestSectionsBaseline(t *testing.T) {
	got := Sections(sampleCheckpoint(), false, nil)
	want := []Section{SectionMeta, SectionWorking, SectionOpenQuestions}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("baseline sections = %v, want %v", got, want)
	}
}

func TestSectionsResume(t *testing.T) {
	got := Sections(sampleCheckpoint(), true, nil)
	want := []Section{
		SectionMeta, SectionWorking, SectionDecisions, SectionFiles,
		SectionOpenQuestions, SectionThread,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("resume sections = %v, want %v", got, want)
	}
}

func TestSectionsGSDWhenActive(t *testing.T) {
	cp := sampleCheckpoint()
	cp.GSD = &GSD{Active: false}
	for _, s := range Sections(cp, false, nil) {
		if s == SectionGSD {
			t.Error("inactive gsd should not be formatted")
		}
	}

	cp.GSD = &GSD{Active: true, Goal: "ship"}
	found := false
	for _, s := range Sections(cp, false, nil) {
		if s == SectionGSD {
			found = true
		}
	}
	if !found {
		t.Error("active gsd should be formatted")
	}
}

func TestSectionsIncludeListIntersects(t *testing.T) {
	got := Sections(sampleCheckpoint(), true, []string{"working", "thread"})
	want := []Section{SectionWorking, SectionThread}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("include-filtered sections = %v, want %v", got, want)
	}

	// Include list cannot pull in sections outside the computed set
	got = Sections(sampleCheckpoint(), false, []string{"thread"})
	if len(got) != 0 {
		t.Errorf("thread outside baseline should yield nothing, got %v", got)
	}
}

func TestSectionsLearningsAlwaysExcluded(t *testing.T) {
	// Even an explicit include cannot resurrect learnings
	got := Sections(sampleCheckpoint(), true, []string{"learnings", "working"})
	for _, s := range got {
		if s == SectionLearnings {
			t.Error("learnings must never be formatted")
		}
	}
	if !reflect.DeepEqual(got, []Section{SectionWorking}) {
		t.Errorf("got %v, want [working]", got)
	}
}

func TestFormat(t *testing.T) {
	cp := sampleCheckpoint()
	out := Format(cp, Sections(cp, true, nil))

	for _, want := range []string{"sess-001", "building the recovery chain", "pointer rotation?", "a.go"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "sorting needed a numeric suffix") {
		t.Error("learnings content leaked into formatted output")
	}
}

func TestFormatBaselineOmitsThread(t *testing.T) {
	cp := sampleCheckpoint()
	out := Format(cp, Sections(cp, false, nil))
	if strings.Contains(out, "mid-refactor") {
		t.Error("thread should not appear outside resume mode")
	}
}
