package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type pointerDoc struct {
	Ref string `yaml:"ref"`
}

// sanitizeBasename returns the candidate if it is a plain basename, or ""
// when it carries path separators or dot-dot segments. Checkpoint links are
// basename-only; anything else is a traversal attempt or corruption.
func sanitizeBasename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return ""
	}
	if strings.ContainsAny(name, `/\`) {
		return ""
	}
	return name
}

// ReadPointer reads the pointer file in dir and returns the referenced
// checkpoint basename. Errors on a missing or malformed pointer, or on a
// ref that is not a plain basename.
func ReadPointer(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, PointerFile))
	if err != nil {
		return "", fmt.Errorf("read pointer: %w", err)
	}
	var doc pointerDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("parse pointer: %w", err)
	}
	ref := sanitizeBasename(doc.Ref)
	if ref == "" {
		return "", fmt.Errorf("pointer ref %q is not a basename", doc.Ref)
	}
	return ref, nil
}

// WritePointer updates the pointer file to reference basename.
func WritePointer(dir, basename string) error {
	if sanitizeBasename(basename) == "" {
		return fmt.Errorf("pointer target %q is not a basename", basename)
	}
	data, err := yaml.Marshal(pointerDoc{Ref: basename})
	if err != nil {
		return fmt.Errorf("marshal pointer: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, PointerFile), data, 0644); err != nil {
		return fmt.Errorf("write pointer: %w", err)
	}
	return nil
}
