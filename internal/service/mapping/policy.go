package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MismatchMode controls what happens when a section's component-type hint
// disagrees with the paired component's type.
type MismatchMode string

const (
	// MismatchWarn records the mismatch and pairs anyway. Default.
	MismatchWarn MismatchMode = "warn"
	// MismatchStrict aborts the mapping run on the first mismatch.
	MismatchStrict MismatchMode = "strict"
)

// Policy configures the mapping engine: which input names count as
// title-like or content-like slots (in priority order) and the mismatch
// mode. The zero value is not usable; start from DefaultPolicy.
type Policy struct {
	TitleInputs   []string     `yaml:"title_inputs"`
	ContentInputs []string     `yaml:"content_inputs"`
	MismatchMode  MismatchMode `yaml:"mismatch_mode"`
}

// DefaultPolicy returns the built-in slot candidates and warn-only
// mismatch handling.
func DefaultPolicy() Policy {
	return Policy{
		TitleInputs:   []string{"title", "heading", "label", "name"},
		ContentInputs: []string{"text", "body", "content", "rich_text", "description"},
		MismatchMode:  MismatchWarn,
	}
}

// LoadPolicy reads a policy overlay from a YAML file. Fields left empty in
// the file keep their defaults.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()

	raw, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("reading mapping policy: %w", err)
	}

	var overlay Policy
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return policy, fmt.Errorf("parsing mapping policy: %w", err)
	}

	if len(overlay.TitleInputs) > 0 {
		policy.TitleInputs = overlay.TitleInputs
	}
	if len(overlay.ContentInputs) > 0 {
		policy.ContentInputs = overlay.ContentInputs
	}
	if overlay.MismatchMode != "" {
		if overlay.MismatchMode != MismatchWarn && overlay.MismatchMode != MismatchStrict {
			return policy, fmt.Errorf("unknown mismatch mode %q", overlay.MismatchMode)
		}
		policy.MismatchMode = overlay.MismatchMode
	}
	return policy, nil
}
