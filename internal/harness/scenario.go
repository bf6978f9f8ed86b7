package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/paperscore/internal/notify"
	"github.com/roach88/paperscore/internal/record"
	"github.com/roach88/paperscore/internal/review"
)

// Scenario defines a reviewer session to replay.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// DisplayDuration overrides the notification display duration.
	// Empty means the default of one second.
	DisplayDuration string `yaml:"display_duration,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final store contents.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one reviewer action. Exactly one of Submit, Advance and Tick is
// set.
type Step struct {
	Submit  *SubmitStep `yaml:"submit,omitempty"`
	Advance string      `yaml:"advance,omitempty"`
	Tick    bool        `yaml:"tick,omitempty"`

	// Expect is checked after the step. Nil means no check.
	Expect *Expect `yaml:"expect,omitempty"`
}

// SubmitStep is the draft to submit.
type SubmitStep struct {
	// PaperID is the raw text typed into the id field.
	PaperID string `yaml:"paper_id"`

	// Scores may be omitted (all zero). Out of range values are kept so
	// scenarios can exercise score validation.
	Scores []int `yaml:"scores,omitempty"`
}

// Expect lists the observable results of a step. Empty fields are not
// checked.
type Expect struct {
	Outcome      string `yaml:"outcome,omitempty"` // accepted | rejected
	Reason       string `yaml:"reason,omitempty"`
	Notification string `yaml:"notification,omitempty"`
	DraftCleared *bool  `yaml:"draft_cleared,omitempty"`
}

// Assertion validates the final store contents.
type Assertion struct {
	Type    string `yaml:"type"`
	PaperID int    `yaml:"paper_id,omitempty"`
	Scores  []int  `yaml:"scores,omitempty"`
	Count   int    `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertRecord      = "record"
	AssertRecordCount = "record_count"
	AssertAbsent      = "absent"
)

// Outcome values accepted in Expect.Outcome.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.DisplayDuration != "" {
		d, err := time.ParseDuration(s.DisplayDuration)
		if err != nil {
			return fmt.Errorf("display_duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("display_duration must be positive")
		}
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step *Step) error {
	actions := 0
	if step.Submit != nil {
		actions++
	}
	if step.Advance != "" {
		actions++
	}
	if step.Tick {
		actions++
	}
	if actions != 1 {
		return fmt.Errorf("steps[%d]: exactly one of submit, advance or tick is required", index)
	}

	if step.Submit != nil && step.Submit.Scores != nil && len(step.Submit.Scores) != record.Dimensions {
		return fmt.Errorf("steps[%d].submit: scores must have %d entries, got %d",
			index, record.Dimensions, len(step.Submit.Scores))
	}

	if step.Advance != "" {
		d, err := time.ParseDuration(step.Advance)
		if err != nil {
			return fmt.Errorf("steps[%d].advance: %w", index, err)
		}
		if d < 0 {
			return fmt.Errorf("steps[%d].advance: duration must be non-negative", index)
		}
	}

	if e := step.Expect; e != nil {
		if step.Submit == nil && (e.Outcome != "" || e.Reason != "" || e.DraftCleared != nil) {
			return fmt.Errorf("steps[%d].expect: outcome, reason and draft_cleared apply to submit steps only", index)
		}
		switch e.Outcome {
		case "", OutcomeAccepted, OutcomeRejected:
		default:
			return fmt.Errorf("steps[%d].expect: unknown outcome %q", index, e.Outcome)
		}
		if e.Reason != "" {
			if _, err := review.ParseReason(e.Reason); err != nil {
				return fmt.Errorf("steps[%d].expect: %w", index, err)
			}
		}
		if e.Notification != "" {
			if _, err := notify.ParseKind(e.Notification); err != nil {
				return fmt.Errorf("steps[%d].expect: %w", index, err)
			}
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRecord:
		if a.PaperID == 0 {
			return fmt.Errorf("assertions[%d]: paper_id is required for record", index)
		}
		if len(a.Scores) != record.Dimensions {
			return fmt.Errorf("assertions[%d]: scores must have %d entries for record", index, record.Dimensions)
		}
	case AssertRecordCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for record_count", index)
		}
	case AssertAbsent:
		if a.PaperID == 0 {
			return fmt.Errorf("assertions[%d]: paper_id is required for absent", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
