// Package scenario runs scripted multi-turn conversations against the chat
// service and grades every reply with regular-expression checks.
package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed suites/broker.yaml
var defaultSuite []byte

// Turn is one user message and the expectations on the reply to it.
type Turn struct {
	Message     string   `yaml:"message"`
	AgentIs     string   `yaml:"agent_is,omitempty"`
	MustHave    []string `yaml:"must_have,omitempty"`
	MustNotHave []string `yaml:"must_not_have,omitempty"`
	NiceToHave  []string `yaml:"nice_to_have,omitempty"`
}

// Scenario is a conversation played by a single user.
type Scenario struct {
	Name   string `yaml:"name"`
	UserID string `yaml:"user_id"`
	Turns  []Turn `yaml:"turns"`
}

type suite struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Default returns the embedded broker regression suite.
func Default() ([]Scenario, error) {
	return Load(bytes.NewReader(defaultSuite))
}

// LoadFile reads a suite from a YAML file.
func LoadFile(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open suite: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a YAML suite and validates every scenario and pattern.
func Load(r io.Reader) ([]Scenario, error) {
	var s suite

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no scenarios", ErrInvalidSuite)
		}

		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidSuite, err)
	}

	if len(s.Scenarios) == 0 {
		return nil, fmt.Errorf("%w: no scenarios", ErrInvalidSuite)
	}

	for i, sc := range s.Scenarios {
		if err := sc.validate(); err != nil {
			return nil, fmt.Errorf("%w: scenario %d: %v", ErrInvalidSuite, i+1, err)
		}
	}

	return s.Scenarios, nil
}

func (s Scenario) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is empty")
	}

	if strings.TrimSpace(s.UserID) == "" {
		return fmt.Errorf("%q: user_id is empty", s.Name)
	}

	if len(s.Turns) == 0 {
		return fmt.Errorf("%q: no turns", s.Name)
	}

	for i, t := range s.Turns {
		if strings.TrimSpace(t.Message) == "" {
			return fmt.Errorf("%q turn %d: message is empty", s.Name, i+1)
		}

		for _, group := range [][]string{t.MustHave, t.MustNotHave, t.NiceToHave} {
			for _, p := range group {
				if _, err := compilePattern(p); err != nil {
					return fmt.Errorf("%q turn %d: %w", s.Name, i+1, err)
				}
			}
		}
	}

	return nil
}

func compilePattern(p string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + p)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", p, err)
	}

	return re, nil
}
