package scenario

import (
	"fmt"
	"strings"
)

// Level grades a single check or a whole scenario.
type Level string

const (
	LevelPass Level = "PASS"
	LevelWarn Level = "WARN"
	LevelFail Level = "FAIL"
)

// Icon returns the marker printed next to the level.
func (l Level) Icon() string {
	switch l {
	case LevelPass:
		return "✅"
	case LevelWarn:
		return "⚠️ "
	case LevelFail:
		return "❌"
	default:
		return "?"
	}
}

// Check is the result of one assertion on a reply.
type Check struct {
	Level  Level
	Detail string
}

// CheckTurn grades a reply against the expectations of turn.
//
// A mismatched agent, a missing must_have or a present must_not_have
// fails; a missing nice_to_have only warns.
func CheckTurn(agent, response string, turn Turn) []Check {
	var checks []Check

	if turn.AgentIs != "" {
		if strings.EqualFold(agent, turn.AgentIs) {
			checks = append(checks, Check{LevelPass, fmt.Sprintf("agent == %s", turn.AgentIs)})
		} else {
			checks = append(checks, Check{LevelFail, fmt.Sprintf("agent: expected '%s', got '%s'", turn.AgentIs, agent)})
		}
	}

	for _, p := range turn.MustHave {
		found, err := matches(p, response)

		switch {
		case err != nil:
			checks = append(checks, Check{LevelFail, err.Error()})
		case found:
			checks = append(checks, Check{LevelPass, fmt.Sprintf("must_have %q → FOUND", p)})
		default:
			checks = append(checks, Check{LevelFail, fmt.Sprintf("must_have %q → NOT FOUND", p)})
		}
	}

	for _, p := range turn.MustNotHave {
		found, err := matches(p, response)

		switch {
		case err != nil:
			checks = append(checks, Check{LevelFail, err.Error()})
		case found:
			checks = append(checks, Check{LevelFail, fmt.Sprintf("must_not_have %q → FOUND (bad!)", p)})
		default:
			checks = append(checks, Check{LevelPass, fmt.Sprintf("must_not_have %q → CLEAN", p)})
		}
	}

	for _, p := range turn.NiceToHave {
		found, err := matches(p, response)

		switch {
		case err != nil:
			checks = append(checks, Check{LevelFail, err.Error()})
		case found:
			checks = append(checks, Check{LevelPass, fmt.Sprintf("nice_to_have %q → FOUND", p)})
		default:
			checks = append(checks, Check{LevelWarn, fmt.Sprintf("nice_to_have %q → NOT FOUND", p)})
		}
	}

	return checks
}

// Grade folds checks into one level: any failure fails, otherwise any
// warning warns.
func Grade(checks []Check) Level {
	level := LevelPass

	for _, c := range checks {
		switch c.Level {
		case LevelFail:
			return LevelFail
		case LevelWarn:
			level = LevelWarn
		}
	}

	return level
}

func count(checks []Check, l Level) int {
	n := 0

	for _, c := range checks {
		if c.Level == l {
			n++
		}
	}

	return n
}

func matches(pattern, text string) (bool, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(text), nil
}
