package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/metalagman/chatprobe"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// AgentError is reported for turns that never reached the chat service.
const AgentError = "ERROR"

// Sender delivers one message for a user. *chatprobe.Probe implements it.
type Sender interface {
	Send(ctx context.Context, userID, message string) chatprobe.Result
}

// Outcome is the graded result of one scenario.
type Outcome struct {
	Index    int
	Scenario Scenario
	Level    Level
	Checks   []Check
}

// Failures returns the failing checks.
func (o Outcome) Failures() []Check {
	var out []Check

	for _, c := range o.Checks {
		if c.Level == LevelFail {
			out = append(out, c)
		}
	}

	return out
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Total    int
	Outcomes []Outcome
}

// Count returns how many scenarios ended at level l.
func (s Summary) Count(l Level) int {
	n := 0

	for _, o := range s.Outcomes {
		if o.Level == l {
			n++
		}
	}

	return n
}

// Failed reports whether any scenario failed.
func (s Summary) Failed() bool {
	return s.Count(LevelFail) > 0
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithCleaner sets how user state is reset before each scenario.
func WithCleaner(c Cleaner) RunnerOption {
	return func(r *Runner) {
		if c != nil {
			r.cleaner = c
		}
	}
}

// WithTripAfter opens the circuit after n consecutive transport failures.
func WithTripAfter(n uint32) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.tripAfter = n
		}
	}
}

// WithClock overrides the time source used for turn latency.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// Runner plays scenarios in order and prints a transcript.
type Runner struct {
	sender    Sender
	cleaner   Cleaner
	out       io.Writer
	tripAfter uint32
	now       func() time.Time
	breaker   *gobreaker.CircuitBreaker
}

// NewRunner constructs a runner that sends through s and writes to out.
func NewRunner(s Sender, out io.Writer, opts ...RunnerOption) (*Runner, error) {
	if s == nil {
		return nil, fmt.Errorf("runner requires a sender")
	}

	if out == nil {
		out = io.Discard
	}

	r := &Runner{
		sender:    s,
		cleaner:   NopCleaner{},
		out:       out,
		tripAfter: 3,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "chat",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= r.tripAfter
		},
		IsSuccessful: func(err error) bool {
			return !errors.Is(err, chatprobe.ErrDispatch)
		},
		Timeout: time.Minute,
	})

	return r, nil
}

// Run plays every selected scenario of a suite of total scenarios.
func (r *Runner) Run(ctx context.Context, selected []Numbered, total int) Summary {
	r.printBanner(len(selected), total)

	summary := Summary{Total: len(selected)}

	for _, n := range selected {
		if err := ctx.Err(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("run interrupted")

			break
		}

		summary.Outcomes = append(summary.Outcomes, r.runScenario(ctx, n, total))
	}

	r.printSummary(summary)

	return summary
}

func (r *Runner) runScenario(ctx context.Context, n Numbered, total int) Outcome {
	sc := n.Scenario
	log := zerolog.Ctx(ctx).With().Int("scenario", n.Index).Str("user_id", sc.UserID).Logger()
	rule := strings.Repeat("═", 50)

	r.printf("\n%s\n SCENARIO %d/%d: %s\n user_id: %s\n%s\n", rule, n.Index, total, sc.Name, sc.UserID, rule)

	if err := r.cleaner.Clean(ctx, sc.UserID); err != nil {
		log.Warn().Err(err).Msg("state cleanup failed")
		r.printf("  [cleanup] WARNING: %v\n", err)
	}

	var all []Check

	for i, turn := range sc.Turns {
		t := i + 1
		r.printf("\n[Turn %d] USER: %q\n", t, turn.Message)

		start := r.now()
		res := r.send(ctx, sc.UserID, turn.Message)
		elapsed := r.now().Sub(start)

		if res.Err != nil {
			log.Warn().Err(res.Err).Int("turn", t).Msg("turn did not get a parsable reply")
		}

		r.printf("[Turn %d] AGENT: %s  (%.1fs)\n", t, res.Agent, elapsed.Seconds())
		r.printf("[Turn %d] RESPONSE:\n---\n%s\n---\n", t, res.Response)

		checks := CheckTurn(res.Agent, res.Response, turn)
		all = append(all, checks...)

		if len(checks) > 0 {
			r.printf("[Turn %d] CHECKS:\n", t)

			for _, c := range checks {
				r.printf("  %s %s\n", c.Level.Icon(), c.Detail)
			}
		}
	}

	level := Grade(all)

	var detail string

	switch level {
	case LevelFail:
		detail = fmt.Sprintf("%d failure(s)", count(all, LevelFail))
	case LevelWarn:
		detail = fmt.Sprintf("%d warning(s)", count(all, LevelWarn))
	default:
		detail = "all checks passed"
	}

	r.printf("\n--- SCENARIO %d RESULT: %s %s (%s) ---\n", n.Index, level.Icon(), level, detail)

	return Outcome{Index: n.Index, Scenario: sc, Level: level, Checks: all}
}

func (r *Runner) send(ctx context.Context, userID, message string) chatprobe.Result {
	out, err := r.breaker.Execute(func() (any, error) {
		res := r.sender.Send(ctx, userID, message)

		return res, res.Err
	})

	if res, ok := out.(chatprobe.Result); ok {
		return res
	}

	return chatprobe.Result{Agent: AgentError, Response: err.Error(), Err: err}
}

func (r *Runner) printBanner(selected, total int) {
	r.printf("\n╔%s╗\n", strings.Repeat("═", 48))
	r.printf("║ %-47s║\n", "CHAT SCENARIO RUN")
	r.printf("║ %-47s║\n", fmt.Sprintf("Running %d of %d scenarios", selected, total))
	r.printf("╚%s╝\n", strings.Repeat("═", 48))
}

func (r *Runner) printSummary(s Summary) {
	r.printf("\n\n╔%s╗\n", strings.Repeat("═", 30))
	r.printf("║ %-29s║\n", "  SCENARIO SUMMARY")
	r.printf("╠%s╣\n", strings.Repeat("═", 30))
	r.printf("║ %s PASS: %-21d║\n", LevelPass.Icon(), s.Count(LevelPass))
	r.printf("║ %sWARN: %-21d║\n", LevelWarn.Icon(), s.Count(LevelWarn))
	r.printf("║ %s FAIL: %-21d║\n", LevelFail.Icon(), s.Count(LevelFail))
	r.printf("║ Total:  %-21d║\n", s.Total)
	r.printf("╚%s╝\n", strings.Repeat("═", 30))

	if !s.Failed() {
		return
	}

	r.printf("\nFAILED SCENARIOS:\n")

	for _, o := range s.Outcomes {
		if o.Level != LevelFail {
			continue
		}

		r.printf("  S%02d: %s\n", o.Index, o.Scenario.Name)

		for _, c := range o.Failures() {
			r.printf("       → %s\n", c.Detail)
		}
	}
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
