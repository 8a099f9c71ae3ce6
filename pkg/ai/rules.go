package ai

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

// Mode is the opponent's current intent.
type Mode int

const (
	Raid Mode = iota
	Defend
	Intercept
)

func (m Mode) String() string {
	switch m {
	case Raid:
		return "raid"
	case Defend:
		return "defend"
	case Intercept:
		return "intercept"
	}
	return "unknown"
}

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("ai: unknown mode")

// ParseMode maps "raid", "defend" or "intercept" (any case) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raid":
		return Raid, nil
	case "defend":
		return Defend, nil
	case "intercept":
		return Intercept, nil
	}
	return Raid, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// RuleEnv is the environment mode rules are evaluated against.
// Signals are exported fields; Chance draws from the match random source.
type RuleEnv struct {
	// HomeThreatened is true when enemy carriers are close to our base.
	HomeThreatened bool
	// PlayerPushing is true when the human pointer is active deep in our half.
	PlayerPushing bool
	// RaidUnderway is true when our carriers are close to the enemy base.
	RaidUnderway bool
	// OwnStock and EnemyStock are the current stock lengths.
	OwnStock   int
	EnemyStock int

	src *rng.Source
}

// Chance reports true with probability p. Without a source it never fires.
func (e RuleEnv) Chance(p float64) bool {
	if e.src == nil {
		return false
	}
	return e.src.Chance(p)
}

// RuleSpec is the uncompiled form of a Rule, as found in configuration.
type RuleSpec struct {
	Name  string `json:"name" toml:"name"`
	Mode  string `json:"mode" toml:"mode"`
	Score string `json:"score" toml:"score"`
}

// Rule scores one mode. A rule with a non-positive score does not apply.
type Rule struct {
	Name     string
	Mode     Mode
	ScoreSrc string
	program  *vm.Program
}

// DefaultRules reproduce the classic cascade: defend when threatened, intercept
// a pushing player, counter-raid half the time, else raid 55% of the time.
func DefaultRules() []RuleSpec {
	return []RuleSpec{
		{Name: "defend-home", Mode: "defend", Score: "HomeThreatened ? 4.0 : 0.0"},
		{Name: "intercept-push", Mode: "intercept", Score: "PlayerPushing ? 3.0 : 0.0"},
		{Name: "counter-raid", Mode: "raid", Score: "RaidUnderway && Chance(0.5) ? 2.0 : 0.0"},
		{Name: "raid", Mode: "raid", Score: "Chance(0.55) ? 1.0 : 0.0"},
		{Name: "hold", Mode: "defend", Score: "0.5"},
	}
}

// CompileRules compiles specs in registration order.
func CompileRules(specs []RuleSpec) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(specs))
	for _, s := range specs {
		mode, err := ParseMode(s.Mode)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", s.Name, err)
		}
		prog, err := expr.Compile(s.Score, expr.Env(RuleEnv{}), expr.AsFloat64())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", s.Name, err)
		}
		rules = append(rules, &Rule{Name: s.Name, Mode: mode, ScoreSrc: s.Score, program: prog})
	}
	return rules, nil
}

// Score runs the rule. Evaluation errors score zero.
func (r *Rule) Score(env RuleEnv) (float64, error) {
	out, err := vm.Run(r.program, env)
	if err != nil {
		return 0, fmt.Errorf("rule %q: %w", r.Name, err)
	}
	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("rule %q: score is %T, not float64", r.Name, out)
	}
	return v, nil
}

// Select returns the best-scoring rule. The highest positive score wins and
// earlier rules win ties. ok is false when no rule applies.
func Select(rules []*Rule, env RuleEnv) (best *Rule, ok bool) {
	bestScore := 0.0
	for _, r := range rules {
		s, err := r.Score(env)
		if err != nil {
			continue
		}
		if s > bestScore {
			best, bestScore = r, s
		}
	}
	return best, best != nil
}
