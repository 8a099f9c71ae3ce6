package ai

import (
	"errors"
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"raid", Raid, false},
		{" Defend ", Defend, false},
		{"INTERCEPT", Intercept, false},
		{"retreat", Raid, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) err = %v", tt.in, err)
			}
			if err != nil && !errors.Is(err, ErrUnknownMode) {
				t.Errorf("err = %v; want ErrUnknownMode", err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v; want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompileRules_Errors(t *testing.T) {
	if _, err := CompileRules([]RuleSpec{{Name: "bad", Mode: "raid", Score: "HomeThreatened +"}}); err == nil {
		t.Error("expected a compile error for malformed source")
	}
	if _, err := CompileRules([]RuleSpec{{Name: "unknown-field", Mode: "raid", Score: "Nope ? 1.0 : 0.0"}}); err == nil {
		t.Error("expected a compile error for an unknown identifier")
	}
	if _, err := CompileRules([]RuleSpec{{Name: "bad-mode", Mode: "flee", Score: "1.0"}}); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("err = %v; want ErrUnknownMode", err)
	}
}

func TestSelect_DefaultCascade(t *testing.T) {
	rules, err := CompileRules(DefaultRules())
	if err != nil {
		t.Fatalf("CompileRules: %v", err)
	}
	tests := []struct {
		name string
		env  RuleEnv
		want Mode
	}{
		{"threat beats everything", RuleEnv{HomeThreatened: true, PlayerPushing: true, RaidUnderway: true}, Defend},
		{"pushing player is intercepted", RuleEnv{PlayerPushing: true, RaidUnderway: true}, Intercept},
		{"no source means no coin flips", RuleEnv{RaidUnderway: true}, Defend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, ok := Select(rules, tt.env)
			if !ok {
				t.Fatal("no rule selected")
			}
			if best.Mode != tt.want {
				t.Errorf("mode = %v (rule %s); want %v", best.Mode, best.Name, tt.want)
			}
		})
	}
}

func TestSelect_CoinFlipsUseSource(t *testing.T) {
	rules, err := CompileRules(DefaultRules())
	if err != nil {
		t.Fatalf("CompileRules: %v", err)
	}
	src := rng.New(1)
	raids := 0
	const n = 2000
	for i := 0; i < n; i++ {
		best, _ := Select(rules, RuleEnv{src: src})
		if best.Mode == Raid {
			raids++
		}
	}
	// raid with p=0.55, otherwise hold
	if share := float64(raids) / n; share < 0.45 || share > 0.65 {
		t.Errorf("raid share %.2f; want about 0.55", share)
	}
}

func TestSelect_CustomRulesAndTies(t *testing.T) {
	rules, err := CompileRules([]RuleSpec{
		{Name: "first", Mode: "intercept", Score: "EnemyStock > OwnStock ? 2.0 : 0.0"},
		{Name: "second", Mode: "raid", Score: "2.0"},
		{Name: "never", Mode: "defend", Score: "-1.0"},
	})
	if err != nil {
		t.Fatalf("CompileRules: %v", err)
	}
	best, ok := Select(rules, RuleEnv{OwnStock: 1, EnemyStock: 3})
	if !ok || best.Name != "first" {
		t.Errorf("tie should go to the earlier rule, got %v", best)
	}
	best, _ = Select(rules, RuleEnv{OwnStock: 3, EnemyStock: 1})
	if best.Name != "second" {
		t.Errorf("got %s; want second", best.Name)
	}

	none, err := CompileRules([]RuleSpec{{Name: "zero", Mode: "raid", Score: "0.0"}})
	if err != nil {
		t.Fatalf("CompileRules: %v", err)
	}
	if _, ok := Select(none, RuleEnv{}); ok {
		t.Error("a zero score must not select a rule")
	}
}
