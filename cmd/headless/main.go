// Command headless plays whole matches without a window and prints a
// key=value report per run plus an aggregate, for tuning and regressions.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/internal/report"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

// frameMS is the simulated frame length, a steady 60 fps.
const frameMS = 1000.0 / 60

type runStats struct {
	runIndex int
	seed     uint64

	// firstLevelUp is the tick of each team's first level-up, -1 if none.
	firstLevelUp [2]int
	firstChaos   int
	waves        int
	storms       int
	modeChanges  int
	// autopilotTicks counts the ticks the autopilot was steering.
	autopilotTicks int

	report report.Report
}

func main() {
	var runs int
	var ticks int
	var seedBase uint64
	var seedStep uint64
	var configPath string
	var width, height float64

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per match (60 per simulated second)")
	flag.Uint64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Uint64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "match settings file (.toml or .json)")
	flag.Float64Var(&width, "width", 1280, "arena width")
	flag.Float64Var(&height, "height", 720, "arena height")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	cfg := simulation.DefaultConfig()
	if configPath != "" {
		loaded, err := simulation.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	fmt.Printf("=== Headless Skirmish Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d arena=%gx%g\n\n", runs, ticks, seedBase, seedStep, width, height)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + uint64(i)*seedStep
		rs, err := runMatch(cfg, i+1, seed, ticks, width, height)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

func runMatch(cfg *simulation.Config, runIndex int, seed uint64, ticks int, width, height float64) (runStats, error) {
	m, err := simulation.NewMatch(cfg, width, height, simulation.WithSeed(seed))
	if err != nil {
		return runStats{}, err
	}
	rs := runStats{
		runIndex:     runIndex,
		seed:         seed,
		firstLevelUp: [2]int{-1, -1},
		firstChaos:   -1,
	}
	in := simulation.Input{Delta: simulation.FrameDelta(frameMS)}
	for tick := 1; tick <= ticks; tick++ {
		rs.record(tick, m.Tick(in))
		if _, driving := m.AutoPilot(); driving {
			rs.autopilotTicks++
		}
	}
	rs.report = report.Build(m.Snapshot())
	return rs, nil
}

// record folds one tick of events into the run.
func (rs *runStats) record(tick int, events []simulation.Event) {
	for _, e := range events {
		switch e.Kind {
		case simulation.EventLevelUp:
			if e.Team.Valid() && rs.firstLevelUp[e.Team] < 0 {
				rs.firstLevelUp[e.Team] = tick
			}
		case simulation.EventChaos:
			if rs.firstChaos < 0 {
				rs.firstChaos = tick
			}
		case simulation.EventWave:
			rs.waves++
		case simulation.EventStorm:
			rs.storms++
		case simulation.EventModeChange:
			rs.modeChanges++
		}
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_level_up_player=%d first_level_up_opponent=%d first_chaos=%d\n",
		rs.firstLevelUp[entity.Player], rs.firstLevelUp[entity.Opponent], rs.firstChaos)
	fmt.Printf("event_totals: waves=%d storms=%d opponent_mode_changes=%d autopilot_ticks=%d\n",
		rs.waves, rs.storms, rs.modeChanges, rs.autopilotTicks)
	fmt.Print(rs.report.Summary())
	fmt.Println()
}

func printAggregate(all []runStats) {
	wins := map[string]int{}
	var levels, deposits, steals [2]int
	firstPlayer := make([]int, 0, len(all))
	firstOpponent := make([]int, 0, len(all))

	for _, rs := range all {
		wins[rs.report.Leader]++
		for i, t := range rs.report.Teams {
			levels[i] += t.Level
			deposits[i] += t.Stats.Deposits
			steals[i] += t.Stats.Steals
		}
		if rs.firstLevelUp[entity.Player] >= 0 {
			firstPlayer = append(firstPlayer, rs.firstLevelUp[entity.Player])
		}
		if rs.firstLevelUp[entity.Opponent] >= 0 {
			firstOpponent = append(firstOpponent, rs.firstLevelUp[entity.Opponent])
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", n)
	fmt.Printf("leaders: player=%d opponent=%d draw=%d\n", wins["player"], wins["opponent"], wins["draw"])
	fmt.Printf("avg_final_level: player=%.2f opponent=%.2f\n", avg(levels[0], n), avg(levels[1], n))
	fmt.Printf("avg_deposits: player=%.1f opponent=%.1f\n", avg(deposits[0], n), avg(deposits[1], n))
	fmt.Printf("avg_steals: player=%.1f opponent=%.1f\n", avg(steals[0], n), avg(steals[1], n))
	fmt.Printf("median_first_level_up: player=%d opponent=%d\n", median(firstPlayer), median(firstOpponent))
}

func avg(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

// median of ticks, -1 when empty.
func median(ticks []int) int {
	if len(ticks) == 0 {
		return -1
	}
	sorted := append([]int(nil), ticks...)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}
