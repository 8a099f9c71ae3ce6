package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/ai"
)

//go:embed config.schema.json
var configSchema string

// Config holds every tunable of a match. Zero values are not meaningful;
// start from DefaultConfig and override.
type Config struct {
	// Arena used by front-ends that do not own a window size.
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
	// Seed of the match random source. Zero picks one from the clock.
	Seed uint64 `json:"seed" toml:"seed"`
	// ReducedMotion spawns fewer boids and no initial storm.
	ReducedMotion bool `json:"reducedMotion" toml:"reducedMotion"`

	// Population
	AreaPerBoid        float64 `json:"areaPerBoid" toml:"areaPerBoid"`
	ReducedAreaPerBoid float64 `json:"reducedAreaPerBoid" toml:"reducedAreaPerBoid"`
	MinPerTeam         int     `json:"minPerTeam" toml:"minPerTeam"`
	MaxPerTeam         int     `json:"maxPerTeam" toml:"maxPerTeam"`
	OpponentRatio      float64 `json:"opponentRatio" toml:"opponentRatio"`
	InitialNeutralDots int     `json:"initialNeutralDots" toml:"initialNeutralDots"`

	// Waves and level-ups
	WaveCycle             float64 `json:"waveCycle" toml:"waveCycle"`
	CatchUpThreshold      int     `json:"catchUpThreshold" toml:"catchUpThreshold"`
	WaveStormChance       float64 `json:"waveStormChance" toml:"waveStormChance"`
	MaxWaveStorms         int     `json:"maxWaveStorms" toml:"maxWaveStorms"`
	MaxStorms             int     `json:"maxStorms" toml:"maxStorms"`
	ReinforcementBase     int     `json:"reinforcementBase" toml:"reinforcementBase"`
	LevelUpCatchUpChance  float64 `json:"levelUpCatchUpChance" toml:"levelUpCatchUpChance"`
	DepositReinforcements bool    `json:"depositReinforcements" toml:"depositReinforcements"`

	// Interactions
	PickupRadius float64 `json:"pickupRadius" toml:"pickupRadius"`
	DropRadius   float64 `json:"dropRadius" toml:"dropRadius"`
	DropEnemies  int     `json:"dropEnemies" toml:"dropEnemies"`

	// Player autopilot and waypoints
	AutoPilot      bool    `json:"autoPilot" toml:"autoPilot"`
	AutoPilotDelay float64 `json:"autoPilotDelay" toml:"autoPilotDelay"`
	MaxWaypoints   int     `json:"maxWaypoints" toml:"maxWaypoints"`
	WaypointRadius float64 `json:"waypointRadius" toml:"waypointRadius"`
	WaypointVisits int     `json:"waypointVisits" toml:"waypointVisits"`

	// Anti-clustering
	Dispersion         bool    `json:"dispersion" toml:"dispersion"`
	MaxClusterSize     int     `json:"maxClusterSize" toml:"maxClusterSize"`
	ClusterRadius      float64 `json:"clusterRadius" toml:"clusterRadius"`
	DispersionRadius   float64 `json:"dispersionRadius" toml:"dispersionRadius"`
	DispersionInterval float64 `json:"dispersionInterval" toml:"dispersionInterval"`

	// Chaos event
	Chaos         bool    `json:"chaos" toml:"chaos"`
	ChaosDuration float64 `json:"chaosDuration" toml:"chaosDuration"`
	ChaosMinGap   float64 `json:"chaosMinGap" toml:"chaosMinGap"`
	ChaosMaxGap   float64 `json:"chaosMaxGap" toml:"chaosMaxGap"`
	ChaosIdle     float64 `json:"chaosIdle" toml:"chaosIdle"`
	ChaosPeakRate float64 `json:"chaosPeakRate" toml:"chaosPeakRate"`

	// OpponentRules override the reactive controller rules when not empty.
	OpponentRules []ai.RuleSpec `json:"opponentRules,omitempty" toml:"opponentRules"`
}

// DefaultConfig returns the stock match settings.
func DefaultConfig() *Config {
	return &Config{
		Width:                 1280,
		Height:                720,
		AreaPerBoid:           12000,
		ReducedAreaPerBoid:    16000,
		MinPerTeam:            24,
		MaxPerTeam:            120,
		OpponentRatio:         0.95,
		InitialNeutralDots:    2,
		WaveCycle:             46,
		CatchUpThreshold:      4,
		WaveStormChance:       0.3,
		MaxWaveStorms:         6,
		MaxStorms:             8,
		ReinforcementBase:     4,
		LevelUpCatchUpChance:  0.7,
		DepositReinforcements: false,
		PickupRadius:          24,
		DropRadius:            18,
		DropEnemies:           2,
		AutoPilot:             true,
		AutoPilotDelay:        3,
		MaxWaypoints:          10,
		WaypointRadius:        40,
		WaypointVisits:        50,
		Dispersion:            true,
		MaxClusterSize:        15,
		ClusterRadius:         60,
		DispersionRadius:      100,
		DispersionInterval:    0.5,
		Chaos:                 true,
		ChaosDuration:         2,
		ChaosMinGap:           90,
		ChaosMaxGap:           180,
		ChaosIdle:             5,
		ChaosPeakRate:         0.01,
	}
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("config.schema.json", configSchema)
})

// Validate checks cfg against the embedded JSON Schema.
func (cfg *Config) Validate() error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return validateJSON(b)
}

func validateJSON(b []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ParseConfigJSON validates b against the schema and decodes it over the defaults.
func ParseConfigJSON(b []byte) (*Config, error) {
	if err := validateJSON(b); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ParseConfigTOML decodes b over the defaults, then validates the result.
// Unknown keys are rejected.
func ParseConfigTOML(b []byte) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config validation failed: unknown keys %v", undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads a .json or .toml configuration file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseConfigTOML(b)
	case ".json":
		return ParseConfigJSON(b)
	}
	return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
}
