// Package tuning loads the tunable search parameters named in spec §4.4
// (batch size, swap count, tabu size, acceptance floor, ...) the way
// damir5-kosarica's config package loads its service configuration:
// viper defaults overridable by environment variables, with no mandatory
// config file (the spec names no file format, only the parameters).
package tuning

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix a driver uses to override
// search parameters, e.g. SHELFOPT_BATCH_SIZE=50.
const EnvPrefix = "SHELFOPT"

// Search holds every tunable named in spec §4.3-§4.4.
type Search struct {
	BatchSize          int     `mapstructure:"batch_size"`
	SwapCount          int     `mapstructure:"swap_count"`
	TriesAllowed       int     `mapstructure:"tries_allowed"`
	TabuSize           int     `mapstructure:"tabu_size"`
	MaxIterations      int     `mapstructure:"max_iterations"`
	AcceptanceFloor    float64 `mapstructure:"acceptance_floor"`
	AllowWalkableSwap  bool    `mapstructure:"allow_walkable_swap"`
	SwapWholeAisles    bool    `mapstructure:"swap_whole_aisles"`
	WorkerPoolSize     int     `mapstructure:"worker_pool_size"`

	// Patience is the supplemental early-stopping parameter described in
	// SPEC_FULL.md; 0 disables it.
	Patience int `mapstructure:"patience"`
}

// Default returns the spec's stated defaults: batch_size=30,
// acceptance_floor=0.05, and otherwise conservative values a driver is
// expected to override per trajectory.
func Default() Search {
	return Search{
		BatchSize:         30,
		SwapCount:         1,
		TriesAllowed:      10,
		TabuSize:          20,
		MaxIterations:     100,
		AcceptanceFloor:   0.05,
		AllowWalkableSwap: false,
		SwapWholeAisles:   false,
		WorkerPoolSize:    8,
		Patience:          0,
	}
}

// Load builds a Search from defaults overridden by SHELFOPT_* environment
// variables, mirroring kosarica's config.Load AutomaticEnv/SetEnvPrefix
// shape. No config file is read, since the spec names no file format for
// these parameters.
func Load() Search {
	v := viper.New()
	defaults := Default()
	v.SetDefault("batch_size", defaults.BatchSize)
	v.SetDefault("swap_count", defaults.SwapCount)
	v.SetDefault("tries_allowed", defaults.TriesAllowed)
	v.SetDefault("tabu_size", defaults.TabuSize)
	v.SetDefault("max_iterations", defaults.MaxIterations)
	v.SetDefault("acceptance_floor", defaults.AcceptanceFloor)
	v.SetDefault("allow_walkable_swap", defaults.AllowWalkableSwap)
	v.SetDefault("swap_whole_aisles", defaults.SwapWholeAisles)
	v.SetDefault("worker_pool_size", defaults.WorkerPoolSize)
	v.SetDefault("patience", defaults.Patience)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Search
	// Viper's Unmarshal only fails on type-conversion errors; defaults and
	// AutomaticEnv values are always well-typed here, so the error is
	// deliberately ignored in favor of the zero-value-safe defaults above.
	_ = v.Unmarshal(&s)
	return s
}
