// types.go
package config

// RawConfig is one YAML layer; unset fields are nil so layers can be merged.
type RawConfig struct {
	Version string        `yaml:"version"`
	Run     RunConfig     `yaml:"run"`
	Rules   *RulesConfig  `yaml:"rules,omitempty"`
	Output  *OutputConfig `yaml:"output,omitempty"`
	Notes   string        `yaml:"notes,omitempty"`
}

type RunConfig struct {
	Players      *int    `yaml:"players"`
	Rounds       *int    `yaml:"rounds"` // default: 10000 / players
	Seed         *uint64 `yaml:"seed,omitempty"`
	Replications *int    `yaml:"replications,omitempty"` // 0 or 1 => single run
	Workers      *int    `yaml:"workers,omitempty"`      // 0 => GOMAXPROCS
}

type RulesConfig struct {
	MaxJailAttempts      *int  `yaml:"max_jail_attempts,omitempty"`
	DoublesLimit         *int  `yaml:"doubles_limit,omitempty"`
	JailDoublesRollAgain *bool `yaml:"jail_doubles_roll_again,omitempty"`
	CountGoToJailSpace   *bool `yaml:"count_go_to_jail_space,omitempty"`
}

type OutputConfig struct {
	Chart string `yaml:"chart,omitempty"` // PNG path; empty => no chart
	DB    string `yaml:"db,omitempty"`    // SQLite path; empty => results not stored
}
