package config

// Config is the root configuration structure. Every field is optional.
type Config struct {
	Socket  string    `yaml:"socket,omitempty" json:"socket,omitempty"`   // yabai socket path, overrides $USER derivation
	State   string    `yaml:"state,omitempty" json:"state,omitempty"`     // Queue file path, overrides $HOME/.danke.json
	Timeout string    `yaml:"timeout,omitempty" json:"timeout,omitempty"` // Per-command deadline, e.g. "2s" (empty = none)
	Log     LogConfig `yaml:"log,omitempty" json:"log,omitempty"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `yaml:"level,omitempty" json:"level,omitempty"` // debug, info, warn or error
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Environment holds the process environment values danke depends on
type Environment struct {
	User string // $USER
	Home string // $HOME
}

// Overrides holds values given on the command line. Zero values mean unset.
type Overrides struct {
	Socket  string
	State   string
	Timeout string
	Debug   bool
}
