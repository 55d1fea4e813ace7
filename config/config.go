// Package config loads the CLI-level defaults and the optional keymap
// override file gupty's core treats as an external collaborator: the
// core never parses YAML itself, it only ever receives a resolved
// ModeTables value.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mongodb-labs/gupty"
)

// Config holds the CLI-level defaults a gupty run is parameterized by.
// AutoPilotPauseMS is read from the file but is not passed to the
// Session, which always paces AUTO mode at 100ms.
type Config struct {
	Shell            string `yaml:"shell"`
	LogFile          string `yaml:"log_file"`
	MonitorFile      string `yaml:"monitor_file"`
	AutoPilotPauseMS int    `yaml:"auto_pilot_pause_ms"`
}

// ModeOverrides is the shape of an optional YAML keymap-override file: a
// binding (a key name from gupty.NamedKeys, or a literal single
// character) mapped to the action name to bind it to, one map per mode.
// An action name not recognized for its mode is an error at Load time.
type ModeOverrides struct {
	Command     map[string]string `yaml:"command"`
	Insert      map[string]string `yaml:"insert"`
	Passthrough map[string]string `yaml:"passthrough"`
	Auto        map[string]string `yaml:"auto"`
}

// file is the on-disk shape: Config's fields plus an optional keymap
// section, both optional so a missing or empty file yields all defaults.
type file struct {
	Config  `yaml:",inline"`
	Keymaps ModeOverrides `yaml:"keymaps"`
}

// DefaultConfig returns the CLI defaults used when no config file is
// given: an empty shell (resolved from $SHELL at Session.Init time),
// the standard gupty.log/.gupty.monitor paths, and a 100ms autopilot
// pace.
func DefaultConfig() *Config {
	return &Config{
		LogFile:          "gupty.log",
		MonitorFile:      ".gupty.monitor",
		AutoPilotPauseMS: 100,
	}
}

// Load reads path (if non-empty and the file exists) and returns the
// resulting Config plus a gupty.ModeTables with any keymap overrides
// from the file applied on top of gupty.DefaultModeTables(). A missing
// path (empty string, or a file that does not exist) is not an error: it
// yields the defaults unchanged.
func Load(path string) (*Config, *gupty.ModeTables, error) {
	cfg := DefaultConfig()
	tables := gupty.DefaultModeTables()

	if path == "" {
		return cfg, tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, tables, nil
		}
		return nil, nil, fmt.Errorf("gupty/config: read %s: %w", path, err)
	}

	var f file
	f.Config = *cfg
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("gupty/config: parse %s: %w", path, err)
	}
	cfg = &f.Config

	if err := applyOverrides(tables, f.Keymaps); err != nil {
		return nil, nil, fmt.Errorf("gupty/config: %s: %w", path, err)
	}
	return cfg, tables, nil
}

func applyOverrides(tables *gupty.ModeTables, ov ModeOverrides) error {
	for binding, action := range ov.Command {
		a, ok := commandActionNames[action]
		if !ok {
			return fmt.Errorf("unknown command-mode action %q", action)
		}
		tables.Command.Bind(resolveBinding(binding), a)
	}
	for binding, action := range ov.Insert {
		a, ok := insertActionNames[action]
		if !ok {
			return fmt.Errorf("unknown insert-mode action %q", action)
		}
		tables.Insert.Bind(resolveBinding(binding), a)
	}
	for binding, action := range ov.Passthrough {
		a, ok := passthroughActionNames[action]
		if !ok {
			return fmt.Errorf("unknown passthrough-mode action %q", action)
		}
		tables.Passthrough.Bind(resolveBinding(binding), a)
	}
	for binding, action := range ov.Auto {
		a, ok := autoActionNames[action]
		if !ok {
			return fmt.Errorf("unknown auto-mode action %q", action)
		}
		tables.Auto.Bind(resolveBinding(binding), a)
	}
	return nil
}

// resolveBinding accepts either a named key (e.g. "Backspace") or a
// literal single-character binding as written in YAML, matching the
// same vocabulary paste_keys/type_keys script args use.
func resolveBinding(binding string) string {
	if code, ok := gupty.CodeFor(binding); ok {
		return code
	}
	return binding
}

var commandActionNames = map[string]gupty.CommandAction{
	"sig_int":                      gupty.CommandActionSigInt,
	"sig_quit":                     gupty.CommandActionSigQuit,
	"quit":                         gupty.CommandActionQuit,
	"resize_window":                gupty.CommandActionResizeWindow,
	"switch_to_insert_mode":        gupty.CommandActionSwitchToInsertMode,
	"switch_to_passthrough_mode":   gupty.CommandActionSwitchToPassthroughMode,
	"switch_to_auto_mode":          gupty.CommandActionSwitchToAutoMode,
	"turn_off_stdout":              gupty.CommandActionTurnOffStdout,
	"turn_on_stdout":               gupty.CommandActionTurnOnStdout,
	"toggle_stdout":                gupty.CommandActionToggleStdout,
	"next_line":                    gupty.CommandActionNextLine,
	"prev_line":                    gupty.CommandActionPrevLine,
	"return":                       gupty.CommandActionReturn,
}

var insertActionNames = map[string]gupty.InsertAction{
	"sig_int":                gupty.InsertActionSigInt,
	"sig_quit":               gupty.InsertActionSigQuit,
	"back_one_character":     gupty.InsertActionBackOneCharacter,
	"switch_to_command_mode": gupty.InsertActionSwitchToCommandMode,
	"return":                 gupty.InsertActionReturn,
	"disabled":               gupty.InsertActionDisabled,
}

var passthroughActionNames = map[string]gupty.PassthroughAction{
	"switch_to_command_mode": gupty.PassthroughActionSwitchToCommandMode,
}

var autoActionNames = map[string]gupty.AutoAction{
	"sig_int":                gupty.AutoActionSigInt,
	"sig_quit":                gupty.AutoActionSigQuit,
	"switch_to_command_mode": gupty.AutoActionSwitchToCommandMode,
	"switch_to_full_auto":    gupty.AutoActionSwitchToFullAuto,
	"switch_to_semi_auto":    gupty.AutoActionSwitchToSemiAuto,
	"return":                 gupty.AutoActionReturn,
}
