// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The config command: show, path, init, get, set, keys.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/smartflash-tui/internal/config"
)

// runConfig dispatches the config subcommands.
func (a *App) runConfig() (interface{}, error) {
	p := NewArgParser(a.Args.Raw, "force")

	switch strings.ToLower(p.Subcommand()) {
	case "", "show":
		return a.configShow()
	case "path":
		return a.configPath()
	case "init":
		return a.configInit(p.BoolFlag("force"))
	case "get":
		return a.configGet(p.Positional(1))
	case "set":
		if p.PositionalCount() < 3 {
			return nil, NewUsageError("usage: smartflash config set <key> <value>")
		}
		return a.configSet(p.Positional(1), strings.Join(p.PositionalFrom(2), " "))
	case "keys":
		keys := config.GetAllKeys()
		for _, k := range keys {
			a.say("%s\n", k)
		}
		return keys, nil
	default:
		return nil, NewUsageError("unknown config subcommand: %s (expected show, path, init, get, set or keys)", p.Subcommand())
	}
}

// configShow prints the effective configuration as TOML, highlighted when
// stdout is a terminal.
func (a *App) configShow() (interface{}, error) {
	if a.Args.JSON {
		return a.Config, nil
	}
	data, err := config.EncodeTOML(a.Config)
	if err != nil {
		return nil, err
	}
	out := string(data)
	if ColorsEnabled() {
		out = highlightTOML(out)
	}
	fmt.Fprint(a.Out, out)
	return a.Config, nil
}

func (a *App) configPath() (interface{}, error) {
	_, err := os.Stat(a.ConfigPath)
	data := ConfigPathData{Path: a.ConfigPath, Exists: err == nil}
	if data.Exists {
		a.say("%s\n", a.ConfigPath)
	} else {
		a.say("%s %s\n", a.ConfigPath, DimStyle.Render("(not created yet)"))
	}
	return data, nil
}

// configInit writes the default configuration. An existing file is kept
// unless force is set.
func (a *App) configInit(force bool) (interface{}, error) {
	if a.ConfigPath == "" {
		return nil, &ConfigError{Err: errors.New("no config path")}
	}
	_, err := os.Stat(a.ConfigPath)
	exists := err == nil
	if exists && !force {
		return nil, NewUsageError("%s already exists (use --force to overwrite)", a.ConfigPath)
	}

	if err := config.SaveToPath(config.Default(), a.ConfigPath); err != nil {
		return nil, &ConfigError{Path: a.ConfigPath, Err: err}
	}
	a.say("%s %s\n", SuccessStyle.Render("Wrote"), a.ConfigPath)
	return ConfigPathData{Path: a.ConfigPath, Exists: true}, nil
}

func (a *App) configGet(key string) (interface{}, error) {
	if key == "" {
		return nil, NewUsageError("usage: smartflash config get <key>")
	}
	value, err := a.Config.Get(key)
	if err != nil {
		return nil, NewUsageError("%v", err)
	}
	a.say("%v\n", value)
	return ConfigValueData{Key: key, Value: value}, nil
}

// configSet changes one key in the active config file and in the running
// config. The file is edited from its own contents, so flag and environment
// overrides stay out of it. Nothing changes unless both results validate.
func (a *App) configSet(key, value string) (interface{}, error) {
	stored, err := config.LoadStored(a.ConfigPath)
	if err != nil {
		return nil, &ConfigError{Path: a.ConfigPath, Err: err}
	}
	running := a.Config.Clone()

	for _, cfg := range []*config.Config{stored, running} {
		if err := cfg.Set(key, value); err != nil {
			return nil, NewUsageError("%v", err)
		}
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, &ConfigError{Path: a.ConfigPath, Err: err}
		}
	}
	if err := config.SaveToPath(stored, a.ConfigPath); err != nil {
		return nil, &ConfigError{Path: a.ConfigPath, Err: err}
	}

	a.Config = running
	config.SetGlobal(running)

	saved, _ := stored.Get(key)
	a.say("%s = %v\n", key, saved)
	return ConfigValueData{Key: key, Value: saved}, nil
}

// highlightTOML colors TOML source for the terminal. On any failure the
// source is returned unchanged.
func highlightTOML(src string) string {
	lexer := lexers.Get("toml")
	if lexer == nil {
		lexer = lexers.Analyse(src)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return src
	}
	return buf.String()
}
