// Package config defines the CLI surface of epoled.
package config

import "github.com/epoled/epoled/internal/cmd"

// LogConfig holds the logging flags shared by every command.
type LogConfig struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"EPOLED_LOG_LEVEL"`
	File    string `help:"Write logs to this file instead of the console" env:"EPOLED_LOG_FILE"`
	RawFile string `help:"Write a hex dump of every wire report to this file" env:"EPOLED_LOG_RAW_FILE"`
}

// CLI is the kong root.
type CLI struct {
	Log    LogConfig `embed:"" prefix:"log."`
	Config string    `help:"Path to a configuration file" type:"path" env:"EPOLED_CONFIG"`

	Upload    cmd.Upload        `cmd:"" help:"Upload a still image to the keyboard screen"`
	Animate   cmd.Animate       `cmd:"" help:"Upload an animated GIF for looped playback"`
	Text      cmd.Text          `cmd:"" help:"Render a line of text and upload it"`
	Daemon    cmd.Daemon        `cmd:"" help:"Keep the clock, CPU and temperature readouts updated"`
	Dev       cmd.Dev           `cmd:"" help:"Developer tools: device info and udev rule generation"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
