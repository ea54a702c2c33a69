// Package main provides the command-line front end for the ugoira-to-MP4
// conversion core.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/ideamans/ugoira2mp4/pkg/adapters/logger"
	"github.com/ideamans/ugoira2mp4/pkg/adapters/osfilesystem"
	"github.com/ideamans/ugoira2mp4/pkg/config"
	"github.com/ideamans/ugoira2mp4/pkg/convert"
	"github.com/ideamans/ugoira2mp4/pkg/frame"
	"github.com/ideamans/ugoira2mp4/pkg/options"
	"github.com/ideamans/ugoira2mp4/pkg/ports"
	"github.com/ideamans/ugoira2mp4/pkg/probe"
	"github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Convert ConvertCmd `cmd:"" help:"Convert an ugoira ZIP + manifest into an H.264 MP4."`
	Inspect InspectCmd `cmd:"" help:"Report track/sample metadata for a produced MP4."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// ConvertCmd defines the convert subcommand.
type ConvertCmd struct {
	Input  string `arg:"" help:"Path to the ugoira ZIP archive."`
	Output string `arg:"" help:"Path to write the H.264 MP4 to."`
	JSON   string `arg:"" help:"Path to the JSON manifest of {file, delay} records."`

	MaxFPS       *float64 `short:"M" name:"max-fps" help:"Ceiling on the output frame rate (default 60)."`
	Meta         []string `short:"m" name:"meta" help:"Container metadata as KEY=VALUE, repeatable."`
	ForceYUV420P bool     `short:"f" name:"force-yuv420p" help:"Force 4:2:0 planar 8-bit YUV output regardless of input."`
	CRF          *int     `name:"crf" help:"libx264 CRF, 0-51 (default 18)."`
	Preset       *string  `short:"p" name:"preset" help:"libx264 preset (default slow)."`
	Level        *string  `short:"l" name:"level" help:"libx264 level."`
	Profile      *string  `short:"P" name:"profile" help:"libx264 profile."`
	Config       string   `name:"config" help:"Optional YAML defaults file."`

	LogLevel *string `name:"log-level" enum:"debug,info,warn,error,quiet" help:"Log level (default info)."`
	Quiet    bool    `short:"Q" help:"Suppress all log output."`
}

// InspectCmd defines the inspect subcommand.
type InspectCmd struct {
	Path string `arg:"" help:"Path to an MP4 file to report on."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("ugoira2mp4"),
		kong.Description("Convert Pixiv ugoira animations into H.264 MP4 video."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		var uerr *ugoiraerr.Error
		if asUgoiraErr(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(uerr.ExitCode())
		}
		ctx.FatalIfErrorf(err)
	}
}

func asUgoiraErr(err error, out **ugoiraerr.Error) bool {
	if uerr, ok := err.(*ugoiraerr.Error); ok {
		*out = uerr
		return true
	}
	return false
}

// manifestEntry mirrors the JSON array of {"file", "delay"} objects the
// front end parses and hands to the conversion core as a frame.List.
type manifestEntry struct {
	File  string  `json:"file"`
	Delay float64 `json:"delay"`
}

// Run executes the convert subcommand.
func (cmd *ConvertCmd) Run() error {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return ugoiraerr.Newf(ugoiraerr.OpenFile, "loading config file: %v", err)
		}
		cfg = loaded
	}

	logLevel := cfg.LogLevel
	if cmd.LogLevel != nil {
		logLevel = *cmd.LogLevel
	}

	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(logLevel))
	}

	maxFPS := cfg.MaxFPS
	if cmd.MaxFPS != nil {
		maxFPS = *cmd.MaxFPS
	}

	opts := cfg.Options()
	if cmd.ForceYUV420P {
		opts["force_yuv420p"] = "1"
	}
	if cmd.CRF != nil {
		opts["crf"] = fmt.Sprintf("%d", *cmd.CRF)
	}
	if cmd.Preset != nil {
		opts["preset"] = *cmd.Preset
	}
	if cmd.Level != nil {
		opts["level"] = *cmd.Level
	}
	if cmd.Profile != nil {
		opts["profile"] = *cmd.Profile
	}

	metadata := cfg.MetadataMap()
	for _, kv := range cmd.Meta {
		if err := options.ParseMeta(metadata, kv); err != nil {
			return err
		}
	}

	manifestBytes, err := os.ReadFile(cmd.JSON)
	if err != nil {
		return ugoiraerr.Newf(ugoiraerr.JSONError, "reading manifest: %v", err)
	}
	var entries []manifestEntry
	if err := json.Unmarshal(manifestBytes, &entries); err != nil {
		return ugoiraerr.Newf(ugoiraerr.JSONError, "parsing manifest: %v", err)
	}

	var frames frame.List
	for _, e := range entries {
		frames, err = frames.Append(e.File, e.Delay)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	fs := osfilesystem.New()

	log.Info(l10n.F("Converting %s to %s", cmd.Input, cmd.Output))
	if err := convert.Convert(ctx, fs, log, cmd.Input, cmd.Output, frames, maxFPS, opts, metadata); err != nil {
		return err
	}
	log.Info(l10n.F("Output saved to %s", cmd.Output))
	return nil
}

// Run executes the inspect subcommand.
func (cmd *InspectCmd) Run() error {
	report, err := probe.Inspect(cmd.Path)
	if err != nil {
		return err
	}
	fmt.Println(report.String())
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("ugoira2mp4 version %s", version))
	return nil
}
