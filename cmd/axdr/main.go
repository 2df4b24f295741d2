// Command axdr encodes and decodes A-XDR payloads described by schema
// documents.
//
// Usage:
//
//	axdr [--config FILE] [--log-level LEVEL] <command> [flags]
//
// Commands:
//
//	encode      encode a values document against a schema
//	decode      decode a payload and render it as yaml, json or cbor
//	varint      show or decode varint encodings
//	inspect     interactive payload browser
//	jsonschema  print the JSON Schema of schema documents
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
)

type app struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	getenv     func(string) string
	isTerminal func() bool
	log        *zap.Logger
	cfg        config
}

type command struct {
	run     func(a *app, args []string) error
	name    string
	summary string
}

var commands = []command{
	{name: "encode", summary: "encode a values document against a schema", run: (*app).encode},
	{name: "decode", summary: "decode a payload and render it", run: (*app).decode},
	{name: "varint", summary: "show or decode varint encodings", run: (*app).varint},
	{name: "inspect", summary: "interactive payload browser", run: (*app).inspect},
	{name: "jsonschema", summary: "print the JSON Schema of schema documents", run: (*app).jsonSchema},
}

func main() {
	a := &app{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		getenv:     os.Getenv,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
	}
	if err := a.run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(args []string) error {
	var (
		configPath string
		logLevel   string
	)
	fs := pflag.NewFlagSet("axdr", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.SetInterspersed(false)
	fs.StringVar(&configPath, "config", "", "TOML config file")
	fs.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.Usage = func() { a.usage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.applyEnv(a.getenv); err != nil {
		return err
	}
	a.cfg = cfg

	log, err := newLogger(cfg.LogLevel, a.stderr)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	a.log = log
	installLogger(log)

	rest := fs.Args()
	if len(rest) == 0 {
		a.usage(fs)
		return errors.New("no command given")
	}
	for _, cmd := range commands {
		if cmd.name == rest[0] {
			log.Debug("running command", zap.String("command", cmd.name), zap.Strings("args", rest[1:]))
			return cmd.run(a, rest[1:])
		}
	}
	return fmt.Errorf("unknown command %q", rest[0])
}

func (a *app) usage(fs *pflag.FlagSet) {
	fmt.Fprintln(a.stderr, "Usage: axdr [flags] <command> [command flags]")
	fmt.Fprintln(a.stderr, "\nCommands:")
	for _, cmd := range commands {
		fmt.Fprintf(a.stderr, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(a.stderr, "\nFlags:")
	fmt.Fprint(a.stderr, fs.FlagUsages())
}

// newFlagSet returns a flag set for a subcommand writing errors to stderr.
func (a *app) newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("axdr "+name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}
