// Package main provides the CLI entrypoint for xsd-binder.
//
// xsd-binder loads an XML Schema together with everything it imports or
// includes, builds the resolved type model, and exports it per namespace:
//
//	xsd-binder convert [flags] <url>   write one YAML/JSON file per namespace
//	xsd-binder dump [flags] <url>      print the exported model
//	xsd-binder serve [flags] <url>     serve the exported model over HTTP
//
// Settings come from -config, then XSD_BINDER_* variables, then flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"xsd-binder/internal/config"
)

const usage = `Usage: xsd-binder <command> [flags] <url>

Commands:
  convert   write one file per namespace into the output directory
  dump      print the exported model
  serve     serve the exported model over HTTP

Run "xsd-binder <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var cmd func(context.Context, *invocation) error

	switch args[0] {
	case "convert":
		cmd = runConvert
	case "dump":
		cmd = runDump
	case "serve":
		cmd = runServe
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "xsd-binder: unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	inv, err := parseInvocation(args[0], args[1:], stdout, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	if err != nil {
		fmt.Fprintf(stderr, "xsd-binder %s: %v\n", args[0], err)
		return 2
	}

	if err := cmd(ctx, inv); err != nil {
		fmt.Fprintf(stderr, "xsd-binder %s: %v\n", args[0], err)
		return 1
	}

	return 0
}

// invocation is a parsed command line.
type invocation struct {
	cfg    *config.Config
	url    string
	stdout io.Writer
	stderr io.Writer
}

// parseInvocation parses the flags of a command. Flags given explicitly
// override the config file and the environment.
func parseInvocation(name string, args []string, stdout, stderr io.Writer) (*invocation, error) {
	fs := flag.NewFlagSet("xsd-binder "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  = fs.String("config", "", "path to a YAML config file")
		allowLocal  = fs.Bool("allow-local", false, "allow loading schemas from the local filesystem")
		forceHost   = fs.String("force-host", "", "send every remote request to this host")
		forcePort   = fs.Int("force-port", 0, "port used with -force-host")
		cacheDir    = fs.String("cache-dir", "", "cache fetched documents in this directory")
		concurrency = fs.Int("concurrency", 0, "simultaneous fetches")
		timeout     = fs.Duration("timeout", 0, "timeout of one fetch")
		duplicates  = fs.String("duplicates", "", "duplicate declarations: overwrite, warn or reject")
		builtins    = fs.Bool("builtins", false, "also export the xs: and xml: namespaces")
		outDir      = fs.String("out", "", "output directory (convert)")
		format      = fs.String("format", "", "output format: yaml or json")
		listen      = fs.String("listen", "", "listen address (serve)")
		logLevel    = fs.String("log-level", "", "debug, info, warn or error")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("exactly one schema URL is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "allow-local":
			cfg.AllowLocal = *allowLocal
		case "force-host":
			cfg.ForceHost = *forceHost
		case "force-port":
			cfg.ForcePort = *forcePort
		case "cache-dir":
			cfg.CacheDir = *cacheDir
		case "concurrency":
			cfg.Concurrency = *concurrency
		case "timeout":
			cfg.Timeout = *timeout
		case "duplicates":
			cfg.Duplicates = *duplicates
		case "builtins":
			cfg.IncludeBuiltins = *builtins
		case "out":
			cfg.OutDir = *outDir
		case "format":
			cfg.Format = *format
		case "listen":
			cfg.Listen = *listen
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &invocation{
		cfg:    cfg,
		url:    fs.Arg(0),
		stdout: stdout,
		stderr: stderr,
	}, nil
}

const shutdownTimeout = 10 * time.Second
