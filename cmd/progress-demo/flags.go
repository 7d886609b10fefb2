// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports -config, -delay, -steps, -ansi, -color, -verbose, -version

package main

import (
	"flag"
	"fmt"
	"io"
	"time"
)

type cliArgs struct {
	config  string
	delay   time.Duration
	steps   int
	ansi    string
	color   bool
	verbose bool
	version bool
	names   []string
}

func parseFlags(argv []string, errOut io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("progress-demo", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "usage: progress-demo [flags] [bar|percent|spinner ...]\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&args.config, "config", "", "YAML demo script (default ~/.termprogress/demo.yaml if present)")
	fs.DurationVar(&args.delay, "delay", 0, "Pause between updates, overrides the script")
	fs.IntVar(&args.steps, "steps", 0, "Number of updates per indicator, overrides the script")
	fs.StringVar(&args.ansi, "ansi", "auto", "Cursor control: auto (from TERM), on or off")
	fs.BoolVar(&args.color, "color", false, "Style labels with colour on ANSI terminals")
	fs.BoolVar(&args.verbose, "verbose", false, "Log diagnostics to stderr")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	switch args.ansi {
	case "auto", "on", "off":
	default:
		return cliArgs{}, fmt.Errorf("invalid -ansi value %q: want auto, on or off", args.ansi)
	}
	if args.delay < 0 || args.steps < 0 {
		return cliArgs{}, fmt.Errorf("-delay and -steps must not be negative")
	}
	args.names = fs.Args()
	return args, nil
}

// ansiMode maps the -ansi flag onto a capability override. ok is false
// for "auto", where TERM decides.
func (a cliArgs) ansiMode() (enabled, ok bool) {
	switch a.ansi {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return false, false
}
