// ABOUTME: CLI entry point for progress-demo with terminal crash recovery
// ABOUTME: Parses flags, loads the demo script and runs the selected indicators

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mauromedda/termprogress/internal/config"
	"github.com/mauromedda/termprogress/internal/log"
	"github.com/mauromedda/termprogress/pkg/progress"
	"github.com/mauromedda/termprogress/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("progress-demo %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, args, terminal.NewProcessTerminal())
	stop()

	switch {
	case errors.Is(err, context.Canceled):
		os.Exit(130)
	case err != nil:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the script, applies flag overrides and runs the demo on out.
func run(ctx context.Context, args cliArgs, out *terminal.ProcessTerminal) error {
	defer terminal.RestoreOnPanic(out)

	if args.verbose {
		log.SetLevel(log.LevelDebug)
	}

	script, err := config.Load(args.config)
	if err != nil {
		return err
	}
	applyOverrides(script, args)

	names, err := selectIndicators(args.names)
	if err != nil {
		return err
	}

	cols := 0
	if out.IsTerminal() {
		if w, _, err := out.Size(); err == nil {
			cols = w
		} else {
			log.Debug("demo: %v", err)
		}
	}

	d := newDemo(out, script, args, cols)
	return d.run(ctx, names)
}

func applyOverrides(s *config.Script, args cliArgs) {
	if args.delay > 0 {
		s.Delay = args.delay
	}
	if args.steps > 0 {
		s.Steps = args.steps
	}
}

func newDemo(out terminal.Terminal, script *config.Script, args cliArgs, cols int) *demo {
	opts := []progress.Option{progress.WithOutput(out), progress.WithRate(script.Rate)}

	ansi, forced := args.ansiMode()
	if forced {
		opts = append(opts, progress.WithANSI(ansi))
	} else {
		ansi = progress.DetectANSI(os.LookupEnv)
	}
	log.Debug("demo: ansi=%v cols=%d steps=%d delay=%v", ansi, cols, script.Steps, script.Delay)

	return &demo{
		out:    out,
		script: script,
		opts:   opts,
		styles: newLabelStyles(out, args.color && ansi),
		cols:   cols,
		sleep:  sleepContext,
	}
}
