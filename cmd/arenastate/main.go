package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/NethermindEth/arenastate/pkg/arenastate/envfile"
	"github.com/NethermindEth/arenastate/pkg/arenastate/logging"
	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
)

type command struct {
	name    string
	summary string
	run     func(a *app, ctx context.Context, args []string) error
}

var commands = []command{
	{"template", "print the hardhat env template", (*app).template},
	{"check", "report the categories, placeholders and integrations of an env file", (*app).check},
	{"render", "print an env file in canonical form", (*app).render},
	{"subst", "substitute placeholders from the environment", (*app).subst},
	{"mode", "print whether the arena is in process or external", (*app).mode},
	{"keys", "resolve the credential references and print their addresses", (*app).keys},
	{"serve", "connect and serve the state api", (*app).serve},
	{"maptool", "commit parameters to the maptool and generate a map", (*app).maptool},
	{"metadata", "upload the game metadata for a generated map", (*app).metadata},
}

// app carries what the commands read from the process, so tests can swap it.
type app struct {
	stdout io.Writer
	stderr io.Writer
	env    envfile.Source
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdout: os.Stdout, stderr: os.Stderr, env: envfile.OSEnv{}}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		slog.Error("arenastate failed", "error", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	level, _ := a.env.Lookup(setup.EnvLogLevel)
	if err := logging.Setup(level, a.stderr); err != nil {
		_ = logging.Setup(setup.DefaultLogLevel, a.stderr)
		slog.Warn("ignoring log level", "error", err)
	}

	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		a.usage()
		return nil
	}

	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(a, ctx, args[1:])
		}
	}

	a.usage()
	return fmt.Errorf("unknown command %q", args[0])
}

func (a *app) usage() {
	fmt.Fprintln(a.stderr, "Usage: arenastate <command> [flags]")
	fmt.Fprintln(a.stderr)
	for _, cmd := range commands {
		fmt.Fprintf(a.stderr, "  %-10s %s\n", cmd.name, cmd.summary)
	}
}
