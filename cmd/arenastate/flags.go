package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/NethermindEth/arenastate/pkg/arenastate/envfile"
	"github.com/NethermindEth/arenastate/pkg/arenastate/logging"
	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
)

func (a *app) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("arenastate "+name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// envDefault is the flag default taken from the environment.
func (a *app) envDefault(name, def string) string {
	if v, ok := a.env.Lookup(name); ok && v != "" {
		return v
	}
	return def
}

type setupFlags struct {
	envFile       string
	sealedFile    string
	tappdEndpoint string
	policy        string
}

func (a *app) addSetupFlags(fs *pflag.FlagSet) *setupFlags {
	f := &setupFlags{}
	fs.StringVarP(&f.envFile, "env-file", "f", a.envDefault(setup.EnvDotenvFile, ""), "instantiated env file, otherwise the process environment")
	fs.StringVar(&f.sealedFile, "sealed-file", "", "sealed env file written by subst --seal")
	fs.StringVar(&f.tappdEndpoint, "tappd-endpoint", a.envDefault(setup.EnvDstackTappdEndpoint, ""), "dstack tappd endpoint")
	fs.StringVar(&f.policy, "policy", "keep", "unbound placeholders: keep, strict or empty")
	return f
}

// load runs setup and resets the log level to the configured one.
func (a *app) load(ctx context.Context, f *setupFlags) (*setup.SetupResult, error) {
	policy, err := envfile.ParsePolicy(f.policy)
	if err != nil {
		return nil, err
	}

	result, err := setup.Setup(ctx, setup.SetupOptions{
		EnvFile:             f.envFile,
		SealedFile:          f.sealedFile,
		DstackTappdEndpoint: f.tappdEndpoint,
		Bindings:            a.env,
		Policy:              policy,
	})
	if err != nil {
		return nil, err
	}

	if err := logging.Setup(result.Config.LogLevel, a.stderr); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return result, nil
}

// fileArg lets the env file be given as the only positional argument.
func fileArg(fs *pflag.FlagSet, path *string) error {
	switch fs.NArg() {
	case 0:
	case 1:
		*path = fs.Arg(0)
	default:
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	if *path == "" {
		return fmt.Errorf("an env file is required")
	}
	return nil
}
