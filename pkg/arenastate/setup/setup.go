package setup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NethermindEth/arenastate/pkg/arenastate/debug"
	"github.com/NethermindEth/arenastate/pkg/arenastate/envfile"
	"github.com/NethermindEth/arenastate/pkg/arenastate/sealing"
)

type SetupOptions struct {
	// EnvFile is an instantiated copy of the template. Empty means the
	// process environment alone, unless ARENASTATE_DOTENV_FILE names one.
	EnvFile string
	// SealedFile is read through the sealing package instead of EnvFile.
	SealedFile          string
	DstackTappdEndpoint string
	// Bindings resolve placeholders and take precedence over the file, as a
	// dotenv loader never overrides variables already in the environment.
	// Defaults to the process environment.
	Bindings envfile.Source
	Policy   envfile.Policy
}

type SetupResult struct {
	Config *Config
	// Surface is the substituted env file, or the known variables found in
	// the bindings when there is no file.
	Surface *envfile.Surface
	Report  *envfile.SubstReport
}

func Setup(ctx context.Context, opts SetupOptions) (*SetupResult, error) {
	bindings := opts.Bindings
	if bindings == nil {
		bindings = envfile.OSEnv{}
	}

	if opts.EnvFile == "" && opts.SealedFile == "" {
		if path, ok := bindings.Lookup(EnvDotenvFile); ok && path != "" {
			opts.EnvFile = path
		}
	}

	surface, err := loadSurface(ctx, opts, bindings)
	if err != nil {
		return nil, err
	}

	substituted, report, err := surface.Substitute(bindings, opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("failed to substitute env: %w", err)
	}
	if len(report.Unresolved) > 0 {
		slog.Warn("placeholders left unresolved", "names", report.Unresolved)
	}

	config, err := NewConfig(envfile.Layered{bindings, substituted})
	if err != nil {
		return nil, fmt.Errorf("failed to get config from env: %w", err)
	}

	slog.Info("configuration loaded", "mode", config.Mode().String(), "provider", config.ProviderUrl)

	if debug.IsDebugShowConfig() {
		slog.Info("configuration", "env", substituted.Redacted().String())
	}

	return &SetupResult{
		Config:  config,
		Surface: substituted,
		Report:  report,
	}, nil
}

func loadSurface(ctx context.Context, opts SetupOptions, bindings envfile.Source) (*envfile.Surface, error) {
	switch {
	case opts.SealedFile != "":
		data, err := sealing.NewSealer(opts.DstackTappdEndpoint).ReadFile(ctx, opts.SealedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read sealed env: %w", err)
		}
		s, err := envfile.ParseString(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse sealed env: %w", err)
		}
		return s, nil

	case opts.EnvFile != "":
		return envfile.ParseFile(opts.EnvFile)
	}

	s := envfile.NewSurface()
	for _, name := range KnownNames() {
		if v, ok := bindings.Lookup(name); ok {
			if err := s.Set(name, v); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
