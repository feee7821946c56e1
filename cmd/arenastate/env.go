package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/NethermindEth/arenastate/pkg/arenastate/chain"
	"github.com/NethermindEth/arenastate/pkg/arenastate/envfile"
	"github.com/NethermindEth/arenastate/pkg/arenastate/sealing"
	"github.com/NethermindEth/arenastate/pkg/arenastate/setup"
	"github.com/NethermindEth/arenastate/pkg/arenastate/wallet"
)

var errCheckFailed = errors.New("env check failed")

func (a *app) template(ctx context.Context, args []string) error {
	fs := a.flagSet("template")
	output := fs.StringP("output", "o", "", "write to a file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(setup.Template()), 0644)
	}
	_, err := io.WriteString(a.stdout, setup.Template())
	return err
}

func (a *app) render(ctx context.Context, args []string) error {
	fs := a.flagSet("render")
	envFile := fs.StringP("env-file", "f", "", "env file to render")
	redact := fs.Bool("redact", false, "mask credential values")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := fileArg(fs, envFile); err != nil {
		return err
	}

	surface, err := envfile.ParseFile(*envFile)
	if err != nil {
		return err
	}
	if *redact {
		surface = surface.Redacted()
	}

	_, err = surface.WriteTo(a.stdout)
	return err
}

func (a *app) check(ctx context.Context, args []string) error {
	fs := a.flagSet("check")
	envFile := fs.StringP("env-file", "f", "", "env file to check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := fileArg(fs, envFile); err != nil {
		return err
	}

	surface, err := envfile.ParseFile(*envFile)
	if err != nil {
		return err
	}

	substituted, report, err := surface.Substitute(a.env, envfile.PolicyKeep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, v := range substituted.Redacted().Variables() {
		state := "set"
		if v.Value == "" {
			state = "empty"
		} else if _, ok := envfile.IsPlaceholder(v.Value); ok {
			state = "placeholder"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Name, envfile.Categorize(v), state, v.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.stdout)
	for _, name := range report.Resolved {
		fmt.Fprintf(a.stdout, "substituted %s\n", name)
	}
	for _, name := range report.Unresolved {
		fmt.Fprintf(a.stdout, "unresolved %s\n", name)
	}

	src := envfile.Layered{a.env, substituted}
	for _, g := range []struct {
		name  string
		group setup.Group
	}{
		{"openai", setup.OpenAiGroup},
		{"nftstorage", setup.NftStorageGroup},
		{"maptool", setup.MaptoolGroup},
	} {
		if unusable := g.group.Unusable(src); len(unusable) > 0 {
			fmt.Fprintf(a.stdout, "%s not configured, missing %v\n", g.name, unusable)
		} else {
			fmt.Fprintf(a.stdout, "%s configured\n", g.name)
		}
	}

	config, err := setup.NewConfig(src)
	if err != nil {
		fmt.Fprintf(a.stdout, "invalid: %v\n", err)
		return errCheckFailed
	}
	fmt.Fprintf(a.stdout, "mode %s\n", config.Mode())

	return nil
}

func (a *app) subst(ctx context.Context, args []string) error {
	fs := a.flagSet("subst")
	flags := a.addSetupFlags(fs)
	output := fs.StringP("output", "o", "", "write to a file instead of stdout")
	seal := fs.Bool("seal", false, "seal the output file with a key from the tappd endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := fileArg(fs, &flags.envFile); err != nil {
		return err
	}
	if *seal && *output == "" {
		return errors.New("--seal requires --output")
	}

	policy, err := envfile.ParsePolicy(flags.policy)
	if err != nil {
		return err
	}

	surface, err := envfile.ParseFile(flags.envFile)
	if err != nil {
		return err
	}

	substituted, report, err := surface.Substitute(a.env, policy)
	if err != nil {
		return err
	}
	if len(report.Unresolved) > 0 {
		slog.Warn("placeholders left unresolved", "names", report.Unresolved)
	}

	data := []byte(substituted.String())
	switch {
	case *seal:
		return sealing.WriteSealedFile(ctx, flags.tappdEndpoint, *output, data)
	case *output != "":
		return os.WriteFile(*output, data, 0600)
	}
	_, err = a.stdout.Write(data)
	return err
}

func (a *app) mode(ctx context.Context, args []string) error {
	fs := a.flagSet("mode")
	flags := a.addSetupFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.load(ctx, flags)
	if err != nil {
		return err
	}

	config := result.Config
	fmt.Fprintln(a.stdout, config.Mode())
	if config.Mode() == setup.ModeExternal {
		fmt.Fprintf(a.stdout, "arena %s\nprovider %s\n", config.Arena.Hex(), config.ProviderUrl)
	}
	return nil
}

func (a *app) keys(ctx context.Context, args []string) error {
	fs := a.flagSet("keys")
	flags := a.addSetupFlags(fs)
	derive := fs.Bool("arena", false, "also print the arena address, deriving it from the deploy key when not configured")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.load(ctx, flags)
	if err != nil {
		return err
	}

	keys, err := wallet.NewResolver().ResolveAll(ctx, result.Config.Keys)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, role := range setup.Roles() {
		key, ok := keys[role]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", role, key.Address().Hex(), wallet.Redact(key.Reference()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !*derive {
		return nil
	}

	arena, err := chain.LocateArena(result.Config, keys)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "arena %s\n", arena.Hex())
	return nil
}
