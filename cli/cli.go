package cli

import (
	"context"
	"iter"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ngen/cli/cmd"
	"github.com/ardnew/ngen/pkg"
)

// CLI is the top-level command-line interface for ngen.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Init    cmd.Init    `cmd:"" help:"Initialize configuration file"`
	Gen     cmd.Gen     `cmd:"" default:"withargs" help:"Generate a ninja build file from manifests"`
	Dump    cmd.Dump    `cmd:"" help:"Print the resolved manifest"`
	Escape  cmd.Escape  `cmd:"" help:"Escape strings for a ninja build file"`
	Watch   cmd.Watch   `cmd:"" help:"Regenerate a build file when its manifests change"`
	Version cmd.Version `cmd:"" help:"Print version information"`
}

// Run executes the ngen CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// TimeLayout and Caller are only known after parsing.
	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

func join(seq iter.Seq[string]) string {
	return strings.Join(slices.Collect(seq), ",")
}
