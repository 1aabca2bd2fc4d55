package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"ludus/config"
	"ludus/experiments"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type CLI struct {
	LogLevel string   `kong:"default='info',enum='trace,debug,info,warn,error',help='Log level'"`
	Run      RunCmd   `cmd:"" default:"withargs" help:"Play the tournament described by an HCL file"`
	Sweep    SweepCmd `cmd:"" help:"Play MaxN agents of several horizons against a heuristic baseline"`
}

type RunCmd struct {
	Config string `arg:"" optional:"" default:"tournament.hcl" help:"Tournament file, the built-in tournament is used if it does not exist"`
	Output string `kong:"help='Directory for CSV records, overrides the file'"`
}

func (c *RunCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Output != "" {
		cfg.Tournament.Output = c.Output
	}

	summary, err := experiments.New(cfg).Run()
	if err != nil {
		return err
	}
	printSummary(summary)
	return nil
}

type SweepCmd struct {
	Game     string `kong:"default='tictactoe',enum='tictactoe,race',help='Game to play'"`
	Horizons []int  `kong:"default='1,2,3,4',help='MaxN horizons to compare'"`
	Games    int    `kong:"default='10',help='Games per ordered pair of agents'"`
	Seed     int64  `kong:"default='1',help='Seed for agents and chance events (0 for random)'"`
	Goal     int    `kong:"default='20',help='Race target'"`
	Output   string `kong:"default='experiments',help='Directory for CSV records'"`
}

func (c *SweepCmd) Run() error {
	tournament := config.Tournament{
		Name:   c.Game,
		Game:   c.Game,
		Games:  c.Games,
		Seed:   c.Seed,
		Output: c.Output,
		Goal:   c.Goal,
	}
	cfg, err := experiments.HorizonSweep(tournament, c.Horizons, c.Seed)
	if err != nil {
		return err
	}

	summary, err := experiments.New(cfg, experiments.WithBaseline(experiments.BaselineName)).Run()
	if err != nil {
		return err
	}
	printSummary(summary)
	return nil
}

func printSummary(summary experiments.Summary) {
	names := make([]string, 0, len(summary.Stats))
	for name := range summary.Stats {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if d := summary.Points[b] - summary.Points[a]; d != 0 {
			if d > 0 {
				return 1
			}
			return -1
		}
		return strings.Compare(a, b)
	})

	fmt.Printf("%d matches, records in %s\n", summary.Matches, summary.Dir)
	for _, name := range names {
		stats := summary.Stats[name]
		fmt.Printf("%-16s %6.1f points %10.1f nodes/decision %12s/decision\n", name, summary.Points[name], stats.MeanNodes, stats.MeanDuration)
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("ludus"),
		kong.Description("Tournaments between heuristic game playing agents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	level, err := zerolog.ParseLevel(cli.LogLevel)
	ctx.FatalIfErrorf(err)
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
