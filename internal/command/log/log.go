package log

import (
	"flag"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/keshon/cssfix/internal/command"
	"github.com/keshon/cssfix/internal/config"
	"github.com/keshon/cssfix/internal/fs"
	"github.com/keshon/cssfix/internal/middleware"
	"github.com/keshon/cssfix/internal/snapshot"
)

type Command struct {
	oneline bool
	limit   int
}

func (c *Command) Name() string      { return "log" }
func (c *Command) Aliases() []string { return []string{"history"} }
func (c *Command) Usage() string     { return "log [options]" }
func (c *Command) Brief() string     { return "Show cleaning run history (newest first)" }
func (c *Command) Help() string {
	return `Show recorded cleaning runs.

Options:
      --oneline   Show each run as a single line (hash + age + summary).
  -n <count>      Limit to the last N runs.

Usage:
  cssfix log [options]

Examples:
  cssfix log
  cssfix log --oneline -n 5`
}

func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.oneline, "oneline", false, "show each run on one line")
	fs.IntVar(&c.limit, "n", 0, "limit number of runs")
}

func (c *Command) Run(ctx *command.Context) error {
	root := config.ResolveProjectRoot()

	store, err := snapshot.NewStore(config.ResolveStateRoot(root), fs.NewOSFS())
	if err != nil {
		return err
	}

	runs, err := store.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	if c.limit > 0 && c.limit < len(runs) {
		runs = runs[:c.limit]
	}

	if c.oneline {
		for _, r := range runs {
			fmt.Printf("%s  %s  %s\n", shortHash(r.Hash), humanize.Time(r.Time()), r.Describe())
		}
	} else {
		for _, r := range runs {
			fmt.Printf("\033[90mRun:\033[0m    %s\n", r.Hash)
			fmt.Printf("\033[90mTarget:\033[0m %s\n", r.Target)
			fmt.Printf("\033[90mDate:\033[0m   %s (%s)\n",
				r.Time().Format("Mon Jan 2 15:04:05 2006"), humanize.Time(r.Time()))
			fmt.Printf("\033[90mSize:\033[0m   %s -> %s\n\n",
				humanize.Bytes(uint64(r.OriginalSize)), humanize.Bytes(uint64(r.CleanedSize)))

			fmt.Printf("    %s\n\n", r.Describe())
		}
	}

	fmt.Printf("Total runs: %d\n", len(runs))
	return nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
			middleware.WithTargetCheck(),
		),
	)
}
