package status

import (
	"flag"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/keshon/cssfix/internal/cleaner"
	"github.com/keshon/cssfix/internal/command"
	"github.com/keshon/cssfix/internal/config"
	"github.com/keshon/cssfix/internal/fs"
	"github.com/keshon/cssfix/internal/middleware"
	"github.com/keshon/cssfix/internal/snapshot"
	"github.com/keshon/cssfix/internal/target"
)

type Command struct {
	short bool
}

func (c *Command) Name() string      { return "status" }
func (c *Command) Aliases() []string { return []string{"st"} }
func (c *Command) Usage() string     { return "status [options]" }
func (c *Command) Brief() string     { return "Show the state of the stylesheet and its snapshots" }
func (c *Command) Help() string {
	return `Show the state of the target stylesheet.

The file is memory-mapped and scanned without modifying it: size, null
byte count and the first occurrence of each corruption marker are
reported, along with the snapshot store summary.

Options:
  -s, --short   One-line machine-friendly output (clean|dirty + path).

Usage:
  cssfix status [options]

Examples:
  cssfix status
  cssfix status -s`
}

func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.short, "short", false, "one-line output")
	fs.BoolVar(&c.short, "s", false, "alias for --short")
}

func (c *Command) Run(ctx *command.Context) error {
	root := config.ResolveProjectRoot()
	fsys := fs.NewOSFS()

	tg := target.New(root, fsys)
	if !tg.Exists() {
		if c.short {
			fmt.Printf("missing %s\n", tg.Rel())
			return nil
		}
		fmt.Printf("\033[90mTarget:\033[0m %s\n", tg.Rel())
		fmt.Printf("\033[90mState:\033[0m  \033[31mmissing\033[0m\n")
		return nil
	}

	report, err := cleaner.Scan(tg.Path)
	if err != nil {
		return fmt.Errorf("scan %s: %w", tg.Rel(), err)
	}

	if c.short {
		state := "clean"
		if report.Dirty() {
			state = "dirty"
		}
		fmt.Printf("%s %s\n", state, tg.Rel())
		return nil
	}

	fmt.Printf("\033[90mTarget:\033[0m  %s\n", tg.Rel())
	fmt.Printf("\033[90mSize:\033[0m    %s\n", humanize.Bytes(uint64(report.Size)))
	fmt.Printf("\033[90mNulls:\033[0m   %d\n", report.Nulls)
	fmt.Printf("\033[90mMarkers:\033[0m %s\n", describeMarkers(report))

	if report.Dirty() {
		fmt.Printf("\033[90mState:\033[0m   \033[33mneeds cleaning\033[0m\n")
	} else {
		fmt.Printf("\033[90mState:\033[0m   \033[32mclean\033[0m\n")
	}

	store, err := snapshot.NewStore(config.ResolveStateRoot(root), fsys)
	if err != nil {
		return err
	}

	hashes, err := store.ListObjects()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("\033[90mSnapshots:\033[0m %d\n", len(hashes))

	if latest, ok, err := store.LatestRun(); err == nil && ok {
		fmt.Printf("\033[90mLast run:\033[0m  %s (%s)\n",
			humanize.Time(latest.Time()), shortHash(latest.Hash))
	} else if err != nil {
		return err
	}

	return nil
}

func describeMarkers(r cleaner.ScanReport) string {
	var parts []string
	if r.BraceStarAt >= 0 {
		parts = append(parts, fmt.Sprintf("%q at byte %d", cleaner.MarkerBraceStar, r.BraceStarAt))
	}
	if r.OutlineAt >= 0 {
		parts = append(parts, fmt.Sprintf("%q at byte %d", cleaner.MarkerOutline, r.OutlineAt))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
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
