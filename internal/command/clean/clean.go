package clean

import (
	"flag"
	"fmt"
	"time"

	"github.com/keshon/cssfix/internal/cleaner"
	"github.com/keshon/cssfix/internal/command"
	"github.com/keshon/cssfix/internal/config"
	"github.com/keshon/cssfix/internal/fs"
	"github.com/keshon/cssfix/internal/middleware"
	"github.com/keshon/cssfix/internal/snapshot"
	"github.com/keshon/cssfix/internal/target"
)

type Command struct {
	quiet bool
}

func (c *Command) Name() string      { return "clean" }
func (c *Command) Aliases() []string { return []string{"fix"} }
func (c *Command) Usage() string     { return "clean [options]" }
func (c *Command) Brief() string     { return "Strip null bytes and trailing garbage from the stylesheet" }
func (c *Command) Help() string {
	return `Clean the target stylesheet.

Null bytes are removed first, then the content is cut at the first
corruption marker: a "}*" match keeps everything before it and restores
the closing brace, a "* { outline" match keeps the bare prefix. The
brace-star marker wins when both are present.

A compressed snapshot of the original content is stored before the file
is rewritten, so any run can be undone with 'cssfix restore'.

Options:
  -q, --quiet   Suppress normal output.

Usage:
  cssfix clean [options]

Examples:
  cssfix
  cssfix clean
  cssfix clean -q`
}

func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.quiet, "quiet", false, "suppress normal output")
	fs.BoolVar(&c.quiet, "q", false, "alias for --quiet")
}

func (c *Command) Run(ctx *command.Context) error {
	root := config.ResolveProjectRoot()
	fsys := fs.NewOSFS()

	tg := target.New(root, fsys)
	_ = tg.CleanupTemp()

	content, err := tg.Load()
	if err != nil {
		return err
	}

	store, err := snapshot.NewStore(config.ResolveStateRoot(root), fsys)
	if err != nil {
		return err
	}
	_ = store.CleanupTemp()

	// Snapshot the original before rewriting anything
	hash, _, err := store.Save(content)
	if err != nil {
		return fmt.Errorf("snapshot before clean: %w", err)
	}

	cleaned, res := cleaner.Clean(content)

	if err := tg.Replace(cleaned); err != nil {
		return err
	}

	run := snapshot.Run{
		Hash:         hash,
		Target:       tg.Rel(),
		Timestamp:    time.Now().Format(time.RFC3339),
		OriginalSize: int64(len(content)),
		CleanedSize:  int64(len(cleaned)),
		NullsRemoved: res.NullsRemoved,
		Marker:       res.Marker,
		TrimmedBytes: res.TrimmedBytes,
		Changed:      res.Changed,
	}
	if err := store.WriteRun(run); err != nil {
		return err
	}

	if !c.quiet {
		fmt.Printf("Successfully cleaned %s (%s)\n", tg.Rel(), run.Describe())
	}
	return nil
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
