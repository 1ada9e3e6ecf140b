package restore

import (
	"flag"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/keshon/cssfix/internal/command"
	"github.com/keshon/cssfix/internal/config"
	"github.com/keshon/cssfix/internal/fs"
	"github.com/keshon/cssfix/internal/middleware"
	"github.com/keshon/cssfix/internal/snapshot"
	"github.com/keshon/cssfix/internal/target"
)

type Command struct{}

func (c *Command) Name() string      { return "restore" }
func (c *Command) Aliases() []string { return []string{"rollback"} }
func (c *Command) Usage() string     { return "restore [snapshot]" }
func (c *Command) Brief() string     { return "Restore the stylesheet from a snapshot" }
func (c *Command) Help() string {
	return `Restore the target stylesheet from a stored snapshot.

Without arguments the snapshot of the most recent cleaning run is
restored. A snapshot can also be addressed by any unique prefix of its
hash, as listed by 'cssfix log'.

Usage:
  cssfix restore [snapshot]

Examples:
  cssfix restore
  cssfix restore a1b2c3d4`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	root := config.ResolveProjectRoot()
	fsys := fs.NewOSFS()

	store, err := snapshot.NewStore(config.ResolveStateRoot(root), fsys)
	if err != nil {
		return err
	}

	var hash string
	if len(ctx.Args) > 0 {
		hash, err = store.ResolveByPrefix(ctx.Args[0])
		if err != nil {
			return err
		}
	} else {
		latest, ok, err := store.LatestRun()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no runs recorded, nothing to restore")
		}
		hash = latest.Hash
	}

	data, err := store.Load(hash)
	if err != nil {
		return err
	}

	tg := target.New(root, fsys)
	if err := tg.Replace(data); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Printf("Restored %s from snapshot %s (%s)\n",
		tg.Rel(), shortHash(hash), humanize.Bytes(uint64(len(data))))
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
			middleware.WithSnapshotCheck(),
		),
	)
}
