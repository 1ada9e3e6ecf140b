package verify

import (
	"flag"
	"fmt"
	"time"

	"github.com/keshon/cssfix/internal/command"
	"github.com/keshon/cssfix/internal/config"
	"github.com/keshon/cssfix/internal/fs"
	"github.com/keshon/cssfix/internal/middleware"
	"github.com/keshon/cssfix/internal/snapshot"
	"github.com/keshon/cssfix/internal/util"
)

type Command struct{}

func (c *Command) Name() string      { return "verify" }
func (c *Command) Aliases() []string { return []string{"check"} }
func (c *Command) Usage() string     { return "verify" }
func (c *Command) Brief() string     { return "Verify snapshot store integrity" }
func (c *Command) Help() string {
	return `Verify stored snapshots.

Every snapshot is decompressed and re-hashed against its name. Run
records are cross-checked so a record pointing at a deleted snapshot is
reported too.

Usage:
  cssfix verify`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	root := config.ResolveProjectRoot()

	store, err := snapshot.NewStore(config.ResolveStateRoot(root), fs.NewOSFS())
	if err != nil {
		return err
	}

	hashes, err := store.ListObjects()
	if err != nil {
		return err
	}
	if len(hashes) == 0 {
		fmt.Println("No snapshots stored.")
		return nil
	}

	fmt.Print("\033[90mLegend:\033[0m \033[32m█\033[0m OK   \033[31m█\033[0m Missing   \033[33m█\033[0m Damaged\n\n")

	start := time.Now()
	count, okCount, missingCount, damagedCount := 0, 0, 0, 0

	for check := range store.Verify(hashes, 0) {
		switch check.Status {
		case snapshot.OK:
			fmt.Print("\033[32m█\033[0m")
			okCount++
		case snapshot.Missing:
			fmt.Print("\033[31m█\033[0m")
			missingCount++
		case snapshot.Damaged:
			fmt.Print("\033[33m█\033[0m")
			damagedCount++
		}
		count++
		if count%100 == 0 {
			fmt.Printf("  %d\n", count)
		}
	}
	if count%100 != 0 {
		fmt.Printf("  %d\n", count)
	}

	fmt.Printf("\nScan complete in %s.\n", time.Since(start).Truncate(time.Millisecond))
	fmt.Printf("Snapshots OK: \033[32m%d\033[0m   Missing: \033[31m%d\033[0m   Damaged: \033[33m%d\033[0m\n",
		okCount, missingCount, damagedCount)

	// Run records pointing at objects that no longer exist
	runFiles, err := store.RunFiles()
	if err != nil {
		return err
	}
	orphans := 0
	for _, hash := range util.SortedKeys(runFiles) {
		if !runFiles[hash] {
			if orphans == 0 {
				fmt.Println()
			}
			fmt.Printf("\033[33mRun %s has no snapshot object\033[0m\n", hash)
			orphans++
		}
	}

	if missingCount+damagedCount > 0 {
		fmt.Println("\nSome snapshots are unusable; those restore points are lost.")
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
