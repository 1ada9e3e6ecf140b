package middleware

import (
	"fmt"

	"github.com/keshon/cssfix/internal/command"
	"github.com/keshon/cssfix/internal/config"
	"github.com/keshon/cssfix/internal/fs"
	"github.com/keshon/cssfix/internal/snapshot"
)

// WithSnapshotCheck is a middleware that verifies stored snapshots before
// the command runs, so a restore never starts from a damaged store.
func WithSnapshotCheck() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				root := config.ResolveProjectRoot()
				if root == "" {
					return cmd.Run(ctx)
				}

				store, err := snapshot.NewStore(config.ResolveStateRoot(root), fs.NewOSFS())
				if err != nil {
					return err
				}
				if err := store.VerifyAll(); err != nil {
					return fmt.Errorf(
						"snapshot verification failed: %v\nRun `cssfix verify` for details",
						err,
					)
				}
				return cmd.Run(ctx)
			},
		}
	}
}
