package middleware

import (
	"fmt"

	"github.com/keshon/cssfix/internal/command"
	"github.com/keshon/cssfix/internal/config"
)

// WithTargetCheck is a middleware that refuses to run unless a project
// containing the target stylesheet (or existing cssfix state) is found in
// the current directory or one of its parents.
func WithTargetCheck() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				if config.ResolveProjectRoot() == "" {
					return fmt.Errorf(
						"no project found: %s not located in this or any parent directory",
						config.TargetFile,
					)
				}
				return cmd.Run(ctx)
			},
		}
	}
}
