package middleware

import (
	"fmt"

	"github.com/keshon/cssfix/internal/command"
	"github.com/keshon/cssfix/internal/config"
)

// WithDebugArgsPrint is a middleware that prints command args in dev builds
func WithDebugArgsPrint() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				if config.IsDev {
					fmt.Printf("Args: %+v\n", ctx.Args)
				}
				return cmd.Run(ctx)
			},
		}
	}
}
