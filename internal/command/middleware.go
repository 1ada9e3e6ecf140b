package command

// Middleware wraps a command with a pre-run step.
type Middleware func(Command) Command

// WrappedCommand delegates everything to the embedded Command except
// Run, which goes through Wrap when set.
type WrappedCommand struct {
	Command
	Wrap func(ctx *Context) error
}

// Run executes the wrapped command.
func (w *WrappedCommand) Run(ctx *Context) error {
	if w.Wrap != nil {
		return w.Wrap(ctx)
	}
	return w.Command.Run(ctx)
}

// ApplyMiddlewares wraps a command with any number of middlewares. The
// last middleware listed becomes the outermost wrapper.
func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}
