package command

import "flag"

// Command is one cssfix subcommand. Implementations register themselves
// with the global tree from init and receive parsed flags through the
// struct fields bound in Flags.
type Command interface {
	Name() string
	Aliases() []string
	Usage() string
	Brief() string
	Help() string
	Subcommands() []Command
	Flags(fs *flag.FlagSet)
	Run(ctx *Context) error
}

// Context carries the positional args and parsed flag set into Run.
type Context struct {
	Args  []string
	Flags *flag.FlagSet
}
