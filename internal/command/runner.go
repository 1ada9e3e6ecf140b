package command

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// RunCLI resolves args to a registered command, parses the command's
// flags and runs it. Every failure path prints a single Error line to
// stderr and exits 1; -h and --help print the command's own help.
func RunCLI(args []string) {
	node, remaining, err := ResolveCommand(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	cmd := node.Cmd

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.Flags(fs)
	if err := fs.Parse(remaining); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Printf("\033[90mUsage:\033[0m %s\n\n%s\n", cmd.Usage(), cmd.Help())
			return
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	ctx := &Context{
		Args:  fs.Args(),
		Flags: fs,
	}

	if err := cmd.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
