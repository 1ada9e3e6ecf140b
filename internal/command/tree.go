package command

import (
	"fmt"
)

// Node is one entry in the command tree. Aliases of a command share a
// single node, so subcommands are registered once per command.
type Node struct {
	Cmd         Command
	Subcommands map[string]*Node
}

// CommandTree resolves names and aliases to registered commands.
type CommandTree struct {
	root *Node
}

// NewTree creates a new empty command tree.
func NewTree() *CommandTree {
	return &CommandTree{
		root: &Node{Subcommands: make(map[string]*Node)},
	}
}

// Register inserts a command and all its subcommands recursively.
func (t *CommandTree) Register(cmd Command) {
	t.insert(t.root, cmd)
}

// Get returns a command by name or alias.
func (t *CommandTree) Get(name string) (Command, bool) {
	node, ok := t.root.Subcommands[name]
	if !ok {
		return nil, false
	}
	return node.Cmd, true
}

func (t *CommandTree) insert(node *Node, cmd Command) {
	sub := &Node{Cmd: cmd, Subcommands: make(map[string]*Node)}
	for _, subcmd := range cmd.Subcommands() {
		t.insert(sub, subcmd)
	}

	if node.Subcommands == nil {
		node.Subcommands = make(map[string]*Node)
	}
	node.Subcommands[cmd.Name()] = sub
	for _, alias := range cmd.Aliases() {
		node.Subcommands[alias] = sub
	}
}

// Resolve walks down the tree following args and returns the deepest
// command node plus the args left over for flag parsing.
func (t *CommandTree) Resolve(args []string) (*Node, []string, error) {
	node := t.root
	for len(args) > 0 {
		next, ok := node.Subcommands[args[0]]
		if !ok {
			break
		}
		node = next
		args = args[1:]
	}
	if node.Cmd == nil {
		if len(args) > 0 {
			return nil, nil, fmt.Errorf("unknown command %q (see 'cssfix help')", args[0])
		}
		return nil, nil, fmt.Errorf("no command provided")
	}
	return node, args, nil
}
