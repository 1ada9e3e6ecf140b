package main

import (
	"os"

	"github.com/keshon/cssfix/internal/command"

	_ "github.com/keshon/cssfix/internal/command/clean"
	_ "github.com/keshon/cssfix/internal/command/help"
	_ "github.com/keshon/cssfix/internal/command/log"
	_ "github.com/keshon/cssfix/internal/command/restore"
	_ "github.com/keshon/cssfix/internal/command/status"
	_ "github.com/keshon/cssfix/internal/command/verify"
)

func main() {
	args := os.Args[1:]

	// Running with no arguments cleans the stylesheet
	if len(args) == 0 {
		args = []string{"clean"}
	}

	command.RunCLI(args)
}
