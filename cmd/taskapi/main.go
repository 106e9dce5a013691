// Command taskapi runs the task management API.
package main

import (
	"fmt"
	"os"

	"github.com/ncobase/taskapi/cmd/taskapi/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
