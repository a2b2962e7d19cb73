package main

import (
	"os"

	santactlcmd "github.com/santactl/santactl/pkg/santactl/cmd"
)

func main() {
	root := santactlcmd.NewRootCommand(santactlcmd.DefaultConfig())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
