// Command tmux-salah-times prints the next prayer for a tmux status line.
//
// It accepts the same flags as `salah-times next` and defaults to the
// name-and-time format, e.g. "Asr 15:02".
package main

import (
	"fmt"
	"os"

	"github.com/smokyabdulrahman/salah-times/internal/cli"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

func main() {
	rootCmd := cli.NewRootCmd(version)
	rootCmd.Use = "tmux-salah-times"
	rootCmd.SetVersionTemplate(cli.PrintVersion("tmux-salah-times", version))
	rootCmd.SetArgs(cli.TmuxArgs(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
