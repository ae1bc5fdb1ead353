// Command glbridge runs call scenarios through the bridge and records,
// inspects and replays what reaches the host.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/glbridge/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
