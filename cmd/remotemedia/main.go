// Command remotemedia inspects variation documents and renders delivery URLs
// without talking to the remote service.
package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-remote-media/cmd/remotemedia/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "remotemedia: %v\n", err)
		os.Exit(1)
	}
}
