// Command fleetctl runs the fleet controller daemon and provides read-only
// inspection and out-of-band operational subcommands around it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
