// Command stilbar is the StilBAR conversion command line client.
package main

import (
	"os"

	"github.com/turtacn/stilbar/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
