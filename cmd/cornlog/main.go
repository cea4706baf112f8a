// Command cornlog logs a single colored message from the command line.
//
//	cornlog -c SYSTEM -l info -m "Avvio completato"
package main

import (
	"os"

	"github.com/hyp3rd/cornlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
