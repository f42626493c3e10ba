// Command circegen reads a Scala case class declaration from stdin and writes
// a companion object with circe Encoder and Decoder instances to stdout.
package main

import (
	"os"

	"github.com/roach88/circegen/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
