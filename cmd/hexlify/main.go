/*
Command hexlify converts bytes to uppercase hexadecimal text and back.

Usage:

	hexlify [-d] [-i] [-z codec] [-c config] [file]
	hexlify serve [-c config] [-listen addr]

Flag -d decodes: whitespace is skipped and any other non-hex character is an
error unless -i is given. Invoked as unhexlify, the command always decodes.
*/
package main

import (
	"os"

	"hexlify/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
