// Command tled is a modal terminal text editor scriptable in T-Lisp.
package main

import (
	"os"

	"src.tled.dev/pkg/buildinfo"
	"src.tled.dev/pkg/daemon"
	"src.tled.dev/pkg/edit"
	"src.tled.dev/pkg/lsp"
	"src.tled.dev/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			buildinfo.Program{}, daemon.Program{}, lsp.Program{}, edit.Program{})))
}
