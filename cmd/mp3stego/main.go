package main

import (
	"fmt"
	"os"

	"mp3stego/internal/cli"
	"mp3stego/internal/stegoerr"
)

// Exit code 1 marks a user/validation error (bad args, bad key, corrupt
// stream); 2 marks anything else the CLI did not anticipate.
const (
	exitUserError     = 1
	exitInternalError = 2
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if stegoerr.IsKnown(err) {
			os.Exit(exitUserError)
		}
		os.Exit(exitInternalError)
	}
}
