// Package cli wires the cobra command tree exposed by the mp3stego binary.
package cli

import (
	"github.com/spf13/cobra"
)

// AppName is the program name shown in cobra's usage text.
const AppName = "mp3stego"

// Execute builds the root command and runs it against os.Args.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - MP3 least-significant-bit steganography codec",
	}

	rootCmd.AddCommand(DefineEmbedCommand())
	rootCmd.AddCommand(DefineExtractCommand())
	rootCmd.AddCommand(DefineCompareCommand())
	rootCmd.AddCommand(DefineServeCommand())

	return rootCmd.Execute()
}
