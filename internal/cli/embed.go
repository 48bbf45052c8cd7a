package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mp3stego/internal/codec"
	"mp3stego/internal/framer"
	"mp3stego/internal/stegoerr"
)

// DefineEmbedCommand builds the `embed` subcommand: embed a secret file into
// an MP3 cover and write the resulting stego file.
func DefineEmbedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "embed",
		Short:        "Embed a secret file inside an MP3 cover",
		SilenceUsage: true,
		RunE:         runEmbed,
	}

	cmd.Flags().String("cover", "", "path to the cover MP3 (required)")
	cmd.Flags().String("secret", "", "path to the secret file to hide (required)")
	cmd.Flags().String("output", "", "path to write the stego MP3 (required)")
	cmd.Flags().IntP("n", "n", 0, "LSB width, one of 1, 2, 3, 4 (required)")
	cmd.Flags().Bool("cipher", false, "encrypt the payload with the Vigenère cipher")
	cmd.Flags().Bool("random", false, "derive the start offset from the key instead of using 0")
	cmd.Flags().String("key", "", "key used for --cipher and/or --random")
	cmd.Flags().Bool("dry-run", false, "report projected bit usage and exit without writing output")

	for _, name := range []string{"cover", "secret", "output", "n"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runEmbed(cmd *cobra.Command, args []string) error {
	cover, _ := cmd.Flags().GetString("cover")
	secret, _ := cmd.Flags().GetString("secret")
	output, _ := cmd.Flags().GetString("output")
	k, _ := cmd.Flags().GetInt("n")
	useCipher, _ := cmd.Flags().GetBool("cipher")
	useRandom, _ := cmd.Flags().GetBool("random")
	key, _ := cmd.Flags().GetString("key")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	coverData, err := os.ReadFile(cover)
	if err != nil {
		return stegoerr.NewIoError(cover, err)
	}
	secretData, err := os.ReadFile(secret)
	if err != nil {
		return stegoerr.NewIoError(secret, err)
	}

	if dryRun {
		usable, bitCapacity, err := codec.Capacity(coverData, k)
		if err != nil {
			return err
		}
		need := framer.BitsNeeded(len(filepath.Base(secret)), len(secretData))
		fmt.Fprintf(cmd.OutOrStdout(), "usable positions: %d, capacity: %d bits, needed: %d bits, fits: %t\n",
			usable, bitCapacity, need, need <= bitCapacity)
		return nil
	}

	cfg := codec.EmbedConfig{K: k, Encrypt: useCipher, RandomPosition: useRandom, Key: key}

	secretName := filepath.Base(secret)
	stego, err := codec.Embed(coverData, secretName, secretData, cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, stego, 0o644); err != nil {
		return stegoerr.NewIoError(output, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "embedded %d bytes as %q into %s (k=%d)\n", len(secretData), secretName, output, k)
	return nil
}
