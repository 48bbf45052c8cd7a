package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mp3stego/internal/decoder"
	"mp3stego/internal/psnr"
	"mp3stego/internal/stegoerr"
	"mp3stego/internal/tags"
)

// DefineCompareCommand builds the `compare` subcommand: decode two MP3s to
// PCM and print their PSNR in dB, plus ID3v2 metadata for both with --tags.
func DefineCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "compare",
		Short:        "Print the PSNR in dB between an original and a modified MP3",
		SilenceUsage: true,
		RunE:         runCompare,
	}

	cmd.Flags().String("original", "", "path to the original MP3 (required)")
	cmd.Flags().String("modified", "", "path to the modified (stego) MP3 (required)")
	cmd.Flags().Bool("tags", false, "also print ID3v2 metadata for both files")

	for _, name := range []string{"original", "modified"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	originalPath, _ := cmd.Flags().GetString("original")
	modifiedPath, _ := cmd.Flags().GetString("modified")
	showTags, _ := cmd.Flags().GetBool("tags")

	originalData, err := os.ReadFile(originalPath)
	if err != nil {
		return stegoerr.NewIoError(originalPath, err)
	}
	modifiedData, err := os.ReadFile(modifiedPath)
	if err != nil {
		return stegoerr.NewIoError(modifiedPath, err)
	}

	originalPCM, err := decoder.DecodeMP3ToPCM(originalData)
	if err != nil {
		return fmt.Errorf("decode original: %w", err)
	}
	modifiedPCM, err := decoder.DecodeMP3ToPCM(modifiedData)
	if err != nil {
		return fmt.Errorf("decode modified: %w", err)
	}

	value, err := psnr.Compute(originalPCM.Samples, modifiedPCM.Samples, originalPCM.SampleRate, modifiedPCM.SampleRate)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "PSNR: %.2f dB\n", value)

	if showTags {
		printTagSummary(cmd, "original", originalData)
		printTagSummary(cmd, "modified", modifiedData)
	}

	return nil
}

func printTagSummary(cmd *cobra.Command, label string, data []byte) {
	summary, err := tags.Read(data)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not read %s tags: %v\n", label, err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: title=%q artist=%q album=%q year=%q\n",
		label, summary.Title, summary.Artist, summary.Album, summary.Year)
}
