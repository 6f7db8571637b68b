package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapinline",
		Short: "Inline remote screenshots into JSON records as base64 data URLs",
		Long: `Snapinline batch-processes a directory of JSON records that reference
remote screenshot images by URL.

For each record it downloads the referenced image, saves it to disk, sniffs the
media type from the image bytes, and rewrites the record's screenshot field into
an embedded base64 data URL, saving the rewritten record to a separate output
directory.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newProcessCmd(version))

	return cmd
}
