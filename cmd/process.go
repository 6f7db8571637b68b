package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/webfoundry/snapinline/internal/batch"
	"github.com/webfoundry/snapinline/internal/fetcher"
)

// Default names for the output subdirectories inside the input directory.
const (
	imageDirName  = "images"
	base64DirName = "base64"
)

const defaultConcurrency = 4

// newProcessCmd creates the process command, the main entry point for a batch run.
func newProcessCmd(version string) *cobra.Command {
	var inputDir string
	var imageOut string
	var base64Out string
	var reportPath string
	var concurrency int
	var progress bool

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Download referenced screenshots and rewrite records with data URLs",
		Long: `Process every .json file directly inside a directory.

Each record's screenshot URL is downloaded to the image output directory and the
record is rewritten with the image embedded as a base64 data URL into the base64
output directory, keeping the input file's name. Files without a usable
screenshot URL are skipped; per-file errors never stop the rest of the run.`,
		Example: `  # Process ./records with the default 4 workers
  snapinline process -d ./records

  # Custom output directories, 8 workers, progress bar
  snapinline process -d ./records --image-out ./img --base64-out ./out -c 8 --progress

  # Write a YAML run summary next to the outputs
  snapinline process -d ./records --report run-summary.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("concurrency") {
				if v := os.Getenv("SNAPINLINE_CONCURRENCY"); v != "" {
					n, err := strconv.Atoi(v)
					if err != nil {
						return fmt.Errorf("invalid SNAPINLINE_CONCURRENCY value %q: %w", v, err)
					}
					concurrency = n
				}
			}
			if concurrency < 1 {
				return fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
			}

			info, err := os.Stat(inputDir)
			if os.IsNotExist(err) {
				return fmt.Errorf("input directory does not exist: %s", inputDir)
			}
			if err != nil {
				return fmt.Errorf("checking input directory %s: %w", inputDir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("input path is not a directory: %s", inputDir)
			}
			absInput, err := filepath.Abs(inputDir)
			if err != nil {
				return fmt.Errorf("resolving input directory %s: %w", inputDir, err)
			}

			if imageOut == "" {
				imageOut = filepath.Join(absInput, imageDirName)
			}
			if base64Out == "" {
				base64Out = filepath.Join(absInput, base64DirName)
			}
			if err := os.MkdirAll(imageOut, 0755); err != nil {
				return fmt.Errorf("creating image output directory %s: %w", imageOut, err)
			}
			if err := os.MkdirAll(base64Out, 0755); err != nil {
				return fmt.Errorf("creating base64 output directory %s: %w", base64Out, err)
			}

			slog.Info("Starting screenshot processing",
				"version", version,
				"input", absInput,
				"image_out", imageOut,
				"base64_out", base64Out,
				"workers", concurrency)

			return batch.Run(batch.Config{
				InputDir:    absInput,
				ImageDir:    imageOut,
				Base64Dir:   base64Out,
				Concurrency: concurrency,
				Progress:    progress,
				ReportPath:  reportPath,
				Fetcher:     fetcher.New(version),
			})
		},
	}

	cmd.Flags().StringVarP(&inputDir, "directory", "d", "", "Directory containing the JSON files to process (required)")
	cmd.Flags().StringVar(&imageOut, "image-out", "", "Directory to save downloaded images (default: <directory>/images)")
	cmd.Flags().StringVar(&base64Out, "base64-out", "", "Directory to save rewritten JSON records (default: <directory>/base64)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", defaultConcurrency, "Number of concurrent workers (env: SNAPINLINE_CONCURRENCY)")
	cmd.Flags().BoolVar(&progress, "progress", false, "Display a progress bar instead of per-file narration")
	cmd.Flags().StringVar(&reportPath, "report", "", "Optional path for a YAML run summary")

	_ = cmd.MarkFlagRequired("directory")
	return cmd
}
