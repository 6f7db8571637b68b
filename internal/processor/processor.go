package processor

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/webfoundry/snapinline/internal/fetcher"
	"github.com/webfoundry/snapinline/internal/mediatype"
	"github.com/webfoundry/snapinline/internal/naming"
	"github.com/webfoundry/snapinline/internal/narrate"
	"github.com/webfoundry/snapinline/internal/record"
)

// unknownLabel stands in when an input path has no renderable file name.
const unknownLabel = "UnknownFile"

// Kind classifies the outcome of processing one file.
type Kind int

const (
	Success Kind = iota
	Skipped
	Failed
)

// Outcome is the result of processing exactly one input file. Every
// file produces exactly one Outcome.
type Outcome struct {
	Kind   Kind
	Label  string // display name of the input file
	Reason string // skip or failure detail, empty on success
}

func success(label string) Outcome {
	return Outcome{Kind: Success, Label: label}
}

func skipped(label, reason string) Outcome {
	return Outcome{Kind: Skipped, Label: label, Reason: reason}
}

func failed(label, reason string) Outcome {
	return Outcome{Kind: Failed, Label: label, Reason: reason}
}

// Processor runs the per-file pipeline: load, extract the screenshot
// URL, fetch, save the image, rewrite the record with a data URL, save
// the record. All fields are shared read-only across workers.
type Processor struct {
	Fetcher   *fetcher.Fetcher
	ImageDir  string
	Base64Dir string
	Sink      narrate.Sink
}

// Process runs one JSON file through the pipeline. Every per-file error
// is converted into a Failed outcome here; nothing propagates to the
// caller as an error or panic.
func (p *Processor) Process(jsonPath string) Outcome {
	label := filepath.Base(jsonPath)
	if label == "" || label == "." || label == string(filepath.Separator) {
		return failed(unknownLabel, fmt.Sprintf("could not get file name from path: %q", jsonPath))
	}

	p.Sink.Stepf("Processing file: %s", label)

	rec, err := record.Load(jsonPath)
	if err != nil {
		return failed(label, err.Error())
	}

	rawURL, ok := rec.ScreenshotURL()
	if !ok || rawURL == "" || rawURL == "null" {
		reason := fmt.Sprintf("no valid screenshot URL found in %s", label)
		p.Sink.Stepf("  [SKIP] %s", reason)
		return skipped(label, reason)
	}
	p.Sink.Stepf("  Screenshot URL: %s", rawURL)

	p.Sink.Stepf("  Downloading image from %s ...", rawURL)
	imageBytes, err := p.Fetcher.Fetch(rawURL)
	if err != nil {
		return failed(label, err.Error())
	}
	p.Sink.Stepf("  Download successful (%d bytes).", len(imageBytes))

	stem := strings.TrimSuffix(label, filepath.Ext(label))
	imageName, err := naming.Resolve(rawURL, stem, p.Sink.Warnf)
	if err != nil {
		return failed(label, err.Error())
	}
	p.Sink.Stepf("  Image will be saved as: %s", imageName)

	imagePath := filepath.Join(p.ImageDir, imageName)
	if err := os.WriteFile(imagePath, imageBytes, 0644); err != nil {
		return failed(label, fmt.Sprintf("failed to save image to %s: %v", imagePath, err))
	}
	p.Sink.Stepf("  Image saved to: %s", imagePath)

	mimeType := mediatype.Detect(imageBytes)
	p.Sink.Stepf("  Detected MIME type: %s", mimeType)

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageBytes))
	rec.SetScreenshot(dataURL)

	encoded, err := rec.EncodePretty()
	if err != nil {
		return failed(label, err.Error())
	}

	// The image written above stays on disk if this write fails; there
	// is no rollback for the orphaned image.
	recordPath := filepath.Join(p.Base64Dir, label)
	if err := os.WriteFile(recordPath, encoded, 0644); err != nil {
		return failed(label, fmt.Sprintf("failed to save base64 JSON to %s: %v", recordPath, err))
	}
	p.Sink.Stepf("  Base64 JSON saved to: %s", recordPath)

	return success(label)
}
