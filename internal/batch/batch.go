package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/webfoundry/snapinline/internal/fetcher"
	"github.com/webfoundry/snapinline/internal/narrate"
	"github.com/webfoundry/snapinline/internal/processor"
)

// Config carries everything one batch run needs. All fields are
// read-only once the run starts.
type Config struct {
	InputDir    string
	ImageDir    string
	Base64Dir   string
	Concurrency int
	Progress    bool
	ReportPath  string
	Fetcher     *fetcher.Fetcher
}

// Tally aggregates per-file outcomes across all workers. Each counter
// is incremented exactly once per file.
type Tally struct {
	Succeeded atomic.Uint64
	Skipped   atomic.Uint64
	Failed    atomic.Uint64
}

// Count routes one outcome to its counter.
func (t *Tally) Count(o processor.Outcome) {
	switch o.Kind {
	case processor.Success:
		t.Succeeded.Add(1)
	case processor.Skipped:
		t.Skipped.Add(1)
	case processor.Failed:
		t.Failed.Add(1)
	}
}

// Report is the optional YAML run summary. It carries run-level
// aggregates only, never per-file detail.
type Report struct {
	InputDir  string `yaml:"input_dir"`
	Found     int    `yaml:"found"`
	Succeeded uint64 `yaml:"succeeded"`
	Skipped   uint64 `yaml:"skipped"`
	Failed    uint64 `yaml:"failed"`
	Duration  string `yaml:"duration"`
}

// DiscoverFiles lists the regular files with a .json extension directly
// inside dir. The extension match is case-sensitive and the order is
// whatever the directory listing yields.
func DiscoverFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// ProcessAll fans files out across cfg.Concurrency workers and returns
// the resulting tally. Skip and failure notices are emitted through the
// sink as they happen; interleaving across workers is unspecified.
func ProcessAll(cfg Config, files []string, sink narrate.Sink) *Tally {
	tally := &Tally{}
	proc := &processor.Processor{
		Fetcher:   cfg.Fetcher,
		ImageDir:  cfg.ImageDir,
		Base64Dir: cfg.Base64Dir,
		Sink:      sink,
	}

	jobs := make(chan string, len(files))
	var wg sync.WaitGroup
	for w := 0; w < cfg.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				outcome := proc.Process(path)
				tally.Count(outcome)
				switch outcome.Kind {
				case processor.Skipped:
					sink.Noticef("[SKIP] %s", outcome.Reason)
				case processor.Failed:
					sink.Noticef("[ERROR] File '%s': %s", outcome.Label, outcome.Reason)
				}
				sink.FileDone()
			}
		}()
	}

	for _, path := range files {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	return tally
}

// Run processes every .json file in cfg.InputDir and prints a summary.
// The returned error is non-nil when any file failed or when the
// optional report could not be written; per-file failures never abort
// the rest of the run.
func Run(cfg Config) error {
	files, err := DiscoverFiles(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No .json files found in the input directory: %s\n", cfg.InputDir)
		return nil
	}
	fmt.Printf("Found %d JSON file(s) to process.\n", len(files))

	var sink narrate.Sink
	if cfg.Progress {
		sink = narrate.NewProgress(len(files), os.Stderr)
	} else {
		sink = narrate.NewVerbose(os.Stdout, os.Stderr)
	}

	start := time.Now()
	tally := ProcessAll(cfg, files, sink)
	sink.Close()
	elapsed := time.Since(start)

	succeeded := tally.Succeeded.Load()
	skipped := tally.Skipped.Load()
	failed := tally.Failed.Load()

	fmt.Println("----------------------------------------")
	fmt.Println("Processing Summary:")
	fmt.Printf("Total JSON files found:  %d\n", len(files))
	fmt.Printf("Processed successfully:  %d\n", succeeded)
	fmt.Printf("Skipped (e.g., no URL):  %d\n", skipped)
	fmt.Printf("Failed to process:       %d\n", failed)
	fmt.Println("----------------------------------------")

	if cfg.ReportPath != "" {
		report := Report{
			InputDir:  cfg.InputDir,
			Found:     len(files),
			Succeeded: succeeded,
			Skipped:   skipped,
			Failed:    failed,
			Duration:  elapsed.Round(time.Millisecond).String(),
		}
		if err := writeReport(cfg.ReportPath, report); err != nil {
			return err
		}
		slog.Info("Wrote run report", "path", cfg.ReportPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to process", failed)
	}
	return nil
}

func writeReport(path string, report Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshalling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing run report to %s: %w", path, err)
	}
	return nil
}
