// =============================================================================
// ublkit - Batch Converter
// =============================================================================
//
// Discovers XML files in an input directory (non-recursive, fixed .xml
// filter), fans per-file conversions out across a bounded worker pool and
// aggregates a ProcessingSummary.
//
// CONCURRENCY:
//   processing.max_workers goroutines consume a job channel; each worker owns
//   its file end-to-end (parse, flatten, serialize, write). The only shared
//   point is the buffered result channel drained by a single collector, so no
//   locks are needed. One file's failure never aborts the batch; only
//   configuration-level or directory-level errors are fatal.
//
//   No cancellation or per-file timeout exists: a pathological input blocks
//   its worker until it finishes. Known limitation.
//
// DRY RUN:
//   Honored only when features.enable_dry_run is true. Each file is parsed
//   to confirm it is readable, well-formed UBL XML; the summary reports what
//   would have been written, and neither output files nor the summary file
//   are created.
//
// =============================================================================

package converter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sherozshaikh/ublkit/internal/config"
	"github.com/sherozshaikh/ublkit/internal/types"
	"github.com/sherozshaikh/ublkit/internal/xmlparser"
	"github.com/sherozshaikh/ublkit/pkg/utils"
)

// BatchOptions carries per-run switches for the batch converter.
type BatchOptions struct {
	// DryRun inspects inputs without writing anything. Requires
	// features.enable_dry_run in the configuration.
	DryRun bool
}

// BatchConverter converts every XML file in a directory.
type BatchConverter struct {
	cfg       *config.Config
	inputDir  string
	outputDir string
	opts      BatchOptions
	single    *SingleFileConverter
}

// NewBatch creates a batch converter. It fails fast on an unsupported format
// or on a dry-run request while the feature flag is off.
func NewBatch(cfg *config.Config, format, inputDir, outputDir string, opts BatchOptions) (*BatchConverter, error) {
	single, err := NewSingleFile(cfg, format)
	if err != nil {
		return nil, err
	}
	if opts.DryRun && !single.cfg.Features.EnableDryRun {
		return nil, &types.ConfigError{
			Key: "features.enable_dry_run",
			Err: fmt.Errorf("dry run requested but the feature is disabled"),
		}
	}
	return &BatchConverter{
		cfg:       single.cfg,
		inputDir:  inputDir,
		outputDir: outputDir,
		opts:      opts,
		single:    single,
	}, nil
}

// Convert processes every *.xml file under the input directory and returns
// the summary. A missing input directory is fatal; per-file failures are
// recorded in the summary and never abort the run.
func (b *BatchConverter) Convert() (types.ProcessingSummary, error) {
	summary := types.ProcessingSummary{
		RunID:        uuid.NewString(),
		OutputFormat: b.single.Format(),
		DryRun:       b.opts.DryRun,
		StartTime:    time.Now(),
	}

	files, err := utils.DiscoverXMLFiles(b.inputDir)
	if err != nil {
		summary.EndTime = time.Now()
		return summary, err
	}
	if len(files) == 0 {
		slog.Warn("no XML files found", "input_dir", b.inputDir)
		summary.EndTime = time.Now()
		return summary, nil
	}

	slog.Info("starting batch conversion",
		"run_id", summary.RunID,
		"files", len(files),
		"format", summary.OutputFormat,
		"workers", b.cfg.Processing.MaxWorkers,
		"dry_run", b.opts.DryRun,
	)

	if b.opts.DryRun {
		// Inspection only: no pool, no writes, no summary file.
		for _, f := range files {
			summary.Add(b.inspectFile(f))
		}
		summary.EndTime = time.Now()
		summary.TotalDurationSeconds = summary.Duration().Seconds()
		return summary, nil
	}

	if err := utils.EnsureDir(b.outputDir); err != nil {
		summary.EndTime = time.Now()
		return summary, &types.IOError{Op: "write", Path: b.outputDir, Err: err}
	}

	jobs := make(chan string)
	results := make(chan types.ProcessingResult, len(files))

	workers := min(b.cfg.Processing.MaxWorkers, len(files))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- b.processFile(path)
			}
		}()
	}

	go func() {
		for _, f := range files {
			jobs <- f
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for r := range results {
		summary.Add(r)
		completed++
		if completed%10 == 0 || completed == len(files) {
			slog.Info("progress", "completed", completed, "total", len(files))
		}
	}

	summary.EndTime = time.Now()
	summary.TotalDurationSeconds = summary.Duration().Seconds()

	if err := b.writeSummary(&summary); err != nil {
		return summary, err
	}

	slog.Info("batch conversion complete",
		"run_id", summary.RunID,
		"successful", summary.Successful,
		"failed", summary.Failed,
		"duration", summary.Duration().String(),
	)
	return summary, nil
}

// processFile converts one file and writes its output. The recorded duration
// covers both conversion and the disk write.
func (b *BatchConverter) processFile(path string) types.ProcessingResult {
	start := time.Now()

	res := b.single.Convert(path)
	pr := types.ProcessingResult{
		FilePath:        path,
		Success:         res.Success,
		ErrorMessage:    res.ErrorMessage,
		FileSizeBytes:   res.FileSizeBytes,
		UBLDocumentType: res.UBLDocumentType,
	}

	if res.Success {
		outBase := utils.OutputBase(path, b.outputDir, "."+b.single.Format())
		paths, err := b.single.WriteOutput(res, outBase)
		if err != nil {
			pr.Success = false
			pr.ErrorMessage = err.Error()
		} else {
			pr.OutputPaths = paths
		}
	}

	pr.ProcessingTimeSeconds = time.Since(start).Seconds()
	return pr
}

// inspectFile checks that one file is readable, well-formed UBL XML without
// writing anything.
func (b *BatchConverter) inspectFile(path string) types.ProcessingResult {
	start := time.Now()
	pr := types.ProcessingResult{FilePath: path}

	info, err := os.Stat(path)
	if err != nil {
		pr.ErrorMessage = (&types.IOError{Op: "read", Path: path, Err: err}).Error()
		pr.ProcessingTimeSeconds = time.Since(start).Seconds()
		return pr
	}

	root, _, err := xmlparser.ParseFile(path, b.cfg.EncodingPriority())
	if err != nil {
		pr.ErrorMessage = err.Error()
		pr.ProcessingTimeSeconds = time.Since(start).Seconds()
		return pr
	}

	pr.Success = true
	pr.FileSizeBytes = info.Size()
	pr.UBLDocumentType = xmlparser.DocumentType(root)
	pr.ProcessingTimeSeconds = time.Since(start).Seconds()
	slog.Info("dry run: would convert", "file", path, "type", pr.UBLDocumentType)
	return pr
}

// writeSummary persists the summary as a timestamped JSON file under
// output.summary_dir.
func (b *BatchConverter) writeSummary(summary *types.ProcessingSummary) error {
	if err := utils.EnsureDir(b.cfg.Output.SummaryDir); err != nil {
		return &types.IOError{Op: "write", Path: b.cfg.Output.SummaryDir, Err: err}
	}

	path := utils.SummaryFilename(b.cfg.Output.SummaryDir)
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}

	slog.Info("summary written", "path", path)
	return nil
}
