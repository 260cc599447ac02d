package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"
)

// FileResult tracks the outcome of importing a single file.
type FileResult struct {
	Path     string
	Result   *Result
	Err      error
	Duration time.Duration
}

// Summary returns a human-readable summary.
func (r *FileResult) Summary() string {
	if r.Err != nil {
		return fmt.Sprintf("file=%q status=FAILED kind=%s dur=%s",
			filepath.Base(r.Path), KindOf(r.Err), r.Duration.Round(time.Millisecond))
	}
	return fmt.Sprintf("file=%q status=ok %s dur=%s",
		filepath.Base(r.Path), r.Result.Summary(), r.Duration.Round(time.Millisecond))
}

// BatchResult tracks the outcome of a multi-file import.
type BatchResult struct {
	Files     int
	Succeeded int
	Failed    int
	Warnings  int
	Duration  time.Duration
	Results   []FileResult // in argument order
}

// Summary returns a human-readable summary.
func (r *BatchResult) Summary() string {
	return fmt.Sprintf("files=%d succeeded=%d failed=%d warnings=%d dur=%s",
		r.Files, r.Succeeded, r.Failed, r.Warnings, r.Duration.Round(time.Millisecond))
}

// ImportFiles imports every path with a pool of workers. Each file is its own
// transaction, so one failure never affects the others.
func (im *Importer) ImportFiles(ctx context.Context, paths []string, opts Options, workers int) BatchResult {
	start := time.Now()
	result := BatchResult{Files: len(paths), Results: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		return result
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	ch := make(chan int, len(paths))
	for i := range paths {
		ch <- i
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range ch {
				fileStart := time.Now()
				res, err := im.ImportFile(ctx, paths[idx], opts)
				fr := FileResult{Path: paths[idx], Result: res, Err: err, Duration: time.Since(fileStart)}

				mu.Lock()
				result.Results[idx] = fr
				if err != nil {
					result.Failed++
				} else {
					result.Succeeded++
					result.Warnings += len(res.Warnings)
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	result.Duration = time.Since(start)

	im.logger.Info("Batch import complete", "summary", result.Summary())
	return result
}
