package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"guardc/internal/source"
	"guardc/internal/trace"
)

// SourceExt is the extension of checked files.
const SourceExt = ".gd"

// ListFiles возвращает отсортированный список всех *.gd файлов в директории.
// exclude получает путь относительно dir (через "/"); исключённый каталог не обходится.
func ListFiles(dir string, exclude func(rel string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && exclude != nil && exclude(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// DiagnoseDir checks every *.gd file under dir. Files are loaded up front, then
// checked by at most opts.Jobs workers, each with its own Validator. Results
// keep the sorted file order regardless of scheduling. Unreadable files yield
// an IO5001 diagnostic instead of failing the run; the returned error is set
// only when listing fails or ctx is cancelled.
func DiagnoseDir(ctx context.Context, dir string, opts DiagnoseOptions) (*source.FileSet, []FileResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "diagnose_dir", trace.CurrentSpan(ctx))
	defer span.End(dir)
	ctx = trace.WithSpan(ctx, span)

	files, err := ListFiles(dir, opts.Exclude)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	display := make([]string, len(files))
	for i, path := range files {
		display[i] = displayPath(dir, path)
		emit(opts.Progress, Event{File: display[i], Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен на запись: загружаем всё до запуска воркеров
	results := make([]FileResult, len(files))
	loaded := make([]bool, len(files))
	ids := make([]source.FileID, len(files))
	stopLoad := opts.Timer.Track(string(StageLoad))
	for i, path := range files {
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			results[i] = *loadFailure(fileSet, path, display[i], opts.MaxDiagnostics, loadErr)
			emit(opts.Progress, Event{File: display[i], Stage: StageLoad, Status: StatusError, Err: loadErr})
			continue
		}
		ids[i] = id
		loaded[i] = true
	}
	stopLoad()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	span.WithExtra("files", fmt.Sprint(len(files))).WithExtra("jobs", fmt.Sprint(jobs))

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		if !loaded[i] {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = *diagnoseUnit(gctx, fileSet, ids[i], display[i], &opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func displayPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
