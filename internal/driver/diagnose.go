package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fortio.org/safecast"

	"guardc/internal/ast"
	"guardc/internal/diag"
	"guardc/internal/guard"
	"guardc/internal/lexer"
	"guardc/internal/parser"
	"guardc/internal/project"
	"guardc/internal/source"
	"guardc/internal/token"
	"guardc/internal/trace"
)

// FileResult is the outcome of checking one unit.
type FileResult struct {
	Path    string // путь для отображения (относительно каталога при DiagnoseDir)
	FileSet *source.FileSet
	FileID  source.FileID
	Bag     *diag.Bag

	// Tokens is set for DiagnoseStageTokenize only.
	Tokens  []token.Token
	Builder *ast.Builder
	ASTFile ast.FileID
	// Groups holds the per-group analyses; nil for cache hits and early stages.
	Groups []*guard.GroupAnalysis
	Cached bool
}

// DiagnoseFile loads path and checks it up to opts.Stage.
// The returned error covers only the load itself; everything found in the
// file is reported through FileResult.Bag.
func DiagnoseFile(ctx context.Context, path string, opts DiagnoseOptions) (*FileResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "diagnose_file", trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	stopLoad := opts.Timer.Track(string(StageLoad))
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	stopLoad()
	if err != nil {
		span.Fail(err)
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	res := diagnoseUnit(ctx, fs, fileID, path, &opts)
	span.End(path)
	return res, nil
}

// diagnoseUnit runs the pipeline over one already loaded file. It is safe to
// call concurrently for different files of one FileSet once loading is over.
func diagnoseUnit(ctx context.Context, fs *source.FileSet, fileID source.FileID, display string, opts *DiagnoseOptions) *FileResult {
	file := fs.Get(fileID)
	res := &FileResult{
		Path:    display,
		FileSet: fs,
		FileID:  fileID,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	started := time.Now()

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeUnit, "unit", trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	defer func() {
		span.WithExtra("diagnostics", strconv.Itoa(res.Bag.Len())).End(display)
	}()

	reporter := diag.BagReporter{Bag: res.Bag}

	if opts.stage() == DiagnoseStageTokenize {
		emit(opts.Progress, Event{File: display, Stage: StageParse, Status: StatusWorking})
		stop := opts.Timer.Track("tokenize")
		res.Tokens = lexer.New(file, lexer.Options{Reporter: reporter}).All()
		stop()
		res.finish(opts, started)
		return res
	}

	useCache := opts.Cache != nil && opts.stage() == DiagnoseStageGuard
	var (
		key       project.Digest
		cacheErrs []error
	)
	if useCache {
		key = cacheKey(file, opts.MaxDiagnostics)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			cacheErrs = append(cacheErrs, err)
		case hit:
			for _, d := range payload.restore(fileID) {
				res.Bag.Add(d)
			}
			res.Cached = true
			trace.Point(tracer, trace.ScopeUnit, "cache_hit", display, span.ID())
			res.finish(opts, started)
			return res
		}
	}

	emit(opts.Progress, Event{File: display, Stage: StageParse, Status: StatusWorking})
	stopParse := opts.Timer.Track(string(StageParse))
	parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", span.ID())
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		maxErrors = 0
	}
	b := ast.NewBuilder(ast.Hints{}, nil)
	pr := parser.ParseFile(file, b, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
	parseSpan.End(fmt.Sprintf("errors=%d", pr.Errors))
	stopParse()
	res.Builder, res.ASTFile = b, pr.File

	if opts.stage() == DiagnoseStageGuard {
		emit(opts.Progress, Event{File: display, Stage: StageGuard, Status: StatusWorking})
		stopGuard := opts.Timer.Track(string(StageGuard))
		v := guard.NewValidator(guard.Options{Reporter: reporter})
		v.Validate(ctx, b, pr.File)
		res.Groups = v.Results()
		stopGuard()
	}

	if useCache {
		if err := opts.Cache.Put(key, toDiskPayload(file, res.Bag.Items())); err != nil {
			cacheErrs = append(cacheErrs, err)
		}
	}
	for _, err := range cacheErrs {
		// ошибки кеша не должны попадать в сам кеш, поэтому добавляются после Put
		res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: fileID},
			"disk cache: "+err.Error()))
	}
	res.finish(opts, started)
	return res
}

// finish applies the warning filters and reports the final status.
func (r *FileResult) finish(opts *DiagnoseOptions, started time.Time) {
	if opts.IgnoreWarnings {
		r.Bag.DropWarnings()
	}
	if opts.WarningsAsErrors {
		r.Bag.PromoteWarnings()
	}
	status := StatusDone
	switch {
	case r.Bag.HasErrors():
		status = StatusError
	case r.Cached:
		status = StatusCached
	}
	emit(opts.Progress, Event{File: r.Path, Stage: StageGuard, Status: status, Elapsed: time.Since(started)})
}

// loadFailure builds the result of a file that could not be read. The path is
// registered as an empty virtual file so the diagnostic still has a location.
func loadFailure(fs *source.FileSet, path, display string, maxDiagnostics int, err error) *FileResult {
	id := fs.AddVirtual(path, nil)
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
	return &FileResult{Path: display, FileSet: fs, FileID: id, Bag: bag}
}

// MergeBags collects the diagnostics of every result into one bag, in result order.
func MergeBags(results []FileResult) *diag.Bag {
	out := diag.NewBag(0)
	for i := range results {
		out.Merge(results[i].Bag)
	}
	return out
}
