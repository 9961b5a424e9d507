package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"fmtguard/internal/check"
	"fmtguard/internal/diag"
	"fmtguard/internal/observ"
	"fmtguard/internal/source"
	"fmtguard/internal/trace"
)

// Options configures CheckFiles.
type Options struct {
	Analysis check.Options
	// Jobs limits concurrent files; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache may be nil.
	Cache *DiskCache
	// ConfigHash is mixed into cache keys.
	ConfigHash [32]byte
	Timings    bool
	// Progress is called from worker goroutines after each file.
	Progress func(FileResult)
}

// FileResult содержит результат проверки одного файла
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Calls  int
	Fatal  bool
	Cached bool
	Timing *observ.Report
}

// Result is the outcome of a run over many files.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timings *observ.Aggregate
}

// Bag merges every file's diagnostics in file order.
func (r *Result) Bag() *diag.Bag {
	out := diag.NewBag(0)
	for _, f := range r.Files {
		out.Merge(f.Bag)
	}
	return out
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag != nil && f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// CheckPaths expands paths and checks every source file found.
func CheckPaths(ctx context.Context, paths []string, opts Options) (*Result, error) {
	files, err := ListSources(paths)
	if err != nil {
		return nil, err
	}
	return CheckFiles(ctx, files, opts)
}

// CheckFiles checks files in parallel. Results keep the order of files.
// A file that cannot be read aborts the run.
func CheckFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "check")
	span.With("files", strconv.Itoa(len(files)))

	// FileSet не потокобезопасен, поэтому все файлы загружаются до запуска воркеров
	fileSet := source.NewFileSet()
	ids := make([]source.FileID, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			span.End("load failed")
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		ids[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	res := &Result{
		FileSet: fileSet,
		Files:   make([]FileResult, len(files)),
		Timings: observ.NewAggregate(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, id := range ids {
		file := fileSet.Get(id)
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fr, err := checkFile(gctx, file, opts, res.Timings)
			if err != nil {
				return err
			}
			// индекс i уникален для горутины, мьютекс не нужен
			res.Files[i] = fr
			if opts.Progress != nil {
				opts.Progress(fr)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("failed")
		return res, err
	}
	span.End(fmt.Sprintf("%d files", len(files)))
	return res, nil
}

// CheckSource checks one in-memory file synchronously, without the cache.
func CheckSource(ctx context.Context, file *source.File, analysis check.Options) *check.Analysis {
	ctx, span := trace.Start(ctx, trace.ScopeFile, file.Path)
	analysis.OnPass = passHook(ctx, nil)
	a := check.Analyze(file, analysis)
	span.End(fmt.Sprintf("%d diagnostics", a.Bag.Len()))
	return a
}

func checkFile(ctx context.Context, file *source.File, opts Options, agg *observ.Aggregate) (FileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, file.Path)

	key := NewCacheKey(file.Hash, opts.ConfigHash)
	if opts.Cache != nil {
		cached, ok, err := opts.Cache.Get(key, file)
		switch {
		case errors.Is(err, ErrCacheSchema):
			trace.Point(ctx, trace.ScopeFile, "cache", "stale schema")
		case err != nil:
			span.End("cache error")
			return FileResult{}, fmt.Errorf("%s: %w", file.Path, err)
		case ok:
			span.End("cached")
			return *cached, nil
		}
	}

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	analysis := opts.Analysis
	analysis.OnPass = passHook(ctx, timer)
	a := check.Analyze(file, analysis)

	fr := FileResult{
		Path:   file.Path,
		FileID: file.ID,
		Bag:    a.Bag,
		Calls:  len(a.Calls),
		Fatal:  a.Fatal,
	}
	if timer != nil {
		report := timer.Report()
		fr.Timing = &report
		agg.Add(report)
	}
	if err := opts.Cache.Put(key, &fr); err != nil {
		span.End("cache error")
		return FileResult{}, fmt.Errorf("%s: failed to write cache: %w", file.Path, err)
	}
	span.End(fmt.Sprintf("%d diagnostics", a.Bag.Len()))
	return fr, nil
}

// passHook opens a pass-scoped trace span and, if timer is set, a timer phase.
func passHook(ctx context.Context, timer *observ.Timer) check.PassHook {
	return func(pass string) func(string) {
		_, span := trace.Start(ctx, trace.ScopePass, pass)
		idx := -1
		if timer != nil {
			idx = timer.Begin(pass)
		}
		return func(note string) {
			if timer != nil {
				timer.End(idx, note)
			}
			span.End(note)
		}
	}
}
