package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"fmtguard/internal/diag"
	"fmtguard/internal/source"
)

// Current schema version - increment when cachePayload changes.
const diskCacheSchemaVersion uint16 = 1

// ErrCacheSchema marks an entry written by an incompatible version.
var ErrCacheSchema = errors.New("cache entry has a different schema")

// CacheKey identifies one analysis result: file content plus the settings
// that influence it.
type CacheKey [32]byte

// NewCacheKey: H(content hash || config fingerprint).
func NewCacheKey(content, config [32]byte) CacheKey {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write(config[:])
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}

func (k CacheKey) String() string {
	return hex.EncodeToString(k[:])
}

// DiskCache хранит результаты проверки файлов по CacheKey.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is what one entry stores. Spans are kept as offsets only;
// the file ID is rebound on load.
type cachePayload struct {
	Schema      uint16
	Path        string
	Calls       uint32
	Fatal       bool
	Diagnostics []cachedDiagnostic
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Labels   []cachedLabel
	Help     string
	Fixes    []cachedFix
}

type cachedLabel struct {
	Start, End uint32
	Msg        string
}

type cachedFix struct {
	Title string
	Edits []cachedEdit
}

type cachedEdit struct {
	Start, End       uint32
	NewText, OldText string
}

// OpenDiskCache opens the cache under dir, or $XDG_CACHE_HOME/app when dir is empty.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := key.String()
	// подкаталог по первым двум символам, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put serializes a file's result. A nil cache is a no-op.
func (c *DiskCache) Put(key CacheKey, res *FileResult) (err error) {
	if c == nil || res == nil {
		return nil
	}
	payload, err := toPayload(res)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get loads the entry for key into a FileResult bound to file. The boolean is
// false on a miss.
func (c *DiskCache) Get(key CacheKey, file *source.File) (*FileResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, fmt.Errorf("%w: got %d, want %d", ErrCacheSchema, payload.Schema, diskCacheSchemaVersion)
	}
	return fromPayload(&payload, file), true, nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим целиком
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func toPayload(res *FileResult) (*cachePayload, error) {
	calls, err := safecast.Conv[uint32](res.Calls)
	if err != nil {
		return nil, fmt.Errorf("call count overflow: %w", err)
	}
	p := &cachePayload{
		Schema: diskCacheSchemaVersion,
		Path:   res.Path,
		Calls:  calls,
		Fatal:  res.Fatal,
	}
	if res.Bag == nil {
		return p, nil
	}
	for _, d := range res.Bag.Items() {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Help:     d.Help,
		}
		for _, l := range d.Labels {
			cd.Labels = append(cd.Labels, cachedLabel{Start: l.Span.Start, End: l.Span.End, Msg: l.Msg})
		}
		for _, fix := range d.Fixes {
			cf := cachedFix{Title: fix.Title}
			for _, e := range fix.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{
					Start: e.Span.Start, End: e.Span.End,
					NewText: e.NewText, OldText: e.OldText,
				})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	return p, nil
}

func fromPayload(p *cachePayload, file *source.File) *FileResult {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file.ID, Start: start, End: end}
	}
	bag := diag.NewBag(0)
	for _, cd := range p.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  span(cd.Start, cd.End),
			Help:     cd.Help,
		}
		for _, l := range cd.Labels {
			d.Labels = append(d.Labels, diag.Label{Span: span(l.Start, l.End), Msg: l.Msg})
		}
		for _, cf := range cd.Fixes {
			fix := diag.Fix{Title: cf.Title}
			for _, e := range cf.Edits {
				fix.Edits = append(fix.Edits, diag.FixEdit{
					Span: span(e.Start, e.End), NewText: e.NewText, OldText: e.OldText,
				})
			}
			d.Fixes = append(d.Fixes, fix)
		}
		bag.Add(d)
	}
	return &FileResult{
		Path:   file.Path,
		FileID: file.ID,
		Bag:    bag,
		Calls:  int(p.Calls),
		Fatal:  p.Fatal,
		Cached: true,
	}
}
