package driver

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"guardc/internal/diag"
	"guardc/internal/project"
	"guardc/internal/source"
	"guardc/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит диагностики проверенных файлов на диске, ключ - хеш содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores the diagnostics of one checked unit.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	Tool   string

	Path        string
	ContentHash project.Digest
	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic is a diagnostic without its FileID: spans are re-anchored
// to the file that hits the cache.
type CachedDiagnostic struct {
	Severity  uint8
	Code      uint16
	Message   string
	Start     uint32
	End       uint32
	Overloads []int
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it when needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
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

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "units", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// A payload written by another schema is reported as a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
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

// cacheKey binds the file content to everything that changes the diagnostics:
// cache schema, tool version and the diagnostics limit.
func cacheKey(file *source.File, maxDiagnostics int) project.Digest {
	var buf [10]byte
	binary.LittleEndian.PutUint16(buf[:2], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint64(buf[2:], uint64(max(maxDiagnostics, 0)))
	return project.Combine(project.Digest(file.Hash), buf[:], []byte(version.Version))
}

func toDiskPayload(file *source.File, diags []diag.Diagnostic) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Tool:        version.Version,
		Path:        file.Path,
		ContentHash: project.Digest(file.Hash),
		Diagnostics: make([]CachedDiagnostic, len(diags)),
	}
	for i, d := range diags {
		payload.Diagnostics[i] = CachedDiagnostic{
			Severity:  uint8(d.Severity),
			Code:      uint16(d.Code),
			Message:   d.Message,
			Start:     d.Primary.Start,
			End:       d.Primary.End,
			Overloads: d.Overloads,
		}
	}
	return payload
}

// restore re-anchors cached diagnostics to file.
func (p *DiskPayload) restore(file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(p.Diagnostics))
	for i, cd := range p.Diagnostics {
		out[i] = diag.Diagnostic{
			Severity:  diag.Severity(cd.Severity),
			Code:      diag.Code(cd.Code),
			Message:   cd.Message,
			Primary:   source.Span{File: file, Start: cd.Start, End: cd.End},
			Overloads: cd.Overloads,
		}
	}
	return out
}
