package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"walle/internal/diag"
	"walle/internal/project"
	"walle/internal/source"
	"walle/internal/version"
)

// Bump when DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores check results keyed by content hash and settings.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type CachedNote struct {
	Start, End uint32
	Line       int
	Msg        string
}

type CachedDiagnostic struct {
	Code       uint16
	Line       int
	Start, End uint32
	Message    string
	Notes      []CachedNote
}

// DiskPayload is the msgpack record written per checked program.
type DiskPayload struct {
	Schema      uint16
	Path        string
	ContentHash project.Digest
	Instrs      int
	Diagnostics []CachedDiagnostic
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app, falling back
// to ~/.cache/app.
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

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "checks", hex.EncodeToString(key[:])+".mp")
}

// Put writes payload atomically through a temp file and rename.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
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
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmp)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		return err
	}
	renamed = true
	return nil
}

// Get decodes the payload for key. A payload from another schema counts
// as a miss.
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

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

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

// checkCacheKey covers everything that can change a check result.
func checkCacheKey(file *source.File, opts Options) project.Digest {
	return project.Combine(project.Digest(file.Hash),
		version.Version,
		"forward="+strconv.FormatBool(opts.ForwardLabels),
		"max="+strconv.Itoa(opts.MaxDiagnostics),
	)
}

func toDiskPayload(res *CheckResult) *DiskPayload {
	p := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        res.File.Path,
		ContentHash: project.Digest(res.File.Hash),
		Instrs:      res.Program.Len(),
	}
	for _, d := range res.Bag.Items() {
		cd := CachedDiagnostic{
			Code:    uint16(d.Code),
			Line:    d.Line,
			Start:   d.Primary.Start,
			End:     d.Primary.End,
			Message: d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Line: n.Line, Msg: n.Msg})
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	return p
}

// restore rebuilds the diagnostics of p against file.
func (p *DiskPayload) restore(file source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Code(cd.Code), cd.Line, source.Span{File: file, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: file, Start: n.Start, End: n.End}, n.Line, n.Msg)
		}
		bag.Add(d)
	}
	return bag
}
