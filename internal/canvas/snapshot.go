package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotSchema is bumped whenever Snapshot changes shape.
const snapshotSchema uint16 = 1

// Snapshot is the on-disk form of a canvas.
type Snapshot struct {
	Schema uint16   `msgpack:"schema"`
	Size   int      `msgpack:"size"`
	Names  []string `msgpack:"names"` // palette used to decode Pixels
	Pixels []byte   `msgpack:"pixels"`
}

var errSnapshotSchema = errors.New("canvas: unsupported snapshot schema")

// Snapshot captures the canvas.
func (c *Canvas) Snapshot() Snapshot {
	names := make([]string, len(colorNames))
	copy(names, colorNames[:])
	pix := make([]byte, len(c.pix))
	for i, p := range c.pix {
		pix[i] = byte(p)
	}
	return Snapshot{Schema: snapshotSchema, Size: c.size, Names: names, Pixels: pix}
}

// FromSnapshot rebuilds a canvas, mapping colors by name so snapshots stay
// readable when the palette order changes.
func FromSnapshot(s Snapshot) (*Canvas, error) {
	if s.Schema != snapshotSchema {
		return nil, fmt.Errorf("%w: %d", errSnapshotSchema, s.Schema)
	}
	c, err := New(s.Size)
	if err != nil {
		return nil, err
	}
	if len(s.Pixels) != s.Size*s.Size {
		return nil, fmt.Errorf("canvas: snapshot has %d pixels, want %d", len(s.Pixels), s.Size*s.Size)
	}
	for i, p := range s.Pixels {
		if int(p) >= len(s.Names) {
			return nil, fmt.Errorf("canvas: pixel %d has unknown color index %d", i, p)
		}
		col, ok := ParseColor(s.Names[p])
		if !ok {
			return nil, fmt.Errorf("canvas: pixel %d has unknown color %q", i, s.Names[p])
		}
		c.pix[i] = col
	}
	return c, nil
}

// MarshalMsgpack encodes the canvas as a msgpack snapshot.
func (c *Canvas) MarshalMsgpack() ([]byte, error) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(c.Snapshot()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalMsgpack decodes a snapshot produced by MarshalMsgpack.
func UnmarshalMsgpack(data []byte) (*Canvas, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("canvas: decode snapshot: %w", err)
	}
	return FromSnapshot(s)
}

// WriteSnapshotFile writes the snapshot atomically (temp file + rename).
func (c *Canvas) WriteSnapshotFile(path string) error {
	data, err := c.MarshalMsgpack()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err = f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err = os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// ReadSnapshotFile loads a canvas written by WriteSnapshotFile.
func ReadSnapshotFile(path string) (*Canvas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalMsgpack(data)
}
