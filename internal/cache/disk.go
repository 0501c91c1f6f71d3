// Package cache memoizes expensive results (divmod, gcd) on disk.
package cache

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

	"mpint/internal/mpi"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 1

// ErrCorrupt reports a payload that decoded but failed validation.
var ErrCorrupt = errors.New("corrupt cache entry")

// Key identifies one memoized operation.
type Key [sha256.Size]byte

// KeyFor hashes op and the canonical decimal form of its operands, so
// uncompacted operands share entries with their compacted equals.
func KeyFor(op string, operands ...*mpi.Int) Key {
	h := sha256.New()
	h.Write([]byte(op))
	for _, x := range operands {
		h.Write([]byte{0})
		h.Write([]byte(x.String()))
	}
	var k Key
	h.Sum(k[:0])
	return k
}

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// Payload is the on-disk form of one memoized operation.
type Payload struct {
	Schema uint16
	Op     string
	// Inputs repeats the operands so a hash collision cannot return a
	// wrong answer.
	Inputs []string
	// Results holds raw base-2^31 digits, least significant first.
	Results [][]uint32
	// BitLens guards Results against truncated or hand-edited files.
	BitLens []uint32
}

// Disk stores payloads under a directory, one file per key.
// Thread-safe for concurrent access.
type Disk struct {
	mu  sync.RWMutex
	dir string
}

// Open returns the cache for app at the standard user cache location.
func Open(app string) (*Disk, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir returns a cache rooted at dir, creating it if needed.
func OpenDir(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir}, nil
}

// Dir reports the cache root.
func (c *Disk) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Disk) pathFor(key Key) string {
	return filepath.Join(c.dir, "ops", key.String()+".mp")
}

// Put serializes and atomically writes a payload.
func (c *Disk) Put(key Key, payload *Payload) (err error) {
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
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry is reported as (false, nil).
func (c *Disk) Get(key Key, out *Payload) (bool, error) {
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
		return false, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return true, nil
}

// Store memoizes results of op applied to inputs.
func (c *Disk) Store(op string, inputs []*mpi.Int, results ...*mpi.Int) error {
	if c == nil {
		return nil
	}
	payload := &Payload{
		Schema:  schemaVersion,
		Op:      op,
		Inputs:  make([]string, len(inputs)),
		Results: make([][]uint32, len(results)),
		BitLens: make([]uint32, len(results)),
	}
	for i, x := range inputs {
		payload.Inputs[i] = x.String()
	}
	for i, x := range results {
		bl, err := safecast.Conv[uint32](x.BitLen())
		if err != nil {
			return fmt.Errorf("store %s: %w", op, err)
		}
		payload.Results[i] = x.Digits()
		payload.BitLens[i] = bl
	}
	return c.Put(KeyFor(op, inputs...), payload)
}

// Load fills results from a memoized entry for op applied to inputs.
// It reports false on a miss or on an entry from another schema; results
// are only written on a hit.
func (c *Disk) Load(op string, inputs []*mpi.Int, results ...*mpi.Int) (bool, error) {
	if c == nil {
		return false, nil
	}
	var payload Payload
	ok, err := c.Get(KeyFor(op, inputs...), &payload)
	if err != nil || !ok {
		return false, err
	}
	if payload.Schema != schemaVersion {
		return false, nil
	}
	if err := payload.validate(op, inputs, len(results)); err != nil {
		return false, err
	}

	decoded := make([]mpi.Int, len(results))
	for i, digits := range payload.Results {
		if err := decoded[i].SetDigits(digits); err != nil {
			return false, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		want, err := safecast.Conv[int](payload.BitLens[i])
		if err != nil || decoded[i].BitLen() != want {
			return false, fmt.Errorf("%w: result %d has %d bits, recorded %d", ErrCorrupt, i, decoded[i].BitLen(), payload.BitLens[i])
		}
	}
	for i := range decoded {
		if err := results[i].Set(&decoded[i]); err != nil {
			return false, err
		}
		results[i].Compact()
	}
	return true, nil
}

func (p *Payload) validate(op string, inputs []*mpi.Int, results int) error {
	if p.Op != op || len(p.Inputs) != len(inputs) {
		return fmt.Errorf("%w: entry for %s(%d operands)", ErrCorrupt, p.Op, len(p.Inputs))
	}
	for i, x := range inputs {
		if p.Inputs[i] != x.String() {
			return fmt.Errorf("%w: operand %d mismatch", ErrCorrupt, i)
		}
	}
	if len(p.Results) != results || len(p.BitLens) != results {
		return fmt.Errorf("%w: %d results, want %d", ErrCorrupt, len(p.Results), results)
	}
	return nil
}

// DropAll removes every entry.
func (c *Disk) DropAll() error {
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
