// Package pebblestore implements the lobby stores on an embedded Pebble database.
//
// Documents are JSON values under the keys usernames/{username}, users/{id} and
// queue/{id}. Multi-key transactions are indexed batches committed while holding
// a store-wide mutex, which makes them serializable on a single node.
package pebblestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/dtroode/lobby-server/internal/model"
)

const (
	prefixUsernames = "usernames/"
	prefixUsers     = "users/"
	prefixQueue     = "queue/"
)

// Options configures the Pebble store.
type Options struct {
	// DataDir is the path to the Pebble database directory.
	DataDir string
	// FS overrides the filesystem. Tests use vfs.NewMem().
	FS vfs.FS
	// Sync forces a WAL fsync on every committed write.
	Sync bool
	// Clock supplies the store time stamped on documents. Defaults to time.Now.
	Clock func() time.Time
}

// DB wraps a Pebble database shared by the identity and queue stores.
type DB struct {
	inner     *pebble.DB
	writeOpts *pebble.WriteOptions
	now       func() time.Time

	// txMu serialises identity transactions.
	txMu sync.Mutex
}

// Open creates or opens a Pebble database with the provided options.
func Open(opts Options) (*DB, error) {
	if opts.DataDir == "" {
		return nil, errors.New("pebble: Options.DataDir is required")
	}

	po := &pebble.Options{}
	if opts.FS != nil {
		po.FS = opts.FS
	}

	inner, err := pebble.Open(opts.DataDir, po)
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble: %w", err)
	}

	writeOpts := pebble.NoSync
	if opts.Sync {
		writeOpts = pebble.Sync
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	return &DB{
		inner:     inner,
		writeOpts: writeOpts,
		now:       clock,
	}, nil
}

// Close closes the Pebble database.
func (db *DB) Close() error {
	if db == nil || db.inner == nil {
		return nil
	}
	return db.inner.Close()
}

func (db *DB) timestamp() time.Time {
	return db.now().UTC().Truncate(time.Microsecond)
}

// load decodes the document at key into v.
func load(r pebble.Reader, key string, v any) error {
	val, closer, err := r.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return model.ErrNotFound
		}
		return err
	}
	defer closer.Close()

	if err := json.Unmarshal(val, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

type writer interface {
	Set(key, value []byte, opts *pebble.WriteOptions) error
}

func store(w writer, key string, v any, opts *pebble.WriteOptions) error {
	val, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return w.Set([]byte(key), val, opts)
}

func usernameKey(username string) string { return prefixUsernames + username }

func userKey(id string) string { return prefixUsers + id }

func queueKey(id string) string { return prefixQueue + id }
