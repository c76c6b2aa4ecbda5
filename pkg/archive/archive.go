package archive

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vtree"
)

// Store is a flat namespace of named blobs.
type Store interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}

// Extension is appended to snapshot names by SaveSnapshot.
const Extension = ".json"

// ValidName reports whether name can be used as a blob name. Names are
// limited to letters, digits, '.', '-' and '_' and may not start with '.'.
func ValidName(name string) bool {
	if name == "" || len(name) > 200 || name[0] == '.' {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func checkName(name string) error {
	if !ValidName(name) {
		return errors.New("E160").WithDetail("invalid snapshot name " + quote(name))
	}
	return nil
}

func notFound(name string) error {
	return errors.New("E161").WithDetail(quote(name))
}

func failure(op, name string, err error) error {
	e := errors.New("E160").Wrap(err)
	if name != "" {
		return e.WithDetail(op + " " + quote(name))
	}
	return e.WithDetail(op)
}

func quote(s string) string {
	return `"` + s + `"`
}

// Envelope is the stored form of a snapshot.
type Envelope struct {
	Name     string              `json:"name"`
	Created  time.Time           `json:"created"`
	PassID   string              `json:"passId,omitempty"`
	Snapshot *vtree.SnapshotNode `json:"snapshot"`
}

// NewName returns a fresh snapshot name.
func NewName(now time.Time) string {
	return "snapshot-" + now.UTC().Format("20060102T150405Z") + "-" + uuid.NewString()[:8] + Extension
}

// SaveSnapshot writes snap to store under a fresh name and returns the name.
func SaveSnapshot(ctx context.Context, store Store, passID string, snap *vtree.SnapshotNode) (string, error) {
	now := time.Now()
	env := Envelope{
		Name:     NewName(now),
		Created:  now.UTC(),
		PassID:   passID,
		Snapshot: snap,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", failure("encode", env.Name, err)
	}
	if err := store.Put(ctx, env.Name, data); err != nil {
		return "", err
	}
	return env.Name, nil
}

// LoadSnapshot reads the snapshot stored under name.
func LoadSnapshot(ctx context.Context, store Store, name string) (*Envelope, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, failure("decode", name, err)
	}
	return &env, nil
}

// ListSnapshots returns the names of stored snapshots.
func ListSnapshots(ctx context.Context, store Store) ([]string, error) {
	names, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := names[:0]
	for _, n := range names {
		if strings.HasSuffix(n, Extension) {
			out = append(out, n)
		}
	}
	return out, nil
}
