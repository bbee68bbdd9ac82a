// ABOUTME: Tests for snapshot load/save and the local backends
// ABOUTME: Verifies default substitution on missing, malformed and unreadable data
package storage

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type brokenKV struct{}

func (brokenKV) Get([]byte) ([]byte, error) { return nil, errors.New("disk on fire") }
func (brokenKV) Set([]byte, []byte) error   { return errors.New("disk on fire") }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestLoadMissingKeyReturnsDefault(t *testing.T) {
	kv := NewMemoryKV()
	def := []item{{ID: "seed"}}

	got := Load(kv, "hl_contacts", def, quietLogger())
	assert.Equal(t, def, got)
}

func TestLoadMalformedReturnsDefault(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set([]byte("hl_contacts"), []byte("{not json")))

	got := Load(kv, "hl_contacts", []item{}, quietLogger())
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestLoadReadErrorReturnsDefault(t *testing.T) {
	got := Load(brokenKV{}, "hl_deals", []item{{ID: "x"}}, nil)
	assert.Equal(t, []item{{ID: "x"}}, got)
}

func TestSaveThenLoad(t *testing.T) {
	kv := NewMemoryKV()
	want := []item{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}
	require.NoError(t, Save(kv, "k", want))

	got := Load(kv, "k", []item(nil), quietLogger())
	assert.Equal(t, want, got)
}

func TestSaveWriteFailure(t *testing.T) {
	kv := NewMemoryKV()
	kv.FailWrites = errors.New("read-only")

	err := Save(kv, "k", []item{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save k")
}

func TestBadgerKV(t *testing.T) {
	kv, err := OpenBadger(filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()

	_, err = kv.Get([]byte("missing"))
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	require.NoError(t, Save(kv, "hl_deals", []item{{ID: "d1"}}))
	got := Load(kv, "hl_deals", []item(nil), quietLogger())
	assert.Equal(t, []item{{ID: "d1"}}, got)

	keys, err := kv.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}
