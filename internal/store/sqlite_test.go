package store_test

import (
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/newtab/internal/store"
)

func newTestSQLiteBackend(t *testing.T) *store.SQLiteBackend {
	t.Helper()
	backend, err := store.NewSQLiteBackend(filepath.Join(t.TempDir(), "state.db"))
	assert.NilError(t, err)
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestSQLiteBackend_SetGetDelete(t *testing.T) {
	backend := newTestSQLiteBackend(t)

	data, err := backend.Get("clicks")
	assert.NilError(t, err)
	assert.Assert(t, data == nil, "expected absent key, got %q", data)

	assert.NilError(t, backend.Set("clicks", []byte(`{"a":[1]}`)))
	data, err = backend.Get("clicks")
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{"a":[1]}`)

	// Overwrite
	assert.NilError(t, backend.Set("clicks", []byte(`{}`)))
	data, err = backend.Get("clicks")
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{}`)

	assert.NilError(t, backend.Delete("clicks"))
	data, err = backend.Get("clicks")
	assert.NilError(t, err)
	assert.Assert(t, data == nil, "expected absent key after delete, got %q", data)
}

func TestSQLiteBackend_LedgerOverSQLite(t *testing.T) {
	backend := newTestSQLiteBackend(t)

	ledger, err := store.NewClickLedger(backend)
	assert.NilError(t, err)
	assert.NilError(t, ledger.RecordClick("https://example.com"))
	assert.Equal(t, ledger.Counts()["https://example.com"], 1)
}

func TestSQLiteBackend_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	backend, err := store.NewSQLiteBackend(path)
	assert.NilError(t, err)
	assert.NilError(t, backend.Set("sort-mode", []byte("grouping")))
	assert.NilError(t, backend.Close())

	reopened, err := store.NewSQLiteBackend(path)
	assert.NilError(t, err)
	defer reopened.Close()

	data, err := reopened.Get("sort-mode")
	assert.NilError(t, err)
	assert.Equal(t, string(data), "grouping")
}
