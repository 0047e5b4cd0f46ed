package dataset

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDeduplicatesAndSortsConstituencies(t *testing.T) {
	rows := ParseTable("constituency_code,constituency_name,year\n" +
		"E2,Westminster,2026\n" +
		"E1,Aldershot,2026\n" +
		"E2,Westminster,2027\n" +
		"E1,Aldershot,2027\n")

	store := NewStore(rows, nil)
	refs := store.Constituencies()

	require.Len(t, refs, 2)
	assert.Equal(t, "Aldershot", refs[0].Name)
	assert.Equal(t, "Westminster", refs[1].Name)

	ref, ok := store.Lookup("E2")
	require.True(t, ok)
	assert.Equal(t, "Westminster", ref.Name)

	_, ok = store.Lookup("E999")
	assert.False(t, ok)
}

func TestStoreEmpty(t *testing.T) {
	assert.True(t, NewStore(nil, nil).Empty())
	assert.False(t, NewStore([]Row{{ColConstituencyCode: "E1"}}, nil).Empty())
}

func TestFilterRows(t *testing.T) {
	rows := []Row{
		{ColConstituencyCode: "E1", ColYear: "2029"},
		{ColConstituencyCode: "E1", ColYear: "2030"},
		{ColConstituencyCode: "E2", ColYear: "2029"},
	}

	assert.Len(t, FilterRows(rows, "E1", 2029), 1)
	assert.Len(t, FilterRows(rows, "E1", 0), 2)
	assert.Len(t, FilterRows(rows, "", 2029), 2)
	assert.Len(t, FilterRows(rows, "", 0), 3)
	assert.Empty(t, FilterRows(rows, "E3", 2029))
}

func TestFloatLenientParsing(t *testing.T) {
	row := Row{"a": "12.5", "b": "not-a-number"}
	assert.Equal(t, 12.5, Float(row, "a"))
	assert.Zero(t, Float(row, "b"))
	assert.Zero(t, Float(row, "missing"))
}

func TestLoaderReadsLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "constituency.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("constituency_code,constituency_name\nE1,Aldershot\n"), 0o644))

	loader := NewLoader(dir, "")
	rows, err := loader.LoadFile("constituency.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Aldershot", rows[0][ColConstituencyName])
}

func TestLoaderFetchesFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/constituency.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("constituency_code,constituency_name\nE1,Aldershot\n"))
	}))
	defer srv.Close()

	loader := NewLoader("", srv.URL)
	rows, err := loader.LoadFile("constituency.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = loader.LoadFile("missing.csv")
	assert.Error(t, err)
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(t.TempDir(), "")
	_, err := loader.LoadFile("constituency.csv")
	assert.Error(t, err)
}
