package words

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Normalizes(t *testing.T) {
	d := New([]string{"  Apple ", "apple", "BANANA", "", "it's", "naïve", "kiwi", "two words", "\u212Aiwi"})
	assert.Equal(t, []string{"apple", "banana", "kiwi"}, d.Words())
	assert.Equal(t, 3, d.Len())
}

func TestFilter_InclusiveBounds(t *testing.T) {
	d := New([]string{"cat", "tests", "puzzles", "extraordinary", "hangmanhangm"})
	assert.Equal(t, []string{"tests", "puzzles", "hangmanhangm"}, d.Filter(5, 12))
	assert.Equal(t, []string{"cat"}, d.Filter(3, 3))
	assert.Empty(t, d.Filter(20, 30))
}

func TestPickWord(t *testing.T) {
	d := New([]string{"cat", "tests", "gopher", "extraordinary"})
	for i := 0; i < 50; i++ {
		w, err := d.PickWord(5, 12)
		require.NoError(t, err)
		assert.Contains(t, []string{"tests", "gopher"}, w)
	}

	_, err := d.PickWord(20, 30)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestLoadAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\r\nBeta\n\ngamma\n"), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, d.Words())

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	d, err = Read(strings.NewReader("one\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
}

func TestEmbedded(t *testing.T) {
	d, err := Embedded()
	require.NoError(t, err)
	assert.Greater(t, d.Len(), 100)
	w, err := d.PickWord(5, 12)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(w), 5)
	assert.LessOrEqual(t, len(w), 12)
}

func TestDownload_OnlyWhenMissing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("planet\nrocket\n"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "sub", "dict.txt")
	require.NoError(t, Download(context.Background(), srv.Client(), srv.URL, path))
	require.NoError(t, Download(context.Background(), srv.Client(), srv.URL, path))
	assert.EqualValues(t, 1, hits.Load())

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"planet", "rocket"}, d.Words())
}

func TestDownload_BadStatusLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "dict.txt")
	err := Download(context.Background(), srv.Client(), srv.URL, path)
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEnsure_FallsBackToEmbedded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d, err := Ensure(context.Background(), srv.Client(), srv.URL, filepath.Join(t.TempDir(), "dict.txt"))
	require.NoError(t, err)
	embedded, err := Embedded()
	require.NoError(t, err)
	assert.Equal(t, embedded.Words(), d.Words())
}

func TestEnsure_UsesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte("meadow\n"), 0o644))

	d, err := Ensure(context.Background(), nil, "", path)
	require.NoError(t, err)
	assert.Equal(t, []string{"meadow"}, d.Words())
}
