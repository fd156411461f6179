package csvfile

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/et0-merge/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func merged(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df := dataframe.LoadRecords([][]string{
		{"name", "date", "ET0"},
		{"Bilje", "2021-06-15", "4.2"},
		{"Novo mesto", "2022-07-03", "5.25"},
	}, dataframe.DetectTypes(false))
	require.NoError(t, df.Error())
	return df
}

func TestWriter_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.OutputFile)
	w := NewWriter(path, discardLogger())

	require.NoError(t, w.Load(context.Background(), merged(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,date,ET0\nBilje,2021-06-15,4.2\nNovo mesto,2022-07-03,5.25\n", string(data))
	assert.Equal(t, path, w.Path())
}

func TestWriter_OverwritesIdentically(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.OutputFile)
	require.NoError(t, os.WriteFile(path, []byte("stale contents that are longer than the new file\n"), 0o600))
	w := NewWriter(path, discardLogger())

	require.NoError(t, w.Load(context.Background(), merged(t)))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, w.Load(context.Background(), merged(t)))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotContains(t, string(second), "stale")
}

func TestWriter_UnwritableDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", domain.OutputFile)

	err := NewWriter(path, discardLogger()).Load(context.Background(), merged(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "io", domain.ErrorClass(err))
}
