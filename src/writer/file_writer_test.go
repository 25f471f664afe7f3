package writer

import (
	"bytes"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"datagen/src/spec"
)

func newTestWriter(t *testing.T, schema []spec.ColumnType, delimiter string, compress bool, seed int64) *FileWriter {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out")
	return NewFileWriter(
		path, schema, spec.DefaultConstraints(), delimiter, compress,
		rand.New(rand.NewSource(seed)), nil,
	)
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return bytes.Count(data, []byte("\n"))
}

func TestWriteCountExactRows(t *testing.T) {
	w := newTestWriter(t, []spec.ColumnType{spec.TypeTinyInt, spec.TypeVarchar}, ",", false, 1)
	require.NoError(t, w.WriteCount(2500))
	require.Equal(t, 2500, countLines(t, w.path))

	data, err := os.ReadFile(w.path)
	require.NoError(t, err)
	for _, line := range bytes.Split(bytes.TrimSuffix(data, []byte("\n")), []byte("\n")) {
		require.Len(t, bytes.Split(line, []byte(",")), 2)
	}
}

func TestWriteCountSpansBatches(t *testing.T) {
	w := newTestWriter(t, []spec.ColumnType{spec.TypeTinyInt}, ",", false, 1)
	require.NoError(t, w.WriteCount(BatchRows+5))
	require.Equal(t, BatchRows+5, countLines(t, w.path))
}

func TestWriteSizeLowerBound(t *testing.T) {
	w := newTestWriter(t, []spec.ColumnType{spec.TypeVarchar}, ",", false, 1)
	quota := int64(5000)
	require.NoError(t, w.WriteSize(quota))

	fi, err := os.Stat(w.path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, fi.Size(), quota)
}

func TestWriteTabDelimiter(t *testing.T) {
	w := newTestWriter(t, []spec.ColumnType{spec.TypeInt, spec.TypeInt, spec.TypeInt}, "\t", false, 1)
	require.NoError(t, w.WriteCount(10))

	data, err := os.ReadFile(w.path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSuffix(data, []byte("\n")), []byte("\n"))
	require.Len(t, lines, 10)
	for _, line := range lines {
		require.Len(t, bytes.Split(line, []byte("\t")), 3)
	}
}

func TestCompressedOutputMatchesPlain(t *testing.T) {
	schema := []spec.ColumnType{spec.TypeTinyInt, spec.TypeVarchar, spec.TypeDecimal}

	plain := newTestWriter(t, schema, ",", false, 42)
	require.NoError(t, plain.WriteCount(BatchRows+100))
	want, err := os.ReadFile(plain.path)
	require.NoError(t, err)

	compressed := newTestWriter(t, schema, ",", true, 42)
	require.NoError(t, compressed.WriteCount(BatchRows+100))

	f, err := os.Open(compressed.path)
	require.NoError(t, err)
	defer f.Close()

	// Each appended batch is its own gzip member; the reader consumes the
	// whole multi-member stream.
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	got, err := io.ReadAll(gz)
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	require.Equal(t, want, got)
}
