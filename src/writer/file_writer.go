package writer

import (
	"io"
	"math/rand"
	"os"

	"github.com/docker/go-units"
	"github.com/klauspost/compress/gzip"

	dgerrors "datagen/src/errors"
	"datagen/src/spec"
	"datagen/src/util"
)

// BatchRows caps how many rows are buffered in memory before they are
// appended to the file.
const BatchRows = 100000

var endlineBytes = []byte("\n")

// FileWriter streams generated rows into one output file. Each batch is
// built in memory and appended with O_APPEND, so the file is never truncated
// mid-run; with compression enabled every batch becomes one gzip member of a
// multi-member stream.
type FileWriter struct {
	path        string
	schema      []spec.ColumnType
	constraints *spec.ConstraintSet
	delimiter   []byte
	compress    bool
	rng         *rand.Rand
	progress    *util.ProgressLogger
}

// NewFileWriter creates a writer for a single file task. The random source
// is owned by this writer and must not be shared. progress may be nil.
func NewFileWriter(
	path string,
	schema []spec.ColumnType,
	constraints *spec.ConstraintSet,
	delimiter string,
	compress bool,
	rng *rand.Rand,
	progress *util.ProgressLogger,
) *FileWriter {
	return &FileWriter{
		path:        path,
		schema:      schema,
		constraints: constraints,
		delimiter:   []byte(delimiter),
		compress:    compress,
		rng:         rng,
		progress:    progress,
	}
}

// WriteCount appends rows until exactly quota rows have been written. The
// final batch is sized to the remainder.
func (w *FileWriter) WriteCount(quota int64) error {
	remaining := quota
	for remaining > 0 {
		n := min(remaining, int64(BatchRows))
		if err := w.writeBatch(int(n)); err != nil {
			return dgerrors.WrapError(dgerrors.ErrWriteDataFile, err, w.path)
		}
		remaining -= n
	}
	return nil
}

// WriteSize appends full batches until the file's on-disk size reaches the
// quota. The size is only checked after whole batches, so the result is a
// lower bound, never an exact size.
func (w *FileWriter) WriteSize(quota int64) error {
	for {
		if err := w.writeBatch(BatchRows); err != nil {
			return dgerrors.WrapError(dgerrors.ErrWriteDataFile, err, w.path)
		}
		fi, err := os.Stat(w.path)
		if err != nil {
			return dgerrors.WrapError(dgerrors.ErrWriteDataFile, err, w.path)
		}
		if fi.Size() >= quota {
			return nil
		}
	}
}

func (w *FileWriter) writeBatch(rows int) error {
	buf := make([]byte, 0, 64*units.KiB)
	for i := 0; i < rows; i++ {
		buf = spec.AppendRow(buf, w.schema, w.constraints, w.rng, w.delimiter, endlineBytes)
	}

	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	var out io.Writer = util.NewCountingWriter(f, w.progress)
	if w.compress {
		gz := gzip.NewWriter(out)
		if _, err := gz.Write(buf); err != nil {
			f.Close()
			return err
		}
		if err := gz.Close(); err != nil {
			f.Close()
			return err
		}
	} else if _, err := out.Write(buf); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
