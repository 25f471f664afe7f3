package util

import (
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/pingcap/errors"

	dgerrors "datagen/src/errors"
)

// CheckDirWritable checks that dir exists, is a directory and is writable by
// probing with a uniquely named temporary file.
func CheckDirWritable(dir string) error {
	st, err := os.Stat(dir)
	if err != nil {
		return dgerrors.WrapError(dgerrors.ErrTargetNotWritable, err, dir)
	}
	if !st.IsDir() {
		return dgerrors.WrapError(dgerrors.ErrTargetNotWritable,
			errors.Errorf("%s is not a directory", dir), dir)
	}

	probe := filepath.Join(dir, ".datagen-"+uuid.New().String()+".tmp")
	if err := os.WriteFile(probe, []byte(""), 0o600); err != nil {
		return dgerrors.WrapError(dgerrors.ErrTargetNotWritable, err, dir)
	}
	return dgerrors.WrapError(dgerrors.ErrTargetNotWritable, os.Remove(probe), dir)
}

// GetDiskAvailableSpace returns the free bytes on the filesystem holding
// dir. The caller should guarantee that dir is a valid directory.
func GetDiskAvailableSpace(dir string) (uint64, error) {
	fs := syscall.Statfs_t{}
	if err := syscall.Statfs(dir, &fs); err != nil {
		return 0, dgerrors.WrapError(dgerrors.ErrGetAvailableSpace, err, dir)
	}
	return fs.Bavail * uint64(fs.Bsize), nil
}
