package organizer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

/**************************************************************************************************
** copyFile copies the content of src to dst with the permissions of src. With exclusive set
** the copy fails when dst already exists; otherwise dst is truncated.
**
** @param src - Source file
** @param dst - Destination file
** @param exclusive - Refuse to replace an existing destination
** @return error - Any error that occurred during the copy
**************************************************************************************************/
func copyFile(src, dst string, exclusive bool) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("error reading %s: %w", src, err)
	}

	flags := os.O_WRONLY | os.O_CREATE
	if exclusive {
		flags |= os.O_EXCL
	} else {
		flags |= os.O_TRUNC
	}
	out, err := os.OpenFile(dst, flags, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("error creating %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("error closing %s: %w", dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("error copying %s to %s: %w", src, dst, err)
	}
	return nil
}

// setTimes sets the access and modification times of path.
func setTimes(path string, atime, mtime time.Time) error {
	if err := os.Chtimes(path, atime, mtime); err != nil {
		return fmt.Errorf("error setting times of %s: %w", path, err)
	}
	return nil
}

// exists reports whether something is already at path.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// sidecarPath names the copy of a sidecar: the destination base name with the sidecar's
// extension, next to the destination.
func sidecarPath(destination, sidecar string) string {
	ext := filepath.Ext(destination)
	base := strings.TrimSuffix(filepath.Base(destination), ext)
	return filepath.Join(filepath.Dir(destination), base+filepath.Ext(sidecar))
}

// relative returns path relative to base, or path itself when it cannot be expressed so.
func relative(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
