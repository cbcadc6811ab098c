package duckdb

import (
	"os"
	"time"
)

// FileFingerprint identifies an imported file by path, size and mtime.
// A file whose fingerprint is unchanged is not imported again.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile fingerprints an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Same reports whether two fingerprints describe the same file contents.
func (fp FileFingerprint) Same(other FileFingerprint) bool {
	return fp.Path == other.Path && fp.Size == other.Size && fp.ModTime.Equal(other.ModTime)
}
