package ioutils

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates a directory and all parent directories if they don't
// exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// ExtractZip extracts a zip archive into destDir.
//
// wantMember names a directory entry (e.g. "ICBHI_final_database/") that
// must be present in the archive; extraction fails up front if it is
// missing, which catches a truncated or wrong archive before any disk
// writes. Pass "" to skip the check.
//
// Entries that would escape destDir are rejected.
//
// Example:
//
//	// Produces /data/temp/ICBHI_final_database/...
//	err := ioutils.ExtractZip(archivePath, "/data/temp", "ICBHI_final_database/")
func ExtractZip(archivePath, destDir, wantMember string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	if wantMember != "" {
		found := false
		for _, f := range reader.File {
			if f.Name == wantMember {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("archive %s does not contain %q", archivePath, wantMember)
		}
	}

	for _, f := range reader.File {
		if err := extractZipEntry(f, destDir); err != nil {
			return err
		}
	}

	return nil
}

// extractZipEntry writes a single archive entry under destDir.
func extractZipEntry(f *zip.File, destDir string) error {
	target := filepath.Join(destDir, filepath.FromSlash(f.Name))

	// Reject entries that traverse outside the destination directory.
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry %q escapes destination directory", f.Name)
	}

	if f.FileInfo().IsDir() {
		return EnsureDir(target)
	}

	if err := EnsureDir(filepath.Dir(target)); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// ScanAudioFiles returns the paths of files in dir whose name ends with one
// of the given extensions, matched case-insensitively.
//
// Only direct children of dir are considered. Paths are returned in
// lexical order, so enumeration order (and therefore recording ID
// assignment) is deterministic.
//
// Example:
//
//	paths, err := ioutils.ScanAudioFiles(corpusDir, []string{".wav", ".wave"})
func ScanAudioFiles(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		for _, ext := range extensions {
			if strings.HasSuffix(name, strings.ToLower(ext)) {
				paths = append(paths, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}

	return paths, nil
}
