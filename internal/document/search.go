package document

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// certificateExtensions are the upload formats the portal accepts.
var certificateExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// Search discovers certificate files on disk for the operator tooling.
type Search struct {
	maxFileSize int64
}

// NewSearch creates a search handler with the given file size cap.
func NewSearch(maxFileSize int64) *Search {
	return &Search{maxFileSize: maxFileSize}
}

// SearchDirectory walks a directory for certificate files, optionally
// filtered by a fuzzy filename query.
func (s *Search) SearchDirectory(directory, query string) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	var files []FileInfo

	err = filepath.Walk(absDirectory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Continue on per-file errors
		}

		withinDir, err := s.isPathWithinDirectory(path, absDirectory)
		if err != nil || !withinDir {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		if !certificateExtensions[ext] {
			return nil
		}
		if info.Size() == 0 || (s.maxFileSize > 0 && info.Size() > s.maxFileSize) {
			return nil
		}
		if query != "" && !matchesQuery(info.Name(), query) {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			MimeType:     mimeTypeForExtension(ext),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return files, nil
}

// MimeTypeForPath returns the declared MIME type to use for a file path.
func MimeTypeForPath(path string) string {
	return mimeTypeForExtension(strings.ToLower(filepath.Ext(path)))
}

func mimeTypeForExtension(ext string) string {
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

// isPathWithinDirectory checks that a walked path did not escape the
// configured directory through a symlink.
func (s *Search) isPathWithinDirectory(path, directory string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to evaluate symlinks: %w", err)
		}
		realPath = absPath
	}

	realDir, err := filepath.EvalSymlinks(directory)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate directory symlinks: %w", err)
	}

	realPath = filepath.Clean(realPath)
	realDir = filepath.Clean(realDir)
	if realPath == realDir {
		return true, nil
	}
	return strings.HasPrefix(realPath, realDir+string(filepath.Separator)), nil
}

// matchesQuery performs fuzzy matching on the filename: substring first,
// then all-query-words-present over separator-split words.
func matchesQuery(filename, query string) bool {
	name := strings.ToLower(filename)
	if strings.Contains(name, query) {
		return true
	}

	nameWords := splitIntoWords(strings.TrimSuffix(name, filepath.Ext(name)))
	for _, queryWord := range splitIntoWords(query) {
		found := false
		for _, word := range nameWords {
			if strings.Contains(word, queryWord) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func splitIntoWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch r {
		case ' ', '_', '-', '.', '(', ')', '[', ']':
			return true
		}
		return false
	})
}
