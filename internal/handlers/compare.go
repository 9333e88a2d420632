package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/crucial707/file-comparator/internal/diff"
	"github.com/crucial707/file-comparator/internal/metrics"
)

// allowedExtensions is the fixed allow-list for uploaded files.
var allowedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".py":   true,
	".go":   true,
	".csv":  true,
	".log":  true,
	".json": true,
}

// uploadPrefix matches the numeric prefix this handler (and the upload tool
// before it) puts on stored filenames, e.g. "1719216000_1719216000.123456_".
var uploadPrefix = regexp.MustCompile(`^[0-9]+_[0-9]+\.(?:[0-9]+)?_`)

// CompareHandler diffs two uploaded text files.
type CompareHandler struct {
	UploadDir string
}

// Compare accepts a multipart form with fields file1 and file2, stores both
// files in the upload directory, and responds with the unified diff between
// them. Disallowed extensions are a 415.
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	file1, header1, err := r.FormFile("file1")
	if err != nil {
		JSONError(w, "two files required (file1, file2)", http.StatusBadRequest)
		return
	}
	defer file1.Close()

	file2, header2, err := r.FormFile("file2")
	if err != nil {
		JSONError(w, "two files required (file1, file2)", http.StatusBadRequest)
		return
	}
	defer file2.Close()

	if !allowedFile(header1.Filename) || !allowedFile(header2.Filename) {
		JSONError(w, "unsupported file type. allowed: "+allowedList(), http.StatusUnsupportedMediaType)
		return
	}

	name1 := CleanName(header1.Filename)
	name2 := CleanName(header2.Filename)

	before, err := readLines(file1)
	if err != nil {
		JSONError(w, "could not read files", http.StatusBadRequest)
		return
	}
	after, err := readLines(file2)
	if err != nil {
		JSONError(w, "could not read files", http.StatusBadRequest)
		return
	}

	// Best effort; a failed store does not block the comparison.
	h.storeUpload(name1, before)
	h.storeUpload(name2, after)

	diffText := diff.Unified(before, after, name1, name2)
	metrics.IncComparisonsComputed()

	JSON(w, map[string]string{
		"filename1": name1,
		"filename2": name2,
		"diff":      diffText,
	}, http.StatusOK)
}

// ServeUpload returns the raw bytes of a previously stored upload.
// The name is reduced to its base before use, so the route cannot escape
// the upload directory.
func (h *CompareHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(strings.TrimPrefix(r.URL.Path, "/uploads/"))
	if name == "." || name == "/" || name == "" {
		JSONError(w, "file not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.UploadDir, name))
}

// CleanName strips the stored-upload numeric prefix from a filename and
// reduces it to its base, giving the display name.
func CleanName(filename string) string {
	name := filepath.Base(filepath.ToSlash(filename))
	return uploadPrefix.ReplaceAllString(name, "")
}

func allowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

func allowedList() string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

// readLines reads the whole upload as text, split into lines that keep
// their trailing newlines.
func readLines(f multipart.File) ([]string, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return diff.Lines(string(data)), nil
}

// storeUpload writes lines to the upload dir under a timestamped prefix,
// so stored names never collide and CleanName can recover the original.
func (h *CompareHandler) storeUpload(name string, lines []string) {
	if h.UploadDir == "" {
		return
	}
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		slog.Warn("store upload: mkdir", "dir", h.UploadDir, "error", err)
		return
	}
	now := time.Now()
	stored := fmt.Sprintf("%d_%d.%06d_%s", now.Unix(), now.Unix(), now.Nanosecond()/1000, name)
	path := filepath.Join(h.UploadDir, stored)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), 0o644); err != nil {
		slog.Warn("store upload: write", "path", path, "error", err)
	}
}
