// Package fs provides file-based storage for crawled pages and the visited
// ledger.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/wikicrawl"
)

// MinSequenceWidth is the minimum number of digits in a file name prefix.
const MinSequenceWidth = 3

// MaxTitleLength caps the sanitized title in file names, in bytes. File
// systems limit names to 255 bytes, and the temporary name adds a dot
// prefix and a random suffix to the sequence, title and extension.
const MaxTitleLength = 200

// Separator is the line under the title header of every written file.
var Separator = strings.Repeat("=", 50)

// SequenceWidth returns the zero-padding width that keeps file names of a
// crawl limited to maxFiles sorted lexically.
func SequenceWidth(maxFiles int) int {
	return max(MinSequenceWidth, len(strconv.Itoa(maxFiles)))
}

// SanitizeTitle converts a page title into a file name fragment. Whitespace
// becomes underscores; path separators, reserved and control characters are
// removed. An empty result becomes "untitled".
func SanitizeTitle(title string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '_'
		case unicode.IsControl(r), r == utf8.RuneError:
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return -1
		}
		return r
	}, strings.TrimSpace(title))

	s = strings.Trim(s, "._")
	if len(s) > MaxTitleLength {
		cut := MaxTitleLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.TrimRight(s[:cut], "._")
	}
	if s == "" {
		return "untitled"
	}
	return s
}

// FileName returns the file name for the page at sequence seq.
// Example: FileName(7, "Ankara Kalesi", 3) → 007_Ankara_Kalesi.txt
func FileName(seq int, title string, width int) string {
	return fmt.Sprintf("%0*d_%s.txt", width, seq, SanitizeTitle(title))
}

// FormatUnit formats a unit as a plain text file with a title header.
func FormatUnit(unit *wikicrawl.Unit) string {
	var b strings.Builder
	b.WriteString("Title: ")
	b.WriteString(unit.Title)
	b.WriteString("\n")
	b.WriteString(Separator)
	b.WriteString("\n\n")
	b.WriteString(unit.Body)
	return b.String()
}

// Ensure Writer implements wikicrawl.Writer at compile time.
var _ wikicrawl.Writer = (*Writer)(nil)

// Writer writes units as numbered text files to a directory.
type Writer struct {
	dir   string
	width int
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithSequenceWidth sets the zero-padding width of file name prefixes.
// Values below MinSequenceWidth are ignored.
func WithSequenceWidth(width int) WriterOption {
	return func(w *Writer) {
		if width >= MinSequenceWidth {
			w.width = width
		}
	}
}

// NewWriter creates a new Writer that writes to dir.
func NewWriter(dir string, opts ...WriterOption) *Writer {
	w := &Writer{dir: dir, width: MinSequenceWidth}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Open creates the output directory and checks that it is writable.
func (w *Writer) Open() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return wikicrawl.WrapError(wikicrawl.ECONFIG, err, "create output directory %s", w.dir)
	}
	f, err := os.CreateTemp(w.dir, ".writable-*")
	if err != nil {
		return wikicrawl.WrapError(wikicrawl.ECONFIG, err, "output directory %s is not writable", w.dir)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// Write writes unit to <dir>/<seq>_<title>.txt and returns the file name.
// The file is written to a temporary name first and renamed into place, so
// a partially written file is never visible under its final name.
func (w *Writer) Write(ctx context.Context, unit *wikicrawl.Unit) (string, error) {
	if err := unit.Validate(); err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EWRITE, err, "invalid unit")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := FileName(unit.Sequence, unit.Title, w.width)
	if err := writeFileAtomic(filepath.Join(w.dir, name), []byte(FormatUnit(unit))); err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EWRITE, err, "write %s", name)
	}
	return name, nil
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it to path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
