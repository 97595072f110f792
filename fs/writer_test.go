package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "spaces become underscores",
			title: "Recep Tayyip Erdoğan",
			want:  "Recep_Tayyip_Erdoğan",
		},
		{
			name:  "removes path separators",
			title: "AC/DC",
			want:  "ACDC",
		},
		{
			name:  "removes reserved characters",
			title: "What? A: B",
			want:  "What_A_B",
		},
		{
			name:  "replaces tabs and newlines",
			title: "Tab\tand\nnewline",
			want:  "Tab_and_newline",
		},
		{
			name:  "trims leading dots",
			title: "../etc",
			want:  "etc",
		},
		{
			name:  "blank title",
			title: "   ",
			want:  "untitled",
		},
		{
			name:  "only dots",
			title: "...",
			want:  "untitled",
		},
		{
			name:  "caps length in bytes",
			title: strings.Repeat("ş", 150),
			want:  strings.Repeat("ş", fs.MaxTitleLength/2),
		},
		{
			name:  "cuts long titles on a rune boundary",
			title: strings.Repeat("日本", 45),
			want:  strings.Repeat("日本", 33),
		},
		{
			name:  "drops trailing separators left by the cut",
			title: strings.Repeat("a", fs.MaxTitleLength-1) + " b",
			want:  strings.Repeat("a", fs.MaxTitleLength-1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.SanitizeTitle(tt.title))
		})
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "007_Ankara_Kalesi.txt", fs.FileName(7, "Ankara Kalesi", 3))
	assert.Equal(t, "00012_X.txt", fs.FileName(12, "X", 5))
	assert.Equal(t, "1000_X.txt", fs.FileName(1000, "X", 3), "numbers wider than the padding are kept")
}

func TestSequenceWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, fs.SequenceWidth(0))
	assert.Equal(t, 3, fs.SequenceWidth(50))
	assert.Equal(t, 3, fs.SequenceWidth(999))
	assert.Equal(t, 4, fs.SequenceWidth(1000))
	assert.Equal(t, 5, fs.SequenceWidth(99999))
}

func TestFormatUnit(t *testing.T) {
	t.Parallel()

	got := fs.FormatUnit(&wikicrawl.Unit{
		Title: "Ankara",
		Body:  "# Tarihçe\n\nAnkara, Türkiye'nin başkentidir.\n\n",
	})

	want := "Title: Ankara\n" +
		"==================================================\n" +
		"\n" +
		"# Tarihçe\n\nAnkara, Türkiye'nin başkentidir.\n\n"
	assert.Equal(t, want, got)
}

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	unit := func(seq int, title string) *wikicrawl.Unit {
		return &wikicrawl.Unit{
			Sequence: seq,
			Title:    title,
			Body:     "Body of " + title + "\n\n",
			URL:      "https://tr.wikipedia.org/wiki/" + wikicrawl.CanonicalURL(title),
		}
	}

	t.Run("writes a numbered text file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		name, err := w.Write(context.Background(), unit(1, "Recep Tayyip Erdoğan"))

		require.NoError(t, err)
		assert.Equal(t, "001_Recep_Tayyip_Erdoğan.txt", name)
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, "Title: Recep Tayyip Erdoğan\n"+fs.Separator+"\n\nBody of Recep Tayyip Erdoğan\n\n", string(content))
	})

	t.Run("writes a page with a long non-Latin title", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir, fs.WithSequenceWidth(fs.SequenceWidth(1_000_000)))
		title := strings.Repeat("日本", 45)

		name, err := w.Write(context.Background(), unit(1, title))

		require.NoError(t, err)
		assert.Equal(t, "0000001_"+strings.Repeat("日本", 33)+".txt", name)
		assert.LessOrEqual(t, len(name), 255)
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "Title: "+title+"\n"))
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		for i := 1; i <= 3; i++ {
			_, err := w.Write(context.Background(), unit(i, "Page"))
			require.NoError(t, err)
		}

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.Equal(t, []string{"001_Page.txt", "002_Page.txt", "003_Page.txt"}, names)
	})

	t.Run("replaces a file written under the same sequence", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		_, err := w.Write(context.Background(), &wikicrawl.Unit{Sequence: 1, Title: "A", Body: "old", URL: "https://tr.wikipedia.org/wiki/A"})
		require.NoError(t, err)
		name, err := w.Write(context.Background(), &wikicrawl.Unit{Sequence: 1, Title: "A", Body: "new", URL: "https://tr.wikipedia.org/wiki/A"})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(string(content), "\n\nnew"))
	})

	t.Run("uses the configured sequence width", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir(), fs.WithSequenceWidth(5))

		name, err := w.Write(context.Background(), unit(42, "Ankara"))

		require.NoError(t, err)
		assert.Equal(t, "00042_Ankara.txt", name)
	})

	t.Run("ignores widths below the minimum", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir(), fs.WithSequenceWidth(1))

		name, err := w.Write(context.Background(), unit(4, "Ankara"))

		require.NoError(t, err)
		assert.Equal(t, "004_Ankara.txt", name)
	})

	t.Run("rejects an invalid unit", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		_, err := w.Write(context.Background(), &wikicrawl.Unit{Sequence: 0, Title: "A"})

		require.Error(t, err)
		assert.Equal(t, wikicrawl.EWRITE, wikicrawl.ErrorCode(err))
	})

	t.Run("returns EWRITE when the directory cannot be created", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		blocker := filepath.Join(base, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		w := fs.NewWriter(filepath.Join(blocker, "out"))

		_, err := w.Write(context.Background(), unit(1, "A"))

		require.Error(t, err)
		assert.Equal(t, wikicrawl.EWRITE, wikicrawl.ErrorCode(err))
	})

	t.Run("respects a canceled context", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := w.Write(ctx, unit(1, "A"))

		require.ErrorIs(t, err, context.Canceled)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestWriter_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates the output directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "output")
		w := fs.NewWriter(dir)

		require.NoError(t, w.Open())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "the writability check file is removed")
	})

	t.Run("returns ECONFIG when the path is a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		w := fs.NewWriter(path)

		err := w.Open()

		require.Error(t, err)
		assert.Equal(t, wikicrawl.ECONFIG, wikicrawl.ErrorCode(err))
	})
}
