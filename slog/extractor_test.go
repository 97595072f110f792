package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/mock"
	wikislog "github.com/fwojciec/wikicrawl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs title, size and link count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string, source wikicrawl.CanonicalURL) (*wikicrawl.Article, error) {
				return &wikicrawl.Article{
					Title: "Ankara",
					Body:  "Başkent.\n\n",
					Links: wikicrawl.NewLinkSet("https://tr.wikipedia.org/wiki/T%C3%BCrkiye"),
				}, nil
			},
		}

		extractor := wikislog.NewLoggingExtractor(inner, logger)
		article, err := extractor.Extract("<html></html>", "https://tr.wikipedia.org/wiki/Ankara")

		require.NoError(t, err)
		assert.Equal(t, "Ankara", article.Title)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "url=https://tr.wikipedia.org/wiki/Ankara")
		assert.Contains(t, output, "title=Ankara")
		assert.Contains(t, output, "bytes=11")
		assert.Contains(t, output, "links=1")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string, source wikicrawl.CanonicalURL) (*wikicrawl.Article, error) {
				return nil, errors.New("no content root")
			},
		}

		extractor := wikislog.NewLoggingExtractor(inner, logger)
		_, err := extractor.Extract("<html></html>", "https://tr.wikipedia.org/wiki/Ankara")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "links=0")
		assert.Contains(t, output, "err=\"no content root\"")
	})
}
