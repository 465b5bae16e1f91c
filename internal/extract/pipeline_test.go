// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-meta/pkg/types"
)

const sampleText = "Implementasi Blockchain untuk Sistem Keuangan\n" +
	"Oleh: Ahmad Fauzan\n" +
	"Jakarta, tahun 2022\n" +
	"Abstrak: Penelitian ini membahas penerapan blockchain.\n" +
	"Kata kunci: blockchain, fintech, security"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	p, err := NewPipeline(types.DefaultExtractorConfig(), opts...)
	require.NoError(t, err)
	return p
}

// --- fake text source ---

type fakeSource struct {
	texts map[string]string
	errs  map[string]error
	block chan struct{} // when non-nil, Text waits on it or ctx
}

func (f *fakeSource) Text(ctx context.Context, path string) (string, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err, ok := f.errs[path]; ok {
		return "", err
	}
	return f.texts[path], nil
}

func TestNewPipeline_InvalidConfig(t *testing.T) {
	cfg := types.DefaultExtractorConfig()
	cfg.KeywordMarkers = nil
	_, err := NewPipeline(cfg)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestExtractOne_Sample(t *testing.T) {
	p := newTestPipeline(t)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	meta := types.FileMeta{Name: "fauzan.pdf", Size: 2048, ExtractedAt: at}

	rec, err := p.ExtractOne(sampleText, meta)
	require.NoError(t, err)

	assert.Equal(t, "Implementasi Blockchain untuk Sistem Keuangan", rec.Title)
	assert.Contains(t, rec.Author, "Ahmad Fauzan")
	assert.Equal(t, "2022", rec.Year)
	assert.Regexp(t, "^Penelitian ini membahas", rec.Abstract)
	assert.Equal(t, []string{"blockchain", "fintech", "security"}, rec.Keywords)
	assert.Equal(t, "fauzan.pdf", rec.FileName)
	assert.Equal(t, int64(2048), rec.FileSize)
	assert.Equal(t, at, rec.ExtractedAt)
}

func TestExtractOne_NoStructure(t *testing.T) {
	p := newTestPipeline(t)
	// Too short for a title, no markers, no year.
	rec, err := p.ExtractOne("lorem ip\n-- 42 --", types.FileMeta{Name: "x.pdf"})
	require.NoError(t, err)

	assert.Empty(t, rec.Title)
	assert.Empty(t, rec.Author)
	assert.Empty(t, rec.Year)
	assert.Empty(t, rec.Abstract)
	assert.NotNil(t, rec.Keywords)
	assert.Empty(t, rec.Keywords)
	assert.Equal(t, "x.pdf", rec.FileName)
}

func TestExtractOne_Unreadable(t *testing.T) {
	p := newTestPipeline(t)
	for _, raw := range []string{"", "   \n\t\f  "} {
		_, err := p.ExtractOne(raw, types.FileMeta{Name: "scan.pdf"})
		assert.ErrorIs(t, err, ErrUnreadableDocument)
	}
}

func TestExtractOne_Idempotent(t *testing.T) {
	p := newTestPipeline(t)
	meta := types.FileMeta{Name: "a.pdf"}
	first, err := p.ExtractOne(sampleText, meta)
	require.NoError(t, err)
	for range 5 {
		again, err := p.ExtractOne(sampleText, meta)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestExtractBatch_Isolation(t *testing.T) {
	p := newTestPipeline(t)
	docs := []Document{
		{Text: sampleText, Meta: types.FileMeta{Name: "one.pdf"}},
		{Meta: types.FileMeta{Name: "two.pdf"}, Err: errors.New("encrypted")},
		{Text: "Another Paper About Distributed Systems", Meta: types.FileMeta{Name: "three.pdf"}},
	}

	res := p.ExtractBatch(docs)

	assert.Equal(t, 3, res.TotalFiles)
	assert.Equal(t, 2, res.Successful)
	assert.Equal(t, 1, res.Failed)
	assert.True(t, res.HasFailures())
	require.Len(t, res.Results, 2)
	assert.Equal(t, "one.pdf", res.Results[0].FileName)
	assert.Equal(t, "three.pdf", res.Results[1].FileName)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "two.pdf", res.Errors[0].File)
	assert.Contains(t, res.Errors[0].Reason, "unreadable document")
	assert.Contains(t, res.Errors[0].Reason, "encrypted")
}

func TestExtractBatch_EmptyTextFails(t *testing.T) {
	p := newTestPipeline(t)
	res := p.ExtractBatch([]Document{{Text: "", Meta: types.FileMeta{Name: "blank.pdf"}}})
	assert.Equal(t, 0, res.Successful)
	assert.Equal(t, 1, res.Failed)
	assert.NotNil(t, res.Results)
}

func TestExtractBatch_Empty(t *testing.T) {
	p := newTestPipeline(t)
	res := p.ExtractBatch(nil)
	assert.Equal(t, 0, res.TotalFiles)
	assert.False(t, res.HasFailures())
	assert.Empty(t, res.Results)
}

func TestExtractBatch_PreservesOrder(t *testing.T) {
	for _, workers := range []int{1, 3, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			p := newTestPipeline(t, WithWorkers(workers))
			var docs []Document
			for i := range 40 {
				name := fmt.Sprintf("doc-%02d.pdf", i)
				var err error
				if i%7 == 0 {
					err = errors.New("no text layer")
				}
				docs = append(docs, Document{
					Text: fmt.Sprintf("Paper Number %02d On Scheduling\nPublished 2010", i),
					Meta: types.FileMeta{Name: name},
					Err:  err,
				})
			}

			res := p.ExtractBatch(docs)

			var wantOK, wantFailed []string
			for i, d := range docs {
				if i%7 == 0 {
					wantFailed = append(wantFailed, d.Meta.Name)
				} else {
					wantOK = append(wantOK, d.Meta.Name)
				}
			}
			var gotOK, gotFailed []string
			for _, r := range res.Results {
				gotOK = append(gotOK, r.FileName)
			}
			for _, e := range res.Errors {
				gotFailed = append(gotFailed, e.File)
			}
			assert.Equal(t, wantOK, gotOK)
			assert.Equal(t, wantFailed, gotFailed)
			assert.Equal(t, res.TotalFiles, res.Successful+res.Failed)
		})
	}
}

func TestExtractFiles(t *testing.T) {
	p := newTestPipeline(t, WithWorkers(2))
	src := &fakeSource{
		texts: map[string]string{"/lib/a.pdf": sampleText, "/lib/c.pdf": "Yet Another Title For Testing"},
		errs:  map[string]error{"/lib/b.pdf": errors.New("malformed xref")},
	}
	files := []types.FileMeta{
		{Name: "a.pdf", Path: "/lib/a.pdf", Size: 10},
		{Name: "b.pdf", Path: "/lib/b.pdf"},
		{Name: "c.pdf", Path: "/lib/c.pdf"},
	}

	res := p.ExtractFiles(context.Background(), src, files)

	assert.Equal(t, 2, res.Successful)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "b.pdf", res.Errors[0].File)
	assert.Contains(t, res.Errors[0].Reason, "malformed xref")
	require.Len(t, res.Results, 2)
	assert.Equal(t, int64(10), res.Results[0].FileSize)
	assert.False(t, res.Results[0].ExtractedAt.IsZero())
}

func TestExtractFiles_Cancelled(t *testing.T) {
	p := newTestPipeline(t, WithWorkers(1))
	src := &fakeSource{block: make(chan struct{})}
	files := []types.FileMeta{{Name: "a.pdf"}, {Name: "b.pdf"}, {Name: "c.pdf"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := p.ExtractFiles(ctx, src, files)

	assert.Equal(t, 3, res.TotalFiles)
	assert.Equal(t, 0, res.Successful)
	assert.Equal(t, 3, res.Failed)
	for i, e := range res.Errors {
		assert.Equal(t, files[i].Name, e.File)
		assert.Equal(t, context.Canceled.Error(), e.Reason)
	}
}
