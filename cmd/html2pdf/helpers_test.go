package main

// Notes:
// - Test infrastructure shared by the command tests: a recording fake
//   converter and an Environment wired to buffers.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
)

// fakeConverter records requests and returns a canned result or error.
type fakeConverter struct {
	mu       sync.Mutex
	requests []html2pdf.Request
	result   *html2pdf.Result
	err      error
}

func (f *fakeConverter) Convert(_ context.Context, req html2pdf.Request) (*html2pdf.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &html2pdf.Result{
		Path:     req.Output,
		Size:     20 * 1024,
		Format:   req.Format,
		Pages:    3,
		Duration: 1500 * time.Millisecond,
	}, nil
}

func (f *fakeConverter) lastRequest(t *testing.T) html2pdf.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("converter was not called")
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeConverter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	conv     *fakeConverter
	optCount int
}

func newTestEnv(conv *fakeConverter) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		conv:   conv,
	}
	te.Environment = &Environment{
		Now:    time.Now,
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewConverter: func(opts ...html2pdf.Option) (Converter, error) {
			te.optCount = len(opts)
			return conv, nil
		},
		Install: func(context.Context, html2pdf.EngineKind) (string, error) {
			return "/fake/chrome", nil
		},
	}
	return te
}

// writeHTML creates an HTML input file and returns its path.
func writeHTML(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("<html><body>hi</body></html>"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}
