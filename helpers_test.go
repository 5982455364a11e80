package html2pdf

// Notes:
// - fakeEngine/fakeSession stand in for a browser. Every session records the
//   calls made on it and whether Close ran, so tests can assert that no
//   session outlives a conversion.
// - minimalPDF builds a structurally valid PDF with correct xref offsets so
//   the export check (pdfinfo.Inspect) accepts it.

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// withEngine injects a test engine.
func withEngine(e engine) Option {
	return func(c *Converter) {
		c.engine = e
	}
}

// ---------------------------------------------------------------------------
// Fake Engine
// ---------------------------------------------------------------------------

type fakeEngine struct {
	mu        sync.Mutex
	launchErr error
	configure func(*fakeSession)
	sessions  []*fakeSession
}

func (e *fakeEngine) Launch(ctx context.Context) (session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.launchErr != nil {
		return nil, e.launchErr
	}

	s := &fakeSession{pdf: minimalPDF(1, 960, 540)}
	if e.configure != nil {
		e.configure(s)
	}

	e.mu.Lock()
	e.sessions = append(e.sessions, s)
	e.mu.Unlock()
	return s, nil
}

func (e *fakeEngine) launches() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

// openSessions counts launched sessions that were never closed.
func (e *fakeEngine) openSessions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, s := range e.sessions {
		if s.closeCount() == 0 {
			n++
		}
	}
	return n
}

func (e *fakeEngine) lastSession(t *testing.T) *fakeSession {
	t.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.sessions) == 0 {
		t.Fatal("no session launched")
	}
	return e.sessions[len(e.sessions)-1]
}

// ---------------------------------------------------------------------------
// Fake Session
// ---------------------------------------------------------------------------

type fakeSession struct {
	mu    sync.Mutex
	calls []string

	pageOpts pageOptions
	url      string
	css      string
	export   *ExportOptions
	closes   int

	openErr     error
	navigateErr error
	idleErr     error
	injectErr   error
	printErr    error
	closeErr    error

	// blockFonts makes WaitFonts hang until its context ends.
	blockFonts bool
	// panicOn panics inside the named step.
	panicOn string

	pdf []byte
}

func (s *fakeSession) record(step string) {
	s.mu.Lock()
	s.calls = append(s.calls, step)
	s.mu.Unlock()
	if s.panicOn == step {
		panic("fake " + step + " exploded")
	}
}

func (s *fakeSession) OpenPage(_ context.Context, opts pageOptions) error {
	s.record("open")
	s.pageOpts = opts
	return s.openErr
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	s.record("navigate")
	s.url = url
	return s.navigateErr
}

func (s *fakeSession) WaitNetworkIdle(_ context.Context) error {
	s.record("idle")
	return s.idleErr
}

func (s *fakeSession) WaitFonts(ctx context.Context) error {
	s.record("fonts")
	if s.blockFonts {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (s *fakeSession) InjectStyle(_ context.Context, css string) error {
	s.record("inject")
	s.css = css
	return s.injectErr
}

func (s *fakeSession) PrintPDF(_ context.Context, opts *ExportOptions) ([]byte, error) {
	s.record("print")
	s.export = opts
	if s.printErr != nil {
		return nil, s.printErr
	}
	return s.pdf, nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	s.calls = append(s.calls, "close")
	s.closes++
	s.mu.Unlock()
	return s.closeErr
}

func (s *fakeSession) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

func (s *fakeSession) callLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// minimalPDF returns a PDF with the given page count and page size in points.
func minimalPDF(pages int, width, height float64) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := ""
	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", i+3)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, pages))

	for range pages {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Resources << >> >>", width, height))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

// writeSource creates an HTML input file and returns its path.
func writeSource(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "deck.html")
	if err := os.WriteFile(path, []byte("<html><body><h1>Deck</h1></body></html>"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}
