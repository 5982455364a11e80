//go:build integration

package html2pdf

// Notes:
// - These tests launch a real Chromium. The rod cases need a system Chrome
//   or 'html2pdf install' beforehand; the playwright case needs 'html2pdf
//   install --engine playwright' and is skipped when its driver is missing.
// - Page sizes are checked through internal/pdfinfo with a 1mm tolerance.

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-html2pdf/internal/pdfinfo"
)

const testTimeout = 60 * time.Second

const slideHTML = `<!doctype html>
<html><head><style>
  body { margin: 0; }
  .slide { width: 1280px; height: 720px; break-after: page; background: #1e293b; color: white; }
  .glass { backdrop-filter: blur(12px); }
</style></head>
<body>
  <div class="slide"><h1 class="glass">One</h1></div>
  <div class="slide"><h1>Two</h1></div>
</body></html>`

const atPageHTML = `<!doctype html>
<html><head><style>
  @page { size: 100mm 150mm; margin: 0; }
  body { margin: 0; }
</style></head>
<body><p>Postcard</p></body></html>`

func writeHTMLFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.html")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func convertReal(t *testing.T, engine, source, format string) (*Result, *pdfinfo.Info) {
	t.Helper()

	conv, err := NewConverter(WithEngine(engine), WithTimeout(testTimeout))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	out := filepath.Join(t.TempDir(), "out.pdf")
	result, err := conv.Convert(ctx, Request{Source: source, Output: out, Format: format})
	if err != nil {
		if engine == string(EnginePlaywright) && errors.Is(err, ErrEngineUnavailable) {
			t.Skipf("playwright not installed: %v", err)
		}
		t.Fatalf("Convert() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	info, err := pdfinfo.Inspect(data)
	if err != nil {
		t.Fatalf("output is not a valid PDF: %v", err)
	}
	return result, info
}

func assertPageMM(t *testing.T, info *pdfinfo.Info, wantW, wantH float64) {
	t.Helper()
	gotW := pdfinfo.PointsToMillimeters(info.Width)
	gotH := pdfinfo.PointsToMillimeters(info.Height)
	if math.Abs(gotW-wantW) > 1 || math.Abs(gotH-wantH) > 1 {
		t.Errorf("page = %.1fx%.1fmm, want %.1fx%.1fmm", gotW, gotH, wantW, wantH)
	}
}

func TestIntegration_FixedFormats(t *testing.T) {
	src := writeHTMLFile(t, slideHTML)

	for _, engine := range EngineKinds() {
		t.Run(engine+"/slides", func(t *testing.T) {
			result, info := convertReal(t, engine, src, FormatSlides)
			if result.Pages != 2 || info.Pages != 2 {
				t.Errorf("pages = %d (info %d), want 2", result.Pages, info.Pages)
			}
			// 1280x720px at 96dpi
			assertPageMM(t, info, 1280*25.4/96, 720*25.4/96)
		})

		t.Run(engine+"/a4", func(t *testing.T) {
			_, info := convertReal(t, engine, src, FormatA4)
			assertPageMM(t, info, 210, 297)
		})
	}
}

func TestIntegration_CustomUsesAtPage(t *testing.T) {
	src := writeHTMLFile(t, atPageHTML)

	_, info := convertReal(t, string(EngineRod), src, FormatCustom)
	assertPageMM(t, info, 100, 150)
}

func TestIntegration_URLSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(slideHTML))
	}))
	defer srv.Close()

	result, _ := convertReal(t, string(EngineRod), srv.URL, FormatSlides)
	if result.Pages != 2 {
		t.Errorf("pages = %d, want 2", result.Pages)
	}
}

func TestIntegration_HangingResourceTimesOut(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{
			name: "fetch",
			page: `<!doctype html><html><body><p>x</p><script>fetch("/stall")</script></body></html>`,
		},
		{
			name: "web font",
			page: `<!doctype html><html><head><style>
  @font-face { font-family: "Stalled"; src: url("/stall") format("woff2"); }
  body { font-family: "Stalled", sans-serif; }
</style></head><body><p>Never settles</p></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			release := make(chan struct{})
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/stall" {
					select {
					case <-release:
					case <-r.Context().Done():
					}
					return
				}
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte(tt.page))
			}))
			defer srv.Close()
			defer close(release)

			conv, err := NewConverter(WithReadinessTimeout(3 * time.Second))
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}

			out := filepath.Join(t.TempDir(), "out.pdf")
			_, err = conv.Convert(context.Background(), Request{Source: srv.URL, Output: out, Format: FormatA4})
			if !errors.Is(err, ErrRenderTimeout) {
				t.Fatalf("Convert() error = %v, want ErrRenderTimeout", err)
			}
			if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
				t.Error("output written despite timeout")
			}
		})
	}
}
