package main

// Notes:
// - runConvertCmd end-to-end paths are covered by TestRunMain_* in
//   main_test.go. This file tests the resolution helpers directly.

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestResolveInputPath - Positional Argument Handling
// ---------------------------------------------------------------------------

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	existing := writeHTML(t, t.TempDir(), "deck.html")

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{"existing file", []string{existing}, existing, nil},
		{"https URL passes through", []string{"https://example.com/deck.html"}, "https://example.com/deck.html", nil},
		{"file URL passes through", []string{"file:///tmp/deck.html"}, "file:///tmp/deck.html", nil},
		{"no args", nil, "", ErrNoInput},
		{"two args", []string{existing, "extra.html"}, "", ErrTooManyArgs},
		{"missing file", []string{filepath.Join(t.TempDir(), "nope.html")}, "", ErrInputNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveInputPath(tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolveInputPath() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveInputPath() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveInputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output Derivation
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		flagOutput string
		defaultDir string
		want       string
		wantErr    error
	}{
		{
			name:  "derived from input",
			input: filepath.Join("talks", "deck.html"),
			want:  filepath.Join("talks", "deck.pdf"),
		},
		{
			name:       "flag wins",
			input:      "deck.html",
			flagOutput: "out.pdf",
			defaultDir: "/srv/pdf",
			want:       "out.pdf",
		},
		{
			name:       "default dir replaces input dir",
			input:      filepath.Join("talks", "deck.html"),
			defaultDir: filepath.Join("build", "pdf"),
			want:       filepath.Join("build", "pdf", "deck.pdf"),
		},
		{
			name:    "URL without output",
			input:   "https://example.com/deck.html",
			wantErr: ErrNoOutput,
		},
		{
			name:       "URL with output",
			input:      "https://example.com/deck.html",
			flagOutput: "deck.pdf",
			want:       "deck.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveOutputPath(tt.input, tt.flagOutput, tt.defaultDir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolveOutputPath() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveOutputPath() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI Wins Over Config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("set flags override config", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Format:  "a4",
			Engine:  "rod",
			Timeout: "30s",
			Browser: config.BrowserConfig{Bin: "/usr/bin/chromium"},
		}
		flags := &convertFlags{
			format: "slides",
			timing: timingFlags{timeout: "2m", readinessTimeout: "45s", networkIdle: "1s"},
			browser: browserFlags{
				engine:    "playwright",
				bin:       "/opt/chrome",
				noSandbox: true,
			},
		}

		mergeFlags(flags, cfg)

		if cfg.Format != "slides" {
			t.Errorf("Format = %q, want slides", cfg.Format)
		}
		if cfg.Engine != "playwright" {
			t.Errorf("Engine = %q, want playwright", cfg.Engine)
		}
		if cfg.Timeout != "2m" {
			t.Errorf("Timeout = %q, want 2m", cfg.Timeout)
		}
		if cfg.ReadinessTimeout != "45s" {
			t.Errorf("ReadinessTimeout = %q, want 45s", cfg.ReadinessTimeout)
		}
		if cfg.NetworkIdle != "1s" {
			t.Errorf("NetworkIdle = %q, want 1s", cfg.NetworkIdle)
		}
		if cfg.Browser.Bin != "/opt/chrome" {
			t.Errorf("Browser.Bin = %q, want /opt/chrome", cfg.Browser.Bin)
		}
		if !cfg.Browser.NoSandbox {
			t.Error("Browser.NoSandbox = false, want true")
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Format:  "a4",
			Timeout: "30s",
			Browser: config.BrowserConfig{NoSandbox: true},
		}

		mergeFlags(&convertFlags{}, cfg)

		if cfg.Format != "a4" {
			t.Errorf("Format = %q, want a4", cfg.Format)
		}
		if cfg.Timeout != "30s" {
			t.Errorf("Timeout = %q, want 30s", cfg.Timeout)
		}
		if !cfg.Browser.NoSandbox {
			t.Error("Browser.NoSandbox reset by absent flag")
		}
	})
}

// ---------------------------------------------------------------------------
// TestConverterOptions - Config to Library Options
// ---------------------------------------------------------------------------

func TestConverterOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       config.Config
		wantCount int
		wantErr   error
	}{
		{
			name:      "empty config only selects engine",
			cfg:       config.Config{},
			wantCount: 1,
		},
		{
			name: "every field set",
			cfg: config.Config{
				Timeout:          "90s",
				ReadinessTimeout: "20s",
				NetworkIdle:      "250ms",
				Browser:          config.BrowserConfig{Bin: "/opt/chrome", NoSandbox: true},
			},
			wantCount: 6,
		},
		{
			name:    "bad timeout",
			cfg:     config.Config{Timeout: "soon"},
			wantErr: config.ErrInvalidDuration,
		},
		{
			name:    "zero network idle",
			cfg:     config.Config{NetworkIdle: "0s"},
			wantErr: config.ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, err := converterOptions(&tt.cfg, html2pdf.EngineRod)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("converterOptions() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("converterOptions() unexpected error: %v", err)
			}
			if len(opts) != tt.wantCount {
				t.Errorf("len(options) = %d, want %d", len(opts), tt.wantCount)
			}
			if _, err := html2pdf.NewConverter(opts...); err != nil {
				t.Errorf("NewConverter(options) error = %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveConvertParams - Rejections Before Launch
// ---------------------------------------------------------------------------

func TestResolveConvertParams(t *testing.T) {
	t.Parallel()

	input := writeHTML(t, t.TempDir(), "deck.html")

	t.Run("defaults to custom format and rod", func(t *testing.T) {
		t.Parallel()

		p, err := resolveConvertParams([]string{input}, "", config.DefaultConfig())
		if err != nil {
			t.Fatalf("resolveConvertParams() error = %v", err)
		}
		if p.format != html2pdf.FormatCustom {
			t.Errorf("format = %q, want %q", p.format, html2pdf.FormatCustom)
		}
		if p.engine != html2pdf.EngineRod {
			t.Errorf("engine = %q, want %q", p.engine, html2pdf.EngineRod)
		}
	})

	t.Run("unknown format carries hint", func(t *testing.T) {
		t.Parallel()

		_, err := resolveConvertParams([]string{input}, "", &config.Config{Format: "Slides"})
		if !errors.Is(err, html2pdf.ErrUnknownFormat) {
			t.Fatalf("error = %v, want ErrUnknownFormat", err)
		}
		if !strings.Contains(err.Error(), "html2pdf formats") {
			t.Errorf("error %q should point at the formats command", err)
		}
	})

	t.Run("unknown engine", func(t *testing.T) {
		t.Parallel()

		_, err := resolveConvertParams([]string{input}, "", &config.Config{Engine: "webkit"})
		if !errors.Is(err, html2pdf.ErrInvalidEngine) {
			t.Errorf("error = %v, want ErrInvalidEngine", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestStageLogger / TestPrintResult - Output Lines
// ---------------------------------------------------------------------------

func TestStageLogger(t *testing.T) {
	t.Parallel()

	env := newTestEnv(&fakeConverter{})
	hook := stageLogger(env.Environment)
	hook(html2pdf.StageFontsReady, 1234567*time.Microsecond)

	want := "  fonts-ready      1.235s\n"
	if env.stderr.String() != want {
		t.Errorf("stage line = %q, want %q", env.stderr, want)
	}
}

func TestPrintResult(t *testing.T) {
	t.Parallel()

	r := &html2pdf.Result{
		Path:     "deck.pdf",
		Size:     150 * 1024,
		Format:   "slides",
		Pages:    12,
		Duration: 2 * time.Second,
	}

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(&fakeConverter{})
		printResult(env.Environment, r, false)

		if got, want := env.stdout.String(), "PDF saved: deck.pdf  (150 KB, format: slides)\n"; got != want {
			t.Errorf("stdout = %q, want %q", got, want)
		}
		if env.stderr.Len() != 0 {
			t.Errorf("stderr = %q, want empty", env.stderr)
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(&fakeConverter{})
		printResult(env.Environment, r, true)

		if got, want := env.stderr.String(), "  pages: 12, took 2s\n"; got != want {
			t.Errorf("stderr = %q, want %q", got, want)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWithHint - Hint Attachment
// ---------------------------------------------------------------------------

func TestWithHint(t *testing.T) {
	t.Parallel()

	if err := withHint(ErrNoInput, ""); err != ErrNoInput {
		t.Errorf("withHint(err, \"\") = %v, want err unchanged", err)
	}

	err := withHint(ErrNoInput, "\n  hint: pass a file")
	if !errors.Is(err, ErrNoInput) {
		t.Error("hinted error lost its sentinel")
	}
	if err.Error() != "no input specified\n  hint: pass a file" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestConversionHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		engine html2pdf.EngineKind
		want   string
	}{
		{"playwright launch", html2pdf.ErrEngineUnavailable, html2pdf.EnginePlaywright, "install --engine playwright"},
		{"timeout", html2pdf.ErrRenderTimeout, html2pdf.EngineRod, "--timeout"},
		{"page load", html2pdf.ErrPageLoad, html2pdf.EngineRod, "input path or URL"},
		{"other", errors.New("boom"), html2pdf.EngineRod, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := conversionHint(tt.err, tt.engine)
			if tt.want == "" {
				if got != "" {
					t.Errorf("conversionHint() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("conversionHint() = %q, want substring %q", got, tt.want)
			}
		})
	}
}
