package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"carousel/geom"
	"carousel/slide"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Editor.Width != 1080 || cfg.Editor.Height != 1350 {
		t.Errorf("slide size = %dx%d", cfg.Editor.Width, cfg.Editor.Height)
	}
	if cfg.Editor.ProbeTimeout != 2*time.Second {
		t.Errorf("ProbeTimeout = %v", cfg.Editor.ProbeTimeout)
	}
	if cfg.Export.NameTemplate != `{{ .Carousel | slug }}-{{ printf "%02d" .Number }}.{{ .Ext }}` {
		t.Errorf("name template was expanded: %q", cfg.Export.NameTemplate)
	}
	if cfg.Logging.ConsoleLogger.Level != LogLevelNormal || cfg.Logging.FileLogger.Level != LogLevelNone {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
editor:
  bleed: 4
  fallback_aspect:
    w: 4
    h: 5
  probe_timeout: 500ms
  no_video_templates: [quote, minimal]
  title:
    font_size: 30px
    font_weight: "800"
    text_align: center
    color: "#000000"
export:
  browser:
    control_url: ws://127.0.0.1:9222/devtools/browser/secret-token
  format: jpeg
  jpeg_quality: 85
  width: 540
store:
  path: ` + filepath.Join(tmpDir, "db", "drafts.db") + `
logging:
  console:
    level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Editor.Bleed != 4 || cfg.Editor.ProbeTimeout != 500*time.Millisecond {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if cfg.Editor.Width != 1080 {
		t.Errorf("default width lost: %d", cfg.Editor.Width)
	}
	if cfg.Logging.ConsoleLogger.Level != LogLevelDebug {
		t.Errorf("console level = %v", cfg.Logging.ConsoleLogger.Level)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "db")); err != nil {
		t.Errorf("store directory not created: %v", err)
	}

	opts := cfg.Editor.Options()
	if opts.Size != (geom.Size{W: 1080, H: 1350}) || opts.Aspect != (geom.Aspect{W: 4, H: 5}) {
		t.Errorf("options = %+v", opts)
	}
	if len(opts.ForbiddenVideo) != 2 {
		t.Errorf("ForbiddenVideo = %v", opts.ForbiddenVideo)
	}
	if d := opts.Defaults[slide.ElementTitle]; d.FontSize != "30px" || d.TextAlign != "center" {
		t.Errorf("title defaults = %+v", d)
	}
	if d := opts.Defaults[slide.ElementBackground]; d.ObjectPosition != "50% 50%" {
		t.Errorf("background defaults = %+v", d)
	}

	enc := cfg.Export.EncodeOptions()
	if enc.Format != imaging.JPEG || enc.Quality != 85 || enc.Width != 540 || enc.DPI != 72 {
		t.Errorf("encode options = %+v", enc)
	}
	if cfg.Export.ChromeOptions().ControlURL == "" {
		t.Error("control url lost")
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "secret-token") {
		t.Error("dump reveals browser control url")
	}
	if !strings.Contains(string(data), "format: jpeg") {
		t.Errorf("dump lacks format:\n%s", data)
	}
}

func TestLoadConfiguration_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "version: 1\neditor:\n  zoom: 2\n"},
		{"bad version", "version: 2\n"},
		{"bad format", "version: 1\nexport:\n  format: gif\n"},
		{"zero aspect", "version: 1\neditor:\n  fallback_aspect:\n    w: 0\n    h: 9\n"},
		{"same classes", "version: 1\neditor:\n  editing_class: editor-selected\n"},
		{"bad align", "version: 1\neditor:\n  subtitle:\n    text_align: middle\n"},
		{"quality", "version: 1\nexport:\n  jpeg_quality: 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfiguration(path); err == nil {
				t.Error("LoadConfiguration() succeeded")
			}
		})
	}

	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "editor:") || !strings.Contains(string(data), "name_template:") {
		t.Errorf("unexpected template output:\n%s", data)
	}
}

func TestCleanFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"carousel-1", "carousel-1"},
		{"../etc" + string(os.PathSeparator) + "passwd", "etcpasswd"},
		{"...", "_bad_file_name_"},
		{"", "_bad_file_name_"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
