package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	AspectConfig struct {
		W float64 `yaml:"w" validate:"gt=0"`
		H float64 `yaml:"h" validate:"gt=0"`
	}

	TextConfig struct {
		FontSize   string `yaml:"font_size" validate:"required"`
		FontWeight string `yaml:"font_weight" validate:"required"`
		TextAlign  string `yaml:"text_align" validate:"oneof=left center right justify"`
		Color      string `yaml:"color" validate:"required"`
	}

	EditorConfig struct {
		Width          int           `yaml:"width" validate:"min=1"`
		Height         int           `yaml:"height" validate:"min=1"`
		Bleed          float64       `yaml:"bleed" validate:"gte=0"`
		FallbackAspect AspectConfig  `yaml:"fallback_aspect"`
		ProbeTimeout   time.Duration `yaml:"probe_timeout" validate:"gt=0"`
		MediaBase      string        `yaml:"media_base,omitempty" sanitize:"path_clean"`
		SelectedClass  string        `yaml:"selected_class" validate:"required"`
		EditingClass   string        `yaml:"editing_class" validate:"required,nefield=SelectedClass"`
		NoVideo        []string      `yaml:"no_video_templates" validate:"dive,required"`
		Title          TextConfig    `yaml:"title"`
		Subtitle       TextConfig    `yaml:"subtitle"`
	}

	BrowserConfig struct {
		// ControlURL may carry access token of remote browser.
		ControlURL SecretString `yaml:"control_url,omitempty"`
		Bin        string       `yaml:"bin,omitempty" sanitize:"path_clean"`
		Headless   bool         `yaml:"headless"`
	}

	ExportConfig struct {
		Browser      BrowserConfig `yaml:"browser"`
		DeviceScale  float64       `yaml:"device_scale" validate:"gt=0,lte=4"`
		Format       ImageFormat   `yaml:"format"`
		JPEGQuality  int           `yaml:"jpeg_quality" validate:"min=40,max=100"`
		Width        int           `yaml:"width" validate:"gte=0"`
		DPI          int           `yaml:"dpi" validate:"gte=0"`
		NameTemplate string        `yaml:"name_template"`
		Parallel     int           `yaml:"parallel" validate:"gte=0"`
	}

	StoreConfig struct {
		Path string `yaml:"path" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Editor    EditorConfig   `yaml:"editor"`
		Export    ExportConfig   `yaml:"export"`
		Store     StoreConfig    `yaml:"store"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// NameTemplateFieldName must match yaml name of the export name template, it
// is expanded per frame and not during configuration processing.
const NameTemplateFieldName = "name_template"

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(NameTemplateFieldName),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields defined above are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

// Dump renders active configuration, secrets are masked.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
