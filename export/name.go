package export

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
)

// DefaultNameTemplate names frames inside bundle.
const DefaultNameTemplate = `{{ .Carousel | slug }}-{{ printf "%02d" .Number }}.{{ .Ext }}`

// NameValues are available to frame name template.
type NameValues struct {
	Carousel string
	// Index is 0 based slide index, Number is 1 based.
	Index  int
	Number int
	Count  int
	Ext    string
}

// Namer expands frame name template.
type Namer struct {
	tmpl *template.Template
}

// NewNamer parses name template, default one is used when text is empty.
func NewNamer(text string) (*Namer, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultNameTemplate
	}
	funcMap := sprig.FuncMap()
	funcMap["slug"] = slug.Make

	tmpl, err := template.New("name").Funcs(funcMap).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse frame name template: %w", err)
	}
	return &Namer{tmpl: tmpl}, nil
}

// Name returns bundle entry name of a frame. Directory parts are dropped
// and empty results replaced with slide number.
func (n *Namer) Name(v NameValues) (string, error) {
	buf := new(bytes.Buffer)
	if err := n.tmpl.Execute(buf, v); err != nil {
		return "", fmt.Errorf("unable to expand frame name template: %w", err)
	}
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(buf.String()), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = fmt.Sprintf("%02d.%s", v.Number, v.Ext)
	}
	return name, nil
}
