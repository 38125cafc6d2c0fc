// Package ui parses the declarative UI documents scenes attach and answers
// the two questions a renderer has about them: what text to draw and which
// button sits under the pointer.
//
// Documents are YAML:
//
//	elements:
//	  - text: "Score: {ScoreValue}"
//	    x: 10
//	    y: 10
//	  - button: Retry
//	    binding: retry
//	    x: 270
//	    y: 220
//	    width: 100
//	    height: 30
//
// `{Key}` placeholders are filled from the scene data map at draw time.
package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformedSceneAsset is wrapped by every parse failure.
var ErrMalformedSceneAsset = errors.New("malformed scene asset")

// MalformedSceneAssetError names the asset that failed to parse.
type MalformedSceneAssetError struct {
	Asset string
	Err   error
}

func (e *MalformedSceneAssetError) Error() string {
	return fmt.Sprintf("malformed scene asset %s: %v", e.Asset, e.Err)
}

func (e *MalformedSceneAssetError) Unwrap() error {
	return e.Err
}

func (e *MalformedSceneAssetError) Is(target error) bool {
	return target == ErrMalformedSceneAsset
}

type ElementKind int

const (
	ElementText ElementKind = iota
	ElementButton
)

// Element is one positioned UI element. Coordinates are window pixels with
// the origin at the top left.
type Element struct {
	Kind    ElementKind
	Content string
	Binding string
	X, Y    float32
	Width   float32
	Height  float32
}

// Contains reports whether the point lies inside the element's box.
func (e Element) Contains(x, y float32) bool {
	return x >= e.X && x <= e.X+e.Width && y >= e.Y && y <= e.Y+e.Height
}

// Document is a parsed UI program.
type Document struct {
	Name     string
	Elements []Element
}

// Parser turns UI source into a Document.
type Parser interface {
	Parse(name string, src []byte) (*Document, error)
}

// YAMLParser parses the YAML document format.
type YAMLParser struct{}

func (YAMLParser) Parse(name string, src []byte) (*Document, error) {
	return Parse(name, src)
}

type rawElement struct {
	Text    *string `yaml:"text"`
	Button  *string `yaml:"button"`
	Binding string  `yaml:"binding"`
	X       float32 `yaml:"x"`
	Y       float32 `yaml:"y"`
	Width   float32 `yaml:"width"`
	Height  float32 `yaml:"height"`
}

type rawDocument struct {
	Elements []rawElement `yaml:"elements"`
}

// Parse decodes a YAML UI document.
func Parse(name string, src []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, &MalformedSceneAssetError{Asset: name, Err: err}
	}

	doc := &Document{Name: name, Elements: make([]Element, 0, len(raw.Elements))}
	for i, re := range raw.Elements {
		el, err := re.element()
		if err != nil {
			return nil, &MalformedSceneAssetError{Asset: name, Err: fmt.Errorf("element %d: %w", i, err)}
		}
		doc.Elements = append(doc.Elements, el)
	}

	return doc, nil
}

// Load reads and parses a document from disk.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &MalformedSceneAssetError{Asset: path, Err: err}
	}
	return Parse(path, src)
}

func (re rawElement) element() (Element, error) {
	switch {
	case re.Text != nil && re.Button != nil:
		return Element{}, errors.New("element is both text and button")
	case re.Text != nil:
		return Element{
			Kind:    ElementText,
			Content: *re.Text,
			X:       re.X,
			Y:       re.Y,
		}, nil
	case re.Button != nil:
		if re.Binding == "" {
			return Element{}, fmt.Errorf("button %q has no binding", *re.Button)
		}
		width, height := re.Width, re.Height
		if width <= 0 {
			width = float32(len(*re.Button))*6 + 16
		}
		if height <= 0 {
			height = 24
		}
		return Element{
			Kind:    ElementButton,
			Content: *re.Button,
			Binding: re.Binding,
			X:       re.X,
			Y:       re.Y,
			Width:   width,
			Height:  height,
		}, nil
	default:
		return Element{}, errors.New("element needs text or button")
	}
}

// Text returns the element content with `{Key}` placeholders replaced from
// data. Unknown keys are left untouched.
func (d *Document) Text(el Element, data map[string]string) string {
	content := el.Content
	if !strings.Contains(content, "{") {
		return content
	}

	var sb strings.Builder
	for {
		start := strings.IndexByte(content, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(content[start:], '}')
		if end < 0 {
			break
		}
		end += start

		sb.WriteString(content[:start])
		key := content[start+1 : end]
		if value, ok := data[key]; ok {
			sb.WriteString(value)
		} else {
			sb.WriteString(content[start : end+1])
		}
		content = content[end+1:]
	}
	sb.WriteString(content)
	return sb.String()
}

// ButtonAt returns the topmost button containing the point.
func (d *Document) ButtonAt(x, y float32) (Element, bool) {
	for i := len(d.Elements) - 1; i >= 0; i-- {
		el := d.Elements[i]
		if el.Kind == ElementButton && el.Contains(x, y) {
			return el, true
		}
	}
	return Element{}, false
}

// Bindings lists the callback names referenced by buttons.
func (d *Document) Bindings() []string {
	var names []string
	for _, el := range d.Elements {
		if el.Kind == ElementButton {
			names = append(names, el.Binding)
		}
	}
	return names
}
