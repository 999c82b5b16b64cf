/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package describe documents class metadata as a table, JSON or YAML.
//
// Only metadata is exported. Instance values are never serialized.
package describe

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/class"
	"dirpx.dev/rop/merge"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("rop(describe): unknown format")

// Format selects the rendering of Write.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates s as a Format. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// PropertyDoc documents one descriptor as seen from a class.
type PropertyDoc struct {
	Name        string   `json:"name" yaml:"name"`
	Class       string   `json:"class" yaml:"class"`
	Tag         int      `json:"tag" yaml:"tag"`
	TagName     string   `json:"tagName,omitempty" yaml:"tagName,omitempty"`
	Type        string   `json:"type" yaml:"type"`
	Order       int      `json:"order" yaml:"order"`
	Choice      bool     `json:"choice,omitempty" yaml:"choice,omitempty"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Custom      bool     `json:"custom,omitempty" yaml:"custom,omitempty"`
	Shadowed    bool     `json:"shadowed,omitempty" yaml:"shadowed,omitempty"`
}

// ClassDoc documents a class and all of its properties, most-derived first.
type ClassDoc struct {
	Name       string        `json:"name" yaml:"name"`
	Parent     string        `json:"parent,omitempty" yaml:"parent,omitempty"`
	Ancestors  []string      `json:"ancestors,omitempty" yaml:"ancestors,omitempty"`
	Count      int           `json:"count" yaml:"count"`
	Properties []PropertyDoc `json:"properties" yaml:"properties"`
}

// Option configures Class.
type Option func(*options)

type options struct {
	tagName   apis.TagNamer
	effective bool
}

// WithTagNamer names tags in the output.
func WithTagNamer(n apis.TagNamer) Option {
	return func(o *options) { o.tagName = n }
}

// EffectiveOnly leaves shadowed declarations out.
func EffectiveOnly() Option {
	return func(o *options) { o.effective = true }
}

// Class snapshots the metadata of m.
func Class(m *class.Meta, opts ...Option) ClassDoc {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	descs := m.All()
	if o.effective {
		descs = m.Effective()
	}
	shadowed := m.Shadowed()
	chain := m.Ancestors()

	doc := ClassDoc{
		Name:       m.Name(),
		Parent:     m.ParentName(),
		Ancestors:  chain,
		Count:      m.Count(),
		Properties: make([]PropertyDoc, 0, len(descs)),
	}
	for _, d := range descs {
		p := PropertyDoc{
			Name:        d.Name(),
			Class:       d.Class(),
			Tag:         int(d.Tag()),
			Type:        d.Type().String(),
			Order:       d.Order(),
			Choice:      d.IsChoice(),
			Description: d.Description(),
			Custom:      d.IsCustom(),
			Shadowed:    shadowed[d.Name()] != d,
		}
		if o.tagName != nil {
			p.TagName = o.tagName(d.Tag())
		}
		if d.IsChoice() {
			own, _ := m.Options(d.Class(), d.Name())
			p.Options = merge.Options(own, chain, func(cls string) ([]string, bool) {
				return m.Options(cls, d.Name())
			})
		}
		doc.Properties = append(doc.Properties, p)
	}
	return doc
}

// Write renders docs to w in format f.
func Write(w io.Writer, f Format, docs ...ClassDoc) error {
	switch f {
	case FormatTable:
		return writeTable(w, docs)
	case FormatJSON:
		b, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("rop(describe): json: %w", err)
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return fmt.Errorf("rop(describe): yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

func writeTable(w io.Writer, docs []ClassDoc) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, doc := range docs {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		header := doc.Name
		if len(doc.Ancestors) > 0 {
			header += " : " + strings.Join(doc.Ancestors, " : ")
		}
		fmt.Fprintln(tw, header)
		fmt.Fprintln(tw, "PROPERTY\tCLASS\tTAG\tTYPE\tORDER\tOPTIONS\tDESCRIPTION")
		for _, p := range doc.Properties {
			name := p.Name
			if p.Shadowed {
				name = "(" + name + ")"
			}
			if p.Custom {
				name += "*"
			}
			tag := p.TagName
			if tag == "" {
				tag = apis.Tag(p.Tag).String()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				name, p.Class, tag, p.Type, p.Order, strings.Join(p.Options, "|"), p.Description)
		}
	}
	return tw.Flush()
}
