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

package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/rop"
	"dirpx.dev/rop/class"
	"dirpx.dev/rop/describe"
	"dirpx.dev/rop/internal/cli/ui"
	"dirpx.dev/rop/internal/demo"
)

// ErrUnknownClass is returned for a class name missing from the registry.
var ErrUnknownClass = errors.New("ropctl: unknown class")

// NewClassesCommand creates the classes command.
func NewClassesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List registered classes",
		Long: `List every class in the registry with its parent, the number of
distinct property names it exposes and whether objects can be created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses(cmd.OutOrStdout())
		},
	}
}

func runClasses(w io.Writer) error {
	factories := make(map[string]bool)
	for _, name := range rop.Host().Factories() {
		factories[name] = true
	}

	tbl := ui.NewTable(w, noColor, "CLASS", "PARENT", "PROPERTIES", "OWN", "FACTORY")
	for _, m := range rop.Classes() {
		factory := "no"
		if factories[m.Name()] {
			factory = "yes"
		}
		tbl.AddRow(m.Name(), m.ParentName(), strconv.Itoa(m.Count()), strconv.Itoa(len(m.Own())), factory)
	}
	tbl.Render()
	return nil
}

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	var (
		format    string
		effective bool
	)
	cmd := &cobra.Command{
		Use:   "describe [class...]",
		Short: "Document class properties",
		Long: `Document the properties of the named classes, or of every registered
class when none is named. Inherited properties are listed with the class that
declares them; shadowed ones are shown in parentheses in table output.`,
		Example: `  ropctl describe Sensor
  ropctl describe Base Derived --format json
  ropctl describe --effective --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := describe.ParseFormat(format)
			if err != nil {
				return err
			}
			return runDescribe(cmd.OutOrStdout(), f, effective, args)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(describe.FormatTable), "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&effective, "effective", false, "Only list the property each name resolves to")
	return cmd
}

func runDescribe(w io.Writer, f describe.Format, effective bool, names []string) error {
	metas, err := classes(names)
	if err != nil {
		return err
	}
	opts := []describe.Option{describe.WithTagNamer(demo.TagName)}
	if effective {
		opts = append(opts, describe.EffectiveOnly())
	}
	docs := make([]describe.ClassDoc, 0, len(metas))
	for _, m := range metas {
		docs = append(docs, describe.Class(m, opts...))
	}
	return describe.Write(w, f, docs...)
}

// classes resolves names against the registry; no names selects every class.
func classes(names []string) ([]*class.Meta, error) {
	if len(names) == 0 {
		return rop.Classes(), nil
	}
	out := make([]*class.Meta, 0, len(names))
	var missing []string
	for _, name := range names {
		m, ok := rop.Class(name)
		if !ok {
			missing = append(missing, strconv.Quote(name))
			continue
		}
		out = append(out, m)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, strings.Join(missing, ", "))
	}
	return out, nil
}
