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
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/rop"
	"dirpx.dev/rop/class"
	"dirpx.dev/rop/internal/cli/ui"
	"dirpx.dev/rop/internal/demo"
	"dirpx.dev/rop/property"
)

var (
	// ErrBadAssignment is returned for a --set value without "=".
	ErrBadAssignment = errors.New("ropctl: assignment must be name=value")
	// ErrUnknownProperty is returned when a --set names no property of the class.
	ErrUnknownProperty = errors.New("ropctl: unknown property")
)

// NewPropsCommand creates the props command.
func NewPropsCommand() *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "props <class>",
		Short: "Create an object and print its property values",
		Long: `Create an object of the class with its installed factory, apply the
--set assignments in order and print every property value, inherited and
shadowed ones included.

An assignment targets the nearest property of that name. Prefix the name
with a class to reach a shadowed ancestor property (Base.mode=On). Choice
properties accept an option name or its index.`,
		Example: `  ropctl props Sensor
  ropctl props Sensor --set reading=21.5 --set level=High
  ropctl props Derived --set mode=Super --set Base.mode=Auto`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProps(cmd.OutOrStdout(), args[0], sets)
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Assign a property (name=value or Class.name=value), repeatable")
	return cmd
}

func runProps(w io.Writer, className string, sets []string) error {
	obj, err := rop.New(className)
	if err != nil {
		return err
	}
	defer func() { _ = rop.Destroy(obj) }()

	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		if !ok {
			return fmt.Errorf("%w: %q", ErrBadAssignment, set)
		}
		h := lookup(obj, key)
		if !h.Valid() {
			return fmt.Errorf("%w: %q on %s", ErrUnknownProperty, key, className)
		}
		if err := h.Parse(value); err != nil {
			return err
		}
	}

	kv := ui.NewKeyValue(w, noColor)
	kv.Add("class", class.Of(obj).Name())
	kv.Add("ancestors", strings.Join(class.Of(obj).Ancestors(), " > "))
	kv.Render()
	fmt.Fprintln(w)

	tbl := ui.NewTable(w, noColor, "PROPERTY", "CLASS", "TAG", "TYPE", "VALUE")
	for _, h := range class.Handles(obj) {
		tag := demo.TagName(h.Tag())
		if tag == "" {
			tag = h.Tag().String()
		}
		tbl.AddRow(h.Name(), h.Class(), tag, h.Type().String(), h.Format())
	}
	tbl.Render()
	return nil
}

// lookup resolves "name" to the nearest property and "Class.name" to the
// property declared by Class. Class names may contain dots ("pkg.Type").
func lookup(obj class.Object, key string) property.Handle {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return class.PropertyIn(obj, key[i+1:], key[:i])
	}
	return class.Property(obj, key)
}

// NewExtensionsCommand creates the extensions command.
func NewExtensionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "List installed extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl := ui.NewTable(cmd.OutOrStdout(), noColor, "EXTENSION", "INSTALL ID", "CLASSES", "FACTORIES")
			for _, inst := range rop.Host().Extensions() {
				tbl.AddRow(inst.Name, inst.ID.String(),
					strings.Join(inst.Classes, ","), strings.Join(inst.Factories, ","))
			}
			tbl.Render()
			return nil
		},
	}
}
