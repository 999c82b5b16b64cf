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

// Package merge holds the pure algorithms that combine a class's own
// properties with those of its ancestors.
//
// Every function is deterministic and side-effect free. Inputs are never
// modified; outputs are freshly allocated. The functions are generic over
// Named so they work on descriptors and on plain test values alike.
//
// Ordering contract: "most-derived first". A class's own properties come
// first in registration order, followed by each ancestor's own properties in
// ancestor-chain order (nearest ancestor first), each in its own registration
// order.
package merge

import (
	"cmp"
	"slices"
)

// Named is anything that carries a property name and a per-class registration order.
type Named interface {
	Name() string
	Order() int
}

// Chain builds the ancestor chain of a class: its parent first, then the
// parent's own chain in order. Nothing is deduplicated. An empty parent
// yields an empty chain.
func Chain(parent string, parentChain []string) []string {
	if parent == "" {
		return []string{}
	}
	out := make([]string, 0, 1+len(parentChain))
	out = append(out, parent)
	return append(out, parentChain...)
}

// Ordered returns the values of m sorted by registration order.
func Ordered[D Named](m map[string]D) []D {
	out := make([]D, 0, len(m))
	for _, d := range m {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b D) int { return cmp.Compare(a.Order(), b.Order()) })
	return out
}

// All concatenates own with the ordered list of every class in chain.
// Duplicate names are kept.
func All[D Named](own []D, chain []string, lists map[string][]D) []D {
	n := len(own)
	for _, c := range chain {
		n += len(lists[c])
	}
	out := make([]D, 0, n)
	out = append(out, own...)
	for _, c := range chain {
		out = append(out, lists[c]...)
	}
	return out
}

// Shadowed builds the name-keyed view where nearer classes replace farther ones.
// The root-most ancestor is inserted first and own properties last.
func Shadowed[D Named](own []D, chain []string, lists map[string][]D) map[string]D {
	out := make(map[string]D)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, d := range lists[chain[i]] {
			out[d.Name()] = d
		}
	}
	for _, d := range own {
		out[d.Name()] = d
	}
	return out
}

// Effective keeps the first occurrence of each name in all, preserving order.
// Applied to the output of All it yields the shadowed view in most-derived-first order.
func Effective[D Named](all []D) []D {
	seen := make(map[string]struct{}, len(all))
	out := make([]D, 0, len(all))
	for _, d := range all {
		if _, dup := seen[d.Name()]; dup {
			continue
		}
		seen[d.Name()] = struct{}{}
		out = append(out, d)
	}
	return out
}

// ByName returns every entry of all called name, in the order of all.
func ByName[D Named](all []D, name string) []D {
	var out []D
	for _, d := range all {
		if d.Name() == name {
			out = append(out, d)
		}
	}
	return out
}

// Names returns the distinct property names of all in first-seen order.
func Names[D Named](all []D) []string {
	seen := make(map[string]struct{}, len(all))
	out := make([]string, 0, len(all))
	for _, d := range all {
		if _, dup := seen[d.Name()]; dup {
			continue
		}
		seen[d.Name()] = struct{}{}
		out = append(out, d.Name())
	}
	return out
}

// Options merges choice option lists: own first, then for each class in chain
// the options that lookup reports for it, skipping strings already present.
// String equality is the only de-duplication criterion. Duplicates inside own
// are kept so that own indexes stay valid.
func Options(own []string, chain []string, lookup func(class string) ([]string, bool)) []string {
	out := make([]string, 0, len(own))
	seen := make(map[string]struct{}, len(own))
	for _, o := range own {
		out = append(out, o)
		seen[o] = struct{}{}
	}
	for _, c := range chain {
		opts, ok := lookup(c)
		if !ok {
			continue
		}
		for _, o := range opts {
			if _, dup := seen[o]; dup {
				continue
			}
			seen[o] = struct{}{}
			out = append(out, o)
		}
	}
	return out
}

// Duplicates returns the option strings that occur more than once in opts,
// each reported once in first-repeat order.
func Duplicates(opts []string) []string {
	seen := make(map[string]int, len(opts))
	var out []string
	for _, o := range opts {
		seen[o]++
		if seen[o] == 2 {
			out = append(out, o)
		}
	}
	return out
}
