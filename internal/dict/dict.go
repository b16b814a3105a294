// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dict implements the session dictionary binding word names to
// resolved definitions.
package dict

import (
	"sort"
	"strings"

	"skookum.dev/fifth/internal/token"
)

// Dict maps lower-cased word names to fully resolved entries (a Definition
// or a Number token, never a bare Word). Entries are installed only when a
// definition block closes; redefinition overwrites the name while any body
// that captured the old entry keeps referencing it. A Dict is owned by a
// single session and is never accessed concurrently.
type Dict struct {
	entries map[string]token.Token
}

// New creates an empty dictionary.
func New() *Dict {
	return &Dict{entries: make(map[string]token.Token)}
}

// Define inserts or overwrites an entry. Names are case-insensitive.
func (d *Dict) Define(name string, t token.Token) {
	d.entries[strings.ToLower(name)] = t
}

// Lookup returns the current entry for a name, case-insensitively.
func (d *Dict) Lookup(name string) (token.Token, bool) {
	t, ok := d.entries[strings.ToLower(name)]
	return t, ok
}

// Len returns the number of defined words.
func (d *Dict) Len() int {
	return len(d.entries)
}

// Words returns the defined names in sorted order.
func (d *Dict) Words() []string {
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
