// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scanner splits raw input lines into case-folded lexemes.
package scanner

import "strings"

// Lex splits a line into its ordered whitespace-separated lexemes, each
// folded to lower case. Runs of whitespace never yield empty lexemes, and an
// empty or all-whitespace line yields nil. Lexing cannot fail.
func Lex(line string) []string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}
