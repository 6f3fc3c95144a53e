// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that carry no combining mark under NFD but should still fold
// to their base letter. The Turkish dotless i is the one that matters
// most; the rest cover the same problem in other alphabets.
var foldLetters = map[rune]rune{
	'ı': 'i',
	'ł': 'l',
	'ø': 'o',
	'đ': 'd',
}

// NormalizeText lowercases s, strips diacritics and trims whitespace, so
// that "Çocuk", "çocuk" and "cocuk" compare equal.
func NormalizeText(s string) string {
	t := transform.Chain(
		cases.Lower(language.Und),
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if folded, ok := foldLetters[r]; ok {
				return folded
			}
			return r
		}),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.TrimSpace(strings.ToLower(s))
	}
	return strings.TrimSpace(out)
}

// Match reports whether target contains query after normalization.
func Match(query, target string) bool {
	return strings.Contains(NormalizeText(target), NormalizeText(query))
}

// Search returns every video in the tree whose title or channel title
// matches query, in depth-first tree order, without repeats.
// An empty or blank query matches nothing.
func Search(groups []Group, query string) []Video {
	q := NormalizeText(query)
	if q == "" {
		return nil
	}

	var matches []Video
	var walk func([]Subgroup)
	walk = func(subgroups []Subgroup) {
		for _, sg := range subgroups {
			for _, v := range sg.Videos {
				if strings.Contains(NormalizeText(v.Snippet.Title), q) ||
					strings.Contains(NormalizeText(v.Snippet.ChannelTitle), q) {
					matches = append(matches, v)
				}
			}
			walk(sg.Subgroups)
		}
	}
	for _, g := range groups {
		walk(g.Subgroups)
	}

	return Deduplicate(matches)
}
