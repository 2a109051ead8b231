// FILE: lixenwraith/unilog/sanitizer/sanitizer.go
// Package sanitizer rewrites log text rune by rune according to filter and transform rules.
package sanitizer

import (
	"encoding/hex"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Runes not printable per strconv.IsPrint
	FilterControl                         // unicode.IsControl
	FilterLineBreak                       // '\n', '\r', '\v', '\f', U+2028, U+2029
	FilterEscape                          // ESC, the start of ANSI sequences
)

// Transform flags for character transformation
const (
	TransformStrip     uint64 = 1 << iota // Removes the character
	TransformHexEncode                    // Encodes the UTF-8 bytes as "<XXYY>"
	TransformSpace                        // Replaces the character with a single space
)

// PolicyPreset defines pre-configured sanitization policies
type PolicyPreset string

const (
	PolicyRaw     PolicyPreset = "raw"      // No-op
	PolicyTxt     PolicyPreset = "txt"      // Hex-encodes everything non-printable
	PolicyOneLine PolicyPreset = "one_line" // Folds line breaks into spaces, hex-encodes other non-printables
	PolicyTerm    PolicyPreset = "term"     // Strips ESC so echoed text cannot drive the terminal
)

type rule struct {
	filter    uint64
	transform uint64
}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw: {},
	PolicyTxt: {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyOneLine: {
		{filter: FilterLineBreak, transform: TransformSpace},
		{filter: FilterNonPrintable, transform: TransformHexEncode},
	},
	PolicyTerm: {{filter: FilterEscape, transform: TransformStrip}},
}

// filterOrder keeps filter evaluation deterministic
var filterOrder = []struct {
	flag  uint64
	check func(rune) bool
}{
	{FilterNonPrintable, func(r rune) bool { return !strconv.IsPrint(r) }},
	{FilterControl, unicode.IsControl},
	{FilterLineBreak, func(r rune) bool {
		switch r {
		case '\n', '\r', '\v', '\f', '\u2028', '\u2029':
			return true
		}
		return false
	}},
	{FilterEscape, func(r rune) bool { return r == 0x1b }},
}

// Sanitizer applies its rules in order; the first matching rule wins
type Sanitizer struct {
	rules []rule
}

// New creates a Sanitizer without rules
func New() *Sanitizer {
	return &Sanitizer{}
}

// Rule appends a custom rule
func (s *Sanitizer) Rule(filter, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a preset
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize returns data with every rule applied
func (s *Sanitizer) Sanitize(data string) string {
	return string(s.Append(nil, data))
}

// Append appends the sanitized form of data to dst.
// Invalid UTF-8 bytes are treated as non-printable.
func (s *Sanitizer) Append(dst []byte, data string) []byte {
	if len(s.rules) == 0 {
		return append(dst, data...)
	}

	for i := 0; i < len(data); {
		r, size := utf8.DecodeRuneInString(data[i:])
		if r == utf8.RuneError && size == 1 {
			dst = s.appendInvalid(dst, data[i])
			i++
			continue
		}

		matched := false
		for _, rl := range s.rules {
			if matches(r, rl.filter) {
				dst = transform(dst, r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			dst = append(dst, data[i:i+size]...)
		}
		i += size
	}
	return dst
}

// appendInvalid handles a byte that is not valid UTF-8
func (s *Sanitizer) appendInvalid(dst []byte, b byte) []byte {
	for _, rl := range s.rules {
		if rl.filter&FilterNonPrintable == 0 {
			continue
		}
		switch {
		case rl.transform&TransformStrip != 0:
			return dst
		case rl.transform&TransformSpace != 0:
			return append(dst, ' ')
		case rl.transform&TransformHexEncode != 0:
			dst = append(dst, '<')
			dst = hex.AppendEncode(dst, []byte{b})
			return append(dst, '>')
		}
	}
	return append(dst, b)
}

func matches(r rune, mask uint64) bool {
	for _, f := range filterOrder {
		if mask&f.flag != 0 && f.check(r) {
			return true
		}
	}
	return false
}

func transform(dst []byte, r rune, mask uint64) []byte {
	switch {
	case mask&TransformStrip != 0:
		return dst
	case mask&TransformSpace != 0:
		return append(dst, ' ')
	case mask&TransformHexEncode != 0:
		var rb [utf8.UTFMax]byte
		n := utf8.EncodeRune(rb[:], r)
		dst = append(dst, '<')
		dst = hex.AppendEncode(dst, rb[:n])
		return append(dst, '>')
	}
	return utf8.AppendRune(dst, r)
}
