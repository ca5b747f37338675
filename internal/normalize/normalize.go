// Package normalize canonicalizes organization names into matching keys.
//
// Sanctions determinations are treated as a binary legal fact, so matching
// is exact-match on the canonical form only. No fuzzy or edit-distance
// comparison happens anywhere in the system; two names either reduce to the
// same key or they do not.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// orgSuffixes is the closed list of legal-entity-form tokens stripped from
// the end of a name. These words carry no semantic identity. Words that can
// plausibly be part of a proper name (national, fund, trust, society,
// international, institute, group, foundation) are deliberately absent and
// must never be added here.
var orgSuffixes = map[string]bool{
	"inc":          true,
	"incorporated": true,
	"corp":         true,
	"corporation":  true,
	"co":           true,
	"company":      true,
	"ltd":          true,
	"limited":      true,
	"llc":          true,
	"llp":          true,
	"lp":           true,
	"pc":           true,
	"pllc":         true,
	"association":  true,
	"organization": true,
	"organisation": true,
}

var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Key reduces a free-text organization name to its canonical matching form.
// The function is deterministic, side-effect free, and idempotent:
// Key(Key(s)) == Key(s) for all s. Empty input yields the empty string.
func Key(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		// Transform only errs on malformed UTF-8; fall back to the raw
		// bytes so a garbage byte cannot make matching non-deterministic.
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	if len(tokens) > 1 && tokens[0] == "the" {
		tokens = tokens[1:]
	}
	// Strip trailing suffix tokens until none match. Each pass removes a
	// token and the loop keeps at least one, so it terminates on its own;
	// stopping any earlier would leave a strippable suffix behind and
	// break idempotence.
	for len(tokens) > 1 && orgSuffixes[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}

	return strings.Join(tokens, " ")
}
