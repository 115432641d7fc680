package pattern

import (
	"github.com/coregx/coregex"
	"github.com/projectdiscovery/gologger"
)

// Matches compiles "^" + ToRegex(p) + "$" with the host regex engine and
// reports whether s is a full-string match. Compilation failures are
// logged and treated as "does not match"; they never panic and never
// propagate to the caller.
func Matches(p Node, s string) bool {
	re, err := Compile(p)
	if err != nil {
		gologger.Warning().Msgf("pattern: failed to compile %q: %v", ToRegexAnchored(p), err)
		return false
	}
	return re.MatchString(s)
}

// ToRegexAnchored returns the anchored regex string used for full-match
// decisions. The anchors live here, not inside ToRegex, so the compiler's
// own ToRegex output stays unanchored and anchoring is applied only by
// the matcher.
func ToRegexAnchored(p Node) string {
	return "^" + p.ToRegex() + "$"
}

// Compile compiles the anchored regex for p with the host engine.
func Compile(p Node) (*coregex.Regex, error) {
	return coregex.Compile(ToRegexAnchored(p))
}
