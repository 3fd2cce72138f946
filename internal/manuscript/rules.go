package manuscript

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// RuleName identifies a rewrite rule.
type RuleName string

const (
	RuleStripEmptyVersion    RuleName = "strip-empty-version"
	RuleCompactTimecode      RuleName = "compact-timecode"
	RuleStripNarrationMarker RuleName = "strip-narration-marker"
	RuleRestructureCue       RuleName = "restructure-cue"
	RuleAlignContinuation    RuleName = "align-continuation"
)

const (
	// ideographicSpace is U+3000, the full-width space used as cue padding.
	ideographicSpace = "　"
	// markerGap separates a cue number, its marker and the body.
	markerGap = ideographicSpace + ideographicSpace
	// ContinuationIndent aligns follow-up body lines under the first one.
	ContinuationIndent = "　　　　　　　　　"
)

// RewriteRule is one structural substitution applied to the whole document.
// Patterns are compiled in multiline mode so ^ and $ anchor at line breaks.
type RewriteRule struct {
	Name        RuleName
	Pattern     *regexp2.Regexp
	Replacement string
}

// Apply runs the rule over text. A rule that cannot be evaluated leaves the
// text unchanged.
func (r RewriteRule) Apply(text string) string {
	if r.Pattern == nil {
		return text
	}
	out, err := r.Pattern.Replace(text, r.Replacement, -1, -1)
	if err != nil {
		return text
	}
	return out
}

func mustRule(name RuleName, pattern, replacement string) RewriteRule {
	return RewriteRule{
		Name:        name,
		Pattern:     regexp2.MustCompile(pattern, regexp2.Multiline),
		Replacement: replacement,
	}
}

// Order matters: restructure-cue needs compacted timecodes, and
// align-continuation relies on the N/ON markers restructure-cue inserts.
var defaultRules = []RewriteRule{
	// Version labels with nothing attached, e.g. "V3, 1" followed by blank lines.
	mustRule(RuleStripEmptyVersion, `V\d+, \d+\n{2,}`, ""),

	// 00;00;47;08 -> 0047
	mustRule(RuleCompactTimecode, `(\d{2})[;:](\d{2})[;:](\d{2})[;:](\d{2})`, "${2}${3}"),

	// A marker typed by hand before the line is re-added by restructure-cue.
	mustRule(RuleStripNarrationMarker, `^(?:Ｎ|N)[\t 　]+(?=.+\n)`, ""),

	// "0047 - 0051" / "V14, 1" / body -> "0047　　N　　body" + blank + "0051　　ON"
	mustRule(RuleRestructureCue,
		`(\d{4})[\s　]-[\s　](\d{4})\n(V\d{1,2},[\s　]\d)\n((?:.+(?:\n|))*)`,
		"${1}"+markerGap+"N"+markerGap+"${4}\n\n${2}"+markerGap+"ON\n"),

	mustRule(RuleAlignContinuation,
		`(^(?!.*\d{4}(?: |　)*(?:N|ON)(?: |　)*.*).+$)`,
		ContinuationIndent+"${1}"),
}

// DefaultRules returns the rewrite rules in the order they must be applied.
func DefaultRules() []RewriteRule {
	out := make([]RewriteRule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// RuleNames lists the default rule names in application order.
func RuleNames() []RuleName {
	names := make([]RuleName, 0, len(defaultRules))
	for _, rule := range defaultRules {
		names = append(names, rule.Name)
	}
	return names
}

// Rewrite applies the default rules to text.
func Rewrite(text string) string {
	return ApplyRules(text, defaultRules)
}

// ApplyRules applies rules to text in slice order.
func ApplyRules(text string, rules []RewriteRule) string {
	for _, rule := range rules {
		text = rule.Apply(text)
	}
	return text
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
