package goquery

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// boilerplateRes matches common navigation and footer tokens anywhere in
// the text, without word-boundary anchoring.
var boilerplateRes = compileBoilerplate([]string{
	`Menu`, `Search`, `Home`, `Contact`, `About`, `Privacy Policy`,
	`Terms of Service`, `© \d{4}`, `All Rights Reserved`, `Copyright`,
})

func compileBoilerplate(patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(`(?i)`+p))
	}
	return res
}

// Normalize cleans raw extracted article text: collapses whitespace,
// strips common boilerplate tokens, and rejoins the surviving lines.
//
// The blank-line collapse runs after the global whitespace collapse has
// already removed every newline, so it is effectively inert. The ordering
// is kept as-is to match the established output of the cleaning pipeline;
// consumers depend on the exact result.
func Normalize(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	for _, re := range boilerplateRes {
		text = re.ReplaceAllString(text, "")
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n\n")
}
