package releasenotes

import (
	"regexp"
	"strings"
)

var comparisonLinkPattern = regexp.MustCompile(`\*\*Full Changelog\*\*: ([^\r\n]*)`)

// ParseComparisonLink finds the "**Full Changelog**: <url>" line GitHub puts at
// the end of generated notes and returns the url.
func ParseComparisonLink(body string) (string, bool) {
	matches := comparisonLinkPattern.FindStringSubmatch(body)
	if len(matches) != 2 {
		return "", false
	}
	url := strings.TrimSpace(matches[1])
	return url, url != ""
}
