package releasenotes

import (
	"bytes"
	"encoding/json"
	"strings"
)

const FullChangelogLabel = "**Full Changelog**: "

func Compose(changelogSection string, comparisonURL string) string {
	return changelogSection + "\n\n" + FullChangelogLabel + comparisonURL
}

// EscapeForTransport returns notes as the content of a JSON string literal,
// without the surrounding quotes. The result never contains a literal newline.
// It is only used to preview the payload in debug output; the request body
// itself is encoded by the GitHub client.
func EscapeForTransport(notes string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail
	_ = enc.Encode(notes)
	quoted := strings.TrimSuffix(buf.String(), "\n")
	return quoted[1 : len(quoted)-1]
}
