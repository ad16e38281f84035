// Package changelog finds the notes for one version in a CHANGELOG.md style
// document, where each release starts with a "## <version> ..." heading.
package changelog

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const sectionMarker = "## "

type heading struct {
	level     int
	lineStart int // offset of the first byte of the heading line
	bodyStart int // offset just past the heading line
}

// Extract returns the trimmed body of the section whose heading is "## "
// immediately followed by version. The body runs until the next level one or
// two heading, or the end of the document. A heading where the version goes
// on with a letter, digit, '.', '-' or '+', such as "## 1.2.3-rc1" or
// "## 1.2.3.post1", belongs to a different version and does not match 1.2.3.
func Extract(document string, version string) (string, bool) {
	if version == "" {
		return "", false
	}
	src := []byte(document)
	headings := topLevelHeadings(src)
	for i, h := range headings {
		if h.level != 2 || !matchesVersion(src[h.lineStart:], version) {
			continue
		}
		end := len(src)
		if i+1 < len(headings) {
			end = headings[i+1].lineStart
		}
		return strings.TrimSpace(string(src[h.bodyStart:end])), true
	}
	return "", false
}

func Load(fs afero.Fs, path string) (string, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read changelog %s: %w", path, err)
	}
	return string(b), nil
}

// topLevelHeadings lists ATX headings of level one and two that are direct
// children of the document. Headings inside code blocks, lists or quotes are
// not section boundaries.
func topLevelHeadings(src []byte) []heading {
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))
	var ret []heading
	// cursor is the first offset not yet claimed by an earlier block
	cursor := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			if stop := blockStop(n); stop > cursor {
				cursor = stop
			}
			continue
		}
		var lineStart int
		if h.Lines().Len() == 0 {
			// "##" with no text carries no segment, find its line after the
			// previous block instead
			lineStart = emptyHeadingLine(src, cursor)
			if lineStart < 0 {
				continue
			}
		} else {
			seg := h.Lines().At(0)
			lineStart = bytes.LastIndexByte(src[:seg.Start], '\n') + 1
			if !bytes.HasPrefix(bytes.TrimLeft(src[lineStart:seg.Start], " "), []byte("#")) {
				// setext heading
				cursor = seg.Stop
				continue
			}
		}
		bodyStart := len(src)
		if idx := bytes.IndexByte(src[lineStart:], '\n'); idx >= 0 {
			bodyStart = lineStart + idx + 1
		}
		cursor = bodyStart
		if h.Level > 2 {
			continue
		}
		ret = append(ret, heading{
			level:     h.Level,
			lineStart: lineStart,
			bodyStart: bodyStart,
		})
	}
	return ret
}

// blockStop is the end of the last source line held by n or its descendants,
// or -1 when n holds none.
func blockStop(n ast.Node) int {
	if n.Type() != ast.TypeBlock {
		return -1
	}
	stop := -1
	if n.Lines().Len() > 0 {
		stop = n.Lines().At(n.Lines().Len() - 1).Stop
	}
	for c := n.LastChild(); c != nil; c = c.PreviousSibling() {
		if s := blockStop(c); s > stop {
			stop = s
		}
	}
	return stop
}

// emptyHeadingLine returns the start of the first line at or after from that
// opens with '#', or -1.
func emptyHeadingLine(src []byte, from int) int {
	pos := from
	if pos > 0 && pos <= len(src) && src[pos-1] != '\n' {
		idx := bytes.IndexByte(src[pos:], '\n')
		if idx < 0 {
			return -1
		}
		pos += idx + 1
	}
	for pos < len(src) {
		end := len(src)
		if idx := bytes.IndexByte(src[pos:], '\n'); idx >= 0 {
			end = pos + idx
		}
		if bytes.HasPrefix(bytes.TrimLeft(src[pos:end], " "), []byte("#")) {
			return pos
		}
		pos = end + 1
	}
	return -1
}

func matchesVersion(line []byte, version string) bool {
	prefix := sectionMarker + version
	if !bytes.HasPrefix(line, []byte(prefix)) {
		return false
	}
	rest := line[len(prefix):]
	if len(rest) == 0 {
		return true
	}
	r, _ := utf8.DecodeRune(rest)
	return !continuesVersion(r)
}

func continuesVersion(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '+'
}
