// Package markup recovers tag-delimited blocks from semi-well-formed HTML
// without building a DOM.
//
// Extract finds the outermost occurrences of one tag name and returns their
// attributes and raw inner text. Callers drill down by calling Extract again
// on a block's InnerText with the next tag name (table -> tr -> td -> a).
package markup

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Block is one top-level occurrence of a tag.
type Block struct {
	Tag       string
	Attrs     map[string]string
	InnerText string
}

// Attr returns the named attribute, or "" when absent.
func (b Block) Attr(key string) string {
	return b.Attrs[key]
}

// HasClass reports whether the class attribute equals class.
func (b Block) HasClass(class string) bool {
	return b.Attrs["class"] == class
}

type state int

const (
	idle state = iota
	inBlock
)

type tagPatterns struct {
	open  *regexp.Regexp
	close *regexp.Regexp
}

var patterns sync.Map // tag name -> *tagPatterns

func patternsFor(tag string) *tagPatterns {
	if p, ok := patterns.Load(tag); ok {
		return p.(*tagPatterns)
	}
	q := regexp.QuoteMeta(tag)
	p := &tagPatterns{
		// The tag name must end at whitespace, '/' or '>' so "<t" never matches "<table".
		open:  regexp.MustCompile(`(?is)<` + q + `((?:\s|/)[^>]*)?>`),
		close: regexp.MustCompile(`(?i)</` + q + `\s*>`),
	}
	actual, _ := patterns.LoadOrStore(tag, p)
	return actual.(*tagPatterns)
}

// Extract returns the top-level blocks of tag in text, in document order.
//
// Nested occurrences of the same tag are balanced with a depth counter and
// stay inside the enclosing block's InnerText. When a block is left open
// the blocks completed so far are returned with an error wrapping
// ErrMalformedMarkup.
func Extract(text, tag string) ([]Block, error) {
	p := patternsFor(tag)

	var (
		blocks []Block
		cursor int
		st     = idle
		depth  int
		start  int
		cur    Block
	)

	for {
		closeLoc := p.close.FindStringIndex(text[cursor:])
		openLoc := p.open.FindStringSubmatchIndex(text[cursor:])

		if closeLoc == nil {
			if st == inBlock || openLoc != nil {
				return blocks, fmt.Errorf("%w: no closing tag for <%s> after offset %d", ErrMalformedMarkup, tag, cursor)
			}
			return blocks, nil
		}

		if openLoc != nil && openLoc[0] < closeLoc[0] {
			switch st {
			case idle:
				cur = Block{Tag: tag, Attrs: map[string]string{}}
				if openLoc[2] >= 0 {
					cur.Attrs = ParseAttrs(text[cursor+openLoc[2] : cursor+openLoc[3]])
				}
				start = cursor + openLoc[1]
				st = inBlock
			case inBlock:
				depth++
			}
			cursor += openLoc[1]
			continue
		}

		switch {
		case st == inBlock && depth > 0:
			depth--
		case st == inBlock:
			cur.InnerText = text[start : cursor+closeLoc[0]]
			blocks = append(blocks, cur)
			st = idle
		default:
			// Stray closing tag outside any block.
		}
		cursor += closeLoc[1]
	}
}

var attrPattern = regexp.MustCompile(`([^\s=/"']+)(?:\s*=\s*(?:"([^"]*)"?|'([^']*)'?|([^\s"'>]*)))?`)

// ParseAttrs parses whitespace-separated key="value" pairs. Quotes are
// optional and keys without a value map to "".
func ParseAttrs(raw string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attrPattern.FindAllStringSubmatch(raw, -1) {
		key := strings.ToLower(m[1])
		switch {
		case m[2] != "":
			attrs[key] = m[2]
		case m[3] != "":
			attrs[key] = m[3]
		default:
			attrs[key] = m[4]
		}
	}
	return attrs
}

// Debold removes <b> and </b> tags.
func Debold(s string) string {
	return strings.NewReplacer("<b>", "", "</b>", "", "<B>", "", "</B>", "").Replace(s)
}

var anyTag = regexp.MustCompile(`(?s)<[^>]*>`)

// StripTags removes every tag and trims the result.
func StripTags(s string) string {
	return strings.TrimSpace(anyTag.ReplaceAllString(s, ""))
}

// Anchor returns the text and href of the first <a> block in s. When s
// contains no anchor the stripped text is returned with an empty href.
func Anchor(s string) (text, href string) {
	anchors, _ := Extract(s, "a")
	if len(anchors) == 0 {
		return StripTags(s), ""
	}
	return StripTags(anchors[0].InnerText), anchors[0].Attr("href")
}
