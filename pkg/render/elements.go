package render

import "strings"

// tagSet is a set of lowercase tag or attribute names.
type tagSet map[string]struct{}

func newTagSet(names string) tagSet {
	s := make(tagSet)
	for _, n := range strings.Fields(names) {
		s[n] = struct{}{}
	}
	return s
}

func (s tagSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

var (
	// Void elements never have children or a closing tag.
	voidElements = newTagSet(`area base br col embed hr img input link meta
		param source track wbr`)

	// Phrasing content stays on one line when pretty-printing.
	inlineElements = newTagSet(`a abbr b bdi bdo br cite code data dfn em i kbd
		mark q rb rp rt rtc ruby s samp small span strong sub sup time u var wbr`)

	// Boolean attributes with an empty value render as the bare name.
	booleanAttrs = newTagSet(`allowfullscreen async autofocus autoplay checked
		controls default defer disabled formnovalidate hidden ismap itemscope loop
		multiple muted nomodule novalidate open playsinline readonly required
		reversed selected`)

	// Text inside these is written unescaped.
	rawTextElements = newTagSet(`script style`)
)

func isVoidElement(tag string) bool { return voidElements.has(tag) }
func isInlineElement(tag string) bool { return inlineElements.has(tag) }
func isBooleanAttr(name string) bool { return booleanAttrs.has(name) }
func isRawTextElement(tag string) bool { return rawTextElements.has(tag) }
