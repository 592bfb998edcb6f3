package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText drops non-printable runes and collapses runs of whitespace.
func CleanText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	cleaned = strings.TrimSpace(cleaned)
	return innerWhitespace.ReplaceAllString(cleaned, " ")
}

type Anchor struct {
	// Label is the aria-label of the anchor as written, empty when missing.
	Label string
	Text  string
	Href  string
}

// GetAnchor reads the first node of `sel` as an anchor.
func GetAnchor(sel *goquery.Selection) (Anchor, bool) {
	if sel.Length() == 0 {
		return Anchor{}, false
	}
	first := sel.First()
	return Anchor{
		Label: first.AttrOr("aria-label", ""),
		Text:  CleanText(GetText(first.Nodes[0])),
		Href:  first.AttrOr("href", ""),
	}, true
}
