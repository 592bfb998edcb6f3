package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "Dune Messiah", CleanText("  Dune \n\t  Messiah\u200b "))
	require.Equal(t, "", CleanText(" \n "))
}

func TestGetAnchor(t *testing.T) {
	doc := parse(t, `<div>
		<a href="/a/M-1-T.html" aria-label="Dune by Frank Herbert">ignored</a>
		<a href="/b">
			second   link
		</a>
	</div>`)

	anchor, ok := GetAnchor(doc.Find("a"))
	require.True(t, ok)
	require.Equal(t, Anchor{Label: "Dune by Frank Herbert", Text: "ignored", Href: "/a/M-1-T.html"}, anchor)

	anchor, ok = GetAnchor(doc.Find("a[href='/b']"))
	require.True(t, ok)
	require.Equal(t, Anchor{Text: "second link", Href: "/b"}, anchor)

	_, ok = GetAnchor(doc.Find("span a"))
	require.False(t, ok)
}
