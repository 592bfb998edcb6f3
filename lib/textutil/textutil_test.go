package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsTitle(t *testing.T) {
	testCases := []struct {
		label    string
		title    string
		expected bool
	}{
		{label: "Dune by Frank Herbert", title: "Dune", expected: true},
		{label: "DUNE (Paperback)", title: "dune", expected: true},
		{label: "Children of Dune", title: "Dune Messiah", expected: false},
		{label: "The Hobbit: Or There and Back Again", title: "The Hobbit, or There and Back Again", expected: false},
		{label: "", title: "Dune", expected: false},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ContainsTitle(test.label, test.title), test.label)
	}
}

func TestNormalizeTitle(t *testing.T) {
	require.Equal(t, "the left hand of darkness", NormalizeTitle("  The Left\n Hand  of Darkness "))
}

func TestTitleSimilarity(t *testing.T) {
	require.Equal(t, 1.0, TitleSimilarity("Dune", " dune "))
	require.Equal(t, 0.0, TitleSimilarity("", "dune"))

	close := TitleSimilarity("The Hobbit, or There and Back Again", "The Hobbit: Or There and Back Again")
	far := TitleSimilarity("The Hobbit, or There and Back Again", "Cooking for Two")
	require.Greater(t, close, 0.9)
	require.Less(t, far, close)
}
