package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		path string
		segs []string
	}{
		{"a", []string{"a"}},
		{"article.slidesTop.0", []string{"article", "slidesTop", "0"}},
		{"a[0].b", []string{"a", "0", "b"}},
		{"a[0][1]", []string{"a", "0", "1"}},
		{`a["x.y"].z`, []string{"a", "x.y", "z"}},
		{`[""]`, []string{""}},
		{`a["q\"uote"]`, []string{"a", `q"uote`}},
	} {
		tc := tc
		t.Run(tc.path, func(t *testing.T) {
			segs, err := Parse(tc.path)
			require.NoError(t, err)
			require.Equal(t, tc.segs, segs)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, path := range []string{
		"",
		".a",
		"a.",
		"a..b",
		"a[0",
		"a[x]",
		"a[-1]",
		`a["x]`,
		"a[0]b",
	} {
		path := path
		t.Run(path, func(t *testing.T) {
			_, err := Parse(path)
			require.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestFormatRoundtrip(t *testing.T) {
	path := AppendIndex(AppendKey(AppendKey("", "a"), "x.y"), 2)
	require.Equal(t, `a["x.y"].2`, path)

	segs, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "x.y", "2"}, segs)
}

func TestIndex(t *testing.T) {
	idx, ok := Index("12")
	require.True(t, ok)
	require.Equal(t, 12, idx)

	for _, seg := range []string{"", "01", "-1", "1a", "a"} {
		_, ok := Index(seg)
		require.False(t, ok, seg)
	}
}
