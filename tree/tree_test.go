package tree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pexkit/pex/parser"
)

// ipMatches parses "FF.12.DC.A0" into one ip4 tree with hexByte and
// hexDigit levels.
func ipMatches(t *testing.T) []parser.Match[rune] {
	t.Helper()
	hexDigit := parser.Flat(parser.Choice(parser.Range('0', '9'), parser.Range('A', 'F')), "hexDigit")
	hexByte := parser.Tree(parser.Seq(hexDigit, hexDigit), "hexByte")
	ip4 := parser.Tree(parser.Seq(hexByte, parser.Term('.'), hexByte, parser.Term('.'), hexByte, parser.Term('.'), hexByte), "ip4")

	pc := parser.NewText("FF.12.DC.A0")
	require.True(t, pc.Parse(ip4))
	return pc.Matches()
}

func contents(ms []parser.Match[rune]) []string {
	res := make([]string, len(ms))
	for i, m := range ms {
		res[i] = string(m.Content())
	}
	return res
}

func TestWalkOrder(t *testing.T) {
	visited := make([]string, 0)
	Walk(ipMatches(t), func(m parser.Match[rune], depth int) (bool, bool) {
		visited = append(visited, string(m.Content()))
		return true, true
	})

	expected := []string{"FF.12.DC.A0", "FF", "F", "F", "12", "1", "2", "DC", "D", "C", "A0", "A", "0"}
	if diff := cmp.Diff(expected, visited); diff != "" {
		t.Errorf("walk order mismatch (-expected +got):\n%s", diff)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	visited := make([]string, 0)
	Walk(ipMatches(t), func(m parser.Match[rune], depth int) (bool, bool) {
		visited = append(visited, string(m.Content()))
		return depth < 1, true
	})

	expected := []string{"FF.12.DC.A0", "FF", "12", "DC", "A0"}
	if diff := cmp.Diff(expected, visited); diff != "" {
		t.Errorf("walk order mismatch (-expected +got):\n%s", diff)
	}
}

func TestWalkStops(t *testing.T) {
	visited := 0
	Walk(ipMatches(t), func(m parser.Match[rune], depth int) (bool, bool) {
		visited++
		return true, m.Id() != "hexByte"
	})
	assert.Equal(t, 4, visited, "root, FF and its two digits")
}

func TestCollect(t *testing.T) {
	ms := ipMatches(t)

	bytes := Collect(ms, IsId[rune]("hexByte"), false)
	assert.Equal(t, []string{"FF", "12", "DC", "A0"}, contents(bytes))

	digits := Collect(ms, IsId[rune]("hexDigit"), false)
	assert.Len(t, digits, 8)
}

func TestFirst(t *testing.T) {
	ms := ipMatches(t)

	m, found := First(ms, IsId[rune]("hexDigit"))
	require.True(t, m.Id() == "hexDigit" && found)
	assert.Equal(t, "F", string(m.Content()))

	_, found = First(ms, IsId[rune]("nope"))
	assert.False(t, found)
}

func TestFilters(t *testing.T) {
	ms := ipMatches(t)

	leaves := Collect(ms, IsLeaf[rune](), false)
	assert.Len(t, leaves, 8)

	nonRoot := Collect(ms, IsNot(IsId[rune]("ip4")), true)
	assert.Len(t, nonRoot, 12)

	both := Collect(ms, IsAny(IsId[rune]("hexByte"), IsId[rune]("hexDigit")), true)
	assert.Len(t, both, 12)

	leafBytes := Collect(ms, IsAll(IsId[rune]("hexByte"), IsLeaf[rune]()), true)
	assert.Empty(t, leafBytes)
}

func TestCountAndDepth(t *testing.T) {
	ms := ipMatches(t)
	assert.Equal(t, 13, Count(ms))
	assert.Equal(t, 3, Depth(ms))
	assert.Equal(t, 0, Depth[rune](nil))
	assert.Equal(t, 0, Count[rune](nil))
}

func TestDump(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Dump(&sb, ipMatches(t), TextLabel))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	assert.Len(t, lines, 13)
	assert.Equal(t, `ip4: "FF.12.DC.A0"`, lines[0])
	assert.Equal(t, `  hexByte: "FF"`, lines[1])
	assert.Equal(t, `    hexDigit: "F"`, lines[2])
}
