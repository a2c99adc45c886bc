package trie

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrie() *Trie {
	t := New()
	t.InsertWithScore("Foreign", 10)
	t.InsertWithScore("For", 8)
	t.InsertWithScore("Foo", 0)
	return t
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name    string
		inserts []string
		query   string
		want    string
		found   bool
	}{
		{"single term", []string{"Foo"}, "Foo", "Foo", true},
		{"similar entries", []string{"Foo", "For"}, "Foo", "Foo", true},
		{"missing term", []string{"Foo"}, "Bar", "", false},
		{"prefix is not a word", []string{"Foo"}, "Fo", "", false},
		{"longer than any word", []string{"Foo"}, "Fooo", "", false},
		{"empty query", []string{"Foo"}, "", "", false},
		{"empty trie", nil, "Foo", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			for _, w := range tt.inserts {
				tr.Insert(w)
			}
			got, ok := tr.Search(tt.query)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchWithScore(t *testing.T) {
	tr := New()
	tr.InsertWithScore("Foo", 10)

	got, ok := tr.Search("Foo")
	require.True(t, ok)
	assert.Equal(t, "Foo", got)
}

func TestStartsWith(t *testing.T) {
	tr := New()
	tr.Insert("Foo")

	for _, p := range []string{"", "F", "Fo", "Foo"} {
		got, ok := tr.StartsWith(p)
		assert.True(t, ok, "prefix %q", p)
		assert.Equal(t, p, got)
	}

	_, ok := tr.StartsWith("Ba")
	assert.False(t, ok)
	_, ok = tr.StartsWith("Fooo")
	assert.False(t, ok)
}

func TestMembershipRoundTrip(t *testing.T) {
	words := []string{"a", "ab", "abc", "banana", "band", "bandana", "héllo", "日本語"}
	tr := New()
	for i, w := range words {
		tr.InsertWithScore(w, int64(i))
	}

	for _, w := range words {
		got, ok := tr.Search(w)
		require.True(t, ok, w)
		assert.Equal(t, w, got)

		runes := []rune(w)
		for i := 0; i <= len(runes); i++ {
			p := string(runes[:i])
			got, ok := tr.StartsWith(p)
			require.True(t, ok, p)
			assert.Equal(t, p, got)
		}
	}
	assert.Equal(t, len(words), tr.Len())
}

func TestInsertWithoutScoreMatchesZeroScore(t *testing.T) {
	a, b := New(), New()
	for _, w := range []string{"car", "cart", "care"} {
		a.Insert(w)
		b.InsertWithScore(w, 0)
	}

	for _, w := range []string{"car", "cart", "care"} {
		sa, okA := a.Score(w)
		sb, okB := b.Score(w)
		assert.Equal(t, okB, okA)
		assert.Equal(t, sb, sa)
	}

	ra, _ := a.RankedResults("ca")
	rb, _ := b.RankedResults("ca")
	assert.Equal(t, rb, ra)
}

func TestEmptyWordIgnored(t *testing.T) {
	tr := New()
	tr.InsertWithScore("", 5)

	_, ok := tr.Search("")
	assert.False(t, ok)
	assert.Equal(t, 0, tr.Len())

	_, ok = tr.MaxScore()
	assert.False(t, ok)
}

func TestScoreMonotonicity(t *testing.T) {
	tr := New()
	tr.InsertWithScore("foreign", 10)
	tr.InsertWithScore("foreign", 3)

	score, ok := tr.Score("foreign")
	require.True(t, ok)
	assert.Equal(t, int64(3), score, "latest insert wins at the terminal node")

	for _, p := range []string{"", "f", "fo", "for", "fore", "forei", "foreig"} {
		bound, ok := tr.Bound(p)
		require.True(t, ok, p)
		assert.GreaterOrEqual(t, bound, int64(10), p)
	}

	assert.Equal(t, 1, tr.Len())
}

func TestAggregateBound(t *testing.T) {
	tr := New()
	tr.InsertWithScore("cat", 5)
	tr.InsertWithScore("car", 9)
	tr.InsertWithScore("dog", -4)

	tests := []struct {
		prefix string
		want   int64
	}{
		{"", 9},
		{"c", 9},
		{"ca", 9},
		{"cat", 5},
		{"car", 9},
		{"d", -4},
		{"dog", -4},
	}
	for _, tt := range tests {
		got, ok := tr.Bound(tt.prefix)
		require.True(t, ok, tt.prefix)
		assert.Equal(t, tt.want, got, tt.prefix)
	}

	_, ok := tr.Bound("x")
	assert.False(t, ok)

	max, ok := tr.MaxScore()
	require.True(t, ok)
	assert.Equal(t, int64(9), max)
}

func TestRankedResults(t *testing.T) {
	tr := sampleTrie()

	got, ok := tr.RankedResults("Fo")
	require.True(t, ok)
	assert.Equal(t, []string{"Foreign", "For", "Foo"}, got)
}

func TestKRankedResults(t *testing.T) {
	tr := sampleTrie()

	tests := []struct {
		k    int
		want []string
	}{
		{0, []string{"Foreign", "For", "Foo"}},
		{1, []string{"Foreign"}},
		{2, []string{"Foreign", "For"}},
		{3, []string{"Foreign", "For", "Foo"}},
		{10, []string{"Foreign", "For", "Foo"}},
		{-1, []string{"Foreign", "For", "Foo"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("k=%d", tt.k), func(t *testing.T) {
			got, ok := tr.KRankedResults("Fo", tt.k)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankedResultsAbsentVersusEmpty(t *testing.T) {
	tr := New()
	tr.Insert("Foo")

	got, ok := tr.RankedResults("Zz")
	assert.False(t, ok)
	assert.Nil(t, got)

	got, ok = tr.RankedResults("Foo")
	assert.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, ok = tr.KRankedResults("Foo", 3)
	assert.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankedResultsOnEmptyTrie(t *testing.T) {
	tr := New()

	got, ok := tr.RankedResults("")
	assert.True(t, ok)
	assert.Empty(t, got)

	_, ok = tr.RankedResults("a")
	assert.False(t, ok)
}

func TestRankedResultsEmptyPrefix(t *testing.T) {
	tr := sampleTrie()
	tr.InsertWithScore("Bar", 9)

	got, ok := tr.RankedResults("")
	require.True(t, ok)
	assert.Equal(t, []string{"Foreign", "Bar", "For", "Foo"}, got)
}

func TestRankedResultsExpandsPastFinalNodes(t *testing.T) {
	tr := New()
	tr.InsertWithScore("for", 1)
	tr.InsertWithScore("forward", 7)
	tr.InsertWithScore("forwards", 3)

	got, ok := tr.RankedResults("f")
	require.True(t, ok)
	assert.Equal(t, []string{"forward", "forwards", "for"}, got)
}

func TestRankedResultsTieBreak(t *testing.T) {
	tr := New()
	for _, w := range []string{"tee", "tab", "toe", "tic", "tar"} {
		tr.InsertWithScore(w, 5)
	}
	tr.InsertWithScore("tzz", 6)

	got, ok := tr.RankedResults("t")
	require.True(t, ok)
	assert.Equal(t, []string{"tzz", "tab", "tar", "tee", "tic", "toe"}, got)

	got, ok = tr.KRankedResults("t", 3)
	require.True(t, ok)
	assert.Equal(t, []string{"tzz", "tab", "tar"}, got)
}

func TestRankedEntries(t *testing.T) {
	tr := sampleTrie()

	got, ok := tr.RankedEntries("For", 0)
	require.True(t, ok)
	assert.Equal(t, []Entry{{Word: "Foreign", Score: 10}}, got)
}

func TestRankedResultsNegativeScores(t *testing.T) {
	tr := New()
	tr.InsertWithScore("alpha", -10)
	tr.InsertWithScore("alps", -2)
	tr.InsertWithScore("altar", -7)

	got, ok := tr.KRankedResults("al", 2)
	require.True(t, ok)
	assert.Equal(t, []string{"alps", "altar"}, got)
}

// bruteRank sorts every word starting with prefix the way the trie should.
func bruteRank(scores map[string]int64, prefix string) []string {
	var words []string
	for w := range scores {
		if w != prefix && strings.HasPrefix(w, prefix) {
			words = append(words, w)
		}
	}
	sort.Slice(words, func(i, j int) bool {
		if scores[words[i]] != scores[words[j]] {
			return scores[words[i]] > scores[words[j]]
		}
		return words[i] < words[j]
	})
	if words == nil {
		words = []string{}
	}
	return words
}

func TestRankedResultsMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcd")
	scores := make(map[string]int64)
	tr := New()

	for i := 0; i < 400; i++ {
		n := 1 + rng.Intn(6)
		runes := make([]rune, n)
		for j := range runes {
			runes[j] = alphabet[rng.Intn(len(alphabet))]
		}
		w := string(runes)
		s := int64(rng.Intn(50) - 10)
		scores[w] = s
		tr.InsertWithScore(w, s)
	}

	for _, prefix := range []string{"", "a", "ab", "bca", "dd", "c"} {
		want := bruteRank(scores, prefix)
		if _, ok := tr.StartsWith(prefix); !ok {
			continue
		}

		got, ok := tr.RankedResults(prefix)
		require.True(t, ok)
		assert.Equal(t, want, got, "prefix %q", prefix)

		for _, k := range []int{1, 2, 5, 17} {
			got, ok := tr.KRankedResults(prefix, k)
			require.True(t, ok)
			n := min(k, len(want))
			assert.Equal(t, want[:n], got, "prefix %q k=%d", prefix, k)
		}
	}
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			tr.InsertWithScore(fmt.Sprintf("word%03d", i), int64(i))
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if got, ok := tr.KRankedResults("word", 5); ok {
					assert.LessOrEqual(t, len(got), 5)
				}
				tr.StartsWith("wo")
			}
		}()
	}
	wg.Wait()

	got, ok := tr.KRankedResults("word", 3)
	require.True(t, ok)
	assert.Equal(t, []string{"word499", "word498", "word497"}, got)
}

func BenchmarkKRankedResults(b *testing.B) {
	tr := New()
	for i := 0; i < 20000; i++ {
		tr.InsertWithScore(fmt.Sprintf("w%05d", i), int64(i%997))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.KRankedResults("w1", 10)
	}
}
