package hashindex_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizroom/internal/hashindex"
)

func TestHash(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"", 2166136261},
		{"a", 0xe40c292c},
		{"foobar", 0xbf9cf968},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, hashindex.Hash(c.in), "Hash(%q)", c.in)
	}

	t.Run("Deterministic", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			k := fmt.Sprintf("key-%d", i)
			assert.Equal(t, hashindex.Hash(k), hashindex.Hash(k))
		}
	})
}

func TestPutGet(t *testing.T) {
	ix := hashindex.New[int](7)

	for i := 0; i < 50; i++ {
		ix.Put(fmt.Sprintf("k%d", i), i)
	}
	require.Equal(t, 50, ix.Len())
	require.Equal(t, 7, ix.Buckets())

	for i := 0; i < 50; i++ {
		v, ok := ix.Get(fmt.Sprintf("k%d", i))
		require.True(t, ok)
		assert.Equal(t, i, v)
	}

	_, ok := ix.Get("missing")
	assert.False(t, ok)
	assert.False(t, ix.Contains("missing"))
}

func TestDuplicateKeyShadows(t *testing.T) {
	ix := hashindex.New[string](1)
	ix.Put("A", "first")
	ix.Put("A", "second")

	v, ok := ix.Get("A")
	require.True(t, ok)
	assert.Equal(t, "second", v)
	assert.Equal(t, 2, ix.Len())
}

func TestEach(t *testing.T) {
	ix := hashindex.New[int](3)
	for i := 0; i < 10; i++ {
		ix.Put(fmt.Sprintf("k%d", i), i)
	}

	seen := map[int]bool{}
	ix.Each(func(_ string, v int) bool {
		seen[v] = true
		return true
	})
	assert.Len(t, seen, 10)

	visited := 0
	ix.Each(func(_ string, _ int) bool {
		visited++
		return visited < 4
	})
	assert.Equal(t, 4, visited)

	assert.Len(t, ix.Values(), 10)
}

func TestNewDefaultsBuckets(t *testing.T) {
	assert.Equal(t, hashindex.DefaultBuckets, hashindex.New[int](0).Buckets())
}
