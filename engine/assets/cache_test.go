package assets

import (
	"fmt"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func testKey(name string) ResourceKey {
	return NewResourceKey(name, "txt", StoreIDFromName("test"))
}

func TestCacheInsertGet(t *testing.T) {
	c := NewCache[string]()
	k := testKey("a")

	_, ok := c.Get(k)
	assert.False(t, ok)

	prev, ok := c.Insert(k, "v1")
	assert.False(t, ok)
	assert.Equal(t, "", prev)

	v, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, "v1", v)
}

func TestCacheOverwrite(t *testing.T) {
	c := NewCache[string]()
	k := testKey("a")

	c.Insert(k, "v1")
	prev, ok := c.Insert(k, "v2")
	require.True(t, ok)
	assert.Equal(t, "v1", prev)

	v, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, c.Len())
}

func TestCacheRetain(t *testing.T) {
	c := NewCache[string]()
	k1, k2 := testKey("k1"), testKey("k2")
	c.Insert(k1, "v1")
	c.Insert(k2, "v2")

	c.Retain(func(k ResourceKey, _ *string) bool { return k == k1 })

	v, ok := c.Get(k1)
	require.True(t, ok)
	assert.Equal(t, "v1", v)

	_, ok = c.Get(k2)
	assert.False(t, ok)
	assert.Equal(t, []ResourceKey{k1}, c.Keys())
}

func TestCacheRetainMutatesInPlace(t *testing.T) {
	c := NewCache[int]()
	for i := 0; i < 4; i++ {
		c.Insert(testKey(fmt.Sprint(i)), i)
	}

	c.Retain(func(_ ResourceKey, v *int) bool {
		*v *= 10
		return *v >= 20
	})

	assert.Equal(t, 2, c.Len())
	v, ok := c.Get(testKey("3"))
	require.True(t, ok)
	assert.Equal(t, 30, v)
}

func TestCacheClearAll(t *testing.T) {
	c := NewCache[int]()
	keys := []ResourceKey{testKey("a"), testKey("b"), testKey("c")}
	for i, k := range keys {
		c.Insert(k, i)
	}

	c.ClearAll()

	for _, k := range keys {
		_, ok := c.Get(k)
		assert.False(t, ok)
	}
	assert.Equal(t, 0, c.Len())
}

type buffer struct {
	data []byte
}

func (b buffer) Clone() buffer {
	return buffer{data: slices.Clone(b.data)}
}

func TestCacheGetReturnsClone(t *testing.T) {
	c := NewCache[buffer]()
	k := testKey("buf")
	c.Insert(k, buffer{data: []byte{1, 2, 3}})

	got, ok := c.Get(k)
	require.True(t, ok)
	got.data[0] = 42

	again, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, again.data)
}

type payload interface {
	Bytes() []byte
}

// blob clones itself as a payload, so an interface typed cache can copy it.
type blob struct {
	data []byte
}

func (b blob) Bytes() []byte { return b.data }

func (b blob) Clone() payload {
	return blob{data: slices.Clone(b.data)}
}

func TestCacheClonesInterfaceValues(t *testing.T) {
	c := NewCache[payload]()
	k := testKey("iface")
	c.Insert(k, blob{data: []byte{1, 2, 3}})
	c.Insert(testKey("nil"), nil)

	got, ok := c.Get(k)
	require.True(t, ok)
	got.Bytes()[0] = 42

	again, ok := c.Get(k)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, again.Bytes())

	empty, ok := c.Get(testKey("nil"))
	require.True(t, ok)
	assert.Nil(t, empty)
}

func TestCacheWithCloneFunc(t *testing.T) {
	var clones atomic.Int32
	c := NewCache(WithCloneFunc(func(v []int) []int {
		clones.Add(1)
		return slices.Clone(v)
	}))
	k := testKey("ints")
	c.Insert(k, []int{1, 2})

	got, ok := c.Get(k)
	require.True(t, ok)
	got[0] = 9

	again, _ := c.Get(k)
	assert.Equal(t, []int{1, 2}, again)
	assert.Equal(t, int32(2), clones.Load())
}

func TestCacheConcurrentReaders(t *testing.T) {
	c := NewCache[int]()
	for i := 0; i < 100; i++ {
		c.Insert(testKey(fmt.Sprint(i)), i)
	}

	var g errgroup.Group
	for r := 0; r < 16; r++ {
		g.Go(func() error {
			for i := 0; i < 100; i++ {
				v, ok := c.Get(testKey(fmt.Sprint(i)))
				if !ok || v != i {
					return fmt.Errorf("key %d: got %d, %v", i, v, ok)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

type pair struct {
	A, B int
}

func TestCacheWriterExclusivity(t *testing.T) {
	c := NewCache[pair]()
	k := testKey("pair")
	c.Insert(k, pair{0, 0})

	var g errgroup.Group
	g.Go(func() error {
		for i := 1; i <= 1000; i++ {
			c.Insert(k, pair{i, i})
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < 100; i++ {
			c.Retain(func(_ ResourceKey, v *pair) bool {
				v.A, v.B = v.A+1, v.B+1
				return true
			})
		}
		return nil
	})
	for r := 0; r < 8; r++ {
		g.Go(func() error {
			for i := 0; i < 1000; i++ {
				v, ok := c.Get(k)
				if !ok {
					return fmt.Errorf("entry vanished")
				}
				if v.A != v.B {
					return fmt.Errorf("torn read: %+v", v)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
