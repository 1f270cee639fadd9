package linkreg

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDDeterministic(t *testing.T) {
	a := New()
	b := New()

	id := a.ID("module:store.Cart#add")
	assert.Equal(t, id, a.ID("module:store.Cart#add"), "stable within a registry")
	assert.Equal(t, id, b.ID("module:store.Cart#add"), "stable across registries")
}

func TestOneToOne(t *testing.T) {
	r := New()
	id1 := r.ID("Widget")
	id2 := r.ID("Widget#draw")

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, r.Len())

	ln, ok := r.Longname(id1)
	require.True(t, ok)
	assert.Equal(t, "Widget", ln)

	_, ok = r.Longname("not-an-id")
	assert.False(t, ok)
}

func TestLongnamesSorted(t *testing.T) {
	r := New()
	r.ID("zeta")
	r.ID("alpha")
	r.ID("module:mid")

	assert.Equal(t, []string{"alpha", "module:mid", "zeta"}, r.Longnames())
}

func TestConcurrentAssignment(t *testing.T) {
	r := New()
	const workers = 16

	var wg sync.WaitGroup
	ids := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = r.ID("shared.longname")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, r.Len())
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}
