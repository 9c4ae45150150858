package id

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsValidULID(t *testing.T) {
	t.Parallel()

	s := New()
	assert.Len(t, s, ulid.EncodedSize)
	assert.True(t, Valid(s))
	assert.False(t, Valid("not-a-ulid"))
}

func TestGeneratorMonotonicWithinMillisecond(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	g := NewGenerator(func() time.Time { return fixed })

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = g.New()
	}
	assert.True(t, sort.StringsAreSorted(ids))

	parsed, err := ulid.Parse(ids[0])
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(fixed), parsed.Time())
}

func TestGeneratorConcurrentUnique(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s := g.New()
				mu.Lock()
				seen[s] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 400)
}
