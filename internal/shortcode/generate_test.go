package shortcode

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := Generate(6, Alphanumeric)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(Alphanumeric, r), "unexpected rune %q", r)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	_, err := Generate(0, Alphanumeric)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Generate(-3, Alphanumeric)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Generate(4, "")
	assert.ErrorIs(t, err, ErrEmptyAlphabet)
}

func TestGenerate_SingleCharAlphabet(t *testing.T) {
	code, err := Generate(5, "x")
	require.NoError(t, err)
	assert.Equal(t, "xxxxx", code)
}

// takenChecker 把固定集合视为已占用
type takenChecker struct {
	mu    sync.Mutex
	taken map[string]bool
	calls int
}

func (c *takenChecker) PathExists(_ context.Context, path string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.taken[path], nil
}

func TestPool_FillsWithUnusedCandidates(t *testing.T) {
	checker := &takenChecker{taken: map[string]bool{"aa": true}}
	pool := NewPool(checker, PoolOptions{Length: 2, Alphabet: "ab", Size: 8}, zap.NewNop().Sugar())
	pool.Start()
	defer pool.Stop()

	require.Eventually(t, func() bool { return pool.Len() == 8 }, 2*time.Second, 10*time.Millisecond)

	for i := 0; i < 8; i++ {
		code, err := pool.Next(context.Background())
		require.NoError(t, err)
		assert.NotEqual(t, "aa", code)
		assert.Len(t, code, 2)
	}
}

func TestPool_NextFallsBackWhenEmpty(t *testing.T) {
	pool := NewPool(&takenChecker{}, PoolOptions{Length: 9}, zap.NewNop().Sugar())
	defer pool.Stop()

	code, err := pool.Next(context.Background())
	require.NoError(t, err)
	assert.Len(t, code, 9)
}
