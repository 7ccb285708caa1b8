package chatbot

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
)

type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (s *stubGenerator) Generate(ctx context.Context, message string) (string, error) {
	s.calls++
	return s.response, s.err
}

func TestAskRejectsEmptyMessage(t *testing.T) {
	t.Parallel()

	svc, err := NewService(nil, NewCache(10), nil)
	require.NoError(t, err)

	_, err = svc.Ask(context.Background(), "   ")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestAskCachesGeneratedAnswers(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{response: "drink more water"}
	svc, err := NewService(gen, NewCache(10), nil)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := svc.Ask(ctx, "  How Much Water? ")
	require.NoError(t, err)
	require.Equal(t, "drink more water", first.Response)
	require.False(t, first.Cached)

	// Same question, different casing: cache hit, no second API call.
	second, err := svc.Ask(ctx, "how much water?")
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, 1, gen.calls)
}

func TestAskFallsBackWithoutGenerator(t *testing.T) {
	t.Parallel()

	svc, err := NewService(nil, NewCache(10), nil)
	require.NoError(t, err)

	answer, err := svc.Ask(context.Background(), "what should my diet look like?")
	require.NoError(t, err)
	require.True(t, answer.Fallback)
	require.Contains(t, answer.Response, "whole grains")
}

func TestAskFallsBackOnGeneratorError(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{err: errors.New("upstream timeout")}
	svc, err := NewService(gen, NewCache(10), nil)
	require.NoError(t, err)

	answer, err := svc.Ask(context.Background(), "best workout plan?")
	require.NoError(t, err)
	require.True(t, answer.Fallback)
	require.Contains(t, answer.Response, "150 minutes")

	// Fallback answers are not cached.
	again, err := svc.Ask(context.Background(), "best workout plan?")
	require.NoError(t, err)
	require.True(t, again.Fallback)
	require.Equal(t, 2, gen.calls)
}

func TestCacheEvictsOldestFirst(t *testing.T) {
	t.Parallel()

	cache := NewCache(3)
	for i := 0; i < 3; i++ {
		cache.Put(fmt.Sprintf("q%d", i), "a")
	}
	cache.Put("q3", "a")

	require.Equal(t, 3, cache.Len())
	_, ok := cache.Get("q0")
	require.False(t, ok)
	_, ok = cache.Get("q3")
	require.True(t, ok)
}
