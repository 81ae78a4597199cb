package provider

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

type fakePrimary struct {
	score      *domain.Score
	leagueErrs int
	err        error
	calls      int
}

func (f *fakePrimary) FindScore(_ context.Context, _ string) (*domain.Score, int, error) {
	f.calls++
	return f.score, f.leagueErrs, f.err
}

type fakeFallback struct {
	score      *domain.Score
	leagueErrs int
	calls      int
}

func (f *fakeFallback) FindScore(_ context.Context, _ string) (*domain.Score, int) {
	f.calls++
	return f.score, f.leagueErrs
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestChain_PrimaryHitShortCircuits(t *testing.T) {
	primary := &fakePrimary{score: &domain.Score{Status: domain.ScoreStatusFinal, Source: domain.ScoreSourcePrimary}}
	fallback := &fakeFallback{score: &domain.Score{Status: domain.ScoreStatusFinal, Source: domain.ScoreSourceFallback}}
	chain := NewChain(primary, fallback, discard())

	score, _ := chain.FetchScore(context.Background(), "evt1")
	require.NotNil(t, score)
	assert.Equal(t, domain.ScoreSourcePrimary, score.Source)
	assert.Zero(t, fallback.calls)
}

// Even an in-progress primary result must keep the fallback out of the call.
func TestChain_InProgressPrimaryIsTerminal(t *testing.T) {
	primary := &fakePrimary{score: &domain.Score{Status: domain.ScoreStatusInProgress, Source: domain.ScoreSourcePrimary}}
	fallback := &fakeFallback{score: &domain.Score{Status: domain.ScoreStatusFinal, Source: domain.ScoreSourceFallback}}
	chain := NewChain(primary, fallback, discard())

	score, _ := chain.FetchScore(context.Background(), "evt1")
	require.NotNil(t, score)
	assert.Equal(t, domain.ScoreStatusInProgress, score.Status)
	assert.Zero(t, fallback.calls)
}

func TestChain_PrimaryMissFallsBack(t *testing.T) {
	primary := &fakePrimary{score: nil, leagueErrs: 3}
	fallback := &fakeFallback{
		score:      &domain.Score{HomeScore: 3, Status: domain.ScoreStatusFinal, Source: domain.ScoreSourceFallback},
		leagueErrs: 1,
	}
	chain := NewChain(primary, fallback, discard())

	score, stats := chain.FetchScore(context.Background(), "evt1")
	require.NotNil(t, score)
	assert.Equal(t, domain.ScoreSourceFallback, score.Source)
	assert.Equal(t, 3, stats.PrimaryLeagueErrors)
	assert.Equal(t, 1, stats.FallbackLeagueErrors)
	assert.False(t, stats.PrimaryAborted)
}

func TestChain_CredentialAbortFallsBack(t *testing.T) {
	primary := &fakePrimary{err: domain.ErrUnauthorized}
	fallback := &fakeFallback{score: &domain.Score{Status: domain.ScoreStatusFinal, Source: domain.ScoreSourceFallback}}
	chain := NewChain(primary, fallback, discard())

	score, stats := chain.FetchScore(context.Background(), "evt1")
	require.NotNil(t, score)
	assert.Equal(t, domain.ScoreSourceFallback, score.Source)
	assert.True(t, stats.PrimaryAborted)
}

func TestChain_NoPrimaryConfigured(t *testing.T) {
	fallback := &fakeFallback{score: &domain.Score{Status: domain.ScoreStatusFinal, Source: domain.ScoreSourceFallback}}
	chain := NewChain(nil, fallback, discard())

	score, _ := chain.FetchScore(context.Background(), "evt1")
	require.NotNil(t, score)
	assert.Equal(t, 1, fallback.calls)
}

func TestChain_BothMiss(t *testing.T) {
	chain := NewChain(&fakePrimary{}, &fakeFallback{}, discard())

	score, _ := chain.FetchScore(context.Background(), "evt1")
	assert.Nil(t, score)
}
