package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventIDFromMarketID(t *testing.T) {
	id, err := EventIDFromMarketID("sports_evt123_teamA-teamB")
	require.NoError(t, err)
	assert.Equal(t, "evt123", id)
}

func TestEventIDFromMarketID_NoSlug(t *testing.T) {
	id, err := EventIDFromMarketID("sports_evt999")
	require.NoError(t, err)
	assert.Equal(t, "evt999", id)
}

func TestEventIDFromMarketID_WrongFamily(t *testing.T) {
	_, err := EventIDFromMarketID("politics_election2028_winner")
	assert.ErrorIs(t, err, ErrMalformedMarketID)
}

func TestEventIDFromMarketID_EmptyEvent(t *testing.T) {
	_, err := EventIDFromMarketID("sports__slug-only")
	assert.ErrorIs(t, err, ErrMalformedMarketID)
}

func TestMarketDue(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	assert.True(t, Market{ResolutionTime: now.Unix() - 1}.Due(now))
	assert.True(t, Market{ResolutionTime: now.Unix()}.Due(now))
	assert.False(t, Market{ResolutionTime: now.Unix() + 1}.Due(now))
	assert.False(t, Market{ResolutionTime: now.Unix() - 1, Resolved: true}.Due(now))
}
