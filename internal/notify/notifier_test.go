package notify

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	name  string
	err   error
	calls int
}

func (s *fakeSender) Send(ctx context.Context, title, message string) error {
	s.calls++
	return s.err
}

func (s *fakeSender) Name() string { return s.name }

func TestNotifyDeliversToAllSenders(t *testing.T) {
	a := &fakeSender{name: "a"}
	b := &fakeSender{name: "b"}
	n := NewNotifier([]Sender{a, b}, nil, slog.New(slog.DiscardHandler))

	require.NoError(t, n.Notify(context.Background(), EventRunFailed, "t", "m"))
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestNotifyFiltersByEvent(t *testing.T) {
	a := &fakeSender{name: "a"}
	n := NewNotifier([]Sender{a}, []string{EventMarketsFailed}, slog.New(slog.DiscardHandler))

	require.NoError(t, n.Notify(context.Background(), EventRunFailed, "t", "m"))
	assert.Equal(t, 0, a.calls)

	require.NoError(t, n.Notify(context.Background(), EventMarketsFailed, "t", "m"))
	assert.Equal(t, 1, a.calls)
}

func TestNotifyOneFailingSenderDoesNotBlockOthers(t *testing.T) {
	a := &fakeSender{name: "a", err: errors.New("webhook down")}
	b := &fakeSender{name: "b"}
	n := NewNotifier([]Sender{a, b}, nil, slog.New(slog.DiscardHandler))

	err := n.Notify(context.Background(), EventRunFailed, "t", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a: webhook down")
	assert.Equal(t, 1, b.calls, "second sender still delivered")
}
