package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeEvent(t *testing.T) {
	var e Event
	require.NoError(t, json.Unmarshal([]byte(MakeEvent("req-1", TypeJobsReloaded, 1, JobsReloaded{Source: "jobs.json", Jobs: 3})), &e))
	assert.Equal(t, TypeJobsReloaded, e.Type)
	assert.Equal(t, 1, e.Version)
	assert.Equal(t, "req-1", e.RequestID)
	assert.JSONEq(t, `{"source":"jobs.json","jobs":3}`, string(e.Data))
	assert.False(t, e.At.IsZero())

	require.NoError(t, json.Unmarshal([]byte(MakeEvent("", "ping", 1, nil)), &e))
	assert.Equal(t, "ping", e.Type)
}

func TestHubFanOut(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	assert.Equal(t, 2, h.Subscribers())

	h.PublishReload("jobs.json", 7)
	for _, ch := range []chan string{a, b} {
		var e Event
		require.NoError(t, json.Unmarshal([]byte(<-ch), &e))
		assert.Equal(t, TypeJobsReloaded, e.Type)
	}

	h.Unsubscribe(a)
	h.Unsubscribe(a)
	assert.Equal(t, 1, h.Subscribers())
	_, open := <-a
	assert.False(t, open)
}

func TestHubDropsForSlowSubscribers(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	for range 25 {
		h.Publish("x")
	}
	assert.Len(t, ch, cap(ch))
}
