package events

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "word-found",
			data:      `{"word":"CAT"}`,
			expected:  "event: word-found\ndata: {\"word\":\"CAT\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "test",
			data:      "line1\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "carriage returns",
			eventName: "test",
			data:      "line1\r\nline2\r\n",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func TestEventEncode(t *testing.T) {
	msg, err := Event{
		Name: EventPlayerFinished,
		Data: PlayerFinished{Player: "ana", Outcome: model.OutcomeWon, Score: 950},
	}.Encode()
	require.NoError(t, err)
	assert.Equal(t,
		"event: player-finished\ndata: {\"player\":\"ana\",\"outcome\":\"WON\",\"score\":950}\n\n",
		string(msg))

	msg, err = Event{Name: EventMatchStarted}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "event: match-started\ndata: {}\n\n", string(msg))
}

func receive(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case msg := <-c.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestHub_RegisterAndPublish(t *testing.T) {
	hub := NewHub("ABC234", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{NewClient("ana"), NewClient("bo"), NewClient("")}
	for _, c := range clients {
		require.True(t, hub.Register(c))
	}
	require.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	hub.Publish(Event{Name: EventPlayerJoined, Data: PlayerJoined{Player: "cy"}})

	for _, c := range clients {
		assert.Equal(t, "event: player-joined\ndata: {\"player\":\"cy\"}\n\n", receive(t, c))
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("ABC234", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient("ana")
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-client.send
	assert.False(t, ok, "send channel is closed on unregister")
}

func TestHub_CloseFlushesPendingAndDisconnects(t *testing.T) {
	hub := NewHub("ABC234", testutil.NopLogger())
	go hub.Run()

	client := NewClient("ana")
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish(Event{Name: EventMatchDeleted, Data: MatchDeleted{Code: "ABC234"}})
	hub.Close()
	hub.Close()

	assert.Equal(t, "event: match-deleted\ndata: {\"code\":\"ABC234\"}\n\n", receive(t, client))

	_, ok := <-client.send
	assert.False(t, ok)

	assert.False(t, hub.Register(NewClient("bo")), "closed hub refuses new clients")
	hub.Unregister(client)
}

func TestHubManager(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	assert.Nil(t, manager.GetHub("ABC234"))

	// Publishing with no listeners is a no-op
	manager.Publish("ABC234", Event{Name: EventMatchStarted})

	hub1 := manager.GetOrCreateHub("ABC234")
	assert.Same(t, hub1, manager.GetOrCreateHub("ABC234"))
	assert.Same(t, hub1, manager.GetHub("ABC234"))
	assert.NotSame(t, hub1, manager.GetOrCreateHub("XYZ789"))

	client := NewClient("ana")
	require.True(t, hub1.Register(client))
	require.Eventually(t, func() bool { return hub1.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	manager.Publish("ABC234", Event{Name: EventWordFound, Data: WordFound{Player: "ana", Word: "CAT", Found: 1, Total: 2}})
	assert.Contains(t, receive(t, client), "event: word-found")

	manager.RemoveHub("ABC234")
	assert.Nil(t, manager.GetHub("ABC234"))
	manager.RemoveHub("NOTEXIST")

	_, ok := <-client.send
	assert.False(t, ok)
}

func TestServe(t *testing.T) {
	hub := NewHub("ABC234", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Serve(w, r, hub, r.URL.Query().Get("player"))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"?player=ana", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		var sb strings.Builder
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if line == "\n" {
				return sb.String()
			}
			sb.WriteString(line)
		}
	}

	assert.Equal(t, "event: connected\ndata: {\"status\":\"connected\"}\n", readEvent())
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish(Event{Name: EventPlayerJoined, Data: PlayerJoined{Player: "bo"}})
	assert.Equal(t, "event: player-joined\ndata: {\"player\":\"bo\"}\n", readEvent())

	// Closing the hub ends the stream
	hub.Close()
	_, err = reader.ReadString('\n')
	assert.Error(t, err)
}
