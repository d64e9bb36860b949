package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkale/spyglass/internal/contracts"
	"github.com/mkale/spyglass/pkg/config"
	"github.com/mkale/spyglass/pkg/logger"
)

func newStreamServer(t *testing.T, h *StreamHandler) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(h.StreamScan))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestStreamScan(t *testing.T) {
	log := logger.New(&config.Config{LogLevel: "error", LogFormat: "console"})
	h := NewStreamHandler(newTestHandler(testCompanies()), log)

	conn := newStreamServer(t, h)

	var progress []progressMessage
	for {
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var envelope struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(raw, &envelope))

		if envelope.Type == "progress" {
			var msg progressMessage
			require.NoError(t, json.Unmarshal(raw, &msg))
			progress = append(progress, msg)
			continue
		}

		require.Equal(t, "result", envelope.Type)
		var msg struct {
			Dashboard contracts.Dashboard `json:"dashboard"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, 2, msg.Dashboard.Stats.Admitted)
		break
	}

	require.Len(t, progress, 2)
	assert.Equal(t, progressMessage{Type: "progress", Done: 1, Total: 2, Ticker: "BIG"}, progress[0])
	assert.Equal(t, progressMessage{Type: "progress", Done: 2, Total: 2, Ticker: "MID"}, progress[1])
}

func TestStreamScan_EmptyUniverse(t *testing.T) {
	log := logger.New(&config.Config{LogLevel: "error", LogFormat: "console"})
	h := NewStreamHandler(newTestHandler(&fakeLister{}, &fakeProvider{}), log)

	conn := newStreamServer(t, h)

	var msg resultMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "Constituent list unavailable", msg.Error)
}
