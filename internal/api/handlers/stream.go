package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mkale/spyglass/internal/pipeline"
	"github.com/mkale/spyglass/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// StreamHandler runs a scan over a websocket, pushing one progress
// message per fetched ticker and the finished dashboard at the end.
// A full cold scan covers hundreds of tickers, so the plain endpoints
// would give the user nothing to look at for minutes.
type StreamHandler struct {
	dashboard *DashboardHandler
	logger    *logger.Logger
}

func NewStreamHandler(dashboard *DashboardHandler, log *logger.Logger) *StreamHandler {
	return &StreamHandler{dashboard: dashboard, logger: log}
}

type progressMessage struct {
	Type   string `json:"type"`
	Done   int    `json:"done"`
	Total  int    `json:"total"`
	Ticker string `json:"ticker"`
}

type resultMessage struct {
	Type      string      `json:"type"`
	Dashboard interface{} `json:"dashboard,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// StreamScan upgrades the connection and streams scan progress
// GET /api/scan/stream?years=3&min_growth=20
func (h *StreamHandler) StreamScan(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	params := h.dashboard.parseParams(r)

	// Progress callbacks come from the pipeline goroutine and the final
	// result write from this one; gorilla connections allow one writer.
	var writeMu sync.Mutex
	writeJSON := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	progress := func(done, total int, ticker string) {
		msg := progressMessage{Type: "progress", Done: done, Total: total, Ticker: ticker}
		if err := writeJSON(msg); err != nil {
			h.logger.WithError(err).Debug("Progress write failed, client likely gone")
		}
	}

	dashboard, err := h.dashboard.pipeline.Run(r.Context(), params, progress)
	if err != nil {
		msg := resultMessage{Type: "error", Error: "Failed to build dashboard"}
		if errors.Is(err, pipeline.ErrEmptyUniverse) {
			msg.Error = "Constituent list unavailable"
		}
		h.logger.WithError(err).Error("Streamed scan failed")
		writeJSON(msg)
		return
	}

	if err := writeJSON(resultMessage{Type: "result", Dashboard: dashboard}); err != nil {
		h.logger.WithError(err).Debug("Result write failed")
		return
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "scan complete"))
}
