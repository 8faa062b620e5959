package http

import (
	"net/http"
	"testing"
	"time"

	"noukie-quiz-service/internal/app"
	"noukie-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
)

func TestWebSocketProgressFeed(t *testing.T) {
	server, hub := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/play?sessionId=s1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Initial snapshot arrives first.
	msgType, progress := readProgress(conn, t)
	if msgType != "progress" || progress.Answered != 0 {
		t.Fatalf("expected empty initial snapshot, got %s %+v", msgType, progress)
	}

	hub.PublishAnswer("s1", domain.VerdictCorrect, time.Now())

	_, progress = readProgress(conn, t)
	if progress.Answered != 1 || progress.Correct != 1 || progress.LastVerdict != domain.VerdictCorrect {
		t.Fatalf("expected progress after answer, got %+v", progress)
	}

	hub.PublishFinish("s1", 1, 1, 100, time.Now())
	_, progress = readProgress(conn, t)
	if !progress.Finished || progress.Percent != 100 {
		t.Fatalf("expected finished snapshot, got %+v", progress)
	}
}

func TestWebSocketRequiresSessionID(t *testing.T) {
	server, _ := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/ws/play")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without sessionId, got %d", resp.StatusCode)
	}
}

func readProgress(conn *websocket.Conn, t *testing.T) (string, app.PlayProgress) {
	t.Helper()
	var msg struct {
		Type    string           `json:"type"`
		Payload app.PlayProgress `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg.Type, msg.Payload
}
