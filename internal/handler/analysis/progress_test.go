package analysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	model "github.com/DomRamond/feeling-whatsapp-app/internal/model/analysis"
)

func TestProgressSocketReportsFinishedRun(t *testing.T) {
	r := setupRouter()
	server := httptest.NewServer(r)
	defer server.Close()

	// The run is synchronous, so by the time the upload returns its
	// progress entry is final.
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, uploadRequest(t, sampleTranscript))
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", resp.Code)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/analyses/" + created.ID + "/progress"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial progress socket: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var p model.Progress
	if err := conn.ReadJSON(&p); err != nil {
		t.Fatalf("read progress: %v", err)
	}
	if p.Stage != model.StageDone {
		t.Fatalf("expected done stage, got %+v", p)
	}
	if p.Done != p.Total || p.Total == 0 {
		t.Fatalf("unexpected counters: %+v", p)
	}
}
