package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stagekit-dev/stagekit/pkg/document"
	"github.com/stagekit-dev/stagekit/pkg/stagedef"
	"github.com/stagekit-dev/stagekit/pkg/state"
)

const testDefinition = `
stage: main
layers:
  - name: nav
    default: home
    frames: [home, about]
    active: home
  - name: body
    frames: [intro, detail]
    active: intro
`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	def, err := stagedef.Parse([]byte(testDefinition))
	if err != nil {
		t.Fatalf("parse definition: %v", err)
	}
	doc := document.NewMemoryDocument()
	stage, err := def.Build(doc)
	if err != nil {
		t.Fatalf("build definition: %v", err)
	}
	s := New(state.New(stage, doc), DefaultConfig())
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return s, ts
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHandleState(t *testing.T) {
	_, ts := newTestServer(t)

	var full stateResponse
	getJSON(t, ts.URL+"/state", &full)
	want := []string{"nav.home", "body.intro"}
	if len(full.States) != 2 || full.States[0] != want[0] || full.States[1] != want[1] {
		t.Errorf("states = %v, want %v", full.States, want)
	}

	// nav shows its default and body its first child: minimised is empty.
	var min stateResponse
	getJSON(t, ts.URL+"/state?minimise=1", &min)
	if len(min.States) != 0 {
		t.Errorf("minimised states = %v, want none", min.States)
	}
}

func TestHandleStructure(t *testing.T) {
	_, ts := newTestServer(t)

	var resp structureResponse
	getJSON(t, ts.URL+"/structure", &resp)
	want := []string{"nav", "nav.home", "nav.about", "body", "body.intro", "body.detail"}
	if len(resp.Views) != len(want) {
		t.Fatalf("views = %v, want %v", resp.Views, want)
	}
	for i := range want {
		if resp.Views[i] != want[i] {
			t.Fatalf("views = %v, want %v", resp.Views, want)
		}
	}
}

func TestHandleTransition(t *testing.T) {
	_, ts := newTestServer(t)

	body, _ := json.Marshal(transitionRequest{States: []string{"nav.about"}})
	resp, err := http.Post(ts.URL+"/transition", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var tr transitionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !tr.Dispatched {
		t.Error("transition not dispatched")
	}

	var st stateResponse
	getJSON(t, ts.URL+"/state", &st)
	if st.States[0] != "nav.about" {
		t.Errorf("state after transition = %v", st.States)
	}
}

func TestHandleTransitionErrors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"unresolved path", `{"states":["missing"]}`, http.StatusNotFound},
		{"selector on frame", `{"states":["nav.home.!x"]}`, http.StatusBadRequest},
		{"empty states", `{"states":[]}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/transition", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestLivePush(t *testing.T) {
	_, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readMsg := func() stateMessage {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg stateMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		return msg
	}

	first := readMsg()
	if first.Type != "stateChanged" || len(first.States) != 2 {
		t.Fatalf("initial message = %+v", first)
	}

	body := `{"states":["body.detail"]}`
	resp, err := http.Post(ts.URL+"/transition", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()

	push := readMsg()
	if push.States[1] != "body.detail" {
		t.Errorf("pushed states = %v, want body.detail active", push.States)
	}
}
