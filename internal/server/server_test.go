package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"planetsynth/internal/surface"
	"planetsynth/pkg/core"
	"planetsynth/pkg/params"
)

func startServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	ed := surface.NewEditor(nil, core.NewRNG(7), nil)
	s := New(ed, 32, 16, 2)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		<-done
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := conn.SetReadDeadline(time.Now().Add(15 * time.Second)); err != nil {
		t.Fatal(err)
	}
	return conn
}

type incoming struct {
	SurfaceMessage
	Error string `json:"error"`
}

func TestWebSocketEditPushesSurface(t *testing.T) {
	_, ts := startServer(t)
	conn := dial(t, ts)

	if err := conn.WriteJSON(map[string]any{"set": map[string]any{"waterLevel": 0.2}}); err != nil {
		t.Fatal(err)
	}
	for {
		var msg incoming
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type != "surface" || msg.Generation < 1 {
			continue
		}
		if msg.Width != 32 || msg.Height != 16 {
			t.Fatalf("size %dx%d", msg.Width, msg.Height)
		}
		if len(msg.Elevation) != 32*16 || len(msg.Colors) != 32*16 || len(msg.Emission) != 32*16 {
			t.Fatalf("layer lengths %d %d %d", len(msg.Elevation), len(msg.Colors), len(msg.Emission))
		}
		break
	}

	resp, err := http.Get(ts.URL + "/params")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var v params.Vector
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	if v.Float(params.KeyWaterLevel) != 0.2 {
		t.Fatalf("waterLevel = %v", v.Float(params.KeyWaterLevel))
	}
}

func TestWebSocketUnknownPreset(t *testing.T) {
	_, ts := startServer(t)
	conn := dial(t, ts)

	if err := conn.WriteJSON(ClientMessage{Preset: "nowhere"}); err != nil {
		t.Fatal(err)
	}
	for {
		var msg incoming
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type == "error" {
			if !strings.Contains(msg.Error, "nowhere") {
				t.Fatalf("error = %q", msg.Error)
			}
			return
		}
	}
}

func TestParamsPost(t *testing.T) {
	s, ts := startServer(t)
	body := strings.NewReader(`{"waterLevel": 0.35, "rockColor": "#102030"}`)
	resp, err := http.Post(ts.URL+"/params", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	v := s.editor.Vector()
	if v.Float(params.KeyWaterLevel) != 0.35 || v.Text(params.KeyRockColor) != "#102030" {
		t.Fatalf("vector after POST = %v", v)
	}

	resp, err = http.Post(ts.URL+"/params", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad JSON status %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/params", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE status %d", resp.StatusCode)
	}
}

func TestPresetsListing(t *testing.T) {
	_, ts := startServer(t)
	resp, err := http.Get(ts.URL + "/presets")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var list []presetInfo
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != len(params.PresetNames()) {
		t.Fatalf("listed %d presets, registry has %d", len(list), len(params.PresetNames()))
	}
}

func TestEncodeFieldPacksColors(t *testing.T) {
	ed := surface.NewEditor(nil, core.NewRNG(3), nil)
	f, err := surface.Evaluate(context.Background(), ed.Planet(), 8, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	msg := encodeField(f, ed.Name())
	r, g, b := f.Color.At(2, 1).RGBA8()
	got := msg.Colors[f.Color.Index(2, 1)]
	if got != uint32(r)<<16|uint32(g)<<8|uint32(b) {
		t.Fatalf("packed %06x", got)
	}
}
