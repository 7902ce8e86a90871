// Package server exposes the live editor over HTTP and pushes every freshly
// evaluated surface to websocket clients.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"planetsynth/internal/surface"
	"planetsynth/pkg/params"
)

// SurfaceMessage is pushed to every client after each completed pass.
// Colors are packed 0xRRGGBB.
type SurfaceMessage struct {
	Type       string    `json:"type"`
	Generation uint64    `json:"generation"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	WorldType  string    `json:"worldType"`
	Elevation  []float32 `json:"elevation"`
	Colors     []uint32  `json:"colors"`
	Emission   []float32 `json:"emission"`
}

// ClientMessage is one edit request. Fields are applied in the order
// preset, prompt, set, reseed.
type ClientMessage struct {
	Set    params.Vector `json:"set,omitempty"`
	Preset string        `json:"preset,omitempty"`
	Prompt string        `json:"prompt,omitempty"`
	Reseed bool          `json:"reseed,omitempty"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server fans surfaces out to websocket clients.
type Server struct {
	editor        *surface.Editor
	width, height int
	workers       int

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	latestMu sync.RWMutex
	latest   *SurfaceMessage
}

// New creates a server evaluating w×h surfaces.
func New(editor *surface.Editor, w, h, workers int) *Server {
	return &Server{
		editor:  editor,
		width:   w,
		height:  h,
		workers: workers,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Run keeps the surface in step with the editor until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return surface.Follow(ctx, s.editor, s.width, s.height, s.workers, s.publish)
}

// Handler routes /ws, /params and /presets.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/params", s.handleParams)
	mux.HandleFunc("/presets", s.handlePresets)
	return mux
}

func (s *Server) publish(f *surface.Field) {
	msg := encodeField(f, s.editor.Name())
	s.latestMu.Lock()
	s.latest = msg
	s.latestMu.Unlock()
	s.broadcast(msg)
}

func encodeField(f *surface.Field, worldType string) *SurfaceMessage {
	size := f.Size()
	msg := &SurfaceMessage{
		Type:       "surface",
		Generation: f.Generation,
		Width:      size.W,
		Height:     size.H,
		WorldType:  worldType,
		Elevation:  make([]float32, size.Area()),
		Colors:     make([]uint32, size.Area()),
		Emission:   make([]float32, size.Area()),
	}
	for i, e := range f.Elevation.Cells() {
		msg.Elevation[i] = float32(e)
		r, g, b := f.Color.Cells()[i].RGBA8()
		msg.Colors[i] = uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		msg.Emission[i] = float32(f.Emission.Cells()[i])
	}
	return msg
}

// Latest returns the most recently published surface, or nil.
func (s *Server) Latest() *SurfaceMessage {
	s.latestMu.RLock()
	defer s.latestMu.RUnlock()
	return s.latest
}

func (s *Server) broadcast(v any) {
	s.clientsMu.RLock()
	var dead []*websocket.Conn
	for conn, mu := range s.clients {
		mu.Lock()
		err := conn.WriteJSON(v)
		mu.Unlock()
		if err != nil {
			log.Printf("server: write to %s: %v", conn.RemoteAddr(), err)
			dead = append(dead, conn)
		}
	}
	s.clientsMu.RUnlock()
	for _, conn := range dead {
		s.drop(conn)
	}
}

func (s *Server) send(conn *websocket.Conn, v any) error {
	s.clientsMu.RLock()
	mu, ok := s.clients[conn]
	s.clientsMu.RUnlock()
	if !ok {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()
	return conn.WriteJSON(v)
}

func (s *Server) drop(conn *websocket.Conn) {
	s.clientsMu.Lock()
	delete(s.clients, conn)
	s.clientsMu.Unlock()
	conn.Close()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("server: websocket upgrade:", err)
		return
	}
	s.clientsMu.Lock()
	s.clients[conn] = &sync.Mutex{}
	s.clientsMu.Unlock()
	defer s.drop(conn)

	if msg := s.Latest(); msg != nil {
		if err := s.send(conn, msg); err != nil {
			return
		}
	}

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("server: websocket read:", err)
			}
			return
		}
		if errText := s.apply(msg); errText != "" {
			if err := s.send(conn, errorMessage{Type: "error", Error: errText}); err != nil {
				return
			}
		}
	}
}

// apply runs one client edit and returns a problem description, if any.
func (s *Server) apply(msg ClientMessage) string {
	var problem string
	if msg.Preset != "" && !s.editor.ApplyPreset(msg.Preset) {
		problem = "unknown preset " + msg.Preset
	}
	if msg.Prompt != "" {
		s.editor.ApplyPrompt(msg.Prompt)
	}
	if len(msg.Set) > 0 {
		s.editor.Set(msg.Set)
	}
	if msg.Reseed {
		s.editor.Reseed()
	}
	return problem
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost, http.MethodPatch:
		var overrides params.Vector
		if err := json.NewDecoder(r.Body).Decode(&overrides); err != nil {
			http.Error(w, "invalid parameter JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		s.editor.Set(overrides)
	default:
		w.Header().Set("Allow", "GET, POST, PATCH")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.editor.Vector())
}

type presetInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Exotic      bool   `json:"exotic"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	var out []presetInfo
	for _, name := range params.PresetNames() {
		p, _ := params.LookupPreset(name)
		out = append(out, presetInfo{Name: p.Name, Title: p.Title, Description: p.Description, Exotic: p.Exotic})
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}
