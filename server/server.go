package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"snekarcade/ads"
	"snekarcade/engine"
	"snekarcade/game"
	"snekarcade/haptics"
	"snekarcade/highscore"
)

//go:embed views/*.html
var views embed.FS

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

type Config struct {
	Name    string
	Version string
	Engine  engine.Config
	Ads     ads.SimConfig
	Units   ads.Units
}

func DefaultConfig() Config {
	return Config{
		Name:    "Snek Arcade",
		Version: "1.0.0",
		Engine:  engine.DefaultConfig(),
		Ads:     ads.DefaultSimConfig(),
		Units:   ads.TestUnits,
	}
}

// Server serves the home, game, high-score and settings screens and runs
// one controller per websocket connection.
type Server struct {
	cfg    Config
	board  *highscore.Board
	banner ads.Provider
	tmpl   *template.Template

	upgrader websocket.Upgrader

	mu    sync.Mutex
	games map[string]*engine.Controller
}

func New(cfg Config, board *highscore.Board) *Server {
	s := &Server{
		cfg:    cfg,
		board:  board,
		banner: ads.NewSlot(ads.Banner, cfg.Units.Banner, cfg.Ads),
		tmpl:   template.Must(template.New("views").Funcs(funcs).ParseFS(views, "views/*.html")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		games: make(map[string]*engine.Controller),
	}
	s.banner.Load()
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /play", s.handlePlay)
	mux.HandleFunc("GET /highscores", s.handleHighScores)
	mux.HandleFunc("POST /highscores/clear", s.handleClearHighScores)
	mux.HandleFunc("GET /settings", s.handleSettings)
	mux.HandleFunc("GET /api/highscores", s.handleHighScoresJSON)
	mux.HandleFunc("DELETE /api/highscores", s.handleHighScoresDelete)
	mux.HandleFunc("GET /connect", s.handleConnect)
	return mux
}

// Games reports how many controllers are live.
func (s *Server) Games() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

type page struct {
	Name        string
	Version     string
	Best        int
	Scores      []highscore.Entry
	BannerUnit  string
	BannerReady bool
}

func (s *Server) page() page {
	return page{
		Name:        s.cfg.Name,
		Version:     s.cfg.Version,
		BannerUnit:  s.cfg.Units.Banner,
		BannerReady: s.banner.State() == ads.Loaded,
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	p := s.page()
	p.Best = s.board.Best()
	s.render(w, "index", p)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	s.render(w, "game", s.page())
}

func (s *Server) handleHighScores(w http.ResponseWriter, r *http.Request) {
	p := s.page()
	p.Scores = s.board.Top()
	s.render(w, "highscores", p)
}

func (s *Server) handleClearHighScores(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Clear(); err != nil {
		log.Printf("Error clearing high scores: %v", err)
	}
	http.Redirect(w, r, "/highscores", http.StatusSeeOther)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.render(w, "settings", s.page())
}

func (s *Server) handleHighScoresJSON(w http.ResponseWriter, r *http.Request) {
	scores := s.board.Top()
	if scores == nil {
		scores = []highscore.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(scores); err != nil {
		log.Printf("Error writing high scores: %v", err)
	}
}

func (s *Server) handleHighScoresDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Clear(); err != nil {
		log.Printf("Error clearing high scores: %v", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) render(w http.ResponseWriter, block string, data any) {
	buffer := bytes.Buffer{}
	if err := s.tmpl.ExecuteTemplate(&buffer, block, data); err != nil {
		log.Printf("Error rendering %s: %v", block, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buffer.Bytes())
}

// Res is a client message: a direction request or a named action.
type Res struct {
	Direction string `json:"direction,omitempty"`
	Action    string `json:"action,omitempty"`
}

type message struct {
	Type   string           `json:"type"`
	ID     string           `json:"id,omitempty"`
	State  *engine.Snapshot `json:"state,omitempty"`
	Haptic string           `json:"haptic,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading: %s", err)
		return
	}
	defer conn.Close()

	id := uuid.New().String()
	outbox := make(chan message, 16)
	send := func(m message) {
		select {
		case outbox <- m:
		default:
			log.Printf("dropping %s message for %s", m.Type, id)
		}
	}

	ctrl := engine.New(s.cfg.Engine, engine.Deps{
		Scores:       s.board,
		Interstitial: ads.NewSlot(ads.Interstitial, s.cfg.Units.Interstitial, s.cfg.Ads),
		Rewarded:     ads.NewSlot(ads.Rewarded, s.cfg.Units.Rewarded, s.cfg.Ads),
		Haptics: haptics.Func(func(f haptics.Feedback) {
			send(message{Type: "haptic", Haptic: f.String()})
		}),
	})
	s.register(id, ctrl)
	defer s.unregister(id)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go ctrl.Run(ctx)

	written := make(chan struct{})
	go func() {
		defer close(written)
		s.writeLoop(conn, id, ctrl, outbox)
	}()

	closeHandler := conn.CloseHandler()
	conn.SetCloseHandler(func(code int, text string) error {
		log.Printf("connection lost with client: %s", conn.RemoteAddr())
		return closeHandler(code, text)
	})
	ctrl.Start()

	for {
		response := Res{}
		if err := conn.ReadJSON(&response); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Error reading message from %s: %v", conn.RemoteAddr(), err)
			}
			break
		}
		if !s.apply(ctrl, response, send) {
			break
		}
	}

	ctrl.Home()
	<-written
}

// apply dispatches one client message. It returns false when the client
// navigated home.
func (s *Server) apply(ctrl *engine.Controller, res Res, send func(message)) bool {
	if res.Direction != "" {
		d, err := game.ParseDirection(res.Direction)
		if err != nil {
			send(message{Type: "error", Error: err.Error()})
			return true
		}
		ctrl.ChangeDirection(d)
	}

	switch res.Action {
	case "":
	case "pause":
		ctrl.Pause()
	case "resume":
		ctrl.Resume()
	case "toggle":
		ctrl.TogglePause()
	case "reset":
		ctrl.Reset()
	case "continue":
		if err := ctrl.RequestContinue(); err != nil {
			send(message{Type: "error", Error: err.Error()})
		}
	case "home":
		return false
	default:
		send(message{Type: "error", Error: "unknown action " + res.Action})
	}
	return true
}

func (s *Server) writeLoop(conn *websocket.Conn, id string, ctrl *engine.Controller, outbox <-chan message) {
	write := func(m message) bool {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(m); err != nil {
			log.Println(err)
			return false
		}
		return true
	}

	if !write(message{Type: "hello", ID: id}) {
		return
	}
	updates := ctrl.Updates()
	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "home"))
				return
			}
			if !write(message{Type: "state", State: &snap}) {
				return
			}
		case m := <-outbox:
			if !write(m) {
				return
			}
		}
	}
}

func (s *Server) register(id string, ctrl *engine.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = ctrl
}

func (s *Server) unregister(id string) {
	s.mu.Lock()
	ctrl, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()
	if ok {
		ctrl.Wait()
	}
}
