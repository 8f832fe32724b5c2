// Package tune exposes live parameter editing over a websocket
package tune

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/asteroid-forge/core"
	"github.com/lixenwraith/asteroid-forge/engine"
	"github.com/lixenwraith/asteroid-forge/shape"
	"github.com/lixenwraith/asteroid-forge/status"
)

// Path is the websocket endpoint
const Path = "/tune"

// Message types
const (
	TypePatch = "patch"
	TypeList  = "list"
	TypeStats = "stats"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Request is a client message; an empty Type means patch
type Request struct {
	Type     string      `json:"type,omitempty"`
	Instance core.Entity `json:"instance"`
	shape.Patch
}

// Instance describes one asteroid in a list reply
type Instance struct {
	ID      core.Entity  `json:"id"`
	Name    string       `json:"name"`
	Version uint64       `json:"version"`
	Params  shape.Params `json:"params"`
}

// Reply answers exactly one Request
type Reply struct {
	OK        bool             `json:"ok"`
	Version   uint64           `json:"version"`
	Error     string           `json:"error,omitempty"`
	Instances []Instance       `json:"instances,omitempty"`
	Stats     *status.Snapshot `json:"stats,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server applies parameter patches from websocket clients to the world
type Server struct {
	world *engine.World

	mu         sync.Mutex
	clients    map[*client]struct{}
	httpServer *http.Server
}

// NewServer creates a tuning server over world
func NewServer(world *engine.World) *Server {
	return &Server{
		world:   world,
		clients: make(map[*client]struct{}),
	}
}

// Handler returns a mux serving the websocket at Path
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.HandleWebSocket)
	return mux
}

// HandleWebSocket upgrades the connection and starts its pumps
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("tune: upgrade: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, 16),
	}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	go s.readPump(c)
	go s.writePump(c)
}

func (s *Server) readPump(c *client) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		close(c.send)
	}()

	for {
		var req Request
		if err := c.conn.ReadJSON(&req); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.reply(c, Reply{Error: fmt.Sprintf("malformed request: %v", err)})
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("tune: read: %v", err)
			}
			return
		}
		s.reply(c, s.Handle(req))
	}
}

func (s *Server) writePump(c *client) {
	defer c.conn.Close()

	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("tune: write: %v", err)
			return
		}
	}
}

func (s *Server) reply(c *client, r Reply) {
	data, err := json.Marshal(r)
	if err != nil {
		log.Printf("tune: marshal reply: %v", err)
		return
	}
	c.send <- data
}

// Handle applies one request under the world update lock
func (s *Server) Handle(req Request) Reply {
	var reply Reply
	s.world.RunSafe(func() {
		switch req.Type {
		case "", TypePatch:
			version, err := engine.PatchAsteroidParams(s.world, req.Instance, req.Patch)
			if err != nil {
				reply.Error = err.Error()
				return
			}
			reply.OK = true
			reply.Version = version

		case TypeList:
			reply.OK = true
			reply.Instances = s.instances()

		case TypeStats:
			res, ok := engine.GetResource[*engine.StatusResource](s.world.Resources)
			if !ok {
				reply.Error = "metrics unavailable"
				return
			}
			snap := res.Registry.Snapshot()
			reply.OK = true
			reply.Stats = &snap

		default:
			reply.Error = fmt.Sprintf("unknown message type %q", req.Type)
		}
	})
	return reply
}

// instances lists asteroids; caller holds the update lock
func (s *Server) instances() []Instance {
	entities := engine.Asteroids(s.world)
	list := make([]Instance, 0, len(entities))
	for _, e := range entities {
		ast, ok := s.world.Components.Asteroid.GetComponent(e)
		if !ok {
			continue
		}
		list = append(list, Instance{ID: e, Name: ast.Name, Version: ast.Version, Params: ast.Params})
	}
	return list
}

// Start serves on addr until Stop; returns nil after a clean shutdown
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	log.Printf("tune: listening on %s%s", addr, Path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("tune: serve: %w", err)
	}
	return nil
}

// Stop shuts the HTTP server down and closes open connections
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c.conn)
	}
	s.mu.Unlock()

	var err error
	if srv != nil {
		if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("tune: shutdown: %w", shutdownErr)
		}
	}
	// hijacked connections are not closed by Shutdown
	for _, conn := range conns {
		conn.Close()
	}
	return err
}
