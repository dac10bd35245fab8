package net

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"StudyInk/internal/storage"
)

// BackupMessage is the websocket wire format. A "pull" asks the peer
// for everything; each surface comes back as a "record"; "done" closes
// the exchange. Records overwrite whatever the receiver has for the
// same key; last writer wins, no merge.
type BackupMessage struct {
	Type   string                 `json:"type"`
	Record *storage.SurfaceRecord `json:"record,omitempty"`
}

// Server serves and receives annotation backups for one store.
type Server struct {
	adapter  *storage.Adapter
	upgrader websocket.Upgrader
}

func NewServer(adapter *storage.Adapter) *Server {
	return &Server{
		adapter: adapter,
		// Peers are trusted on the local network; there is no origin
		// to check for a non-browser client.
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// Start listens for backup connections. Blocks; run it in a goroutine.
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/backup", s.handle)
	log.Printf("[NET] backup server listening on :%d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[NET] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := uuid.NewString()[:8]
	log.Printf("[NET] peer %s connected (session %s)", r.RemoteAddr, session)

	for {
		var msg BackupMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("[NET] session %s closed: %v", session, err)
			return
		}
		switch msg.Type {
		case "pull":
			if err := s.sendAll(conn, session); err != nil {
				log.Printf("[NET] session %s send failed: %v", session, err)
				return
			}
		case "record":
			if msg.Record == nil {
				continue
			}
			if err := s.adapter.Import(r.Context(), *msg.Record); err != nil {
				log.Printf("[NET] session %s import %s failed: %v", session, msg.Record.ID, err)
			}
		case "done":
			return
		}
	}
}

func (s *Server) sendAll(conn *websocket.Conn, session string) error {
	recs, err := s.adapter.List(context.Background())
	if err != nil {
		return err
	}
	for i := range recs {
		if err := conn.WriteJSON(BackupMessage{Type: "record", Record: &recs[i]}); err != nil {
			return err
		}
	}
	log.Printf("[NET] session %s sent %d records", session, len(recs))
	return conn.WriteJSON(BackupMessage{Type: "done"})
}

// Pull connects to a peer at addr (host:port), imports every surface
// record it offers, and reports how many arrived.
func Pull(ctx context.Context, addr string, adapter *storage.Adapter) (int, error) {
	url := fmt.Sprintf("ws://%s/backup", addr)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return 0, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(BackupMessage{Type: "pull"}); err != nil {
		return 0, fmt.Errorf("request backup: %w", err)
	}

	count := 0
	for {
		var msg BackupMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return count, fmt.Errorf("read backup: %w", err)
		}
		switch msg.Type {
		case "record":
			if msg.Record == nil {
				continue
			}
			if err := adapter.Import(ctx, *msg.Record); err != nil {
				return count, fmt.Errorf("import %s: %w", msg.Record.ID, err)
			}
			count++
		case "done":
			log.Printf("[NET] pulled %d records from %s", count, addr)
			return count, nil
		}
	}
}
