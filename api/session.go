package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"puissance4/games"
	"puissance4/scoresync"
)

const SessionPath = "/ws/session"

const (
	writeWait    = 10 * time.Second
	pongWait     = 2 * time.Minute
	pingInterval = 60 * time.Second
	syncTimeout  = 15 * time.Second
)

type MessageType string

// message types for websocket messages
const (
	// page -> server
	TypeDrop    MessageType = "drop"
	TypeReset   MessageType = "reset"
	TypeSave    MessageType = "save"
	TypeRefresh MessageType = "refresh"

	// server -> page
	TypeGameState   MessageType = "gameState"
	TypeLeaderboard MessageType = "leaderboard"
	TypeNotice      MessageType = "notice"
	TypeError       MessageType = "error"
)

// Message is the envelope for everything sent over a session.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorMessage is the payload of TypeError.
type ErrorMessage struct {
	Error string `json:"error"`
}

// NoticeMessage is the payload of TypeNotice: a one-shot message for the
// player about a save.
type NoticeMessage struct {
	Message string `json:"message"`
	Result  string `json:"result"`
}

// Syncer saves a session tally and reads the leaderboard.
// *scoresync.Client is the production implementation.
type Syncer interface {
	Save(ctx context.Context, tally games.Tally) scoresync.SaveResult
	Refresh(ctx context.Context) (games.Summary, error)
}

// CheckOrigin is left nil, so only same-origin pages may connect: the Origin
// host must equal the request Host. A reverse proxy that rewrites Host must
// forward the original one or every upgrade is refused with 403.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ServeSession upgrades the request and plays one local session on it until
// the page goes away. Each connection gets a fresh game and a zero tally.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Failed to upgrade connection:", err)
		return
	}

	s := newSession(conn, h.Sync)
	s.log.WithField("remote", r.RemoteAddr).Info("session started")
	s.run()
	tally := s.game.Tally()
	s.log.WithFields(log.Fields{
		"games": tally.Games(),
		"tally": tally,
	}).Info("session closed")
}

type session struct {
	id   string
	conn *websocket.Conn
	game *games.Game
	sync Syncer
	log  *log.Entry

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

func newSession(conn *websocket.Conn, syncer Syncer) *session {
	id := uuid.NewString()
	return &session{
		id:   id,
		conn: conn,
		game: games.NewGame(),
		sync: syncer,
		log:  log.WithField("session", id),
	}
}

func (s *session) run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		s.conn.Close()
		s.wg.Wait()
	}()

	s.game.Observe(func(state games.State) {
		if state.Status == games.StatusFinished {
			gamesTotal.WithLabelValues(resultLabel(state)).Inc()
			s.log.WithField("winner", state.Winner).Info("game finished")
		}
		s.send(TypeGameState, state)
	})

	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// keep the connection alive
	s.background(func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	})

	if err := s.send(TypeGameState, s.game.State()); err != nil {
		return
	}
	s.background(func() { s.refresh(ctx) })

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Warn("error reading message")
			}
			return
		}
		s.handle(ctx, data)
	}
}

// handle processes one message to completion before the next is read.
func (s *session) handle(ctx context.Context, data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		s.log.WithError(err).Debug("error unmarshaling message")
		s.sendError("invalid message")
		return
	}

	switch message.Type {
	case TypeDrop:
		var move games.Move
		if err := json.Unmarshal(message.Payload, &move); err != nil {
			s.sendError("invalid move")
			return
		}
		// Late clicks and full columns are ignored; the page already shows
		// the current state.
		if err := s.game.MakeMove(move.Column); err != nil {
			s.log.WithError(err).WithField("column", move.Column).Debug("move ignored")
		}

	case TypeReset:
		s.game.Reset()

	case TypeSave:
		tally := s.game.Tally()
		s.background(func() { s.save(ctx, tally) })

	case TypeRefresh:
		s.background(func() { s.refresh(ctx) })

	default:
		s.sendError("unknown message type: " + string(message.Type))
	}
}

// save pushes a tally snapshot and tells the player how it went. The game keeps
// going while this runs.
func (s *session) save(ctx context.Context, tally games.Tally) {
	res := scoresync.Offline
	if s.sync != nil {
		ctx, cancel := context.WithTimeout(ctx, syncTimeout)
		res = s.sync.Save(ctx, tally)
		cancel()
	}
	s.log.WithField("result", res).Info("scores synced")

	s.send(TypeNotice, NoticeMessage{Message: res.Notice(), Result: res.String()})
	if res.Succeeded() {
		s.refresh(ctx)
	}
}

// refresh sends the leaderboard. On failure nothing is sent, so the page keeps
// whatever it showed before.
func (s *session) refresh(ctx context.Context) {
	if s.sync == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	summary, err := s.sync.Refresh(ctx)
	if err != nil {
		s.log.WithError(err).Debug("leaderboard unavailable")
		return
	}
	s.send(TypeLeaderboard, summary)
}

func (s *session) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// send writes one message. Writes from the read loop and from background work
// are serialized here.
func (s *session) send(t MessageType, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.WithError(err).Error("error marshalling payload")
		return err
	}
	messageJSON, err := json.Marshal(Message{Type: t, Payload: raw})
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, messageJSON); err != nil {
		if !errors.Is(err, websocket.ErrCloseSent) {
			s.log.WithError(err).Debug("error sending message")
		}
		return err
	}
	return nil
}

// Helper function to send error messages
func (s *session) sendError(text string) {
	s.send(TypeError, ErrorMessage{Error: text})
}
