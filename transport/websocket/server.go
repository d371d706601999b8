package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/sanathkumarr/hitwicket-backend/internal/entity"
	"github.com/sanathkumarr/hitwicket-backend/internal/pkg"
	"github.com/sanathkumarr/hitwicket-backend/internal/room"
)

const writeTimeout = 3 * time.Second

type gameManager interface {
	Join(ctx context.Context, client *room.Client, asSpectator bool) string
	Leave(ctx context.Context, clientID string)
	MakeMove(ctx context.Context, clientID string, from, to entity.Position) (entity.Game, error)
	SendChat(ctx context.Context, clientID, text string) error
	Restart(ctx context.Context, clientID string) error
	PossibleMoves(clientID string, from entity.Position) []entity.Position
}

// session is one live connection: the socket, its room registration and the
// channel for gateway-originated replies (errors, possible-moves responses).
type session struct {
	id     string
	conn   *websocket.Conn
	client *room.Client
	direct chan Message
	joined bool
}

type Server struct {
	logger  *slog.Logger
	manager gameManager

	handlers map[string]func(ctx context.Context, sess *session, message *Message) error
}

func New(logger *slog.Logger, manager gameManager) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,

		handlers: make(map[string]func(context.Context, *session, *Message) error),
	}

	server.handlers[ActionJoinGame] = server.handleJoinGame
	server.handlers[ActionJoinSpectator] = server.handleJoinSpectator
	server.handlers[ActionMove] = server.handleMove
	server.handlers[ActionChatMessage] = server.handleChatMessage
	server.handlers[ActionRestartGame] = server.handleRestartGame
	server.handlers[ActionPossibleMoves] = server.handlePossibleMoves

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveConnection)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		IdleTimeout: 30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConnection(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Error("failed to accept websocket connection", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	ctx := r.Context()
	connID := pkg.GenerateConnectionID()

	sess := &session{
		id:   connID,
		conn: conn,
		client: &room.Client{
			ID:       connID,
			Username: pkg.GenerateUsername(connID),
			Outbox:   make(chan room.Event, 16),
		},
		direct: make(chan Message, 8),
	}

	writeCtx, writeCancel := context.WithCancel(ctx)
	defer writeCancel()
	go that.writeLoop(writeCtx, sess)

	log.Info("websocket connection established", "client", connID)

	that.readLoop(ctx, sess)

	if sess.joined {
		that.manager.Leave(context.WithoutCancel(ctx), sess.id)
	}
}

// readLoop processes inbound messages until the client goes away.
func (that *Server) readLoop(ctx context.Context, sess *session) {
	log := that.logger.With("method", "readLoop", "client", sess.id)

	for {
		_, data, err := sess.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				log.Debug("connection closed", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			that.sendError(sess, "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.sendError(sess, "unknown action: "+message.Action)
			continue
		}

		if err = handler(ctx, sess, &message); err != nil {
			log.Debug("action rejected", "action", message.Action, "error", err)
			that.sendError(sess, err.Error())
		}
	}
}

// writeLoop is the single writer for this connection. Room events and direct
// replies are serialized here so socket writes never interleave.
func (that *Server) writeLoop(ctx context.Context, sess *session) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-sess.client.Outbox:
			if !ok {
				return
			}

			payload, err := json.Marshal(event.Payload)
			if err != nil {
				that.logger.Error("failed to marshal event payload", "action", event.Action, "error", err)
				continue
			}

			that.write(ctx, sess, Message{Action: event.Action, Payload: payload})

		case message := <-sess.direct:
			that.write(ctx, sess, message)
		}
	}
}

func (that *Server) write(ctx context.Context, sess *session, message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		that.logger.Error("failed to marshal message", "action", message.Action, "error", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err = sess.conn.Write(writeCtx, websocket.MessageText, data); err != nil {
		that.logger.Debug("failed to write message", "client", sess.id, "error", err)
	}
}

// sendError reports a rejection to the offending connection only.
func (that *Server) sendError(sess *session, text string) {
	that.sendDirect(sess, ActionError, text)
}

func (that *Server) sendDirect(sess *session, action string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		that.logger.Error("failed to marshal direct payload", "action", action, "error", err)
		return
	}

	select {
	case sess.direct <- Message{Action: action, Payload: data}:
	default:
		that.logger.Warn("direct channel full, dropping message", "client", sess.id, "action", action)
	}
}
