package room

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sanathkumarr/hitwicket-backend/internal/apperror"
	"github.com/sanathkumarr/hitwicket-backend/internal/entity"
	"github.com/sanathkumarr/hitwicket-backend/internal/hitwicket"
)

// Outbound event names. These are part of the wire protocol.
const (
	ActionUpdateGame    = "update-game"
	ActionChatUpdate    = "chat-update"
	ActionPlayerJoined  = "player-joined"
	ActionPlayerLeft    = "player-left"
	ActionPossibleMoves = "possible-moves"
)

const chatTimestampLayout = "15:04:05"

// Event is one outbound message for a connection. The gateway wraps it into
// the wire envelope and writes it to the socket.
type Event struct {
	Action  string
	Payload any
}

// Client is one connected participant. The room owns the Outbox: only the room
// goroutine sends on it and closes it.
type Client struct {
	ID       string
	Username string
	Outbox   chan Event
}

// Result carries the post-mutation snapshot back to the caller of a mutating
// command, or the rejection error when nothing changed.
type Result struct {
	Snapshot entity.Game
	Err      error
}

type Msg interface{ isRoomMsg() }

// Join registers a connection. Unless AsSpectator is set, the connection takes
// a free player slot when one exists and falls back to spectator otherwise.
type Join struct {
	Client      *Client
	AsSpectator bool
	Reply       chan string // assigned slot, "" for spectators
}

type Leave struct{ ClientID string }

type Move struct {
	ClientID string
	From     entity.Position
	To       entity.Position
	Reply    chan Result
}

type Chat struct {
	ClientID string
	Text     string
	Reply    chan Result
}

type Restart struct {
	ClientID string
	Reply    chan Result
}

type PossibleMoves struct {
	ClientID string
	From     entity.Position
	Reply    chan []entity.Position
}

type GetState struct{ Reply chan entity.Game }

type Shutdown struct{}

func (Join) isRoomMsg()          {}
func (Leave) isRoomMsg()         {}
func (Move) isRoomMsg()          {}
func (Chat) isRoomMsg()          {}
func (Restart) isRoomMsg()       {}
func (PossibleMoves) isRoomMsg() {}
func (GetState) isRoomMsg()      {}
func (Shutdown) isRoomMsg()      {}

// Room owns the authoritative game state of one match. Every mutation goes
// through the inbox and is handled by a single goroutine, so operations never
// interleave and broadcasts always see a complete post-mutation state.
type Room struct {
	logger *slog.Logger

	inbox   chan Msg
	game    *entity.Game
	clients map[string]*Client

	ctx    context.Context
	cancel context.CancelFunc

	now func() time.Time
}

func New(parent context.Context, logger *slog.Logger, gameID string) *Room {
	ctx, cancel := context.WithCancel(parent)

	that := &Room{
		logger:  logger.With("component", "room", "game", gameID),
		inbox:   make(chan Msg, 64),
		game:    entity.NewGame(gameID),
		clients: make(map[string]*Client),
		ctx:     ctx,
		cancel:  cancel,
		now:     time.Now,
	}

	go that.loop()

	return that
}

func (that *Room) Inbox() chan<- Msg { return that.inbox }

func (that *Room) loop() {
	for {
		select {
		case <-that.ctx.Done():
			that.shutdown()
			return

		case m := <-that.inbox:
			switch msg := m.(type) {
			case Join:
				that.handleJoin(msg)
			case Leave:
				that.handleLeave(msg)
			case Move:
				that.handleMove(msg)
			case Chat:
				that.handleChat(msg)
			case Restart:
				that.handleRestart(msg)
			case PossibleMoves:
				that.handlePossibleMoves(msg)
			case GetState:
				msg.Reply <- that.game.Snapshot()
			case Shutdown:
				that.shutdown()
				return
			}
		}
	}
}

func (that *Room) handleJoin(msg Join) {
	that.clients[msg.Client.ID] = msg.Client

	slot := entity.EmptyCell
	if !msg.AsSpectator {
		player := &entity.Player{ID: msg.Client.ID, Username: msg.Client.Username}
		if assigned, ok := that.game.Bind(player); ok {
			slot = assigned
		}
	}

	that.broadcast(Event{Action: ActionPlayerJoined, Payload: msg.Client.Username})

	if slot != entity.EmptyCell {
		// Roster and status changed; everyone needs the new state. That
		// includes the joining connection, which gets its first snapshot here.
		that.broadcast(Event{Action: ActionUpdateGame, Payload: that.game.Snapshot()})
	} else {
		// Spectators change nothing; only they need to catch up.
		that.send(msg.Client, Event{Action: ActionUpdateGame, Payload: that.game.Snapshot()})
	}
	that.send(msg.Client, Event{Action: ActionChatUpdate, Payload: that.chatLog()})

	that.logger.Info("participant joined", "client", msg.Client.ID, "slot", slot)
	msg.Reply <- slot
}

func (that *Room) handleLeave(msg Leave) {
	client, ok := that.clients[msg.ClientID]
	if !ok {
		return
	}

	delete(that.clients, msg.ClientID)
	close(client.Outbox)

	that.broadcast(Event{Action: ActionPlayerLeft, Payload: msg.ClientID})

	if slot, wasPlayer := that.game.Unbind(msg.ClientID); wasPlayer {
		that.logger.Info("player left, slot freed", "client", msg.ClientID, "slot", slot)
		that.broadcast(Event{Action: ActionUpdateGame, Payload: that.game.Snapshot()})
		return
	}

	that.logger.Info("spectator left", "client", msg.ClientID)
}

func (that *Room) handleMove(msg Move) {
	slot := that.game.SlotOf(msg.ClientID)
	if slot == entity.EmptyCell {
		msg.Reply <- Result{Err: apperror.ErrNotAPlayer}
		return
	}

	if err := hitwicket.MakeTurn(that.game, slot, msg.From, msg.To); err != nil {
		// Rejections go back to the mover only; nothing is broadcast.
		msg.Reply <- Result{Err: err}
		return
	}

	snapshot := that.game.Snapshot()
	that.broadcast(Event{Action: ActionUpdateGame, Payload: snapshot})
	msg.Reply <- Result{Snapshot: snapshot}
}

func (that *Room) handleChat(msg Chat) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		msg.Reply <- Result{Err: apperror.ErrEmptyMessage}
		return
	}

	label := that.game.SlotOf(msg.ClientID)
	if label == entity.EmptyCell {
		if client, ok := that.clients[msg.ClientID]; ok {
			label = client.Username
		}
	}

	that.game.Chat = append(that.game.Chat, entity.ChatMessage{
		Player:    label,
		Text:      text,
		Timestamp: that.now().Format(chatTimestampLayout),
	})

	that.broadcast(Event{Action: ActionChatUpdate, Payload: that.chatLog()})
	msg.Reply <- Result{Snapshot: that.game.Snapshot()}
}

func (that *Room) handleRestart(msg Restart) {
	if that.game.SlotOf(msg.ClientID) == entity.EmptyCell {
		msg.Reply <- Result{Err: apperror.ErrNotAPlayer}
		return
	}

	that.game.Reset()

	snapshot := that.game.Snapshot()
	that.broadcast(Event{Action: ActionUpdateGame, Payload: snapshot})
	that.logger.Info("game restarted", "by", msg.ClientID)
	msg.Reply <- Result{Snapshot: snapshot}
}

func (that *Room) handlePossibleMoves(msg PossibleMoves) {
	slot := that.game.SlotOf(msg.ClientID)
	if slot == entity.EmptyCell {
		msg.Reply <- nil
		return
	}

	msg.Reply <- hitwicket.PossibleMoves(&that.game.Board, slot, msg.From)
}

// chatLog returns a copy of the chat so receivers never share the live slice.
func (that *Room) chatLog() []entity.ChatMessage {
	log := make([]entity.ChatMessage, len(that.game.Chat))
	copy(log, that.game.Chat)
	return log
}

// broadcast delivers the event to every connected participant. A client whose
// outbox is full is dropped; its gateway goroutine notices the closed channel.
func (that *Room) broadcast(event Event) {
	for id, client := range that.clients {
		select {
		case client.Outbox <- event:
		default:
			that.logger.Warn("dropping slow client", "client", id)
			close(client.Outbox)
			delete(that.clients, id)
			that.game.Unbind(id)
		}
	}
}

// send delivers an event to a single client with the same slow-client policy.
func (that *Room) send(client *Client, event Event) {
	if _, ok := that.clients[client.ID]; !ok {
		return
	}

	select {
	case client.Outbox <- event:
	default:
		that.logger.Warn("dropping slow client", "client", client.ID)
		close(client.Outbox)
		delete(that.clients, client.ID)
		that.game.Unbind(client.ID)
	}
}

func (that *Room) shutdown() {
	for id, client := range that.clients {
		close(client.Outbox)
		delete(that.clients, id)
	}
	that.cancel()
}
