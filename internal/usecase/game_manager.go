package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sanathkumarr/hitwicket-backend/internal/entity"
	"github.com/sanathkumarr/hitwicket-backend/internal/room"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	DeleteByID(ctx context.Context, id string) error
}

type matchRepo interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
}

// GameManager sits between the gateway and the room. The room alone mutates
// game state; the manager forwards commands, waits for the post-mutation
// snapshot and records it. Repository failures never reject an accepted move,
// they are logged and play continues.
type GameManager struct {
	logger *slog.Logger

	room       *room.Room
	playerRepo playerRepo
	gameRepo   gameRepo
	matchRepo  matchRepo
}

func NewGameManager(logger *slog.Logger, gameRoom *room.Room, playerRepo playerRepo, gameRepo gameRepo, matchRepo matchRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game-manager"),

		room:       gameRoom,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		matchRepo:  matchRepo,
	}
}

// Join registers the connection with the room and returns the assigned slot,
// or "" when the connection became a spectator.
func (that *GameManager) Join(ctx context.Context, client *room.Client, asSpectator bool) string {
	reply := make(chan string, 1)
	that.room.Inbox() <- room.Join{Client: client, AsSpectator: asSpectator, Reply: reply}
	slot := <-reply

	if slot != entity.EmptyCell {
		player := &entity.Player{ID: client.ID, Username: client.Username, Slot: slot}
		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			that.logger.Error("failed to save player record", "error", err)
		}
	}

	that.saveSnapshot(ctx, that.Snapshot())

	return slot
}

func (that *GameManager) Leave(ctx context.Context, clientID string) {
	that.room.Inbox() <- room.Leave{ClientID: clientID}
	that.saveSnapshot(ctx, that.Snapshot())
}

// MakeMove submits a move intent. On success the returned snapshot is the
// state every connection was just broadcast; on failure nothing changed and
// the error names the reason.
func (that *GameManager) MakeMove(ctx context.Context, clientID string, from, to entity.Position) (entity.Game, error) {
	reply := make(chan room.Result, 1)
	that.room.Inbox() <- room.Move{ClientID: clientID, From: from, To: to, Reply: reply}

	result := <-reply
	if result.Err != nil {
		return entity.Game{}, fmt.Errorf("failed to make move: %w", result.Err)
	}

	that.saveSnapshot(ctx, result.Snapshot)

	if result.Snapshot.IsFinished() {
		that.archiveMatch(ctx, result.Snapshot)
	}

	return result.Snapshot, nil
}

func (that *GameManager) SendChat(ctx context.Context, clientID, text string) error {
	reply := make(chan room.Result, 1)
	that.room.Inbox() <- room.Chat{ClientID: clientID, Text: text, Reply: reply}

	result := <-reply
	if result.Err != nil {
		return fmt.Errorf("failed to send chat message: %w", result.Err)
	}

	that.saveSnapshot(ctx, result.Snapshot)

	return nil
}

func (that *GameManager) Restart(ctx context.Context, clientID string) error {
	reply := make(chan room.Result, 1)
	that.room.Inbox() <- room.Restart{ClientID: clientID, Reply: reply}

	result := <-reply
	if result.Err != nil {
		return fmt.Errorf("failed to restart game: %w", result.Err)
	}

	that.saveSnapshot(ctx, result.Snapshot)

	return nil
}

func (that *GameManager) PossibleMoves(clientID string, from entity.Position) []entity.Position {
	reply := make(chan []entity.Position, 1)
	that.room.Inbox() <- room.PossibleMoves{ClientID: clientID, From: from, Reply: reply}

	return <-reply
}

// Snapshot returns the current authoritative state.
func (that *GameManager) Snapshot() entity.Game {
	reply := make(chan entity.Game, 1)
	that.room.Inbox() <- room.GetState{Reply: reply}

	return <-reply
}

func (that *GameManager) saveSnapshot(ctx context.Context, snapshot entity.Game) {
	if err := that.gameRepo.CreateOrUpdate(ctx, &snapshot); err != nil {
		that.logger.Error("failed to save game snapshot", "error", err)
	}
}

func (that *GameManager) archiveMatch(ctx context.Context, snapshot entity.Game) {
	log := that.logger.With("method", "archiveMatch")

	record := &entity.MatchRecord{
		GameID:     snapshot.ID,
		Winner:     snapshot.Winner,
		Moves:      len(snapshot.History),
		History:    snapshot.History,
		FinishedAt: time.Now(),
	}

	if err := that.matchRepo.Save(ctx, record); err != nil {
		log.Error("failed to archive match", "error", err)
		return
	}

	if err := that.gameRepo.DeleteByID(ctx, snapshot.ID); err != nil {
		log.Error("failed to delete finished game snapshot", "error", err)
	}

	log.Info("match archived", "winner", snapshot.Winner, "moves", len(snapshot.History))
}
