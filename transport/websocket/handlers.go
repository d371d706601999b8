package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	errAlreadyJoined = errors.New("already joined the game")
	errNotJoined     = errors.New("join the game first")
)

func (that *Server) handleJoinGame(ctx context.Context, sess *session, message *Message) error {
	return that.join(ctx, sess, message, false)
}

func (that *Server) handleJoinSpectator(ctx context.Context, sess *session, message *Message) error {
	return that.join(ctx, sess, message, true)
}

func (that *Server) join(ctx context.Context, sess *session, message *Message, asSpectator bool) error {
	if sess.joined {
		return errAlreadyJoined
	}

	var payload JoinPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return fmt.Errorf("malformed join payload: %w", err)
		}
	}

	if payload.Username != "" {
		sess.client.Username = payload.Username
	}

	slot := that.manager.Join(ctx, sess.client, asSpectator)
	sess.joined = true

	that.logger.Info("participant joined", "client", sess.id, "username", sess.client.Username, "slot", slot)

	return nil
}

func (that *Server) handleMove(ctx context.Context, sess *session, message *Message) error {
	if !sess.joined {
		return errNotJoined
	}

	var payload MovePayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("malformed move payload: %w", err)
	}

	if _, err := that.manager.MakeMove(ctx, sess.id, payload.From, payload.To); err != nil {
		return err
	}

	return nil
}

func (that *Server) handleChatMessage(ctx context.Context, sess *session, message *Message) error {
	if !sess.joined {
		return errNotJoined
	}

	var text string
	if err := json.Unmarshal(message.Payload, &text); err != nil {
		return fmt.Errorf("malformed chat payload: %w", err)
	}

	return that.manager.SendChat(ctx, sess.id, text)
}

func (that *Server) handleRestartGame(ctx context.Context, sess *session, _ *Message) error {
	if !sess.joined {
		return errNotJoined
	}

	return that.manager.Restart(ctx, sess.id)
}

func (that *Server) handlePossibleMoves(_ context.Context, sess *session, message *Message) error {
	if !sess.joined {
		return errNotJoined
	}

	var payload PossibleMovesPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("malformed possible-moves payload: %w", err)
	}

	moves := that.manager.PossibleMoves(sess.id, payload.From)
	that.sendDirect(sess, ActionPossibleMoves, PossibleMovesResponse{From: payload.From, Moves: moves})

	return nil
}
