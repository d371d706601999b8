package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanathkumarr/hitwicket-backend/internal/entity"
	"github.com/sanathkumarr/hitwicket-backend/testing/suite"
)

func TestMatchRepository_Save(t *testing.T) {
	ctx, conn := suite.NewSQLite(t)

	matchRepo := NewMatchRepository(conn)

	// Given: a finished match
	record := &entity.MatchRecord{
		GameID: "game-1",
		Winner: entity.PlayerA,
		Moves:  2,
		History: []entity.MoveRecord{
			{Piece: "A-P1", FromRow: 0, FromCol: 0, ToRow: 1, ToCol: 0},
			{Piece: "B-P1", FromRow: 4, FromCol: 0, ToRow: 3, ToCol: 0},
		},
		FinishedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	// When: Save is called
	err := matchRepo.Save(ctx, record)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestMatchRepository_List(t *testing.T) {
	t.Run("List_NewestFirst", func(t *testing.T) {
		ctx, conn := suite.NewSQLite(t)

		matchRepo := NewMatchRepository(conn)

		// Given: three archived matches saved in order
		for i := 1; i <= 3; i++ {
			record := &entity.MatchRecord{
				GameID:     fmt.Sprintf("game-%d", i),
				Winner:     entity.PlayerB,
				Moves:      i,
				History:    []entity.MoveRecord{{Piece: "B-H1", FromRow: 4, FromCol: 1, ToRow: 2, ToCol: 1}},
				FinishedAt: time.Date(2024, 6, i, 12, 0, 0, 0, time.UTC),
			}
			require.NoError(t, matchRepo.Save(ctx, record))
		}

		// When: List is called with a limit below the total
		records, err := matchRepo.List(ctx, 2)

		// Then: the newest two come back, newest first
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "game-3", records[0].GameID)
		assert.Equal(t, "game-2", records[1].GameID)
	})

	t.Run("List_RoundTrip", func(t *testing.T) {
		ctx, conn := suite.NewSQLite(t)

		matchRepo := NewMatchRepository(conn)

		// Given: a match with a full history
		record := &entity.MatchRecord{
			GameID: "game-1",
			Winner: entity.PlayerA,
			Moves:  1,
			History: []entity.MoveRecord{
				{Piece: "A-H2", FromRow: 0, FromCol: 2, ToRow: 2, ToCol: 4},
			},
			FinishedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		}
		require.NoError(t, matchRepo.Save(ctx, record))

		// When: List reads it back
		records, err := matchRepo.List(ctx, 10)

		// Then: the history survived the text column
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, record.GameID, records[0].GameID)
		assert.Equal(t, record.Winner, records[0].Winner)
		assert.Equal(t, record.Moves, records[0].Moves)
		assert.Equal(t, record.History, records[0].History)
	})

	t.Run("List_Empty", func(t *testing.T) {
		ctx, conn := suite.NewSQLite(t)

		matchRepo := NewMatchRepository(conn)

		// When: List is called on an empty archive
		records, err := matchRepo.List(ctx, 10)

		// Then: an empty slice comes back, not an error
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
