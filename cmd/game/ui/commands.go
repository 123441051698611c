package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ascension/internal/debug"
	"ascension/internal/game"
	"ascension/internal/game/director"
	"ascension/internal/game/director/processors"
	"ascension/internal/game/tags"
	"ascension/internal/llm"
	"ascension/internal/observability"
	"ascension/internal/save"
)

func animationTimer() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// startNarration opens the narrator stream for one player action.
func startNarration(narrator *llm.Narrator, st game.State, history []string, userInput, sessionID string, logger *debug.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx := observability.WithSessionID(context.Background(), sessionID)
		stream := narrator.NarrateTurn(ctx, st, history, userInput)
		return narrationStartedMsg{chunks: llm.ReadStreamChunks(stream, logger)}
	}
}

// readNextChunk blocks on the chunk channel for one delta.
func readNextChunk(chunks <-chan llm.StreamChunk) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-chunks
		if !ok {
			return narrationChunkMsg{chunk: llm.StreamChunk{Done: true}, chunks: chunks}
		}
		return narrationChunkMsg{chunk: chunk, chunks: chunks}
	}
}

// resolveTurn extracts state commands from the finished narration and folds
// them over the state. The turn is also appended to the narration log; a
// logging failure never fails the turn.
func resolveTurn(env *processors.Env, store *save.Store, st game.State, response, userInput, model string, startTime time.Time) tea.Cmd {
	return func() tea.Msg {
		narrative, commands := tags.ExtractCommands(response)

		newState, updates := director.Dispatch(context.Background(), env, st, commands)

		if store != nil {
			metadata := save.TurnMetadata{
				Model:         model,
				MaxTokens:     1200,
				ResponseTime:  time.Since(startTime),
				StreamingUsed: true,
			}
			if err := store.LogTurn(st, userInput, response, len(commands), metadata); err != nil {
				env.Logf("failed to log turn: %v", err)
			}
		}

		return turnResolvedMsg{
			state:     newState,
			narrative: narrative,
			applied:   len(commands),
			updates:   updates,
		}
	}
}
