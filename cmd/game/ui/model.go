// Package ui is the bubbletea front end: one scrolling narration panel and
// an input line. Each entered action runs the full turn pipeline (narrate,
// extract commands, dispatch) and swaps in the resulting state.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ascension/internal/debug"
	"ascension/internal/game"
	"ascension/internal/game/director/processors"
	"ascension/internal/llm"
	"ascension/internal/save"
)

type Model struct {
	messages        []string
	input           string
	width           int
	height          int
	loading         bool
	streaming       bool
	currentResponse string
	animationFrame  int

	state   game.State
	history *game.History

	narrator  *llm.Narrator
	env       *processors.Env
	store     *save.Store
	debugLog  *debug.Logger
	model     string
	sessionID string

	turnInput string
	turnStart time.Time
}

type Deps struct {
	Narrator  *llm.Narrator
	Env       *processors.Env
	Store     *save.Store
	Debug     *debug.Logger
	Model     string
	SessionID string
}

func NewModel(deps Deps, st game.State, historySize int) Model {
	messages := []string{
		fmt.Sprintf("The mortal world stirs. You are %s, an ordinary soul on the first step of the path.", st.Player.Name),
		"Type an action to begin. /help lists commands.",
		"",
	}

	return Model{
		messages:  messages,
		state:     st,
		history:   game.NewHistory(historySize),
		narrator:  deps.Narrator,
		env:       deps.Env,
		store:     deps.Store,
		debugLog:  deps.Debug,
		model:     deps.Model,
		sessionID: deps.SessionID,
	}
}

// State returns the current game state, for savepoints taken outside the
// update loop.
func (m Model) State() game.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

type animationTickMsg struct{}

// narrationStartedMsg carries the chunk channel for one narrator call.
type narrationStartedMsg struct {
	chunks <-chan llm.StreamChunk
}

// narrationChunkMsg is one delta (or the terminal Done/Error chunk) read off
// the stream.
type narrationChunkMsg struct {
	chunk  llm.StreamChunk
	chunks <-chan llm.StreamChunk
}

// turnResolvedMsg is the dispatch result for a finished narration.
type turnResolvedMsg struct {
	state     game.State
	narrative string
	applied   int
	updates   []game.IndexUpdate
}
