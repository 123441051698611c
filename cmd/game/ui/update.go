package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ascension/internal/game"
	"ascension/internal/game/progression"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case animationTickMsg:
		return m.handleAnimation(msg)
	case narrationStartedMsg:
		return m.handleNarrationStarted(msg)
	case narrationChunkMsg:
		return m.handleNarrationChunk(msg)
	case turnResolvedMsg:
		return m.handleTurnResolved(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	return m, nil
}

func (m Model) handleAnimation(msg animationTickMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		m.animationFrame++
		return m, animationTimer()
	}
	return m, nil
}

func (m Model) handleNarrationStarted(msg narrationStartedMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		m.messages = m.messages[:len(m.messages)-1]
		m.streaming = true
		m.currentResponse = ""
		m.messages = append(m.messages, "")
	}
	return m, readNextChunk(msg.chunks)
}

func (m Model) handleNarrationChunk(msg narrationChunkMsg) (tea.Model, tea.Cmd) {
	if msg.chunk.Error != nil {
		m.streaming = false
		m.loading = false
		if len(m.messages) > 0 {
			m.messages[len(m.messages)-1] = "Error: " + msg.chunk.Error.Error()
		}
		m.messages = append(m.messages, "")
		m.history.AddError(msg.chunk.Error)
		return m, nil
	}

	if msg.chunk.Done {
		m.streaming = false
		return m, resolveTurn(m.env, m.store, m.state, m.currentResponse, m.turnInput, m.model, m.turnStart)
	}

	if m.streaming {
		m.currentResponse += msg.chunk.Text
		if len(m.messages) > 0 {
			m.messages[len(m.messages)-1] = m.currentResponse
		}
	}
	return m, readNextChunk(msg.chunks)
}

func (m Model) handleTurnResolved(msg turnResolvedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.state = msg.state

	// Swap the raw streamed text for the cleaned narrative.
	if len(m.messages) > 0 {
		m.messages[len(m.messages)-1] = msg.narrative
	}
	m.history.AddNarratorResponse(msg.narrative)

	if m.debugLog != nil && msg.applied > 0 {
		m.messages = append(m.messages, fmt.Sprintf("[DEBUG] %d state commands, %d index updates", msg.applied, len(msg.updates)))
	}

	if m.state.PendingCombat != nil {
		m.messages = append(m.messages,
			fmt.Sprintf("⚔ Combat: %s", strings.Join(m.state.PendingCombat.Opponents, ", ")))
	}

	m.messages = append(m.messages, "")
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		if strings.TrimSpace(m.input) == "" || m.loading {
			return m, nil
		}
		userInput := m.input
		m.input = ""

		if strings.HasPrefix(userInput, "/") {
			return m.handleSlashCommand(userInput)
		}

		m.messages = append(m.messages, "> "+userInput)
		m.messages = append(m.messages, "")
		m.history.AddPlayerAction(userInput)
		m.loading = true
		m.animationFrame = 0
		m.messages = append(m.messages, "LOADING_ANIMATION")
		m.turnInput = userInput
		m.turnStart = time.Now()

		return m, tea.Batch(
			startNarration(m.narrator, m.state, m.history.GetEntries(), userInput, m.sessionID, m.debugLog),
			animationTimer(),
		)

	case "backspace":
		if len(m.input) > 0 && !m.loading {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	default:
		if len(msg.String()) == 1 && !m.loading {
			m.input += msg.String()
		}
		return m, nil
	}
}

func (m Model) handleSlashCommand(userInput string) (tea.Model, tea.Cmd) {
	m.messages = append(m.messages, "> "+userInput)

	fields := strings.Fields(strings.ToLower(userInput))
	switch fields[0] {
	case "/help":
		m.messages = append(m.messages,
			"/state - show your cultivation status",
			"/save [label] - store a snapshot",
			"/load - restore the latest snapshot",
			"/quit - leave the game",
		)

	case "/state":
		m.messages = append(m.messages, m.statusLines()...)

	case "/save":
		label := "manual"
		if len(fields) > 1 {
			label = strings.Join(fields[1:], " ")
		}
		if m.store == nil {
			m.messages = append(m.messages, "No save store configured.")
			break
		}
		id, err := m.store.SaveSnapshot(label, m.state)
		if err != nil {
			m.messages = append(m.messages, "Save failed: "+err.Error())
		} else {
			m.messages = append(m.messages, "Saved snapshot "+id[:8]+" ("+label+")")
		}

	case "/load":
		if m.store == nil {
			m.messages = append(m.messages, "No save store configured.")
			break
		}
		st, found, err := m.store.LoadLatest()
		switch {
		case err != nil:
			m.messages = append(m.messages, "Load failed: "+err.Error())
		case !found:
			m.messages = append(m.messages, "No snapshot to load.")
		default:
			m.state = st
			m.messages = append(m.messages, "Snapshot restored.")
		}

	case "/quit":
		return m, tea.Quit

	default:
		m.messages = append(m.messages, "Unknown command. Try /help")
	}

	m.messages = append(m.messages, "")
	return m, nil
}

// statusLines renders the player sheet for /state.
func (m Model) statusLines() []string {
	p := m.state.Player
	eff := progression.EffectiveStats(p.Stats, game.EquippedItems(m.state.Inventory), p.Effects)

	lines := []string{
		fmt.Sprintf("%s (%s)", p.Name, p.Realm),
		fmt.Sprintf("Health %d/%d  Qi %d/%d", eff.Health, eff.MaxHealth, eff.Qi, eff.MaxQi),
		fmt.Sprintf("Attack %d  Defense %d  Speed %d", eff.Attack, eff.Defense, eff.Speed),
		fmt.Sprintf("Experience %d/%d  Spirit Stones %d  Reputation %d",
			p.Stats.Experience, p.Stats.ExpToNext, p.SpiritStones, p.Reputation),
	}
	if p.AtBottleneck {
		lines = append(lines, "At bottleneck: a breakthrough is required to advance.")
	}
	if len(m.state.Inventory) > 0 {
		var items []string
		for _, it := range m.state.Inventory {
			entry := fmt.Sprintf("%s x%d", it.Name, it.Quantity)
			if it.Equipped {
				entry += " (equipped)"
			}
			items = append(items, entry)
		}
		lines = append(lines, "Inventory: "+strings.Join(items, ", "))
	}
	if len(p.Skills) > 0 {
		var names []string
		for _, sk := range p.Skills {
			names = append(names, sk.Name)
		}
		lines = append(lines, "Techniques: "+strings.Join(names, ", "))
	}
	return lines
}
