package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ascension/cmd/game/ui"
	"ascension/internal/config"
	"ascension/internal/save"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "review", "--review":
			runReviewMode()
			return
		case "rate":
			if len(os.Args) < 4 {
				fmt.Println("Usage: game rate <id> <rating> [notes]")
				return
			}
			runRatingMode()
			return
		}
	}

	model, cleanup, err := createApp()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	final := model.State()
	if m, ok := finalModel.(ui.Model); ok {
		final = m.State()
	}
	cleanup(final)
}

func openStore() (*save.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return save.Open(cfg.SaveDBPath)
}

func runReviewMode() {
	store, err := openStore()
	if err != nil {
		fmt.Printf("Failed to open save database: %v\n", err)
		return
	}
	defer store.Close()

	turns, err := store.RecentTurns(10)
	if err != nil {
		fmt.Printf("Failed to get turns: %v\n", err)
		return
	}

	if len(turns) == 0 {
		fmt.Println("No turns recorded. Play the game first to generate data!")
		return
	}

	fmt.Printf("Recent turns (%d):\n\n", len(turns))

	for _, turn := range turns {
		var metadata save.TurnMetadata
		if err := json.Unmarshal([]byte(turn.Metadata), &metadata); err == nil {
			fmt.Printf("[%d] %s | %v | %s\n",
				turn.ID,
				turn.Timestamp.Format("15:04:05"),
				metadata.ResponseTime,
				turn.PlayerInput)
		} else {
			fmt.Printf("[%d] %s | %s\n", turn.ID, turn.Timestamp.Format("15:04:05"), turn.PlayerInput)
		}

		fmt.Printf("Narration: %s\n", turn.Narration)
		fmt.Printf("Commands applied: %d\n", turn.CommandCount)
		if turn.Rating != nil {
			fmt.Printf("Rating: %d/5", *turn.Rating)
			if turn.Notes != nil {
				fmt.Printf(" - %s", *turn.Notes)
			}
		} else {
			fmt.Printf("Rating: not rated")
		}
		fmt.Println("\n" + strings.Repeat("-", 50))
	}

	fmt.Println("\nTo rate a turn: game rate <id> <rating> [notes]")
}

func runRatingMode() {
	id, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Printf("Invalid ID: %v\n", err)
		return
	}

	rating, err := strconv.Atoi(os.Args[3])
	if err != nil {
		fmt.Printf("Invalid rating: %v\n", err)
		return
	}

	if rating < 1 || rating > 5 {
		fmt.Println("Rating must be between 1 and 5")
		return
	}

	var notes string
	if len(os.Args) > 4 {
		notes = strings.Join(os.Args[4:], " ")
	}

	store, err := openStore()
	if err != nil {
		fmt.Printf("Failed to open save database: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.RateTurn(id, rating, notes); err != nil {
		fmt.Printf("Failed to rate turn: %v\n", err)
		return
	}

	fmt.Printf("Rated turn %d as %d/5", id, rating)
	if notes != "" {
		fmt.Printf(" with notes: %s", notes)
	}
	fmt.Println()
}
