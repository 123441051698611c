package processors

import (
	"math/rand"

	"ascension/internal/debug"
	"ascension/internal/game"
)

func testEnv() *Env {
	return &Env{
		Rules: game.Rules{StatsEnabled: true},
		Debug: debug.NewLogger(false),
		Rand:  rand.New(rand.NewSource(1)),
	}
}

func testState() game.State {
	st := game.NewDefaultState("Han Li")
	st.Player.Realm = "Core Formation - Early"
	st.Player.Stats = game.StatBlock{
		Health: 500, MaxHealth: 500,
		Qi: 400, MaxQi: 400,
		Attack: 120, Defense: 40, Speed: 30,
		ExpToNext: 1000,
	}
	return st
}

func personNamed(name, category string) game.Person {
	return game.Person{Name: name, Category: category, Realm: "Qi Refining - Early"}
}
