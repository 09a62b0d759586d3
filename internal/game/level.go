package game

import (
	"math/rand/v2"
	"strings"
)

type Level string

const (
	LevelEasy   Level = "Easy"
	LevelMedium Level = "Medium"
	LevelHard   Level = "Hard"
	LevelRandom Level = "Random"
)

// DefaultMaxAttempts applies to any level outside the fixed table.
const DefaultMaxAttempts = 7

var concreteLevels = []Level{LevelEasy, LevelMedium, LevelHard}

var maxAttemptsByLevel = map[Level]int{
	LevelEasy:   10,
	LevelMedium: 8,
	LevelHard:   5,
}

// levelAliases maps the labels the web client sends (Portuguese, with and
// without accents) onto the canonical enum.
var levelAliases = map[string]Level{
	"easy":      LevelEasy,
	"facil":     LevelEasy,
	"fácil":     LevelEasy,
	"medium":    LevelMedium,
	"medio":     LevelMedium,
	"médio":     LevelMedium,
	"hard":      LevelHard,
	"dificil":   LevelHard,
	"difícil":   LevelHard,
	"random":    LevelRandom,
	"aleatorio": LevelRandom,
	"aleatório": LevelRandom,
}

// ParseLevel normalizes a raw level label.
func ParseLevel(raw string) (Level, error) {
	level, ok := levelAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", ErrInvalidLevel
	}
	return level, nil
}

// IsConcrete reports whether the level maps to a fixed attempt budget.
func (l Level) IsConcrete() bool {
	_, ok := maxAttemptsByLevel[l]
	return ok
}

// PickFunc returns a number in [0, n).
type PickFunc func(n int) int

// ResolveLevel is the identity for every level except Random, which is
// replaced by one of Easy, Medium or Hard chosen uniformly by pick.
func ResolveLevel(requested Level, pick PickFunc) Level {
	if requested != LevelRandom {
		return requested
	}
	if pick == nil {
		pick = rand.IntN
	}
	return concreteLevels[pick(len(concreteLevels))]
}

func MaxAttemptsFor(level Level) int {
	if attempts, ok := maxAttemptsByLevel[level]; ok {
		return attempts
	}
	return DefaultMaxAttempts
}
