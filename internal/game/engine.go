package game

import (
	"strings"
)

const (
	// WinMarker prefixes the model's confirmation of a correct guess.
	WinMarker = "Sim, você acertou! Eu sou "
	// ExhaustionMarker is what the model says when the budget runs out.
	ExhaustionMarker = "Suas tentativas acabaram!"

	UnknownCharacter = "personagem desconhecido"

	baseScore          = 100
	penaltyPerUserTurn = 5
)

type Classification string

const (
	ClassificationGuess    Classification = "guess"
	ClassificationQuestion Classification = "question"
)

// ParseClassification maps raw classifier output onto Guess or Question.
// Unrecognized output counts as a Question so that a confused classifier
// never costs the player an attempt.
func ParseClassification(raw string) Classification {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if strings.Contains(normalized, "guess") || strings.Contains(normalized, "palpite") {
		return ClassificationGuess
	}
	return ClassificationQuestion
}

func DecideAttemptDelta(c Classification) int {
	if c == ClassificationGuess {
		return -1
	}
	return 0
}

// ApplyAttemptDelta adds delta to attemptsLeft with a floor of zero.
func ApplyAttemptDelta(attemptsLeft, delta int) int {
	next := attemptsLeft + delta
	if next < 0 {
		return 0
	}
	return next
}

type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeWon
	OutcomeExhausted
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeWon:
		return "won"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "none"
	}
}

type Outcome struct {
	Kind OutcomeKind
	// CharacterName is the name revealed in a winning reply. Empty when the
	// reply carried the marker but no parsable name.
	CharacterName string
}

// DecideCompletion inspects a model reply after a turn. A win marker always
// wins; otherwise the game is exhausted only when the turn was a guess and
// the budget reached zero.
func DecideCompletion(reply string, attemptsLeft int, wasGuess bool) Outcome {
	if strings.Contains(reply, WinMarker) {
		name, err := ExtractCharacterName(reply)
		if err != nil {
			return Outcome{Kind: OutcomeWon}
		}
		return Outcome{Kind: OutcomeWon, CharacterName: name}
	}
	if wasGuess && attemptsLeft <= 0 {
		return Outcome{Kind: OutcomeExhausted}
	}
	return Outcome{Kind: OutcomeNone}
}

// ExtractCharacterName returns the text between the win marker and the
// first period that follows it.
func ExtractCharacterName(reply string) (string, error) {
	_, after, found := strings.Cut(reply, WinMarker)
	if !found {
		return "", ErrExtractionFailure
	}
	name, _, _ := strings.Cut(after, ".")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrExtractionFailure
	}
	return name, nil
}

// RevealedName picks the name shown at game over: the one extracted from the
// reply, else the committed character, else a placeholder.
func RevealedName(outcome Outcome, committed string) string {
	if outcome.CharacterName != "" {
		return outcome.CharacterName
	}
	if committed != "" {
		return committed
	}
	return UnknownCharacter
}

// CalculateScore derives the final score from the number of player messages.
func CalculateScore(userMessages int64) int {
	score := baseScore - penaltyPerUserTurn*int(userMessages)
	if score < 0 {
		return 0
	}
	return score
}
