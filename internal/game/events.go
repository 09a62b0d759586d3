package game

import "guessing-game-be/pkg/events"

const (
	EventChatMessage    = "chat_message"
	EventUpdateAttempts = "update_attempts"
	EventGameOver       = "game_over"
	EventError          = "error"
	EventSystemMessage  = "system_message"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

func ChatMessageEvent(sender Sender, message string) events.Event {
	return events.New(EventChatMessage, map[string]interface{}{
		"sender":  string(sender),
		"message": message,
	})
}

func UpdateAttemptsEvent(attemptsLeft int) events.Event {
	return events.New(EventUpdateAttempts, map[string]interface{}{
		"attempts_left": attemptsLeft,
	})
}

func GameOverEvent(message string, score int, characterName, imageURL string) events.Event {
	return events.New(EventGameOver, map[string]interface{}{
		"message":             message,
		"score":               score,
		"character_name":      characterName,
		"character_image_url": imageURL,
	})
}

func ErrorEvent(message string) events.Event {
	return events.New(EventError, map[string]interface{}{"message": message})
}

func SystemMessageEvent(message string) events.Event {
	return events.New(EventSystemMessage, map[string]interface{}{"message": message})
}
