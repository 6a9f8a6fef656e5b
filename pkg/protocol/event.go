// Package protocol defines the named events exchanged over the assistant
// channel and their wire codec.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Event names carried over the channel. The console emits user_message,
// change_language and toggle_listening; the server emits status_update,
// log_message and ai_speak. EventConnect is never sent on the wire: the
// channel synthesizes it locally once the dial succeeds.
const (
	EventConnect         = "connect"
	EventUserMessage     = "user_message"
	EventChangeLanguage  = "change_language"
	EventToggleListening = "toggle_listening"
	EventStatusUpdate    = "status_update"
	EventLogMessage      = "log_message"
	EventAISpeak         = "ai_speak"
)

// Category represents the display category of a log entry
type Category int

const (
	CategoryInfo Category = iota
	CategorySystem
	CategoryUser
	CategoryAI
	CategoryError
)

// String returns the string representation of Category
func (c Category) String() string {
	switch c {
	case CategoryInfo:
		return "info"
	case CategorySystem:
		return "system"
	case CategoryUser:
		return "user"
	case CategoryAI:
		return "ai"
	case CategoryError:
		return "error"
	default:
		return "info"
	}
}

// ParseCategory maps a wire type string to a Category.
// Unknown strings return CategoryInfo rather than an error to ensure
// graceful degradation for types this build does not know about (the
// field only selects display styling).
func ParseCategory(s string) Category {
	switch s {
	case "info":
		return CategoryInfo
	case "system":
		return CategorySystem
	case "user":
		return CategoryUser
	case "ai":
		return CategoryAI
	case "error":
		return CategoryError
	default:
		return CategoryInfo
	}
}

// Event represents one named event with its payload fields. Data carries
// free-form text, Type a display category for log_message, and Lang a
// language code for change_language and ai_speak. Unused fields stay
// empty and are omitted on the wire.
type Event struct {
	Name string `json:"event"`
	Data string `json:"data,omitempty"`
	Type string `json:"type,omitempty"`
	Lang string `json:"lang,omitempty"`
}

// Encode encodes the event into bytes using JSON
func (e *Event) Encode() ([]byte, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("cannot encode event without a name")
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return data, nil
}

// Decode decodes bytes into the event using JSON
func (e *Event) Decode(data []byte) error {
	if err := json.Unmarshal(data, e); err != nil {
		return fmt.Errorf("failed to decode event: %w", err)
	}
	if e.Name == "" {
		return fmt.Errorf("decoded event has no name")
	}
	return nil
}

// Category returns the display category of a log_message event.
func (e *Event) Category() Category {
	return ParseCategory(e.Type)
}
