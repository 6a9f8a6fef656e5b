// Package channel implements the console side of the assistant channel.
package channel

import "voicehub/pkg/protocol"

// Channel defines the interface for the console's connection to the
// assistant server.
type Channel interface {
	Connect() error
	Disconnect()
	IsConnected() bool
	Emit(ev protocol.Event) error
	SendMessage(text string) error
	ChangeLanguage(code string) error
	ToggleListening() error
	Events() <-chan protocol.Event
}
