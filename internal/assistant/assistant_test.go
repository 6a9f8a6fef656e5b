package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicehub/pkg/protocol"
)

func TestAssistant_Greeting(t *testing.T) {
	a := New(nil, LangEnglish)

	events := a.Greeting()
	require.Len(t, events, 2)

	assert.Equal(t, protocol.EventLogMessage, events[0].Name)
	assert.Equal(t, "ai", events[0].Type)
	assert.Equal(t, protocol.EventStatusUpdate, events[1].Name)
}

func TestAssistant_HandleMessage_EventSequence(t *testing.T) {
	a := New(nil, LangEnglish)

	events := a.HandleMessage("open chrome")
	require.Len(t, events, 5)

	assert.Equal(t, protocol.EventStatusUpdate, events[0].Name)
	assert.Equal(t, "Processing...", events[0].Data)

	assert.Equal(t, protocol.EventLogMessage, events[1].Name)
	assert.Equal(t, "open chrome", events[1].Data)
	assert.Equal(t, "user", events[1].Type)

	assert.Equal(t, protocol.EventLogMessage, events[2].Name)
	assert.Equal(t, "Opening chrome", events[2].Data)
	assert.Equal(t, "ai", events[2].Type)

	assert.Equal(t, protocol.EventAISpeak, events[3].Name)
	assert.Equal(t, "Opening chrome", events[3].Data)
	assert.Equal(t, LangEnglish, events[3].Lang)

	assert.Equal(t, protocol.EventStatusUpdate, events[4].Name)
	assert.Equal(t, "Command completed", events[4].Data)
}

func TestAssistant_HandleMessage_TooShort(t *testing.T) {
	a := New(nil, LangEnglish)

	assert.Nil(t, a.HandleMessage(""))
	assert.Nil(t, a.HandleMessage("   "))
	assert.Nil(t, a.HandleMessage("x"))
}

func TestAssistant_HandleMessage_BareWakeWord(t *testing.T) {
	a := New([]string{"nova"}, LangEnglish)

	events := a.HandleMessage("hey nova")
	require.Len(t, events, 5)
	assert.Equal(t, "Yes, how can I help?", events[2].Data)
}

func TestAssistant_HandleMessage_WakeWordWithCommandParsesCommand(t *testing.T) {
	a := New([]string{"nova"}, LangEnglish)

	events := a.HandleMessage("nova open chrome")
	require.Len(t, events, 5)
	assert.Equal(t, "Opening chrome", events[2].Data)
}

func TestAssistant_SetLanguage(t *testing.T) {
	a := New(nil, LangEnglish)

	events := a.SetLanguage(LangTamil)
	require.Len(t, events, 1)
	assert.Equal(t, protocol.EventStatusUpdate, events[0].Name)
	assert.Equal(t, "Language: Tamil", events[0].Data)
	assert.Equal(t, LangTamil, a.Language())

	replies := a.HandleMessage("open chrome")
	assert.Equal(t, "chrome thorakkuren", replies[2].Data)
}

func TestAssistant_SetLanguage_UnknownCodeIgnored(t *testing.T) {
	a := New(nil, LangEnglish)

	events := a.SetLanguage("de")
	assert.Nil(t, events)
	assert.Equal(t, LangEnglish, a.Language())
}

func TestAssistant_HandleMessage_SystemStatus(t *testing.T) {
	a := New(nil, LangEnglish)

	events := a.HandleMessage("system status")
	require.Len(t, events, 5)
	assert.Equal(t, "All systems ready. Language: English. Listening: on", events[2].Data)

	// The report tracks the live state.
	a.ToggleListening()
	events = a.HandleMessage("system status")
	assert.Equal(t, "All systems ready. Language: English. Listening: off", events[2].Data)

	a.SetLanguage(LangTamil)
	events = a.HandleMessage("system status")
	assert.Equal(t, "System nalla odudhu. Mozhi: Tamil. Kekkaradhu: off", events[2].Data)
}

func TestAssistant_ToggleListening(t *testing.T) {
	a := New(nil, LangEnglish)
	require.True(t, a.IsListening())

	events := a.ToggleListening()
	require.Len(t, events, 1)
	assert.Equal(t, "Listening paused", events[0].Data)
	assert.False(t, a.IsListening())

	events = a.ToggleListening()
	assert.Equal(t, "Listening enabled", events[0].Data)
	assert.True(t, a.IsListening())
}
