package assistant

import (
	"strings"
	"sync"

	"voicehub/pkg/protocol"
)

// DefaultWakeWords are used when the configuration supplies none.
var DefaultWakeWords = []string{"nova", "echo", "hey nova", "hey echo"}

var langNames = map[string]string{
	LangEnglish: "English",
	LangTamil:   "Tamil",
}

// Assistant holds the conversational state shared by every connected
// console: the active language and whether listening is enabled. Its
// methods return the ordered event sequences the server delivers over
// the channel.
type Assistant struct {
	detector  *Detector
	responder *Responder

	mu        sync.Mutex
	lang      string
	listening bool
}

// New creates an Assistant with the given wake words and default
// language. An unknown default language falls back to English.
func New(wakeWords []string, defaultLang string) *Assistant {
	if len(wakeWords) == 0 {
		wakeWords = DefaultWakeWords
	}
	if defaultLang != LangTamil {
		defaultLang = LangEnglish
	}
	return &Assistant{
		detector:  NewDetector(wakeWords),
		responder: NewResponder(),
		lang:      defaultLang,
		listening: true,
	}
}

// Language returns the active language code.
func (a *Assistant) Language() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lang
}

// IsListening returns whether listening is enabled.
func (a *Assistant) IsListening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listening
}

// Greeting returns the events sent to a console when it connects.
func (a *Assistant) Greeting() []protocol.Event {
	return []protocol.Event{
		{
			Name: protocol.EventLogMessage,
			Data: "Voice assistant is online!",
			Type: protocol.CategoryAI.String(),
		},
		{
			Name: protocol.EventStatusUpdate,
			Data: "Ready - type a command or say a wake word",
		},
	}
}

// HandleMessage processes one user message and returns the resulting
// event sequence. Messages shorter than two characters after trimming
// are ignored.
func (a *Assistant) HandleMessage(text string) []protocol.Event {
	text = strings.TrimSpace(text)
	if len(text) < 2 {
		return nil
	}

	a.mu.Lock()
	lang := a.lang
	listening := a.listening
	a.mu.Unlock()

	events := []protocol.Event{
		{
			Name: protocol.EventStatusUpdate,
			Data: "Processing...",
		},
		{
			Name: protocol.EventLogMessage,
			Data: text,
			Type: protocol.CategoryUser.String(),
			Lang: lang,
		},
	}

	respond := func(intent Intent) Reply {
		if intent.Tool == ToolSystemStatus {
			return a.responder.SystemStatus(lang, listening)
		}
		return a.responder.Respond(intent, lang)
	}

	var reply Reply
	switch {
	case a.detector.IsWakeWord(text) && !a.detector.IsDirectCommand(text):
		// A bare wake word asks for attention, not an action.
		reply = Reply{Text: "Yes, how can I help?", Lang: lang}
		if lang == LangTamil {
			reply.Text = "Sollunga, enna help venum?"
		}
	case a.detector.IsWakeWord(text):
		reply = respond(ParseIntent(a.detector.StripWakeWords(text)))
	default:
		reply = respond(ParseIntent(text))
	}

	events = append(events,
		protocol.Event{
			Name: protocol.EventLogMessage,
			Data: reply.Text,
			Type: protocol.CategoryAI.String(),
			Lang: reply.Lang,
		},
		protocol.Event{
			Name: protocol.EventAISpeak,
			Data: reply.Text,
			Lang: reply.Lang,
		},
		protocol.Event{
			Name: protocol.EventStatusUpdate,
			Data: "Command completed",
		},
	)
	return events
}

// SetLanguage switches the active language. Unknown codes are ignored
// and produce no events, matching the permissive channel contract.
func (a *Assistant) SetLanguage(code string) []protocol.Event {
	if _, ok := langNames[code]; !ok {
		return nil
	}

	a.mu.Lock()
	a.lang = code
	a.mu.Unlock()

	return []protocol.Event{
		{
			Name: protocol.EventStatusUpdate,
			Data: "Language: " + langNames[code],
		},
	}
}

// ToggleListening flips the listening state and returns the status
// announcement for it.
func (a *Assistant) ToggleListening() []protocol.Event {
	a.mu.Lock()
	a.listening = !a.listening
	listening := a.listening
	a.mu.Unlock()

	status := "Listening paused"
	if listening {
		status = "Listening enabled"
	}
	return []protocol.Event{
		{
			Name: protocol.EventStatusUpdate,
			Data: status,
		},
	}
}
