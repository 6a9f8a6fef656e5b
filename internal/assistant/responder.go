package assistant

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Supported language codes.
const (
	LangEnglish = "en"
	LangTamil   = "ta"
)

// Reply is the assistant's answer to one intent: the text to show and
// speak, and the language it is phrased in.
type Reply struct {
	Text string
	Lang string
}

// Responder turns intents into bilingual replies. It has no side
// effects; execution of the underlying action belongs to downstream
// automation components.
type Responder struct {
	now func() time.Time
}

// NewResponder creates a Responder using the wall clock.
func NewResponder() *Responder {
	return &Responder{now: time.Now}
}

// NewResponderWithClock creates a Responder with an injected clock.
func NewResponderWithClock(now func() time.Time) *Responder {
	return &Responder{now: now}
}

// Respond produces the reply for the intent in the given language.
// Unknown language codes fall back to English.
func (r *Responder) Respond(intent Intent, lang string) Reply {
	if lang != LangTamil {
		lang = LangEnglish
	}

	switch intent.Tool {
	case ToolOpenApp:
		return r.openApp(intent.App, lang)
	case ToolCloseApp:
		return r.closeApp(intent.App, lang)
	case ToolSearchWeb:
		return r.searchWeb(intent.Query, lang)
	case ToolPlayMedia:
		return r.playMedia(intent.Query, intent.Platform, lang)
	case ToolSystemControl:
		return r.systemControl(intent.Action, lang)
	default:
		return r.generalChat(intent.Query, lang)
	}
}

func (r *Responder) openApp(app string, lang string) Reply {
	if app == "" {
		if lang == LangTamil {
			return Reply{Text: "Enna thorakkanum nu sollunga", Lang: lang}
		}
		return Reply{Text: "Tell me which app to open", Lang: lang}
	}
	if lang == LangTamil {
		return Reply{Text: fmt.Sprintf("%s thorakkuren", app), Lang: lang}
	}
	return Reply{Text: fmt.Sprintf("Opening %s", app), Lang: lang}
}

func (r *Responder) closeApp(app string, lang string) Reply {
	if app == "" {
		if lang == LangTamil {
			return Reply{Text: "Enna muddanum nu sollunga", Lang: lang}
		}
		return Reply{Text: "Tell me which app to close", Lang: lang}
	}
	if lang == LangTamil {
		return Reply{Text: fmt.Sprintf("%s mudditten", app), Lang: lang}
	}
	return Reply{Text: fmt.Sprintf("Closed %s", app), Lang: lang}
}

func (r *Responder) searchWeb(query string, lang string) Reply {
	searchURL := "https://www.google.com/search?q=" + url.QueryEscape(strings.TrimSpace(query))
	if lang == LangTamil {
		return Reply{Text: fmt.Sprintf("%s pathi Google-la search pannitten\n%s", query, searchURL), Lang: lang}
	}
	return Reply{Text: fmt.Sprintf("Here's what I found for %s\n%s", query, searchURL), Lang: lang}
}

func (r *Responder) playMedia(query, platform string, lang string) Reply {
	if lang == LangTamil {
		return Reply{Text: fmt.Sprintf("%s %s-la podren", query, platform), Lang: lang}
	}
	return Reply{Text: fmt.Sprintf("Playing %s on %s", query, platform), Lang: lang}
}

func (r *Responder) systemControl(action string, lang string) Reply {
	en := map[string]string{
		"shutdown":  "Shutting down the computer",
		"restart":   "Restarting the computer",
		"sleep":     "Putting the computer to sleep",
		"hibernate": "Hibernating the computer",
		"logout":    "Logging out",
		"lock":      "Locking the screen",
	}
	ta := map[string]string{
		"shutdown":  "Computer-a shut down panren",
		"restart":   "Computer-a restart panren",
		"sleep":     "Computer-a sleep panna vekren",
		"hibernate": "Computer-a hibernate panren",
		"logout":    "Logout panren",
		"lock":      "Screen-a lock panren",
	}

	table := en
	if lang == LangTamil {
		table = ta
	}
	text, ok := table[action]
	if !ok {
		if lang == LangTamil {
			text = fmt.Sprintf("%s theriyala", action)
		} else {
			text = fmt.Sprintf("Unknown system action: %s", action)
		}
	}
	return Reply{Text: text, Lang: lang}
}

// SystemStatus reports the assistant's current state. It lives outside
// Respond because the status depends on live state the stateless
// intent-to-reply mapping never sees.
func (r *Responder) SystemStatus(lang string, listening bool) Reply {
	if lang != LangTamil {
		lang = LangEnglish
	}

	name := langNames[lang]
	hearing := "on"
	if !listening {
		hearing = "off"
	}

	if lang == LangTamil {
		return Reply{
			Text: fmt.Sprintf("System nalla odudhu. Mozhi: %s. Kekkaradhu: %s", name, hearing),
			Lang: lang,
		}
	}
	return Reply{
		Text: fmt.Sprintf("All systems ready. Language: %s. Listening: %s", name, hearing),
		Lang: lang,
	}
}

func (r *Responder) generalChat(query string, lang string) Reply {
	lower := strings.ToLower(query)

	switch {
	case containsAny(lower, []string{"vanakkam", "hello", "hai", "hi "}) || lower == "hi":
		if lang == LangTamil {
			return Reply{Text: "Vanakkam! Enna help venum?", Lang: lang}
		}
		return Reply{Text: "Hello! How can I help you?", Lang: lang}

	case containsAny(lower, []string{"how are you", "epdi irukka"}):
		if lang == LangTamil {
			return Reply{Text: "Naan nalla iruken, nandri!", Lang: lang}
		}
		return Reply{Text: "I'm doing well, thank you!", Lang: lang}

	case containsAny(lower, []string{"thank you", "thanks", "nandri"}):
		if lang == LangTamil {
			return Reply{Text: "Paravala! Vera enna help venum?", Lang: lang}
		}
		return Reply{Text: "You're welcome! Happy to help!", Lang: lang}

	case strings.Contains(lower, "time"):
		now := r.now()
		if lang == LangTamil {
			return Reply{Text: fmt.Sprintf("Ippo mani %s", now.Format("3:04 PM")), Lang: lang}
		}
		return Reply{Text: fmt.Sprintf("It's %s", now.Format("3:04 PM")), Lang: lang}

	case containsAny(lower, []string{"date", "today"}):
		now := r.now()
		if lang == LangTamil {
			return Reply{Text: fmt.Sprintf("Innaiku %s", now.Format("Monday, January 2")), Lang: lang}
		}
		return Reply{Text: fmt.Sprintf("Today is %s", now.Format("Monday, January 2")), Lang: lang}

	default:
		if lang == LangTamil {
			return Reply{Text: "Adhu pathi enakku theriyala", Lang: lang}
		}
		return Reply{Text: "I'm not sure how to help with that", Lang: lang}
	}
}
