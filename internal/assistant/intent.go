package assistant

import (
	"regexp"
	"strings"
)

// Tool names an intent can resolve to.
const (
	ToolPlayMedia     = "play_media"
	ToolSystemControl = "system_control"
	ToolSystemStatus  = "system_status"
	ToolOpenApp       = "open_app"
	ToolCloseApp      = "close_app"
	ToolSearchWeb     = "search_web"
	ToolGeneralChat   = "general_chat"
)

// Intent is the parsed action behind a user command.
type Intent struct {
	Tool     string
	App      string // open_app, close_app
	Query    string // search_web, play_media, general_chat
	Platform string // play_media
	Action   string // system_control
}

var mediaWords = []string{"play", "kelu", "pottu"}

var systemActions = []struct {
	action string
	words  []string
}{
	{"shutdown", []string{"shutdown", "shut down", "power off", "turn off"}},
	{"restart", []string{"restart", "reboot", "reset"}},
	{"sleep", []string{"sleep", "suspend"}},
	{"hibernate", []string{"hibernate"}},
	{"logout", []string{"logout", "log out", "sign out"}},
	{"lock", []string{"lock"}},
}

var statusWords = []string{"system status", "status report", "system report", "status check"}

var openWords = []string{"open", "launch", "start", "run", "thorakku", "thoraku", "pannu", "podu"}
var closeWords = []string{"close", "quit", "exit", "stop", "muddu", "mudu"}
var searchWords = []string{"search for", "search", "find", "lookup", "thedi", "google", "on google", "in google"}
var fillerWords = []string{"the", "app", "application", "please", "computer", "system"}

// ParseIntent resolves user text into an Intent with rule-based
// matching. Rules are tried in a fixed order; the first match wins and
// unmatched text falls through to general chat.
func ParseIntent(text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))

	if containsAny(lower, mediaWords) {
		platform := "youtube"
		if strings.Contains(lower, "spotify") {
			platform = "spotify"
		} else if strings.Contains(lower, "soundcloud") {
			platform = "soundcloud"
		}
		query := stripWords(lower, append([]string{platform, "on", "in", "la"}, mediaWords...))
		return Intent{Tool: ToolPlayMedia, Query: query, Platform: platform}
	}

	if containsAny(lower, statusWords) {
		return Intent{Tool: ToolSystemStatus}
	}

	if containsAny(lower, []string{"shutdown", "shut down", "power off", "turn off",
		"restart", "reboot", "reset", "sleep", "suspend", "hibernate",
		"logout", "log out", "sign out", "lock"}) {
		action := "shutdown"
		for _, sa := range systemActions {
			if containsAny(lower, sa.words) {
				action = sa.action
				break
			}
		}
		return Intent{Tool: ToolSystemControl, Action: action}
	}

	if containsAny(lower, openWords) {
		app := stripWords(lower, append(append([]string{}, openWords...), fillerWords...))
		return Intent{Tool: ToolOpenApp, App: app}
	}

	if containsAny(lower, closeWords) {
		app := stripWords(lower, closeWords)
		return Intent{Tool: ToolCloseApp, App: app}
	}

	if containsAny(lower, searchWords) {
		query := stripWords(lower, searchWords)
		return Intent{Tool: ToolSearchWeb, Query: query}
	}

	return Intent{Tool: ToolGeneralChat, Query: strings.TrimSpace(text)}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// stripWords removes the given words from the text and collapses the
// leftover whitespace, matching how spoken commands carry their
// keywords inline ("open chrome please" -> "chrome"). Only whole words
// are removed so "on" never eats into "songs".
func stripWords(text string, words []string) string {
	for _, w := range words {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
		text = re.ReplaceAllString(text, " ")
	}
	return strings.Join(strings.Fields(text), " ")
}
