// Package ui implements the interactive console for the assistant:
// a text input, command shortcuts, language selection and a scrolling
// conversation log, wired to the assistant channel.
package ui

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"voicehub/internal/config"
	"voicehub/pkg/protocol"
)

const statusConnected = "Connected to assistant server"
const statusDisconnected = "Disconnected"

// Entry is one rendered unit of conversation text. Entries are
// append-only; they are never mutated or removed once added.
type Entry struct {
	Text     string
	Category protocol.Category
}

// Emitter is the outbound half of the channel the controller needs.
type Emitter interface {
	SendMessage(text string) error
	ChangeLanguage(code string) error
	ToggleListening() error
}

// Messages for tea updates.
type (
	eventMsg         protocol.Event
	channelClosedMsg struct{}
)

// Model wires the console controls to the assistant channel. Inbound
// events are applied one at a time in delivery order by the tea
// runtime's single update loop.
type Model struct {
	input    textinput.Model
	viewport viewport.Model
	styles   Styles
	policy   *bluemonday.Policy
	emitter  Emitter
	events   <-chan protocol.Event
	logger   *zap.Logger

	entries   []Entry
	status    string
	shortcuts []config.Shortcut
	languages []config.Language
	active    int
	width     int
	height    int
	err       error
}

// New creates the console model. The emitter and events belong to an
// already-connected channel.
func New(emitter Emitter, events <-chan protocol.Event, cfg config.ConsoleConfig, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Type a command... (Enter to send, Ctrl+C to exit)"
	ti.Focus()
	ti.Prompt = "> "
	ti.CharLimit = 1024
	ti.Width = 76

	vp := viewport.New(80, 20)
	vp.SetContent("")

	return Model{
		input:     ti,
		viewport:  vp,
		styles:    DefaultStyles(),
		policy:    bluemonday.StrictPolicy(),
		emitter:   emitter,
		events:    events,
		logger:    logger,
		status:    "Connecting...",
		shortcuts: cfg.Shortcuts,
		languages: cfg.Languages,
	}
}

// Entries returns the log entries appended so far.
func (m Model) Entries() []Entry {
	return m.entries
}

// Status returns the current status line text.
func (m Model) Status() string {
	return m.status
}

// ActiveLanguage returns the code of the sole active language.
func (m Model) ActiveLanguage() string {
	if len(m.languages) == 0 {
		return ""
	}
	return m.languages[m.active].Code
}

// AtBottom reports whether the log view is scrolled to its end.
func (m Model) AtBottom() bool {
	return m.viewport.AtBottom()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// waitForEvent delivers the next channel event to the update loop.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return channelClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			m.submit()
			return m, nil

		case "ctrl+t":
			m.cycleLanguage()
			return m, nil

		case "ctrl+p":
			if err := m.emitter.ToggleListening(); err != nil {
				m.err = err
			}
			return m, nil

		default:
			if i, ok := shortcutIndex(msg); ok && i < len(m.shortcuts) {
				m.runShortcut(i)
				return m, nil
			}
		}

		m.input, tiCmd = m.input.Update(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = msg.Height - 7
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		m.input.Width = msg.Width - 4
		m.viewport.SetContent(m.renderEntries())
		m.viewport.GotoBottom()

	case eventMsg:
		m.handleEvent(protocol.Event(msg))
		return m, m.waitForEvent()

	case channelClosedMsg:
		m.status = statusDisconnected
		return m, nil
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

// submit sends the trimmed input as a user message. Empty input sends
// nothing and leaves the field untouched; the field is cleared only
// after a successful emit.
func (m *Model) submit() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}

	if err := m.emitter.SendMessage(text); err != nil {
		m.err = err
		m.appendEntry("Failed to send: "+err.Error(), protocol.CategoryError)
		return
	}
	m.input.SetValue("")
}

// runShortcut emits the shortcut's preconfigured command, independent
// of the input field contents.
func (m *Model) runShortcut(i int) {
	if err := m.emitter.SendMessage(m.shortcuts[i].Command); err != nil {
		m.err = err
		m.appendEntry("Failed to send: "+err.Error(), protocol.CategoryError)
	}
}

// cycleLanguage advances the sole active language and announces the
// selection to the server.
func (m *Model) cycleLanguage() {
	if len(m.languages) < 2 {
		return
	}
	m.active = (m.active + 1) % len(m.languages)
	if err := m.emitter.ChangeLanguage(m.languages[m.active].Code); err != nil {
		m.err = err
	}
}

func (m *Model) handleEvent(ev protocol.Event) {
	switch ev.Name {
	case protocol.EventConnect:
		m.status = statusConnected

	case protocol.EventStatusUpdate:
		m.status = ev.Data

	case protocol.EventLogMessage:
		m.appendEntry(ev.Data, ev.Category())

	case protocol.EventAISpeak:
		// Speech synthesis belongs to a downstream component; the
		// console only observes these.
		m.logger.Debug("ai_speak",
			zap.String("lang", ev.Lang), zap.String("text", ev.Data))

	default:
		m.logger.Debug("unhandled event", zap.String("event", ev.Name))
	}
}

// appendEntry sanitizes inbound text, appends it to the log and keeps
// the view pinned to the bottom.
func (m *Model) appendEntry(text string, category protocol.Category) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	// Inbound text is untrusted; strip any markup before display.
	text = html.UnescapeString(m.policy.Sanitize(text))

	m.entries = append(m.entries, Entry{Text: text, Category: category})
	m.viewport.SetContent(m.renderEntries())
	m.viewport.GotoBottom()
}

func (m Model) renderEntries() string {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, m.styles.CategoryStyle(e.Category).Render(e.Text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("voicehub console"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderShortcutBar())
	b.WriteString("\n")
	b.WriteString(m.renderLanguageBar())
	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(m.status))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderShortcutBar() string {
	if len(m.shortcuts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.shortcuts))
	for i, s := range m.shortcuts {
		key := m.styles.BarKey.Render(fmt.Sprintf("alt+%d", i+1))
		parts = append(parts, key+" "+m.styles.Bar.Render(s.Label))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderLanguageBar() string {
	if len(m.languages) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.languages)+1)
	parts = append(parts, m.styles.Bar.Render("ctrl+t language:"))
	for i, l := range m.languages {
		if i == m.active {
			parts = append(parts, m.styles.LangActive.Render(" "+l.Label+" "))
		} else {
			parts = append(parts, m.styles.LangIdle.Render(" "+l.Label+" "))
		}
	}
	return strings.Join(parts, " ")
}

// shortcutIndex maps alt+1..alt+9 keys to a shortcut index.
func shortcutIndex(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 5 || !strings.HasPrefix(s, "alt+") {
		return 0, false
	}
	d := s[4]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '1'), true
}
