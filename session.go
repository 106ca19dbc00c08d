package tipbox

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Mode selects which representation owns the CSS text.
type Mode string

// Editing modes
const (
	ModeBasic    Mode = "basic"
	ModeAdvanced Mode = "advanced"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBasic, ModeAdvanced:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want basic or advanced)", s)
}

// ModeSwitchWarning is shown when leaving advanced mode would discard edits.
const ModeSwitchWarning = "Switching to basic mode regenerates the CSS from the basic controls. " +
	"Changes made in advanced mode will be lost."

// ErrModeMismatch is returned when an edit targets the inactive representation.
var ErrModeMismatch = errors.New("operation not available in the current mode")

// EditorState is either BasicState or AdvancedState.
type EditorState interface {
	Mode() Mode
	isEditorState()
}

// BasicState derives the CSS text from a style model.
type BasicState struct {
	Styles StyleModel
}

// AdvancedState holds hand-edited CSS text.
type AdvancedState struct {
	CSSText string
}

func (BasicState) Mode() Mode    { return ModeBasic }
func (AdvancedState) Mode() Mode { return ModeAdvanced }
func (BasicState) isEditorState()    {}
func (AdvancedState) isEditorState() {}

// ToCSS returns the CSS text a state publishes.
func ToCSS(state EditorState) string {
	switch s := state.(type) {
	case BasicState:
		return Generate(s.Styles)
	case AdvancedState:
		return s.CSSText
	}
	return ""
}

// Transition reports what a mode switch did.
type Transition struct {
	From, To Mode
	// DiscardedEdits is true when advanced-mode text differing from the
	// generated CSS was replaced.
	DiscardedEdits bool
	Warning        string
}

// Session is a single-user editing session. It is not safe for concurrent use.
type Session struct {
	storage Storage
	logger  zerolog.Logger

	state EditorState
	// styles is the last structured model, kept while in advanced mode so
	// switching back has something to regenerate from.
	styles StyleModel
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for non-fatal persistence failures.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// OpenSession loads the persisted state once and returns a session that
// writes through on every change. Missing or unreadable records fall back
// to defaults; a read failure of the storage itself is returned.
func OpenSession(storage Storage, opts ...SessionOption) (*Session, error) {
	s := &Session{
		storage: storage,
		logger:  zerolog.Nop(),
		styles:  DefaultStyleModel(),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := storage.Get(KeyStyles)
	if err != nil {
		return nil, fmt.Errorf("load styles: %w", err)
	}
	if ok {
		var m StyleModel
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			s.logger.Warn().Err(err).Msg("stored style model is unreadable, using defaults")
		} else {
			s.styles = m
		}
	}

	mode := ModeBasic
	if raw, ok, err := storage.Get(KeyMode); err != nil {
		return nil, fmt.Errorf("load mode: %w", err)
	} else if ok {
		if m, err := ParseMode(raw); err == nil {
			mode = m
		}
	}

	if mode == ModeAdvanced {
		css, ok, err := storage.Get(KeyCSSText)
		if err != nil {
			return nil, fmt.Errorf("load css text: %w", err)
		}
		if !ok {
			css = Generate(s.styles)
		}
		s.state = AdvancedState{CSSText: css}
	} else {
		s.state = BasicState{Styles: s.styles}
	}

	return s, nil
}

// Mode returns the active mode.
func (s *Session) Mode() Mode { return s.state.Mode() }

// State returns the current tagged state.
func (s *Session) State() EditorState { return s.state }

// CSSText returns the CSS text published to the preview.
func (s *Session) CSSText() string { return ToCSS(s.state) }

// StyleModel returns the structured model. In advanced mode this is the
// model as it was when basic mode was last active.
func (s *Session) StyleModel() StyleModel { return s.styles }

// SetStyleModel replaces the model and regenerates the CSS. Basic mode only.
func (s *Session) SetStyleModel(m StyleModel) error {
	if s.Mode() != ModeBasic {
		return ErrModeMismatch
	}
	s.styles = m.Complete()
	s.state = BasicState{Styles: s.styles}
	s.persist()
	return nil
}

// SetCSSTextDirect stores text verbatim. Advanced mode only. The text is
// never parsed back into the style model.
func (s *Session) SetCSSTextDirect(text string) error {
	if s.Mode() != ModeAdvanced {
		return ErrModeMismatch
	}
	s.state = AdvancedState{CSSText: text}
	s.persist()
	return nil
}

// SwitchMode changes the active mode. Entering basic mode regenerates the
// CSS immediately, discarding advanced-mode text.
func (s *Session) SwitchMode(to Mode) (Transition, error) {
	if _, err := ParseMode(string(to)); err != nil {
		return Transition{}, err
	}
	t := Transition{From: s.Mode(), To: to}
	if t.From == to {
		return t, nil
	}

	switch to {
	case ModeBasic:
		prev := ToCSS(s.state)
		s.state = BasicState{Styles: s.styles}
		if prev != ToCSS(s.state) {
			t.DiscardedEdits = true
			t.Warning = ModeSwitchWarning
		}
	case ModeAdvanced:
		s.state = AdvancedState{CSSText: ToCSS(s.state)}
	}

	s.persist()
	return t, nil
}

// Reset restores the default model and its generated CSS in the active mode.
func (s *Session) Reset() {
	s.styles = DefaultStyleModel()
	if s.Mode() == ModeAdvanced {
		s.state = AdvancedState{CSSText: Generate(s.styles)}
	} else {
		s.state = BasicState{Styles: s.styles}
	}
	s.persist()
}

// Restore applies a revision. A revision with a style model restores the
// model. The session stays in basic mode only when the revision's CSS is
// exactly what the model generates; any other text is used verbatim in
// advanced mode, so a snapshot never comes back as something it was not.
func (s *Session) Restore(rev Revision) Transition {
	t := Transition{From: s.Mode(), To: s.Mode()}

	if rev.Styles != nil {
		s.styles = rev.Styles.Complete()
	}

	if s.Mode() == ModeBasic && rev.Styles != nil && rev.CSSText == Generate(s.styles) {
		s.state = BasicState{Styles: s.styles}
	} else {
		t.To = ModeAdvanced
		s.state = AdvancedState{CSSText: rev.CSSText}
	}

	s.persist()
	return t
}

// ApplyTemplate loads a gallery template. Templates are free-form CSS, so
// the session moves to advanced mode.
func (s *Session) ApplyTemplate(t Template) Transition {
	tr := Transition{From: s.Mode(), To: ModeAdvanced}
	s.state = AdvancedState{CSSText: t.CSS}
	s.persist()
	return tr
}

// persist writes the model, CSS text and mode. Failures are logged and
// editing continues in memory.
func (s *Session) persist() {
	data, err := json.Marshal(s.styles)
	if err != nil {
		s.logger.Warn().Err(err).Msg("encode style model")
		return
	}
	writes := []struct{ key, value string }{
		{KeyStyles, string(data)},
		{KeyCSSText, s.CSSText()},
		{KeyMode, string(s.Mode())},
	}
	for _, w := range writes {
		if err := s.storage.Set(w.key, w.value); err != nil {
			s.logger.Warn().Err(err).Str("key", w.key).Msg("persist editor state")
		}
	}
}
