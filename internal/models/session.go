package models

// State identifies where a sender currently is in the intake dialogue.
// A sender with no stored session is "fresh" and gets the main menu on
// their next message.
type State string

const (
	StateAwaitingMenuChoice    State = "awaiting_menu_choice"
	StateAwaitingSubmenuChoice State = "awaiting_submenu_choice"
	StateAwaitingName          State = "awaiting_name"
	StateAwaitingPhone         State = "awaiting_phone"
	StateAwaitingEmail         State = "awaiting_email"
)

// Session stores conversation progress for one WhatsApp sender
type Session struct {
	SenderID       string `json:"sender_id"`
	State          State  `json:"state"`
	SelectedOption string `json:"selected_option,omitempty"`
	ServiceKind    string `json:"service_kind,omitempty"`
	Name           string `json:"name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
}

// NewSession starts a fresh dialogue at the main menu
func NewSession(senderID string) *Session {
	return &Session{
		SenderID: senderID,
		State:    StateAwaitingMenuChoice,
	}
}

// KnownState reports whether the session's state is one the engine
// understands. Anything else is unrecoverable and the session is dropped.
func (s *Session) KnownState() bool {
	switch s.State {
	case StateAwaitingMenuChoice, StateAwaitingSubmenuChoice,
		StateAwaitingName, StateAwaitingPhone, StateAwaitingEmail:
		return true
	}
	return false
}
