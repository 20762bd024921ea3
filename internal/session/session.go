// Package session tracks one news-filing conversation per chat: which step
// the conversation is at, and the staged item waiting to be placed into a
// note.
package session

// State is the conversation step a chat is at.
type State int

const (
	// AwaitingNews is the initial state: nothing staged, the next text or
	// picture starts a filing workflow. It is the zero value on purpose, so
	// an absent session means a chat at rest.
	AwaitingNews State = iota
	// AwaitingAction: an item is staged, the user picks append-vs-create.
	AwaitingAction
	// AwaitingNoteChoice: the user picks which existing note to append to.
	AwaitingNoteChoice
	// AwaitingNewNoteName: the user types a name for the new note.
	AwaitingNewNoteName
)

func (s State) String() string {
	switch s {
	case AwaitingNews:
		return "awaiting-news"
	case AwaitingAction:
		return "awaiting-action"
	case AwaitingNoteChoice:
		return "awaiting-note-choice"
	case AwaitingNewNoteName:
		return "awaiting-new-note-name"
	}
	return "unknown"
}

// Pending is the staged news item awaiting placement into a note. At commit
// time at least one of the fields is non-empty.
type Pending struct {
	Text   string   `json:"text,omitempty"`
	Images []string `json:"images,omitempty"` // markdown references, in arrival order
}

func (p Pending) Empty() bool {
	return p.Text == "" && len(p.Images) == 0
}

// Session is the conversation state of one chat for the duration of one
// filing workflow. It is created on the first staged item and deleted when
// the item is committed, cancelled, or lost to an error.
type Session struct {
	State   State   `json:"state"`
	Pending Pending `json:"pending"`
}

// Store holds sessions keyed by chat ID. Getting a chat that has no stored
// session returns the zero Session: at rest, nothing pending.
type Store interface {
	Get(chatID int64) (Session, error)
	Put(chatID int64, s Session) error
	Delete(chatID int64) error
}
