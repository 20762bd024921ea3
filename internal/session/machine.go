package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wirenic/notegram/internal/notes"
	"github.com/wirenic/notegram/internal/wrap"
)

// Event is one inbound conversation step, already stripped of transport
// detail.
type Event struct {
	Command     string // "start", "cancel", ... without the slash
	Text        string
	PhotoFileID string // transport handle of an attached image, if any
	Choice      string // token of a pressed button, if any
}

// Option is one selectable button offered to the user.
type Option struct {
	Label string
	Token string
}

// Reply is one outbound message. With Options set it renders as a message
// with selectable buttons.
type Reply struct {
	Text    string
	Options []Option
}

// Repository is what the machine needs from the note store.
type Repository interface {
	List() ([]string, error)
	Create(title, text string, images []string) error
	Append(filename, text string, images []string) error
}

// Ingestor saves an incoming image and returns the markdown reference to put
// in a note.
type Ingestor interface {
	Ingest(ctx context.Context, fileID string) (string, error)
}

// Choice tokens for the append-vs-create question. Tokens for the note
// choice are the note file names themselves.
const (
	ChoiceExisting = "existing"
	ChoiceNew      = "new"
)

const (
	msgGreeting     = "Hi! Send me a news item and I'll file it into your notes."
	msgCancelled    = "Cancelled. Send me the next news item whenever you like."
	msgEmpty        = "There's nothing I can save in that. Send me some text or a picture."
	msgWhatToDo     = "What should I do with this news?"
	msgPickNote     = "Pick a note to add it to:"
	msgNoNotes      = "There are no notes yet, let's create one!"
	msgAskName      = "Enter a name for the new note (without .md):"
	msgNameTaken    = "A note with that name already exists! Try another name:"
	msgNameInvalid  = "That name can't be used as a file name. Try another name:"
	msgNoteGone     = "That note seems to be gone. Send the news again and we'll start over."
	msgIngestFailed = "I couldn't save the picture. Send the news again."
)

const previewWidth = 70

// Machine decides, for each inbound event, the next conversation state and
// the outbound replies. Note writes and image downloads go through the
// injected Repository and Ingestor.
type Machine struct {
	store  Store
	repo   Repository
	ingest Ingestor
}

func NewMachine(store Store, repo Repository, ingest Ingestor) *Machine {
	return &Machine{store: store, repo: repo, ingest: ingest}
}

// Handle processes one event for a chat and returns the replies to send.
// Replies must be sent even when an error is returned: a non-nil error with
// replies means the turn failed in a way the user was already told about,
// and the error is for the log. A non-nil error without replies is
// unexpected; the caller should apologize to the user on the machine's
// behalf.
func (m *Machine) Handle(ctx context.Context, chatID int64, ev Event) ([]Reply, error) {
	s, err := m.store.Get(chatID)
	if err != nil {
		return nil, err
	}
	switch {
	case ev.Command == "start":
		if err := m.store.Delete(chatID); err != nil {
			return nil, err
		}
		return []Reply{{Text: msgGreeting}}, nil
	case ev.Command == "cancel":
		if err := m.store.Delete(chatID); err != nil {
			return nil, err
		}
		return []Reply{{Text: msgCancelled}}, nil
	case ev.Command != "":
		// Unknown command. Ignore it rather than treating it as news.
		return nil, nil
	case ev.Choice != "":
		return m.handleChoice(chatID, s, ev.Choice)
	default:
		return m.handleContent(ctx, chatID, s, ev)
	}
}

func (m *Machine) handleChoice(chatID int64, s Session, choice string) ([]Reply, error) {
	switch s.State {
	case AwaitingAction:
		switch choice {
		case ChoiceNew:
			s.State = AwaitingNewNoteName
			if err := m.store.Put(chatID, s); err != nil {
				return nil, err
			}
			return []Reply{{Text: msgAskName}}, nil
		case ChoiceExisting:
			names, err := m.repo.List()
			if err != nil {
				return nil, err
			}
			if len(names) == 0 {
				s.State = AwaitingNewNoteName
				if err := m.store.Put(chatID, s); err != nil {
					return nil, err
				}
				return []Reply{{Text: msgNoNotes}, {Text: msgAskName}}, nil
			}
			options := make([]Option, 0, len(names))
			for _, name := range names {
				options = append(options, Option{Label: notes.Title(name), Token: name})
			}
			s.State = AwaitingNoteChoice
			if err := m.store.Put(chatID, s); err != nil {
				return nil, err
			}
			return []Reply{{Text: msgPickNote, Options: options}}, nil
		}
		return nil, nil
	case AwaitingNoteChoice:
		err := m.repo.Append(choice, s.Pending.Text, s.Pending.Images)
		if errors.Is(err, notes.ErrNotFound) {
			// The note vanished between listing and the button press.
			if derr := m.store.Delete(chatID); derr != nil {
				return nil, derr
			}
			return []Reply{{Text: msgNoteGone}}, err
		}
		if err != nil {
			return nil, err
		}
		if err := m.store.Delete(chatID); err != nil {
			return nil, err
		}
		return []Reply{{Text: fmt.Sprintf("News added to note: %s", choice)}}, nil
	}
	// A button press from an earlier, already finished conversation.
	return nil, nil
}

func (m *Machine) handleContent(ctx context.Context, chatID int64, s Session, ev Event) ([]Reply, error) {
	if s.State == AwaitingNewNoteName && ev.Text != "" && ev.PhotoFileID == "" {
		return m.createNote(chatID, s, ev.Text)
	}
	// Stage the item. Anything staged earlier in this conversation is
	// replaced wholesale; two half-filed items are never merged.
	pending := Pending{Text: ev.Text}
	if ev.PhotoFileID != "" {
		ref, err := m.ingest.Ingest(ctx, ev.PhotoFileID)
		if err != nil {
			// The picture is lost for this turn. Tell the user and reset.
			if derr := m.store.Delete(chatID); derr != nil {
				return nil, derr
			}
			return []Reply{{Text: msgIngestFailed}}, err
		}
		pending.Images = append(pending.Images, ref)
	}
	if pending.Empty() {
		return []Reply{{Text: msgEmpty}}, nil
	}
	if err := m.store.Put(chatID, Session{State: AwaitingAction, Pending: pending}); err != nil {
		return nil, err
	}
	prompt := msgWhatToDo
	if pending.Text != "" {
		quoted := wrap.Wrap([]byte(pending.Text), []byte("> "), previewWidth)
		prompt = string(quoted) + "\n\n" + msgWhatToDo
	}
	return []Reply{{
		Text: prompt,
		Options: []Option{
			{Label: "Add to existing note", Token: ChoiceExisting},
			{Label: "Create new note", Token: ChoiceNew},
		},
	}}, nil
}

func (m *Machine) createNote(chatID int64, s Session, name string) ([]Reply, error) {
	title := strings.TrimSpace(name)
	err := m.repo.Create(title, s.Pending.Text, s.Pending.Images)
	switch {
	case errors.Is(err, notes.ErrBadName):
		return []Reply{{Text: msgNameInvalid}}, nil
	case errors.Is(err, notes.ErrExists):
		return []Reply{{Text: msgNameTaken}}, nil
	case err != nil:
		return nil, err
	}
	if err := m.store.Delete(chatID); err != nil {
		return nil, err
	}
	return []Reply{{Text: fmt.Sprintf("News added to new note: %s%s", title, notes.Suffix)}}, nil
}
