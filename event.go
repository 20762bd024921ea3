package main

import (
	"strings"
)

// A basic representation of an inbound update. Telegram updates are much
// richer; this keeps only what the conversation needs.
type event struct {
	chatID       int64
	command      string // "start", "cancel", ... (without the slash)
	text         string // message text, or the caption of a photo
	photoFileID  string // file ID of the largest variant of an attached photo
	callbackID   string
	callbackData string
}

// eventFromUpdate extracts an event from a flattened getUpdates entry. The
// second return value is false for update kinds this bot doesn't handle
// (edits, channel posts, and so on).
func eventFromUpdate(doc Document) (event, bool) {
	var ev event
	if id, ok := doc.GetString("callback_query.id"); ok {
		ev.callbackID = id
		ev.callbackData, _ = doc.GetString("callback_query.data")
		ev.chatID, _ = doc.GetInt64("callback_query.message.chat.id")
		return ev, ev.chatID != 0
	}
	chatID, ok := doc.GetInt64("message.chat.id")
	if !ok {
		return event{}, false
	}
	ev.chatID = chatID
	if text, ok := doc.GetString("message.text"); ok {
		if cmd, isCommand := parseCommand(text); isCommand {
			ev.command = cmd
		} else {
			ev.text = text
		}
	}
	if caption, ok := doc.GetString("message.caption"); ok && ev.text == "" {
		ev.text = caption
	}
	ev.photoFileID = largestPhoto(doc)
	if ev.command == "" && ev.text == "" && ev.photoFileID == "" {
		// Stickers, locations, voice notes... Let the machine reject the
		// empty event with a re-prompt rather than dropping it silently.
		return ev, true
	}
	return ev, true
}

// parseCommand reports whether text is a bot command, and if so which one.
// "/start@somebot arg" parses as "start".
func parseCommand(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.Fields(text)[0]
	cmd = strings.TrimPrefix(cmd, "/")
	if at := strings.IndexByte(cmd, '@'); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), cmd != ""
}

// largestPhoto returns the file ID of the highest-resolution variant of the
// message photo, or "" if the message has none. The Bot API sends variants
// smallest first, but we don't rely on that.
func largestPhoto(doc Document) string {
	sizes, ok := doc.GetArray("message.photo")
	if !ok {
		return ""
	}
	var best string
	var bestWidth int64 = -1
	for _, size := range sizes {
		id, ok := size.GetString("file_id")
		if !ok {
			continue
		}
		width, _ := size.GetInt64("width")
		if width > bestWidth {
			best, bestWidth = id, width
		}
	}
	return best
}
