package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEventFromUpdate(t *testing.T) {
	testCases := []struct {
		name string
		json string
		want event
		skip bool
	}{
		{
			name: "text message",
			json: `{"update_id":1,"message":{"chat":{"id":42},"text":"Buy milk"}}`,
			want: event{chatID: 42, text: "Buy milk"},
		},
		{
			name: "command with bot mention and argument",
			json: `{"update_id":2,"message":{"chat":{"id":42},"text":"/Start@notegram_bot now"}}`,
			want: event{chatID: 42, command: "start"},
		},
		{
			name: "photo with caption picks largest variant",
			json: `{"update_id":3,"message":{"chat":{"id":42},"caption":"sunset",
				"photo":[{"file_id":"s","width":90},{"file_id":"l","width":1280},{"file_id":"m","width":320}]}}`,
			want: event{chatID: 42, text: "sunset", photoFileID: "l"},
		},
		{
			name: "callback query",
			json: `{"update_id":4,"callback_query":{"id":"cb9","data":"Shopping.md","message":{"chat":{"id":42}}}}`,
			want: event{chatID: 42, callbackID: "cb9", callbackData: "Shopping.md"},
		},
		{
			name: "sticker-like message keeps chat but carries nothing",
			json: `{"update_id":5,"message":{"chat":{"id":42},"sticker":{"file_unique_id":"x"}}}`,
			want: event{chatID: 42},
		},
		{
			name: "unsupported update kind",
			json: `{"update_id":6,"edited_message":{"chat":{"id":42},"text":"edited"}}`,
			skip: true,
		},
	}
	for _, tc := range testCases {
		doc, err := NewDocument(tc.json)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		got, ok := eventFromUpdate(doc)
		if ok == tc.skip {
			t.Errorf("%s: got ok=%t, want %t", tc.name, ok, !tc.skip)
			continue
		}
		if tc.skip {
			continue
		}
		if d := cmp.Diff(tc.want, got, cmp.AllowUnexported(event{})); d != "" {
			t.Errorf("%s: %s", tc.name, d)
		}
	}
}

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		text      string
		cmd       string
		isCommand bool
	}{
		{"/start", "start", true},
		{"/cancel@notegram_bot", "cancel", true},
		{"/START now", "start", true},
		{"plain text", "", false},
		{"not /a command", "", false},
	}
	for _, tc := range testCases {
		cmd, isCommand := parseCommand(tc.text)
		if cmd != tc.cmd || isCommand != tc.isCommand {
			t.Errorf("parseCommand(%q): got %q, %t, want %q, %t", tc.text, cmd, isCommand, tc.cmd, tc.isCommand)
		}
	}
}
