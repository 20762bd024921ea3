package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument(`{
		"update_id": 7,
		"message": {
			"text": "hi",
			"chat": {"id": 42, "type": "private"},
			"from": {"is_bot": false}
		}
	}`)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(doc), 5; got != want {
		t.Fatalf("got %d keys, want %d", got, want)
	}
	if got, ok := doc.GetInt64("update_id"); !ok || got != 7 {
		t.Errorf("got %d, %t, want 7, true", got, ok)
	}
	if got, ok := doc.GetString("message.text"); !ok || got != "hi" {
		t.Errorf("got %q, %t, want %q, true", got, ok, "hi")
	}
	if got, ok := doc.GetInt64("message.chat.id"); !ok || got != 42 {
		t.Errorf("got %d, %t, want 42, true", got, ok)
	}
	if got, ok := doc.GetBool("message.from.is_bot"); !ok || got {
		t.Errorf("got %t, %t, want false, true", got, ok)
	}
	if _, ok := doc.GetString("message.caption"); ok {
		t.Error("got a caption, want none")
	}
	if _, ok := doc.GetString("message.chat.id"); ok {
		t.Error("got chat id as string, want type mismatch")
	}
}

func TestNewDocumentBadJSON(t *testing.T) {
	if _, err := NewDocument(`{"unterminated`); err == nil {
		t.Fatal("got nil, want an error")
	}
}

func TestGetArray(t *testing.T) {
	doc, err := NewDocument(`{
		"message": {
			"photo": [
				{"file_id": "small", "width": 90},
				{"file_id": "large", "width": 800}
			]
		}
	}`)
	if err != nil {
		t.Fatal(err)
	}
	sizes, ok := doc.GetArray("message.photo")
	if !ok {
		t.Fatal("got no array, want one")
	}
	var ids []string
	var widths []int64
	for _, size := range sizes {
		id, _ := size.GetString("file_id")
		width, _ := size.GetInt64("width")
		ids = append(ids, id)
		widths = append(widths, width)
	}
	if d := cmp.Diff([]string{"small", "large"}, ids); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]int64{90, 800}, widths); d != "" {
		t.Error(d)
	}
	if _, ok := doc.GetArray("message.text"); ok {
		t.Error("got an array for a missing path, want none")
	}
}
