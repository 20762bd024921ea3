package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type genericMap map[string]interface{}

// tgOption is one inline keyboard button: a human label plus the opaque token
// delivered back in the callback query when the button is pressed.
type tgOption struct {
	label string
	token string
}

// tgClient talks to the Telegram Bot API over HTTPS. Requests are generic
// JSON maps and responses are flattened Documents, so adding a method call is
// a matter of naming its parameters.
type tgClient struct {
	token   string
	baseURL string
	hc      *http.Client
}

func newTGClient(token string) *tgClient {
	return &tgClient{
		token:   token,
		baseURL: "https://api.telegram.org",
		// The client timeout must exceed the long poll timeout, or getUpdates
		// would be cut short.
		hc: &http.Client{Timeout: 90 * time.Second},
	}
}

// call invokes a Bot API method and returns the raw "result" field of the
// response envelope.
func (c *tgClient) call(method string, args genericMap) (json.RawMessage, error) {
	b, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	resp, err := c.hc.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()
	var envelope struct {
		OK          bool            `json:"ok"`
		Description string          `json:"description"`
		Result      json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if !envelope.OK {
		return nil, fmt.Errorf("%s: %s", method, envelope.Description)
	}
	return envelope.Result, nil
}

// updates long polls getUpdates and returns the flattened update documents
// together with the offset to pass to the next call. Updates that don't parse
// are dropped.
func (c *tgClient) updates(offset int64, timeout int) ([]Document, int64, error) {
	result, err := c.call("getUpdates", genericMap{"offset": offset, "timeout": timeout})
	if err != nil {
		return nil, offset, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, offset, err
	}
	next := offset
	docs := make([]Document, 0, len(raw))
	for _, r := range raw {
		doc, err := NewDocument(string(r))
		if err != nil {
			continue
		}
		if id, ok := doc.GetInt64("update_id"); ok && id >= next {
			next = id + 1
		}
		docs = append(docs, doc)
	}
	return docs, next, nil
}

func (c *tgClient) send(chatID int64, text string) error {
	_, err := c.call("sendMessage", genericMap{
		"chat_id": chatID,
		"text":    text,
	})
	return err
}

// sendOptions sends a message with an inline keyboard, one button per row.
func (c *tgClient) sendOptions(chatID int64, text string, options []tgOption) error {
	keyboard := make([][]genericMap, 0, len(options))
	for _, o := range options {
		keyboard = append(keyboard, []genericMap{{
			"text":          o.label,
			"callback_data": o.token,
		}})
	}
	_, err := c.call("sendMessage", genericMap{
		"chat_id":      chatID,
		"text":         text,
		"reply_markup": genericMap{"inline_keyboard": keyboard},
	})
	return err
}

// ack acknowledges a callback query so the client stops showing a spinner on
// the pressed button.
func (c *tgClient) ack(callbackID string) error {
	_, err := c.call("answerCallbackQuery", genericMap{
		"callback_query_id": callbackID,
	})
	return err
}

// download fetches the contents of the file identified by a Bot API file ID:
// getFile resolves the ID to a server-side path, which is then fetched from
// the file endpoint.
func (c *tgClient) download(ctx context.Context, fileID string) ([]byte, error) {
	result, err := c.call("getFile", genericMap{"file_id": fileID})
	if err != nil {
		return nil, err
	}
	doc, err := NewDocument(string(result))
	if err != nil {
		return nil, err
	}
	path, ok := doc.GetString("file_path")
	if !ok {
		return nil, errors.New("getFile: result has no file_path")
	}
	url := fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %q: %s", fileID, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
