package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/boltdb/bolt"
	"github.com/spf13/afero"
	"github.com/wirenic/notegram/internal/attach"
	"github.com/wirenic/notegram/internal/notes"
	"github.com/wirenic/notegram/internal/session"
)

func main() {
	configPath := flag.String("config", os.ExpandEnv("$HOME/lib/notegram/config"), "path to configuration `file`")
	flag.Parse()

	config := mustLoadConfig(*configPath)
	mustSetupLogging(config.LogPath)
	database := mustSetupDatabase(config.Database)
	defer func() { _ = database.Close() }()

	store, err := session.NewBoltStore(database)
	if err != nil {
		log.Fatalf("Could not set up session store: %v", err)
	}

	client := newTGClient(config.Token)
	fs := afero.NewOsFs()
	repository := notes.NewRepository(fs, config.NotesDir)
	ingestor := attach.NewIngestor(fs, config.NotesDir, client.download)
	b := &bot{
		client:  client,
		machine: session.NewMachine(store, repository, ingestor),
	}

	// One long poll loop, one update at a time. Handling each update to
	// completion before the next keeps every chat's conversation steps in
	// order.
	var offset int64
	for {
		updates, next, err := client.updates(offset, config.PollTimeout)
		if err != nil {
			log.Printf("Could not get updates: %v", err)
			time.Sleep(3 * time.Second)
			continue
		}
		offset = next
		for _, update := range updates {
			b.handle(update)
		}
	}
}

type bot struct {
	client  *tgClient
	machine *session.Machine
}

// handle processes one update to completion: decode, acknowledge a button
// press if there is one, run the conversation machine, send its replies.
func (b *bot) handle(update Document) {
	ev, ok := eventFromUpdate(update)
	if !ok {
		return
	}
	if ev.callbackID != "" {
		if err := b.client.ack(ev.callbackID); err != nil {
			log.Printf("Could not answer callback query: %v", err)
		}
	}
	replies, err := b.machine.Handle(context.Background(), ev.chatID, session.Event{
		Command:     ev.command,
		Text:        ev.text,
		PhotoFileID: ev.photoFileID,
		Choice:      ev.callbackData,
	})
	if err != nil {
		log.Printf("Could not handle event for chat %d: %v", ev.chatID, err)
		if len(replies) == 0 {
			replies = []session.Reply{{Text: "Something went wrong and the news was not saved. Please send it again."}}
		}
	}
	for _, reply := range replies {
		if err := b.send(ev.chatID, reply); err != nil {
			log.Printf("Could not send reply to chat %d: %v", ev.chatID, err)
		}
	}
}

func (b *bot) send(chatID int64, reply session.Reply) error {
	if len(reply.Options) == 0 {
		return b.client.send(chatID, reply.Text)
	}
	options := make([]tgOption, 0, len(reply.Options))
	for _, o := range reply.Options {
		options = append(options, tgOption{label: o.Label, token: o.Token})
	}
	return b.client.sendOptions(chatID, reply.Text, options)
}

func mustLoadConfig(path string) *botConfig {
	var config botConfig
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Could not open configuration file %q: %v", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := json.NewDecoder(f).Decode(&config); err != nil {
		log.Fatalf("Could not parse JSON from %q: %v", path, err)
	}
	if config.Token == "" {
		log.Fatalf("Configuration %q is missing the bot token", path)
	}
	if config.NotesDir == "" {
		log.Fatalf("Configuration %q is missing the notes directory", path)
	}
	if config.Database == "" {
		config.Database = os.ExpandEnv("$HOME/lib/notegram/sessions.bolt")
	}
	if config.LogPath == "" {
		config.LogPath = os.ExpandEnv("$HOME/lib/notegram/log")
	}
	if config.PollTimeout <= 0 {
		config.PollTimeout = 50
	}
	return &config
}

func mustSetupLogging(path string) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		log.Fatalf("Could not open log file %q: %v", path, err)
	}
	log.SetOutput(f)
}

func mustSetupDatabase(path string) *bolt.DB {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		log.Fatalf("Could not open Bolt database file %q: %v", path, err)
	}
	return db
}
