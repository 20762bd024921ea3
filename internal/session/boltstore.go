package session

import (
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
)

var sessionsBucket = []byte("sessions")

// BoltStore persists sessions in a Bolt bucket, so a conversation that is
// mid-workflow survives a restart of the bot instead of silently losing the
// staged item. Keys are decimal chat IDs, values JSON-encoded sessions.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore ensures the sessions bucket exists.
func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(chatID int64) (Session, error) {
	var sess Session
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(sessionsBucket).Get(id2key(chatID))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &sess)
	})
	return sess, err
}

func (s *BoltStore) Put(chatID int64, sess Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put(id2key(chatID), b)
	})
}

func (s *BoltStore) Delete(chatID int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Delete(id2key(chatID))
	})
}

func id2key(id int64) []byte {
	return []byte(fmt.Sprintf("%d", id))
}
