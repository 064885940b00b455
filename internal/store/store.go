// Package store persists the master ontology and playbook as opaque binary
// snapshots in a bbolt database, so accumulation resumes across sessions.
package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"adclip/internal/ontology"
	"adclip/internal/playbook"
)

var (
	bucketSnapshots = []byte("snapshots")
	keyOntology     = []byte("ontology")
	keyPlaybook     = []byte("playbook")
)

// Store wraps the snapshot database. Snapshots are gob-encoded: they are
// read back only by this program, never parsed as a wire format.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadOntology returns the persisted master ontology, or a fresh one when
// no snapshot exists yet.
func (s *Store) LoadOntology() (*ontology.Master, error) {
	var master *ontology.Master
	err := s.load(keyOntology, &master)
	if err != nil {
		return nil, fmt.Errorf("load ontology snapshot: %w", err)
	}
	if master == nil {
		return ontology.NewMaster(), nil
	}
	return master, nil
}

func (s *Store) SaveOntology(master *ontology.Master) error {
	if err := s.save(keyOntology, master); err != nil {
		return fmt.Errorf("save ontology snapshot: %w", err)
	}
	return nil
}

// LoadPlaybook returns the persisted playbook, or a fresh one when no
// snapshot exists yet.
func (s *Store) LoadPlaybook() (*playbook.Playbook, error) {
	var pb *playbook.Playbook
	err := s.load(keyPlaybook, &pb)
	if err != nil {
		return nil, fmt.Errorf("load playbook snapshot: %w", err)
	}
	if pb == nil {
		return playbook.New(), nil
	}
	return pb, nil
}

func (s *Store) SavePlaybook(pb *playbook.Playbook) error {
	if err := s.save(keyPlaybook, pb); err != nil {
		return fmt.Errorf("save playbook snapshot: %w", err)
	}
	return nil
}

func (s *Store) save(key []byte, v any) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put(key, buf.Bytes())
	})
}

// load decodes the snapshot under key into v, leaving v untouched when the
// key has never been written.
func (s *Store) load(key []byte, v any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketSnapshots).Get(key)
		if data == nil {
			return nil
		}
		return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
	})
}

// WriteReport writes a human-readable report file alongside the snapshots.
func WriteReport(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
