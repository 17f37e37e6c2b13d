package profile

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes inside the database.
const (
	profilePrefix = "profile/"
	statsPrefix   = "stats/"
)

// Store persists profiles and stats as JSON values in BadgerDB.
type Store struct {
	db *badger.DB
}

// OpenStore opens (or creates) the database at dir.
func OpenStore(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open profile store at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get unmarshals the value at key into v. Missing keys leave v untouched
// and report found=false.
func (s *Store) get(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}

// SaveProfile persists a player profile.
func (s *Store) SaveProfile(p *PlayerProfile) error {
	return s.put(profilePrefix+p.PlayerID, p)
}

// LoadProfile loads a player profile, or a fresh one if none is stored.
func (s *Store) LoadProfile(playerID string) (*PlayerProfile, error) {
	p := NewPlayerProfile(playerID)
	if _, err := s.get(profilePrefix+playerID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveStats persists aggregate player stats.
func (s *Store) SaveStats(stats *PlayerStats) error {
	return s.put(statsPrefix+stats.PlayerID, stats)
}

// LoadStats loads aggregate player stats, or empty stats if none are stored.
func (s *Store) LoadStats(playerID string) (*PlayerStats, error) {
	stats := NewPlayerStats(playerID)
	if _, err := s.get(statsPrefix+playerID, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Players lists every player id with a stored profile.
func (s *Store) Players() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(profilePrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, key[len(profilePrefix):])
		}
		return nil
	})
	return ids, err
}
