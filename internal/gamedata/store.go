// Package gamedata is the legacy shared-file item store. Global mutable
// game content lives in a single JSON array file shared across server
// worker processes, so access is serialized with OS advisory file locks
// (shared for reads, exclusive for the whole read-modify-write cycle)
// plus an in-process mutex for goroutines in the same process.
package gamedata

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
)

// DataFileName is the name of the shared store file
const DataFileName = "dbs2_data.json"

// PasswordsItemName is the item holding the rotating password list
const PasswordsItemName = "passwords"

// MaxPasswords bounds the rotating password list
const MaxPasswords = 5

// MinPasswordLetters is the minimum length of a password after
// stripping it to lowercase letters
const MinPasswordLetters = 4

// DefaultBannedWords is the denylist applied to new passwords
// (case-insensitive substring match)
var DefaultBannedWords = []string{"admin", "password", "secret", "hack"}

// Item is one generically-typed record in the shared store
type Item struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Data        []string `json:"data"`
}

// defaultItems seed the store on first initialization
var defaultItems = []Item{
	{Name: PasswordsItemName, Data: []string{"backendintegration"}},
	{Name: "inventory", Data: []string{}},
}

// Store is the file-backed item store
type Store struct {
	path   string
	lock   *flock.Flock
	banned []string
	logger *slog.Logger

	// mu serializes goroutines in this process; the flock serializes
	// other worker processes
	mu sync.Mutex
}

// NewStore creates a store rooted at the given data directory
func NewStore(dataDir string, logger *slog.Logger) *Store {
	path := filepath.Join(dataDir, DataFileName)
	return &Store{
		path:   path,
		lock:   flock.New(path + ".lock"),
		banned: DefaultBannedWords,
		logger: logger,
	}
}

// SetBannedWords replaces the password denylist
func (s *Store) SetBannedWords(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banned = words
}

// Init seeds the store file with default items if it does not exist yet
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = s.lock.Unlock() }()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	}

	items := make([]Item, len(defaultItems))
	for i, item := range defaultItems {
		item.ID = i
		items[i] = item
	}
	return s.write(items)
}

// Items returns every stored item. A missing or corrupt file reads as
// an empty list, never an error.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readShared()
}

// Item returns one item by id
func (s *Store) Item(id int) (Item, error) {
	for _, item := range s.Items() {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, model.ErrItemNotFound
}

// RandomItem returns a random item, if any exist
func (s *Store) RandomItem() (Item, bool) {
	items := s.Items()
	if len(items) == 0 {
		return Item{}, false
	}
	return items[rand.Intn(len(items))], true
}

// Count returns the number of stored items
func (s *Store) Count() int {
	return len(s.Items())
}

// Passwords returns the current rotating password list
func (s *Store) Passwords() []string {
	for _, item := range s.Items() {
		if item.Name == PasswordsItemName {
			return item.Data
		}
	}
	return nil
}

// RotatePassword validates newWord, removes oldWord from the list if
// present, appends newWord if not already there, and truncates the list
// to the most recent MaxPasswords entries. The exclusive lock is held
// for the whole read-modify-write cycle so concurrent rotations cannot
// lose updates or grow the list past its cap. A missing oldWord is not
// an error.
func (s *Store) RotatePassword(oldWord, newWord string) ([]string, error) {
	stripped := stripToLetters(newWord)
	if len(stripped) < MinPasswordLetters {
		return nil, model.ErrInvalidPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, banned := range s.banned {
		if strings.Contains(stripped, strings.ToLower(banned)) {
			return nil, model.ErrBannedPassword
		}
	}

	if err := s.lock.Lock(); err != nil {
		return nil, err
	}
	defer func() { _ = s.lock.Unlock() }()

	items := s.read()

	idx := -1
	for i, item := range items {
		if item.Name == PasswordsItemName {
			idx = i
			break
		}
	}
	if idx == -1 {
		items = append(items, Item{ID: nextID(items), Name: PasswordsItemName, Data: []string{}})
		idx = len(items) - 1
	}

	passwords := items[idx].Data
	for i, pw := range passwords {
		if pw == oldWord {
			passwords = append(passwords[:i], passwords[i+1:]...)
			break
		}
	}

	duplicate := false
	for _, pw := range passwords {
		if pw == stripped {
			duplicate = true
			break
		}
	}
	if !duplicate {
		passwords = append(passwords, stripped)
	}

	if len(passwords) > MaxPasswords {
		passwords = passwords[len(passwords)-MaxPasswords:]
	}
	items[idx].Data = passwords

	if err := s.write(items); err != nil {
		return nil, err
	}

	s.logger.Info("password rotated", slog.Int("count", len(passwords)))
	return passwords, nil
}

// readShared reads under a shared lock (concurrent readers allowed)
func (s *Store) readShared() []Item {
	if err := s.lock.RLock(); err != nil {
		s.logger.Warn("shared lock failed", slog.String("error", err.Error()))
		return []Item{}
	}
	defer func() { _ = s.lock.Unlock() }()
	return s.read()
}

// read parses the store file. Caller must hold a lock.
func (s *Store) read() []Item {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []Item{}
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("corrupt data file, treating as empty", slog.String("path", s.path))
		return []Item{}
	}
	return items
}

// write truncates and rewrites the store file. Caller must hold the
// exclusive lock.
func (s *Store) write(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// stripToLetters lowercases a word and removes everything that is not
// an ASCII letter. Length validation runs on the stripped form.
func stripToLetters(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func nextID(items []Item) int {
	next := 0
	for _, item := range items {
		if item.ID >= next {
			next = item.ID + 1
		}
	}
	return next
}
