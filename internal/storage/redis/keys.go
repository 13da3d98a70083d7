package redis

import (
	"fmt"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "dbs2"

// playerKey returns the Redis key for a Player
func playerKey(key model.UserKey) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, key)
}

// playerIndexKey returns the Redis key for the first-seen player index.
// It is a ZSET scored by a first-seen sequence number so ListPlayers
// preserves creation order even for players created in the same instant.
func playerIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// playerSeqKey returns the Redis key of the first-seen sequence counter
func playerSeqKey() string {
	return fmt.Sprintf("%s:seq:players", keyPrefix)
}

// runKey returns the Redis key for a GhostRun
func runKey(id model.RunID) string {
	return fmt.Sprintf("%s:run:%d", keyPrefix, id)
}

// runSeqKey returns the Redis key of the run id counter
func runSeqKey() string {
	return fmt.Sprintf("%s:seq:runs", keyPrefix)
}

// runsForBookIndexKey returns the Redis key for the SET of run ids per book
func runsForBookIndexKey(book model.BookID) string {
	return fmt.Sprintf("%s:idx:runs_for_book:%s", keyPrefix, book)
}
