// Package history keeps a bounded in-memory record of recent successful
// operations. It is best-effort bookkeeping on the side of the money
// path: recording never fails an operation and nothing here is
// persisted.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Kind labels the operation an entry records.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindTransfer Kind = "transfer"
)

// Entry is one recorded operation. Amount carries the exact decimal
// string, not the truncated display form.
type Entry struct {
	ID           string `json:"id"`
	Kind         Kind   `json:"kind"`
	User         string `json:"user"`
	Counterparty string `json:"counterparty,omitempty"`
	Currency     string `json:"currency"`
	Amount       string `json:"amount"`
	Time         int64  `json:"time"`
}

// Journal holds recent entries per user, newest first. Users live in an
// LRU so the journal's memory stays bounded: dormant users are evicted
// first, and each user keeps at most perUser entries.
type Journal struct {
	mu      sync.Mutex
	users   *lru.Cache[string, []Entry]
	perUser int
}

// NewJournal builds a journal remembering at most maxUsers users with
// perUser entries each.
func NewJournal(maxUsers, perUser int) (*Journal, error) {
	users, err := lru.New[string, []Entry](maxUsers)
	if err != nil {
		return nil, err
	}
	if perUser <= 0 {
		perUser = 1
	}
	return &Journal{users: users, perUser: perUser}, nil
}

// Record stores e under its user and, for transfers, under the
// counterparty as well. A missing ID or timestamp is filled in. The
// stored entry is returned.
func (j *Journal) Record(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time == 0 {
		e.Time = time.Now().Unix()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.prepend(e.User, e)
	if e.Counterparty != "" {
		j.prepend(e.Counterparty, e)
	}
	return e
}

func (j *Journal) prepend(user string, e Entry) {
	existing, _ := j.users.Get(user)
	entries := make([]Entry, 0, len(existing)+1)
	entries = append(entries, e)
	entries = append(entries, existing...)
	if len(entries) > j.perUser {
		entries = entries[:j.perUser]
	}
	j.users.Add(user, entries)
}

// Recent returns up to limit entries for user, newest first. limit <= 0
// means all retained entries. Users the journal has never seen, or has
// already evicted, yield nil.
func (j *Journal) Recent(user string, limit int) []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, ok := j.users.Get(user)
	if !ok {
		return nil
	}
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	out := make([]Entry, limit)
	copy(out, entries[:limit])
	return out
}
