package attempt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// DefaultSlotKey names the slot holding the log.
const DefaultSlotKey = "spi_vocab_attempts"

// ErrInvalidAttempt is returned when appending an attempt that a read would drop.
var ErrInvalidAttempt = errors.New("invalid attempt")

//go:generate mockgen -source=store.go -destination=../mocks/attempt/mock_slot.go -package=mock_attempt Slot

// Slot is one named entry of a key-value store holding a whole serialized value.
type Slot interface {
	// Get returns the stored value, or ok=false when nothing has been stored yet.
	Get(ctx context.Context) (value string, ok bool, err error)
	Set(ctx context.Context, value string) error
}

// Store is the attempt log persisted as one JSON array in a Slot.
//
// Append is a read-modify-write of the whole slot. Appends in one process are
// serialized, but two processes writing the same slot can still drop each
// other's append.
type Store struct {
	slot Slot
	mu   sync.Mutex
}

func NewStore(slot Slot) *Store {
	return &Store{slot: slot}
}

// All returns every valid attempt in the log, oldest first.
// An absent slot or content that is not a JSON array reads as an empty log;
// only failures of the slot itself are returned as errors.
func (s *Store) All(ctx context.Context) ([]Attempt, error) {
	value, ok, err := s.slot.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("slot.Get > %w", err)
	}
	if !ok {
		return []Attempt{}, nil
	}
	return Decode(value), nil
}

// Append adds one attempt to the end of the log.
// Entries that fail validation on the read are not written back.
func (s *Store) Append(ctx context.Context, attempt Attempt) error {
	return s.AppendAll(ctx, []Attempt{attempt})
}

// AppendAll adds attempts to the end of the log in one write.
// Nothing is written when any of them is invalid.
func (s *Store) AppendAll(ctx context.Context, attempts []Attempt) error {
	for _, attempt := range attempts {
		if !attempt.Valid() {
			return fmt.Errorf("%w: mode=%q selfRating=%d", ErrInvalidAttempt, attempt.Mode, attempt.SelfRating)
		}
	}
	if len(attempts) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.All(ctx)
	if err != nil {
		return err
	}
	stored = append(stored, attempts...)

	encoded, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	if err := s.slot.Set(ctx, string(encoded)); err != nil {
		return fmt.Errorf("slot.Set > %w", err)
	}
	return nil
}

// Decode parses a serialized log. It never fails: malformed content yields an
// empty log and malformed elements are skipped.
func Decode(value string) []Attempt {
	attempts := []Attempt{}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		slog.Default().Debug("attempt log is not a JSON array", slog.Any("error", err))
		return attempts
	}

	for _, item := range items {
		attempt, ok := decodeAttempt(item)
		if !ok {
			continue
		}
		attempts = append(attempts, attempt)
	}
	return attempts
}

func decodeAttempt(item json.RawMessage) (Attempt, bool) {
	var fields map[string]any
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return Attempt{}, false
	}

	wordID, ok := fields["wordId"].(string)
	if !ok {
		return Attempt{}, false
	}
	if mode, ok := fields["mode"].(string); !ok || Mode(mode) != ModeMemorize {
		return Attempt{}, false
	}
	number, ok := fields["selfRating"].(float64)
	if !ok {
		return Attempt{}, false
	}
	rating := SelfRating(number)
	if float64(rating) != number || !rating.Valid() {
		return Attempt{}, false
	}
	answeredAt, ok := fields["answeredAt"].(string)
	if !ok {
		return Attempt{}, false
	}

	return Attempt{
		WordID:     wordID,
		Mode:       ModeMemorize,
		SelfRating: rating,
		AnsweredAt: answeredAt,
	}, true
}
