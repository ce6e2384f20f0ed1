package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ad/telegram-giveaway-bot/internal/encoding"
)

// MinTitleLength is the minimum number of characters in a giveaway title
const MinTitleLength = 5

// GiveawayIDPrefix prefixes every generated giveaway identifier
const GiveawayIDPrefix = "gw_"

// Validation errors
var (
	ErrTitleTooShort        = fmt.Errorf("title must be at least %d characters", MinTitleLength)
	ErrEmptyDetails         = errors.New("details cannot be empty")
	ErrInvalidCreator       = errors.New("creator ID must be set")
	ErrInvalidGiveawayID    = errors.New("giveaway ID must be set")
	ErrInvalidGiveawayState = errors.New("invalid giveaway state")
	ErrGiveawayNotFound     = errors.New("giveaway not found")
)

// GiveawayState represents the lifecycle state of a giveaway
type GiveawayState string

const (
	GiveawayStateDraft  GiveawayState = "DRAFT"
	GiveawayStateActive GiveawayState = "ACTIVE"
	GiveawayStateFrozen GiveawayState = "FROZEN"
	GiveawayStateClosed GiveawayState = "CLOSED"
)

// Valid reports whether s is a known lifecycle state
func (s GiveawayState) Valid() bool {
	switch s {
	case GiveawayStateDraft, GiveawayStateActive, GiveawayStateFrozen, GiveawayStateClosed:
		return true
	default:
		return false
	}
}

// Giveaway represents one giveaway campaign
type Giveaway struct {
	ID        string
	State     GiveawayState
	Title     string
	Details   string
	CreatedBy int64
	CreatedAt time.Time
}

// Validate validates a Giveaway
func (g *Giveaway) Validate() error {
	if g.ID == "" {
		return ErrInvalidGiveawayID
	}
	if !ValidTitle(g.Title) {
		return ErrTitleTooShort
	}
	if strings.TrimSpace(g.Details) == "" {
		return ErrEmptyDetails
	}
	if g.CreatedBy == 0 {
		return ErrInvalidCreator
	}
	if !g.State.Valid() {
		return ErrInvalidGiveawayState
	}
	return nil
}

// ValidTitle reports whether title is long enough, counted in characters
func ValidTitle(title string) bool {
	return utf8.RuneCountInString(title) >= MinTitleLength
}

// BroadcastResult is the outcome of a notice broadcast
type BroadcastResult struct {
	Sent   int
	Failed int
	Sample int
	Max    int
}

var base36, _ = encoding.NewBaseNEncoder(encoding.Base36)

// NewGiveawayID derives an identifier from the creation time in milliseconds
func NewGiveawayID(t time.Time) string {
	ms := t.UnixMilli()
	if ms < 0 {
		ms = 0
	}
	encoded, _ := base36.Encode(ms)
	return GiveawayIDPrefix + encoded
}

// GiveawayIDTime recovers the creation time encoded in a generated identifier
func GiveawayIDTime(id string) (time.Time, error) {
	if !strings.HasPrefix(id, GiveawayIDPrefix) {
		return time.Time{}, ErrInvalidGiveawayID
	}
	ms, err := base36.Decode(strings.TrimPrefix(id, GiveawayIDPrefix))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidGiveawayID, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}
