package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastNoticeCapsAndCountsFailures(t *testing.T) {
	users := newMockUserRepo(200)
	sender := newMockSender()
	for _, id := range []int64{3, 17, 50, 99, 120} {
		sender.failFor[id] = true
	}
	// beyond the cap, never attempted
	sender.failFor[150] = true

	b := NewBroadcaster(users, sender, testLocalizer(), &mockLogger{}, 120)
	res := b.BroadcastNotice(context.Background(), "hello")

	assert.Equal(t, BroadcastResult{Sent: 115, Failed: 5, Sample: 120, Max: 120}, res)
	assert.Len(t, sender.sent, 120)
	assert.Empty(t, sender.messagesTo(121))
}

func TestBroadcastNoticeOldestFirst(t *testing.T) {
	users := newMockUserRepo(5)
	sender := newMockSender()

	b := NewBroadcaster(users, sender, testLocalizer(), &mockLogger{}, 3)
	res := b.BroadcastNotice(context.Background(), "x")

	require.Len(t, sender.sent, 3)
	for i, p := range sender.sent {
		assert.Equal(t, int64(i+1), p.ChatID)
	}
	assert.Equal(t, BroadcastResult{Sent: 3, Sample: 3, Max: 3}, res)
}

func TestBroadcastNoticeEscapesText(t *testing.T) {
	users := newMockUserRepo(1)
	sender := newMockSender()

	b := NewBroadcaster(users, sender, testLocalizer(), &mockLogger{}, 0)
	b.BroadcastNotice(context.Background(), "<b>free</b> & more")

	require.Len(t, sender.sent, 1)
	text := sender.sent[0].Text
	assert.Contains(t, text, "<blockquote>&lt;b&gt;free&lt;/b&gt; &amp; more</blockquote>")
	assert.True(t, strings.HasPrefix(text, "<b>Notice</b>"))
	assert.Equal(t, DefaultBroadcastMax, b.Max())
}

func TestBroadcastNoticeIndexFailure(t *testing.T) {
	users := newMockUserRepo(10)
	users.err = errors.New("connection refused")
	sender := newMockSender()

	b := NewBroadcaster(users, sender, testLocalizer(), &mockLogger{}, 120)
	res := b.BroadcastNotice(context.Background(), "x")

	assert.Equal(t, BroadcastResult{Max: 120}, res)
	assert.Empty(t, sender.sent)
}

func TestBroadcastNoticeAccounting(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("sent + failed == sample == min(users, max)", prop.ForAll(
		func(userCount int, max int, failEvery int) bool {
			users := newMockUserRepo(userCount)
			sender := newMockSender()
			for i := 1; i <= userCount; i++ {
				if i%failEvery == 0 {
					sender.failFor[int64(i)] = true
				}
			}

			res := NewBroadcaster(users, sender, testLocalizer(), &mockLogger{}, max).
				BroadcastNotice(context.Background(), "notice")

			want := userCount
			if max < want {
				want = max
			}
			return res.Sample == want && res.Sent+res.Failed == want && res.Max == max
		},
		gen.IntRange(0, 300),
		gen.IntRange(1, 150),
		gen.IntRange(1, 10),
	))
	properties.TestingRun(t)
}
