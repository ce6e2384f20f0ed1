package storage

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/domain"
	"github.com/ad/telegram-giveaway-bot/internal/logger"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardStorageSetGet(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewWizardStorage(client, 0, testLogger())
	ctx := context.Background()

	w := &domain.CreateGiveawayWizard{Step: domain.StepDetails, GiveawayID: "gw_1", Title: "Summer Drop"}
	require.NoError(t, s.Set(ctx, 555, w))

	assert.Equal(t, DefaultWizardTTL, mr.TTL(AdminWizardKey(555)))

	got, err := s.Get(ctx, 555)
	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestWizardStorageGetMissing(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewWizardStorage(client, time.Minute, testLogger())

	_, err := s.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardStorageExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewWizardStorage(client, 1800*time.Second, testLogger())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, 9, &domain.AddAdminWizard{}))

	mr.FastForward(1799 * time.Second)
	_, err := s.Get(ctx, 9)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	_, err = s.Get(ctx, 9)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardStorageWriteResetsExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewWizardStorage(client, time.Minute, testLogger())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, 9, &domain.CreateGiveawayWizard{Step: domain.StepTitle, GiveawayID: "gw_1"}))
	mr.FastForward(50 * time.Second)
	require.NoError(t, s.Set(ctx, 9, &domain.CreateGiveawayWizard{Step: domain.StepDetails, GiveawayID: "gw_1", Title: "Hello"}))
	mr.FastForward(50 * time.Second)

	got, err := s.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.WizardCreateGiveaway, got.Kind())
}

func TestWizardStorageMalformedIsAbsent(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewWizardStorage(client, time.Minute, testLogger())

	require.NoError(t, mr.Set(AdminWizardKey(3), "{not json"))

	_, err := s.Get(context.Background(), 3)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.False(t, mr.Exists(AdminWizardKey(3)))
}

func TestWizardStorageUnknownTypeIsCorrupt(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewWizardStorage(client, time.Minute, testLogger())

	require.NoError(t, mr.Set(AdminWizardKey(3), `{"t":"gw_create","step":"rules","gid":"gw_1"}`))

	got, err := s.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.WizardCorrupt, got.Kind())
	assert.True(t, mr.Exists(AdminWizardKey(3)), "corrupt state is cleared by the wizard engine")
}

func TestWizardStorageDeleteTwice(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewWizardStorage(client, time.Minute, testLogger())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, 4, &domain.SendNoticeWizard{}))
	require.NoError(t, s.Delete(ctx, 4))
	require.NoError(t, s.Delete(ctx, 4))

	_, err := s.Get(ctx, 4)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardStorageStartLogsOverwrite(t *testing.T) {
	_, client := newTestRedis(t)
	var buf bytes.Buffer
	s := NewWizardStorage(client, time.Minute, logger.NewWithWriter(logger.WARN, &buf))
	ctx := context.Background()

	require.NoError(t, s.Start(ctx, 8, &domain.AddAdminWizard{}))
	assert.Empty(t, buf.String())

	require.NoError(t, s.Start(ctx, 8, &domain.SendNoticeWizard{}))
	assert.Contains(t, buf.String(), "replacing wizard in progress")
	assert.Contains(t, buf.String(), `"previous":"add_admin"`)

	got, err := s.Get(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, domain.WizardSendNotice, got.Kind())
}

func TestWizardStorageSetRejectsCorrupt(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewWizardStorage(client, time.Minute, testLogger())

	err := s.Set(context.Background(), 5, &domain.CorruptWizard{RawKind: "x"})
	assert.ErrorIs(t, err, domain.ErrCorruptWizard)
	assert.False(t, mr.Exists(AdminWizardKey(5)))
}

func TestWizardStoragePerChatIsolation(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("each chat sees only its own wizard", prop.ForAll(
		func(a, b int64) bool {
			if a == b {
				return true
			}
			_, client := newTestRedis(t)
			s := NewWizardStorage(client, time.Minute, testLogger())
			ctx := context.Background()

			if err := s.Set(ctx, a, &domain.AddAdminWizard{}); err != nil {
				return false
			}
			if err := s.Set(ctx, b, &domain.RemoveAdminWizard{}); err != nil {
				return false
			}
			if err := s.Delete(ctx, b); err != nil {
				return false
			}

			got, err := s.Get(ctx, a)
			if err != nil || got.Kind() != domain.WizardAddAdmin {
				return false
			}
			_, err = s.Get(ctx, b)
			return err == ErrSessionNotFound
		},
		gen.Int64(),
		gen.Int64(),
	))
	properties.TestingRun(t)
}
