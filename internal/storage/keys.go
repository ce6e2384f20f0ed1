package storage

import "fmt"

const (
	UsersStartedSetKey   = "users:started:set"
	UsersStartedZKey     = "users:started:z"
	GiveawaysActiveKey   = "giveaways:active:set"
	GiveawaysDraftKey    = "giveaways:draft:set"
	GiveawaysAllKey      = "giveaways:all:z"
	AdminsSetKey         = "admins:set"
	giveawayMetaKeyFmt   = "giveaway:%s:meta"
	adminWizardKeyFormat = "admin:wiz:%d"
)

// GiveawayMetaKey returns the hash key holding a giveaway record
func GiveawayMetaKey(gid string) string {
	return fmt.Sprintf(giveawayMetaKeyFmt, gid)
}

// AdminWizardKey returns the key holding the wizard state of a chat
func AdminWizardKey(chatID int64) string {
	return fmt.Sprintf(adminWizardKeyFormat, chatID)
}
