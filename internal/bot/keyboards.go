package bot

import (
	"github.com/ad/telegram-giveaway-bot/internal/locale"

	"github.com/go-telegram/bot/models"
)

// Callback data
const (
	cbHome          = "a:home"
	cbGiveaways     = "a:giveaways"
	cbCreate        = "a:g:create"
	cbUsers         = "a:users"
	cbWinners       = "a:winners"
	cbMessaging     = "a:messaging"
	cbLogs          = "a:logs"
	cbStats         = "a:stats"
	cbSettings      = "a:settings"
	cbAdmins        = "a:s:admins"
	cbAdminsAdd     = "a:s:admins:add"
	cbAdminsRemove  = "a:s:admins:remove"
	cbAdminsList    = "a:s:admins:list"
	cbNotice        = "a:m:notice"
	cbWizardCancel  = "a:wiz:cancel"
	cbUserViewPfx   = "u:view:"
	cbUserStatusPfx = "u:status:"
)

func button(l locale.Localizer, id, data string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: l.MustLocalize(id), CallbackData: data}
}

func keyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func row(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

func adminMainKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	return keyboard(
		row(button(l, locale.ButtonGiveaways, cbGiveaways), button(l, locale.ButtonUsers, cbUsers)),
		row(button(l, locale.ButtonWinners, cbWinners), button(l, locale.ButtonMessaging, cbMessaging)),
		row(button(l, locale.ButtonLogs, cbLogs), button(l, locale.ButtonStats, cbStats)),
		row(button(l, locale.ButtonSettings, cbSettings)),
	)
}

func backKeyboard(l locale.Localizer, to string) *models.InlineKeyboardMarkup {
	return keyboard(row(button(l, locale.ButtonBack, to)))
}

func cancelKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	return keyboard(row(button(l, locale.ButtonCancel, cbWizardCancel)))
}

func giveawaysKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	return keyboard(
		row(button(l, locale.ButtonCreateWizard, cbCreate), button(l, locale.ButtonList, "a:g:list")),
		row(button(l, locale.ButtonOpen, "a:g:open"), button(l, locale.ButtonFreeze, "a:g:freeze")),
		row(button(l, locale.ButtonSnapshot, "a:g:snapshot"), button(l, locale.ButtonClose, "a:g:close")),
		row(button(l, locale.ButtonBack, cbHome)),
	)
}

func usersKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	return keyboard(
		row(button(l, locale.ButtonFindUser, "a:u:find"), button(l, locale.ButtonLockUser, "a:u:lock")),
		row(button(l, locale.ButtonUnlockUser, "a:u:unlock"), button(l, locale.ButtonMakeValid, "a:u:valid")),
		row(button(l, locale.ButtonMakeInvalid, "a:u:invalid"), button(l, locale.ButtonMessageUser, "a:u:msg")),
		row(button(l, locale.ButtonBack, cbHome)),
	)
}

func winnersKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	return keyboard(
		row(button(l, locale.ButtonPickWinners, "a:w:pick"), button(l, locale.ButtonNotifyWinners, "a:w:notify")),
		row(button(l, locale.ButtonSendClaim, "a:w:sendclaim"), button(l, locale.ButtonResendClaim, "a:w:resend")),
		row(button(l, locale.ButtonOverrideExpired, "a:w:override"), button(l, locale.ButtonDisqualify, "a:w:disq")),
		row(button(l, locale.ButtonBack, cbHome)),
	)
}

func messagingKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	return keyboard(
		row(button(l, locale.ButtonSendNotice, cbNotice)),
		row(button(l, locale.ButtonMessageSingle, "a:m:one")),
		row(button(l, locale.ButtonBack, cbHome)),
	)
}

func settingsKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	return keyboard(
		row(button(l, locale.ButtonAdminManagement, cbAdmins)),
		row(button(l, locale.ButtonBack, cbHome)),
	)
}

func adminManagementKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	return keyboard(
		row(button(l, locale.ButtonAddAdmin, cbAdminsAdd), button(l, locale.ButtonRemoveAdmin, cbAdminsRemove)),
		row(button(l, locale.ButtonListAdmins, cbAdminsList)),
		row(button(l, locale.ButtonBack, cbSettings)),
	)
}

// giveawayPickerKeyboard lists one button per giveaway ID
func giveawayPickerKeyboard(ids []string, prefix string) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, row(models.InlineKeyboardButton{Text: id, CallbackData: prefix + id}))
	}
	return keyboard(rows...)
}
