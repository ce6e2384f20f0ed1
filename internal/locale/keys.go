package locale

// Message key constants for localization
// All user-facing messages should use these constants to ensure consistency

const (
	// ============================================================================
	// COMMON
	// ============================================================================

	FooterHelp  = "FooterHelp"
	TimeLine    = "TimeLine"
	UnknownUser = "UnknownUser"
	NoUsername  = "NoUsername"
	Pong        = "Pong"

	UnknownCommand = "UnknownCommand"
	BotErrorTitle  = "BotErrorTitle"

	// ============================================================================
	// USER COMMANDS
	// ============================================================================

	WelcomeTitle    = "WelcomeTitle"
	WelcomeCommands = "WelcomeCommands"

	NoActiveGiveawayTitle = "NoActiveGiveawayTitle"
	NoActiveGiveawayBody  = "NoActiveGiveawayBody"
	ActiveGiveawayTitle   = "ActiveGiveawayTitle"
	GiveawayIDLabel       = "GiveawayIDLabel"
	SelectGiveawayTitle   = "SelectGiveawayTitle"
	SelectGiveawayBody    = "SelectGiveawayBody"
	GiveawayDetailsTitle  = "GiveawayDetailsTitle"

	StatusTitle        = "StatusTitle"
	StatusNoActive     = "StatusNoActive"
	StatusSelectTitle  = "StatusSelectTitle"
	StatusDetailsTitle = "StatusDetailsTitle"
	StatusNoUserID     = "StatusNoUserID"

	ContactUsageTitle   = "ContactUsageTitle"
	ContactUsageBody    = "ContactUsageBody"
	ContactUsageExample = "ContactUsageExample"
	ContactAckTitle     = "ContactAckTitle"
	ContactAckBody      = "ContactAckBody"
	SupportMessageTitle = "SupportMessageTitle"
	SupportMessageLabel = "SupportMessageLabel"

	NewUserStartedTitle = "NewUserStartedTitle"

	// ============================================================================
	// ADMIN PANEL
	// ============================================================================

	AccessDeniedTitle = "AccessDeniedTitle"
	AccessDeniedBody  = "AccessDeniedBody"
	ComingSoonTitle   = "ComingSoonTitle"
	ComingSoonBody    = "ComingSoonBody"

	AdminPanelTitle = "AdminPanelTitle"
	AdminPanelBody  = "AdminPanelBody"

	GiveawaysTitle = "GiveawaysTitle"
	GiveawaysBody  = "GiveawaysBody"
	UsersTitle     = "UsersTitle"
	UsersBody      = "UsersBody"
	WinnersTitle   = "WinnersTitle"
	WinnersBody    = "WinnersBody"
	MessagingTitle = "MessagingTitle"
	MessagingBody  = "MessagingBody"
	LogsTitle      = "LogsTitle"
	LogsBody       = "LogsBody"
	StatsTitle     = "StatsTitle"
	StatsBody      = "StatsBody"
	SettingsTitle  = "SettingsTitle"
	SettingsBody   = "SettingsBody"

	AdminManagementTitle     = "AdminManagementTitle"
	AdminManagementBody      = "AdminManagementBody"
	AdminManagementOwnerOnly = "AdminManagementOwnerOnly"
	AdminListTitle           = "AdminListTitle"
	AdminListEmpty           = "AdminListEmpty"

	// Buttons
	ButtonGiveaways       = "ButtonGiveaways"
	ButtonUsers           = "ButtonUsers"
	ButtonWinners         = "ButtonWinners"
	ButtonMessaging       = "ButtonMessaging"
	ButtonLogs            = "ButtonLogs"
	ButtonStats           = "ButtonStats"
	ButtonSettings        = "ButtonSettings"
	ButtonBack            = "ButtonBack"
	ButtonCancel          = "ButtonCancel"
	ButtonCreateWizard    = "ButtonCreateWizard"
	ButtonList            = "ButtonList"
	ButtonOpen            = "ButtonOpen"
	ButtonFreeze          = "ButtonFreeze"
	ButtonSnapshot        = "ButtonSnapshot"
	ButtonClose           = "ButtonClose"
	ButtonFindUser        = "ButtonFindUser"
	ButtonLockUser        = "ButtonLockUser"
	ButtonUnlockUser      = "ButtonUnlockUser"
	ButtonMakeValid       = "ButtonMakeValid"
	ButtonMakeInvalid     = "ButtonMakeInvalid"
	ButtonMessageUser     = "ButtonMessageUser"
	ButtonPickWinners     = "ButtonPickWinners"
	ButtonNotifyWinners   = "ButtonNotifyWinners"
	ButtonSendClaim       = "ButtonSendClaim"
	ButtonResendClaim     = "ButtonResendClaim"
	ButtonOverrideExpired = "ButtonOverrideExpired"
	ButtonDisqualify      = "ButtonDisqualify"
	ButtonSendNotice      = "ButtonSendNotice"
	ButtonMessageSingle   = "ButtonMessageSingle"
	ButtonAdminManagement = "ButtonAdminManagement"
	ButtonAddAdmin        = "ButtonAddAdmin"
	ButtonRemoveAdmin     = "ButtonRemoveAdmin"
	ButtonListAdmins      = "ButtonListAdmins"

	// ============================================================================
	// WIZARDS
	// ============================================================================

	WizardAddAdminTitle    = "WizardAddAdminTitle"
	WizardRemoveAdminTitle = "WizardRemoveAdminTitle"
	WizardAdminIDPrompt    = "WizardAdminIDPrompt"
	WizardNumericOnly      = "WizardNumericOnly"
	WizardDoneTitle        = "WizardDoneTitle"
	AdminAddedLogTitle     = "AdminAddedLogTitle"
	AdminRemovedLogTitle   = "AdminRemovedLogTitle"
	AdminAddedBody         = "AdminAddedBody"
	AdminRemovedBody       = "AdminRemovedBody"

	WizardNoticeTitle  = "WizardNoticeTitle"
	WizardNoticePrompt = "WizardNoticePrompt"
	WizardNoticeBatch  = "WizardNoticeBatch"
	WizardNoticeEmpty  = "WizardNoticeEmpty"
	NoticeTitle        = "NoticeTitle"
	NoticeSentLogTitle = "NoticeSentLogTitle"
	NoticeSentTitle    = "NoticeSentTitle"
	NoticeSentLabel    = "NoticeSentLabel"
	NoticeFailedLabel  = "NoticeFailedLabel"

	WizardCreateStep1Title    = "WizardCreateStep1Title"
	WizardCreateTitlePrompt   = "WizardCreateTitlePrompt"
	WizardCreateTitleMinimum  = "WizardCreateTitleMinimum"
	WizardTitleTooShort       = "WizardTitleTooShort"
	WizardCreateStep2Title    = "WizardCreateStep2Title"
	WizardCreateDetailsPrompt = "WizardCreateDetailsPrompt"
	WizardDetailsEmpty        = "WizardDetailsEmpty"
	GiveawayCreatedTitle      = "GiveawayCreatedTitle"
	GiveawayIDShortLabel      = "GiveawayIDShortLabel"
	GiveawayTitleLabel        = "GiveawayTitleLabel"
	GiveawayDetailsLabel      = "GiveawayDetailsLabel"
	GiveawayCreatedNext       = "GiveawayCreatedNext"
	GiveawayDraftLogTitle     = "GiveawayDraftLogTitle"

	WizardInvalidState   = "WizardInvalidState"
	WizardTooManyInvalid = "WizardTooManyInvalid"
	WizardSaveFailed     = "WizardSaveFailed"
	WizardCancelledTitle = "WizardCancelledTitle"
	WizardCancelledBody  = "WizardCancelledBody"
)
