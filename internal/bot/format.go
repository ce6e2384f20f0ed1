package bot

import (
	"strconv"
	"strings"
	"time"

	"github.com/ad/telegram-giveaway-bot/internal/domain"
	"github.com/ad/telegram-giveaway-bot/internal/locale"

	"github.com/go-telegram/bot/models"
)

const (
	footerSeparator = "—"
	// maxErrorReportLength bounds error text sent to the admin log
	maxErrorReportLength = 3500
)

// utcLine renders the localized "Time:" line
func utcLine(l locale.Localizer, now time.Time) string {
	return domain.EscapeHTML(l.MustLocalizeWithTemplate(locale.TimeLine, domain.HumanUTC(now)))
}

// footer renders the help footer appended to user-facing replies
func footer(l locale.Localizer) string {
	return domain.Lines("", footerSeparator, domain.EscapeHTML(l.MustLocalize(locale.FooterHelp)))
}

// localized localizes and escapes a static message
func localized(l locale.Localizer, id string) string {
	return domain.EscapeHTML(l.MustLocalize(id))
}

// userMention links to a user profile by ID
func userMention(l locale.Localizer, u *models.User) string {
	if u == nil {
		return domain.EscapeHTML(l.MustLocalize(locale.UnknownUser))
	}

	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = l.MustLocalize(locale.UnknownUser)
	}
	if u.ID == 0 {
		return domain.EscapeHTML(name)
	}
	return `<a href="tg://user?id=` + strconv.FormatInt(u.ID, 10) + `">` + domain.EscapeHTML(name) + `</a>`
}

// username returns "@name" or the localized placeholder
func username(l locale.Localizer, u *models.User) string {
	if u == nil || u.Username == "" {
		return l.MustLocalize(locale.NoUsername)
	}
	return "@" + u.Username
}

// kvBlock renders "key: value" lines as a preformatted block
func kvBlock(pairs ...string) string {
	var sb strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(pairs[i])
		sb.WriteString(": ")
		sb.WriteString(pairs[i+1])
	}
	return domain.Pre(sb.String())
}

// truncateRunes cuts s to at most n runes
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
