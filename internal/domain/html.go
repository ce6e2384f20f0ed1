package domain

import (
	"strings"
	"time"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML escapes the characters reserved by Telegram HTML parse mode
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Bold renders escaped text in bold
func Bold(s string) string {
	return "<b>" + EscapeHTML(s) + "</b>"
}

// Pre renders escaped text as a preformatted block
func Pre(s string) string {
	return "<pre>" + EscapeHTML(s) + "</pre>"
}

// Blockquote renders escaped text as a quote
func Blockquote(s string) string {
	return "<blockquote>" + EscapeHTML(s) + "</blockquote>"
}

// Lines joins rendered fragments with newlines
func Lines(parts ...string) string {
	return strings.Join(parts, "\n")
}

// ISOTime formats t as a millisecond UTC timestamp
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// HumanUTC formats t for the "Time:" line
func HumanUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05.000") + " UTC"
}
