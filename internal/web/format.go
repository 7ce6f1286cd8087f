package web

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Platform is a streaming platform a group or artist broadcasts on.
type Platform struct {
	ID    string
	Label string
}

// Platforms lists the known platform ids in display order.
var Platforms = []Platform{
	{ID: "1", Label: "SOOP"},
	{ID: "2", Label: "CHZZK"},
	{ID: "3", Label: "YouTube"},
}

// SongType classifies a song.
type SongType struct {
	ID    string
	Label string
}

// SongTypes lists the known song type ids in display order.
var SongTypes = []SongType{
	{ID: "1", Label: "Original"},
	{ID: "2", Label: "Cover"},
	{ID: "3", Label: "Concert"},
}

// PlatformLabel names a platform id.
func PlatformLabel(id string) string {
	for _, p := range Platforms {
		if p.ID == id {
			return p.Label
		}
	}
	return "Unknown"
}

// SongTypeLabel names a song type id.
func SongTypeLabel(id string) string {
	for _, t := range SongTypes {
		if t.ID == id {
			return t.Label
		}
	}
	return "Unknown"
}

var uploadLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "2006.01.02"}

// FormatUploadDate renders a stored upload date as 2006.01.02. Values that do
// not parse are shown unchanged.
func FormatUploadDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range uploadLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006.01.02")
		}
	}
	return raw
}

// uploadDate converts an API publish timestamp into the stored date form.
func uploadDate(publishedAt string) string {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(publishedAt))
	if err != nil {
		return strings.TrimSpace(publishedAt)
	}
	return t.Format("2006-01-02")
}

var countPrinter = message.NewPrinter(language.Korean)

// FormatCount renders a counter with digit grouping.
func FormatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return string(r)
}
