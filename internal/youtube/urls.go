package youtube

import (
	"regexp"
	"strings"
)

// hostBoundary keeps the domain from matching inside a longer host name
// such as notyoutube.com.
const hostBoundary = `(?:^|[/.])`

var videoPatterns = []*regexp.Regexp{
	regexp.MustCompile(hostBoundary + `youtube\.com/[^#\s]*[?&]v=([^&\n?#]+)`),
	regexp.MustCompile(hostBoundary + `youtu\.be/([^&\n?#]+)`),
	regexp.MustCompile(hostBoundary + `youtube\.com/embed/([^&\n?#]+)`),
}

// Checked in this order; a channel id wins over a handle in the same string.
var (
	channelIDPattern = regexp.MustCompile(hostBoundary + `youtube\.com/channel/([^/?\n&#]+)`)
	handlePattern    = regexp.MustCompile(hostBoundary + `youtube\.com/@([^/?\n&#]+)`)
	legacyPattern    = regexp.MustCompile(hostBoundary + `youtube\.com/(?:c|user)/([^/?\n&#]+)`)
)

// ExtractVideoID returns the video id embedded in a watch, short or embed
// URL, trying those forms in that order. It returns "" when none match.
func ExtractVideoID(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	for _, pattern := range videoPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// ChannelKind says how a channel URL identifies its channel.
type ChannelKind int

const (
	ChannelByID ChannelKind = iota + 1
	ChannelByHandle
	// ChannelByLegacyName covers /c/<name> and /user/<name>, which the API
	// can only resolve through search.
	ChannelByLegacyName
)

// ChannelRef is a parsed channel URL.
type ChannelRef struct {
	Kind  ChannelKind
	Value string
}

// ParseChannelURL recognises /channel/<id>, /@<handle> and /c|user/<name>
// URLs. Handles keep their leading "@".
func ParseChannelURL(rawURL string) (ChannelRef, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if m := channelIDPattern.FindStringSubmatch(rawURL); m != nil {
		return ChannelRef{Kind: ChannelByID, Value: m[1]}, true
	}
	if m := handlePattern.FindStringSubmatch(rawURL); m != nil {
		return ChannelRef{Kind: ChannelByHandle, Value: "@" + m[1]}, true
	}
	if m := legacyPattern.FindStringSubmatch(rawURL); m != nil {
		return ChannelRef{Kind: ChannelByLegacyName, Value: m[1]}, true
	}
	return ChannelRef{}, false
}
