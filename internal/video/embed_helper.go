package video

import (
	"regexp"
	"strings"
)

type EmbedType int

const (
	EmbedTypeNone EmbedType = iota
	EmbedTypeYouTube
)

type EmbedInfo struct {
	Type    EmbedType
	VideoID string
	URL     string
}

func (e EmbedInfo) Embeddable() bool {
	return e.Type != EmbedTypeNone
}

// Covers youtu.be/ID, watch?v=ID, &v=ID, embed/ID, v/ID and u/x/ID links.
var youtubeID = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

const youtubeIDLength = 11

// GetEmbedInfo turns a YouTube link into an embeddable player URL. Anything
// that does not carry an 11 character video id is not embedded at all.
func GetEmbedInfo(link string) EmbedInfo {
	link = strings.TrimSpace(link)
	if link == "" {
		return EmbedInfo{Type: EmbedTypeNone}
	}

	m := youtubeID.FindStringSubmatch(link)
	if m == nil || len(m[2]) != youtubeIDLength {
		return EmbedInfo{Type: EmbedTypeNone}
	}

	return EmbedInfo{
		Type:    EmbedTypeYouTube,
		VideoID: m[2],
		URL:     "https://www.youtube.com/embed/" + m[2] + "?autoplay=1&mute=1",
	}
}
