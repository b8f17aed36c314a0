package content

import (
	"regexp"
	"strings"
)

var youTubeIDPattern = regexp.MustCompile(`(?:youtube\.com/.*v=|youtu\.be/)([^&?/]+)`)

// ExtractVideoID returns the YouTube id found in a pasted watch or short
// link. Anything else is returned trimmed and otherwise unchanged.
func ExtractVideoID(input string) string {
	s := strings.TrimSpace(input)
	if m := youTubeIDPattern.FindStringSubmatch(s); len(m) == 2 {
		return m[1]
	}
	return s
}

func IsVimeoURL(s string) bool {
	return strings.Contains(strings.ToLower(s), "vimeo.com")
}

// VideoFromInput interprets text pasted into a video source field.
func VideoFromInput(input string) Video {
	s := strings.TrimSpace(input)
	if IsVimeoURL(s) {
		return Video{Provider: ProviderVimeo, URL: s}
	}
	return Video{Provider: ProviderYouTube, VideoID: ExtractVideoID(s)}
}
