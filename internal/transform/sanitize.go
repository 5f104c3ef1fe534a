package transform

import (
	"regexp"
	"strings"
)

var fence = regexp.MustCompile("(?s)^```[\\w+#.-]*[ \\t]*\\r?\\n(.*?)\\r?\\n?```$")

// StripFence removes a single Markdown code fence wrapping the whole reply.
// Models are asked for bare code but frequently fence it anyway. Replies
// that contain prose around the fence are returned trimmed but otherwise
// unchanged.
func StripFence(reply string) string {
	s := strings.TrimSpace(reply)
	s = strings.ReplaceAll(s, "\x00", "")
	if m := fence.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}
