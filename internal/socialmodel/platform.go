// Package socialmodel holds the shared data types for the decision pipeline
// and the scheduling/publishing engine: events, brand context, analysis
// results, routing decisions, and scheduled content. Nothing in this package
// talks to a network or a database — it is the vocabulary both subsystems
// share.
package socialmodel

// Platform identifies a social media platform an event originated from or a
// scheduled post targets.
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformYouTube   Platform = "youtube"
	PlatformReddit    Platform = "reddit"
	PlatformRSS       Platform = "rss"
)

// Platforms enumerates every supported platform, in a stable order. Config
// tables that are "total over the enum" (spec §9) are validated against this
// slice.
var Platforms = []Platform{
	PlatformTikTok,
	PlatformInstagram,
	PlatformFacebook,
	PlatformYouTube,
	PlatformReddit,
	PlatformRSS,
}

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}
