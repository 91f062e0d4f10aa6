package socialmodel

import "time"

// Author describes the creator of a SocialEvent.
type Author struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	FollowerCount   int    `json:"follower_count"`
	Verified        bool   `json:"verified"`
}

// Content is the text/media payload of a SocialEvent.
type Content struct {
	Text      string   `json:"text"`
	Hashtags  []string `json:"hashtags,omitempty"`
	Mentions  []string `json:"mentions,omitempty"`
	MediaURLs []string `json:"media_urls,omitempty"`
}

// Engagement carries the engagement counters attached to a SocialEvent.
type Engagement struct {
	Likes           int     `json:"likes"`
	Shares          int     `json:"shares"`
	Comments        int     `json:"comments"`
	Views           int     `json:"views"`
	EngagementRate  float64 `json:"engagement_rate"` // in [0,1]
}

// SocialEvent is an immutable inbound event (post, comment, or mention) from
// a platform. Once ingested it is never mutated; decisions reference it by
// value or by ID.
type SocialEvent struct {
	ID         string     `json:"id"`
	Platform   Platform   `json:"platform"`
	Timestamp  time.Time  `json:"timestamp"`
	Content    Content    `json:"content"`
	Author     Author     `json:"author"`
	Engagement Engagement `json:"engagement"`
}

// AgeHours returns the event's age in hours relative to now, used for
// priority time decay (spec §4.4, GLOSSARY "Event age").
func (e SocialEvent) AgeHours(now time.Time) float64 {
	d := now.Sub(e.Timestamp)
	if d < 0 {
		return 0
	}
	return d.Hours()
}
