package sentiment

import (
	"regexp"
	"strings"
)

var (
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

// emojiSentiment maps a fixed emoji table to sentiment tokens so the lexical
// scorer can pick them up like ordinary words.
var emojiSentiment = map[string]string{
	"😀": "great", "😁": "great", "😂": "great", "🤣": "great", "😊": "good",
	"🙂": "good", "😍": "great", "🥰": "great", "👍": "good", "❤️": "great",
	"🎉": "great", "✨": "good",
	"😢": "bad", "😭": "bad", "😡": "terrible", "🤬": "terrible", "👎": "bad",
	"😞": "bad", "😠": "terrible", "💔": "terrible", "😤": "bad",
}

// preprocess strips URLs and @mentions, keeps hashtag text (drops the `#`
// itself), maps known emoji to sentiment words, normalizes whitespace, and
// lowercases. The ensemble scores the preprocessed text; aspect windows are
// cut from the original text and are preprocessed when scoreText scores them.
func preprocess(text string) string {
	out := urlPattern.ReplaceAllString(text, " ")
	out = mentionPattern.ReplaceAllString(out, " ")
	out = strings.ReplaceAll(out, "#", " ")
	for emoji, token := range emojiSentiment {
		out = strings.ReplaceAll(out, emoji, " "+token+" ")
	}
	out = spacePattern.ReplaceAllString(out, " ")
	return strings.ToLower(strings.TrimSpace(out))
}
