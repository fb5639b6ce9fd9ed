package highlight

import (
	"regexp"
	"strings"
)

// Keywords is the literal commentary vocabulary that marks a highlight.
// Checked before the hype patterns; the matched phrase becomes the reason.
var Keywords = []string{
	"touchdown", "interception", "sack", "fumble", "caught", "makes the catch", "field goal", "kickoff",
	"amazing play", "unbelievable", "incredible", "what a catch", "what a play",
	"big hit", "he's gone", "no way", "can't believe", "game changer", "huge gain",
	"breakaway", "down the sideline", "for the win", "walk-off", "clutch", "wow",
	"goes all the way", "pick six", "pick 6", "pick-six", "pick-6", "touchdown!", "strike", "intercepted!",
	"he's in!", "he's outta here", "are you kidding me", "miracle", "stunned", "explodes", "fires", "scores!,",
}

// hypePatterns catch exclamatory phrasing the keyword list misses.
var hypePatterns = []*regexp.Regexp{
	regexp.MustCompile(`what a [\w\s]+!`),
	regexp.MustCompile(`unbelievable`),
	regexp.MustCompile(`incredible`),
	regexp.MustCompile(`no way`),
	regexp.MustCompile(`wow`),
	regexp.MustCompile(`clutch`),
	regexp.MustCompile(`for the win`),
	regexp.MustCompile(`are you kidding`),
	regexp.MustCompile(`miracle`),
	regexp.MustCompile(`stunned`),
	regexp.MustCompile(`explodes`),
	regexp.MustCompile(`scores!`),
	regexp.MustCompile(`touchdown!`),
	regexp.MustCompile(`intercepted!`),
	regexp.MustCompile(`no sign yet`),
}

// Detect classifies one transcript string. It returns whether the text is a
// highlight and the matched cue. Keywords take priority over hype patterns;
// first match wins. Matching is case-insensitive and performs no I/O.
func Detect(text string) (bool, string) {
	text = strings.ToLower(text)

	for _, kw := range Keywords {
		if strings.Contains(text, kw) {
			return true, kw
		}
	}

	for _, pat := range hypePatterns {
		if match := pat.FindString(text); match != "" {
			return true, match
		}
	}

	return false, ""
}
