package sanitize

import (
	"log/slog"
	"regexp"
	"strings"
)

// fencedBlock matches the first ``` or ```json fenced block, non-greedy
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// boilerplateRules are applied in order
var boilerplateRules = []rule{
	{regexp.MustCompile(`(?i)^here is the translation[^\n:]*:?\s*`), ""},
	{regexp.MustCompile(`(?i)^translation[^\n:]*:?\s*`), ""},
	{regexp.MustCompile(`(?i)\s*the translation is complete[^\n]*$`), ""},
	{regexp.MustCompile(`\n\s*\n`), "\n"},
}

// Clean runs the full pass applied to model output: fenced block
// extraction, then boilerplate removal and object slicing.
func Clean(response string) (cleaned string) {
	defer recoverEmpty("clean", &cleaned)
	return StripBoilerplate(ExtractJSON(response))
}

// ExtractJSON returns the trimmed interior of the first fenced code block,
// or the whole trimmed input when there is none.
func ExtractJSON(response string) (content string) {
	defer recoverEmpty("extract", &content)

	if m := fencedBlock.FindStringSubmatch(response); m != nil {
		slog.Debug("found fenced code block in response")
		return strings.TrimSpace(m[1])
	}
	slog.Debug("no fenced code block in response, using entire text")
	return strings.TrimSpace(response)
}

// StripBoilerplate removes lead-in and closing phrases, collapses blank
// lines and slices the result to its outermost braces.
func StripBoilerplate(content string) (cleaned string) {
	defer recoverEmpty("strip", &cleaned)

	content = strings.TrimSpace(content)
	for _, r := range boilerplateRules {
		content = r.pattern.ReplaceAllString(content, r.replacement)
	}
	return SliceObject(strings.TrimSpace(content))
}

// SliceObject cuts content to the span from the first '{' to the last '}'
// inclusive. Content without such a span is returned unchanged.
func SliceObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end != -1 && end > start {
		return content[start : end+1]
	}
	return content
}

func recoverEmpty(step string, out *string) {
	if r := recover(); r != nil {
		slog.Warn("failed to clean model response", "step", step, "error", r)
		*out = ""
	}
}
