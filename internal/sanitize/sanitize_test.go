package sanitize

import (
	"strings"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fenced json block with commentary",
			input: "Here's your result:\n```json\n{\"a\": \"b\"}\n```\nThanks!",
			want:  `{"a": "b"}`,
		},
		{
			name:  "untagged fence",
			input: "```\n{\"k\": \"v\"}\n```",
			want:  `{"k": "v"}`,
		},
		{
			name:  "first of two fences",
			input: "```json\n{\"first\": 1}\n```\nand\n```json\n{\"second\": 2}\n```",
			want:  `{"first": 1}`,
		},
		{
			name:  "fence on one line",
			input: "```json {\"inline\": true} ```",
			want:  `{"inline": true}`,
		},
		{
			name:  "no fence",
			input: "  \n{\"plain\": \"x\"}\n\n",
			want:  `{"plain": "x"}`,
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "unterminated fence",
			input: "```json\n{\"a\": 1}",
			want:  "```json\n{\"a\": 1}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripBoilerplate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lead-in phrase",
			input: "Here is the translation into Japanese:\n{\"hello\": \"こんにちは\"}",
			want:  `{"hello": "こんにちは"}`,
		},
		{
			name:  "translation label",
			input: "TRANSLATION: {\"a\": \"b\"}",
			want:  `{"a": "b"}`,
		},
		{
			name:  "closing phrase",
			input: "{\"a\": \"b\"}\nThe translation is complete. Let me know!",
			want:  `{"a": "b"}`,
		},
		{
			name:  "blank lines collapse",
			input: "{\n\n  \"a\": \"b\",\n   \n  \"c\": \"d\"\n}",
			want:  "{\n  \"a\": \"b\",\n  \"c\": \"d\"\n}",
		},
		{
			name:  "boundary fallback",
			input: "blah blah {\"x\": 1} more text",
			want:  `{"x": 1}`,
		},
		{
			name:  "no braces is unchanged",
			input: "nothing to see here",
			want:  "nothing to see here",
		},
		{
			name:  "closing brace before opening brace",
			input: "} backwards {",
			want:  "} backwards {",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripBoilerplate(tt.input); got != tt.want {
				t.Errorf("StripBoilerplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fenced example",
			input: "Here's your result:\n```json\n{\"a\": \"b\"}\n```\nThanks!",
			want:  `{"a": "b"}`,
		},
		{
			name:  "boundary example",
			input: "blah blah {\"x\": 1} more text",
			want:  `{"x": 1}`,
		},
		{
			name:  "fenced with lead-in inside the fence",
			input: "```json\nHere is the translation:\n{\"save\": \"保存\"}\n```",
			want:  `{"save": "保存"}`,
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	objects := []string{
		`{"a": "b"}`,
		"{\n  \"greeting\": \"hola\",\n  \"farewell\": \"adiós\"\n}",
		`{"nested": {"x": "{y}"}}`,
	}

	for _, obj := range objects {
		once := Clean("  " + obj + "\n")
		if once != obj {
			t.Errorf("Clean(%q) = %q, want the object unchanged", obj, once)
		}
		if twice := Clean(once); twice != once {
			t.Errorf("Clean is not idempotent: %q -> %q", once, twice)
		}
	}
}

func TestSliceObject(t *testing.T) {
	if got := SliceObject("prefix {\"a\": {\"b\": 1}} suffix"); got != `{"a": {"b": 1}}` {
		t.Errorf("SliceObject() = %q", got)
	}
	if got := SliceObject("only { open"); got != "only { open" {
		t.Errorf("SliceObject() = %q", got)
	}
}

func TestClean_LargeInput(t *testing.T) {
	var b strings.Builder
	b.WriteString("Sure!\n```json\n{")
	for i := 0; i < 5000; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\"k\": \"v\"")
	}
	b.WriteString("}\n```")

	got := Clean(b.String())
	if !strings.HasPrefix(got, "{") || !strings.HasSuffix(got, "}") {
		t.Errorf("Unexpected result boundaries for large input")
	}
}
