package chunker

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Section is a top-level member of a nested document
type Section struct {
	Name  string
	Value json.RawMessage
	// Lines is the line span of the value when the document is indented
	// with two spaces
	Lines int
}

// ParseSections decodes the top-level members of a JSON object in document
// order. A repeated name keeps its first position and its last value.
func ParseSections(data []byte) ([]Section, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var sections []Section
	index := make(map[string]int)

	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: section %q: %v", ErrInvalidDocument, name, err)
		}

		lines, err := lineSpan(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: section %q: %v", ErrInvalidDocument, name, err)
		}

		section := Section{Name: name, Value: raw, Lines: lines}
		if i, ok := index[name]; ok {
			sections[i] = section
			continue
		}
		index[name] = len(sections)
		sections = append(sections, section)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return sections, nil
}

// lineSpan re-serializes a value at the depth of a top-level member and
// counts its lines
func lineSpan(raw json.RawMessage) (int, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "  ", "  "); err != nil {
		return 0, err
	}
	return bytes.Count(buf.Bytes(), []byte("\n")) + 1, nil
}

// GroupSections fills groups greedily in document order. A section joins the
// current group unless that would push the group over maxLines while the
// group already holds something; then the group is closed and the section
// starts the next one. Sections are never split.
func GroupSections(sections []Section, maxLines int) [][]Section {
	var groups [][]Section
	var current []Section
	currentLines := 0

	for _, section := range sections {
		if currentLines+section.Lines > maxLines && len(current) > 0 {
			groups = append(groups, current)
			current = nil
			currentLines = 0
		}
		current = append(current, section)
		currentLines += section.Lines
	}

	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// GroupLines returns the summed line span of a group
func GroupLines(group []Section) int {
	total := 0
	for _, s := range group {
		total += s.Lines
	}
	return total
}

// EncodeGroup writes the group's sections as one indented JSON object
func EncodeGroup(group []Section) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, section := range group {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := encodeString(section.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(section.Value)
	}
	buf.WriteByte('}')
	return indent(buf.Bytes())
}
