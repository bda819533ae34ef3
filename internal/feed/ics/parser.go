// Package ics parses Canvas ICS calendar feeds into assignments.
//
// The parser is deliberately tolerant: a malformed VEVENT skips that
// entry with a warning and the rest of the feed still parses. Only a
// feed with no calendar data at all is an error.
package ics

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driven"
	"github.com/DEVLlN/canvas-todoist-sync/internal/logger"
)

// FallbackCourseLabel is used when no course pattern matches the entry.
const FallbackCourseLabel = "General"

var (
	// Canvas formats summaries as "Assignment Name [Course Name]".
	bracketRe = regexp.MustCompile(`\[([^\]]+)\]`)

	// Course codes like "CHEM 350" or "CS101A" in summary or description.
	courseCodeRe = regexp.MustCompile(`([A-Z]{2,4}\s*\d{3}[A-Z]?)`)

	trailingBracketRe = regexp.MustCompile(`\s*\[[^\]]+\]\s*$`)
)

// Ensure Parser implements the interface.
var _ driven.FeedParser = (*Parser)(nil)

// Parser converts raw ICS bytes into domain assignments.
type Parser struct{}

// New creates a new ICS feed parser.
func New() *Parser {
	return &Parser{}
}

// Parse extracts one assignment per VEVENT. Entries missing a UID or a
// usable date are skipped and counted; they never surface as assignments.
// Past-due filtering is not done here, the reconciler owns the clock.
func (p *Parser) Parse(data []byte) ([]domain.Assignment, int, error) {
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("%w: empty feed", domain.ErrInvalidInput)
	}

	lines := unfoldLines(string(data))
	if !containsCalendar(lines) {
		return nil, 0, fmt.Errorf("%w: no calendar data in feed", domain.ErrInvalidInput)
	}

	var (
		assignments []domain.Assignment
		skipped     int
		event       map[string]property
		inEvent     bool
	)

	for _, line := range lines {
		name, prop, ok := parseContentLine(line)
		if !ok {
			continue
		}

		switch {
		case name == "BEGIN" && prop.value == "VEVENT":
			event = make(map[string]property)
			inEvent = true

		case name == "END" && prop.value == "VEVENT":
			if inEvent {
				a, ok := buildAssignment(event)
				if ok {
					assignments = append(assignments, a)
				} else {
					skipped++
				}
			}
			inEvent = false
			event = nil

		case inEvent:
			// First occurrence wins; Canvas feeds do not repeat
			// properties within an event.
			if _, exists := event[name]; !exists {
				event[name] = prop
			}
		}
	}

	logger.Info("Parsed %d assignments from feed (%d entries skipped)", len(assignments), skipped)
	return assignments, skipped, nil
}

// property is one unfolded content line: parameters plus unescaped value.
type property struct {
	params map[string]string
	value  string
}

// buildAssignment converts a collected VEVENT into an Assignment.
// Returns false when the entry has no UID or no usable date.
func buildAssignment(event map[string]property) (domain.Assignment, bool) {
	uid := event["UID"].value
	summary := unescapeText(event["SUMMARY"].value)
	description := unescapeText(event["DESCRIPTION"].value)

	if uid == "" {
		logger.Warn("Skipping event without UID: %s", summary)
		return domain.Assignment{}, false
	}

	// Due date comes from DTEND, falling back to DTSTART.
	dueProp, ok := event["DTEND"]
	if !ok {
		dueProp, ok = event["DTSTART"]
	}
	if !ok {
		logger.Warn("Skipping event without date: %s", summary)
		return domain.Assignment{}, false
	}

	dueAt, err := parseDateTime(dueProp)
	if err != nil {
		logger.Warn("Skipping event with unparseable date %q: %s", dueProp.value, summary)
		return domain.Assignment{}, false
	}

	return domain.Assignment{
		SourceID:    uid,
		Title:       parseTitle(summary),
		CourseLabel: ParseCourseLabel(summary, description),
		DueAt:       dueAt,
		Description: description,
	}, true
}

// unfoldLines splits raw ICS text into logical lines, joining
// continuation lines that start with a space or tab (RFC 5545 folding).
func unfoldLines(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	var lines []string
	for _, line := range raw {
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func containsCalendar(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) == "BEGIN:VCALENDAR" {
			return true
		}
	}
	return false
}

// parseContentLine splits "NAME;PARAM=V;PARAM=V:value" into its parts.
func parseContentLine(line string) (string, property, bool) {
	idx := strings.Index(line, ":")
	if idx < 1 {
		return "", property{}, false
	}

	nameAndParams := line[:idx]
	value := line[idx+1:]

	parts := strings.Split(nameAndParams, ";")
	name := strings.ToUpper(strings.TrimSpace(parts[0]))

	params := make(map[string]string)
	for _, param := range parts[1:] {
		if eq := strings.Index(param, "="); eq > 0 {
			params[strings.ToUpper(param[:eq])] = strings.Trim(param[eq+1:], `"`)
		}
	}

	return name, property{params: params, value: value}, true
}

// parseDateTime handles the three date shapes Canvas emits: UTC
// date-times (20240115T235900Z), floating date-times and all-day dates.
// All-day and floating values are interpreted as UTC.
func parseDateTime(prop property) (time.Time, error) {
	value := strings.TrimSpace(prop.value)

	if prop.params["VALUE"] == "DATE" || len(value) == 8 {
		return time.ParseInLocation("20060102", value, time.UTC)
	}

	loc := time.UTC
	if tzid := prop.params["TZID"]; tzid != "" {
		if l, err := time.LoadLocation(tzid); err == nil {
			loc = l
		} else {
			logger.Debug("Unknown TZID %q, treating as UTC", tzid)
		}
	}

	if strings.HasSuffix(value, "Z") {
		return time.Parse("20060102T150405Z", value)
	}
	return time.ParseInLocation("20060102T150405", value, loc)
}

// unescapeText reverses RFC 5545 text escaping.
func unescapeText(s string) string {
	r := strings.NewReplacer(
		`\n`, "\n",
		`\N`, "\n",
		`\,`, ",",
		`\;`, ";",
		`\\`, `\`,
	)
	return r.Replace(s)
}

// parseTitle cleans the assignment title, removing the trailing course
// bracket Canvas appends to summaries.
func parseTitle(summary string) string {
	return strings.TrimSpace(trailingBracketRe.ReplaceAllString(summary, ""))
}

// ParseCourseLabel extracts a course identifier from an entry. The rule
// is deterministic and versioned with the code: a bracketed course name
// in the summary wins, then a course-code token in summary or
// description, then the prefix before a colon or dash separator. When
// nothing matches the fallback label is returned rather than failing
// the entry.
func ParseCourseLabel(summary, description string) string {
	if m := bracketRe.FindStringSubmatch(summary); m != nil {
		return strings.TrimSpace(m[1])
	}

	if m := courseCodeRe.FindStringSubmatch(summary + " " + description); m != nil {
		return strings.TrimSpace(m[1])
	}

	for _, sep := range []string{":", " - ", " – "} {
		if strings.Contains(summary, sep) {
			return strings.TrimSpace(strings.SplitN(summary, sep, 2)[0])
		}
	}

	return FallbackCourseLabel
}
