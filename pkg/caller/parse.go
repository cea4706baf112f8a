package caller

import (
	"regexp"
	"strconv"
	"strings"
)

//nolint:gochecknoglobals
var (
	namedFrame     = regexp.MustCompile(`^at (\S+) \((.*):(\d+):(\d+)\)$`)
	locationFrame  = regexp.MustCompile(`^at (.*):(\d+):(\d+)$`)
	goFunctionLine = regexp.MustCompile(`^(\S.*)\([^()]*\)$`)
	goCreatedBy    = regexp.MustCompile(`^created by (\S+)`)
	goFileLine     = regexp.MustCompile(`^\t(.+):(\d+)(?: \+0x[0-9a-f]+)?$`)
)

// ParseTrace extracts frames from a textual stack trace. It recognizes
// `at fn (file:line:col)` and `at file:line:col` lines, and goroutine dumps as
// produced by runtime/debug.Stack. Unrecognized lines are ignored.
func ParseTrace(text string) []Frame {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	frames := make([]Frame, 0, len(lines)/2)

	var pending string

	for _, raw := range lines {
		if match := goFileLine.FindStringSubmatch(raw); match != nil && pending != "" {
			frames = append(frames, Frame{
				Function:  ShortName(pending),
				Qualified: pending,
				File:      match[1],
				Line:      atoi(match[2]),
			})
			pending = ""

			continue
		}

		pending = ""
		line := strings.TrimSpace(raw)

		switch {
		case line == "":
		case strings.HasPrefix(line, "at "):
			if frame, ok := parseAtLine(line); ok {
				frames = append(frames, frame)
			}
		case strings.HasPrefix(raw, "created by "):
			if match := goCreatedBy.FindStringSubmatch(raw); match != nil {
				pending = match[1]
			}
		case strings.HasPrefix(raw, "goroutine "):
		default:
			if match := goFunctionLine.FindStringSubmatch(raw); match != nil {
				pending = match[1]
			}
		}
	}

	return frames
}

func parseAtLine(line string) (Frame, bool) {
	if match := namedFrame.FindStringSubmatch(line); match != nil {
		return Frame{
			Function: match[1],
			File:     match[2],
			Line:     atoi(match[3]),
			Column:   atoi(match[4]),
		}, true
	}

	if match := locationFrame.FindStringSubmatch(line); match != nil {
		return Frame{
			File:   match[1],
			Line:   atoi(match[2]),
			Column: atoi(match[3]),
		}, true
	}

	return Frame{}, false
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}

	return n
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
