package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one console-encoded log line split into its columns.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  string // JSON object of structured fields, may be empty
}

// Parse splits a tab-separated console log line. Lines that do not carry
// at least a time, level and message come back with only Message set.
func Parse(line string) Entry {
	parts := strings.SplitN(line, "\t", 4)
	if len(parts) < 3 {
		return Entry{Message: line}
	}
	e := Entry{
		Time:    parts[0],
		Level:   strings.ToUpper(strings.TrimSpace(parts[1])),
		Message: parts[2],
	}
	if len(parts) == 4 {
		e.Fields = parts[3]
	}
	return e
}
