package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// Entry is one parsed log record.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Attrs   []Attr
}

// Attr is a flattened key/value pair from a record.
type Attr struct {
	Key   string
	Value string
}

// tailWindow is the initial number of trailing bytes scanned by Read.
const tailWindow = 64 * 1024

// Read returns at most maxLines from the end of the file at path.
// A missing file yields no lines and no error.
//
// Only a window at the end of the file is scanned. The window doubles until
// it holds maxLines lines or covers the whole file.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	size := info.Size()

	for window := int64(tailWindow); ; window *= 2 {
		offset := max(0, size-window)
		lines, err := readFrom(file, offset, maxLines)
		if err != nil {
			return nil, err
		}
		if len(lines) >= maxLines || offset == 0 {
			return lines, nil
		}
	}
}

// readFrom returns the last maxLines non-blank lines starting at offset. A
// non-zero offset usually lands mid-line, so the first partial line is
// dropped.
func readFrom(file *os.File, offset int64, maxLines int) ([]string, error) {
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek log: %w", err)
	}

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	skip := offset > 0
	count, next := 0, 0
	for scanner.Scan() {
		line := scanner.Text()
		if skip {
			skip = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ring[next] = line
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return append([]string(nil), ring[:count]...), nil
	}
	lines := make([]string, 0, count)
	lines = append(lines, ring[next:]...)
	lines = append(lines, ring[:next]...)
	return lines, nil
}

// Tail reads the last maxEntries records of a JSON log file.
func Tail(path string, maxEntries int) ([]Entry, error) {
	lines, err := Read(path, maxEntries)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

// Parse decodes a slog JSON record. Lines that are not JSON objects become
// an entry whose Message is the raw line.
func Parse(line string) Entry {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Message: strings.TrimSpace(line)}
	}

	var e Entry
	if ts, ok := raw["time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Time = parsed
		}
	}
	if level, ok := raw["level"].(string); ok {
		e.Level = strings.ToUpper(level)
	}
	if msg, ok := raw["msg"].(string); ok {
		e.Message = msg
	}
	delete(raw, "time")
	delete(raw, "level")
	delete(raw, "msg")

	e.Attrs = flatten("", raw, nil)
	sort.Slice(e.Attrs, func(i, j int) bool { return e.Attrs[i].Key < e.Attrs[j].Key })
	return e
}

func flatten(prefix string, m map[string]any, out []Attr) []Attr {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			out = flatten(key, val, out)
		case string:
			out = append(out, Attr{Key: key, Value: val})
		case nil:
			out = append(out, Attr{Key: key, Value: "null"})
		default:
			b, err := json.Marshal(val)
			if err != nil {
				continue
			}
			out = append(out, Attr{Key: key, Value: string(b)})
		}
	}
	return out
}

// Attr returns the value for key, if present.
func (e Entry) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// String renders the entry as a single line: time, level, message, attrs.
func (e Entry) String() string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	if e.Level != "" {
		fmt.Fprintf(&b, "%-5s ", e.Level)
	}
	b.WriteString(e.Message)
	for _, a := range e.Attrs {
		fmt.Fprintf(&b, " %s=%s", a.Key, a.Value)
	}
	return b.String()
}
