package menu

import "strings"

// Model is the ordered set of configured entries. The separator and Exit
// items that close every rendered menu are implicit.
type Model struct {
	entries []Entry
	byID    map[int]Entry
	issues  []Result
}

// Build parses lines in order. Blank lines are skipped and do not take an ID.
func Build(lines []string) *Model {
	m := &Model{byID: make(map[int]Entry)}
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		res := ParseLine(line)
		res.Entry.ID = len(m.entries)
		res.Entry.Line = i + 1
		if res.Malformed() {
			m.issues = append(m.issues, res)
		}
		m.entries = append(m.entries, res.Entry)
		m.byID[res.Entry.ID] = res.Entry
	}
	return m
}

func (m *Model) Entries() []Entry { return m.entries }

// Issues returns the malformed lines found while building.
func (m *Model) Issues() []Result { return m.issues }

func (m *Model) Lookup(id int) (Entry, bool) {
	e, ok := m.byID[id]
	return e, ok
}

// ItemCount is the number of rendered menu items: every entry plus the
// trailing separator and Exit.
func (m *Model) ItemCount() int { return len(m.entries) + 2 }
