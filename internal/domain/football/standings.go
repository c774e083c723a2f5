package football

import (
	"bytes"
	"encoding/json"
	"fmt"

	sonic "github.com/bytedance/sonic"
)

// Standings is either a single flat table or an ordered list of group
// tables. The shape is fixed when the payload is decoded.
type Standings struct {
	grouped bool
	groups  [][]StandingEntry
}

func NewFlatStandings(entries []StandingEntry) Standings {
	return Standings{groups: [][]StandingEntry{entries}}
}

func NewGroupedStandings(groups [][]StandingEntry) Standings {
	return Standings{grouped: true, groups: groups}
}

func (s Standings) IsGrouped() bool {
	return s.grouped
}

// Flat returns the single table. It is nil for grouped standings.
func (s Standings) Flat() []StandingEntry {
	if s.grouped || len(s.groups) == 0 {
		return nil
	}
	return s.groups[0]
}

// Groups returns every table in provider order. A flat table is returned
// as one group.
func (s Standings) Groups() [][]StandingEntry {
	return s.groups
}

func (s Standings) Len() int {
	total := 0
	for _, group := range s.groups {
		total += len(group)
	}
	return total
}

func (s *Standings) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = Standings{}
		return nil
	}

	var items []json.RawMessage
	if err := sonic.Unmarshal(trimmed, &items); err != nil {
		return fmt.Errorf("standings must be an array: %w", err)
	}
	if len(items) == 0 {
		*s = NewFlatStandings([]StandingEntry{})
		return nil
	}

	first := bytes.TrimSpace(items[0])
	if len(first) > 0 && first[0] == '[' {
		groups := make([][]StandingEntry, 0, len(items))
		for idx, raw := range items {
			var group []StandingEntry
			if err := sonic.Unmarshal(raw, &group); err != nil {
				return fmt.Errorf("decode standings group %d: %w", idx, err)
			}
			groups = append(groups, group)
		}
		*s = NewGroupedStandings(groups)
		return nil
	}

	entries := make([]StandingEntry, 0, len(items))
	for idx, raw := range items {
		var entry StandingEntry
		if err := sonic.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("decode standings row %d: %w", idx, err)
		}
		entries = append(entries, entry)
	}
	*s = NewFlatStandings(entries)
	return nil
}

func (s Standings) MarshalJSON() ([]byte, error) {
	if s.grouped {
		return sonic.Marshal(s.groups)
	}
	flat := s.Flat()
	if flat == nil {
		flat = []StandingEntry{}
	}
	return sonic.Marshal(flat)
}
