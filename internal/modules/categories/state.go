package categories

import "sort"

// ExpansionSet is the set of expanded node ids.
type ExpansionSet struct {
	ids map[string]bool
}

func NewExpansionSet(ids ...string) *ExpansionSet {
	s := &ExpansionSet{ids: make(map[string]bool, len(ids))}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

func (s *ExpansionSet) Has(id string) bool {
	return s != nil && s.ids[id]
}

// Toggle flips membership of id and reports whether it is now expanded.
func (s *ExpansionSet) Toggle(id string) bool {
	if s.ids[id] {
		delete(s.ids, id)
		return false
	}
	if s.ids == nil {
		s.ids = make(map[string]bool)
	}
	s.ids[id] = true
	return true
}

// IDs returns the members in sorted order.
func (s *ExpansionSet) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Selection is an ordered set of selected node ids. Order is the order of selection.
type Selection struct {
	ids []string
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{}
	for _, id := range ids {
		if !s.Has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

func (s *Selection) Has(id string) bool {
	if s == nil {
		return false
	}
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle adds id at the end, or removes it, and reports whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return false
		}
	}
	s.ids = append(s.ids, id)
	return true
}

func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns a copy of the selection in order.
func (s *Selection) IDs() []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s.ids...)
}
