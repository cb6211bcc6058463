package category

import "strings"

// Set accumulates relevant codes without order.
type Set map[Code]struct{}

func NewSet(codes ...Code) Set {
	s := make(Set, len(codes))
	s.Add(codes...)
	return s
}

func (s Set) Add(codes ...Code) {
	for _, c := range codes {
		s[c] = struct{}{}
	}
}

func (s Set) Has(c Code) bool {
	_, ok := s[c]
	return ok
}

// List is an ordered, duplicate-free sequence of codes.
type List []Code

// Contains reports whether c appears in l.
func (l List) Contains(c Code) bool {
	for _, v := range l {
		if v == c {
			return true
		}
	}
	return false
}

func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, c := range l {
		out[i] = string(c)
	}
	return out
}

// Join renders l as a sep-separated topic string, e.g. for a news feed query.
func (l List) Join(sep string) string {
	return strings.Join(l.Strings(), sep)
}

// ParseList splits a comma-separated list of codes. Blank items are skipped,
// duplicates collapse onto their first occurrence.
func ParseList(s string) (List, error) {
	var out List
	seen := Set{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := Parse(part)
		if err != nil {
			return nil, err
		}
		if seen.Has(c) {
			continue
		}
		seen.Add(c)
		out = append(out, c)
	}
	return out, nil
}
