package probe

// Set is an unordered collection of probes, unique by Probe.Key. The zero
// value is an empty set ready for use.
type Set struct {
	members map[Request]Probe
}

// NewSet collects probes into a Set. When two probes share a Key the first
// one is kept.
func NewSet(probes ...Probe) Set {
	s := Set{members: make(map[Request]Probe, len(probes))}
	for _, p := range probes {
		s.Add(p)
	}
	return s
}

// Add inserts p and reports whether it was new. An existing member with the
// same Key is left untouched, even if its Validator differs.
func (s *Set) Add(p Probe) bool {
	if s.members == nil {
		s.members = make(map[Request]Probe)
	}
	if _, exists := s.members[p.Key()]; exists {
		return false
	}
	s.members[p.Key()] = p
	return true
}

// Len returns the number of distinct probes.
func (s Set) Len() int {
	return len(s.members)
}

// Contains reports whether a probe with the same Key is a member.
func (s Set) Contains(p Probe) bool {
	_, ok := s.members[p.Key()]
	return ok
}

// Probes returns the members in no particular order.
func (s Set) Probes() []Probe {
	if len(s.members) == 0 {
		return nil
	}
	out := make([]Probe, 0, len(s.members))
	for _, p := range s.members {
		out = append(out, p)
	}
	return out
}

// Union returns a new Set holding the members of s and other. Members of s win
// on Key collisions.
func (s Set) Union(other Set) Set {
	out := Set{members: make(map[Request]Probe, len(s.members)+len(other.members))}
	for _, p := range s.members {
		out.Add(p)
	}
	for _, p := range other.members {
		out.Add(p)
	}
	return out
}
