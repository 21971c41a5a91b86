package bot

// ProcessedSet remembers which trigger tweets were already handled within
// the process lifetime. It is owned by the bot and mutated only from the
// run loop; there is no cross-restart persistence.
type ProcessedSet struct {
	ids   map[string]struct{}
	order []string
	limit int
}

// NewProcessedSet creates a set that prunes its oldest half once it grows
// past limit entries.
func NewProcessedSet(limit int) *ProcessedSet {
	return &ProcessedSet{
		ids:   make(map[string]struct{}),
		limit: limit,
	}
}

// Contains reports whether the tweet ID was already handled.
func (s *ProcessedSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Add marks a tweet ID as handled, pruning when over the limit.
func (s *ProcessedSet) Add(id string) {
	if s.Contains(id) {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)

	if len(s.ids) > s.limit {
		s.prune()
	}
}

// Len returns the number of remembered IDs.
func (s *ProcessedSet) Len() int {
	return len(s.ids)
}

// prune drops the oldest half of the remembered IDs.
func (s *ProcessedSet) prune() {
	drop := len(s.order) / 2
	for _, id := range s.order[:drop] {
		delete(s.ids, id)
	}
	s.order = append([]string(nil), s.order[drop:]...)
}
