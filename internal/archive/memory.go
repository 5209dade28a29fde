package archive

import "sync"

// Ensure Memory implements Store
var _ Store = (*Memory)(nil)

// Memory is an in-process archive with the same semantics as File.
type Memory struct {
	mu    sync.RWMutex
	facts []Fact

	// SaveErr, when set, is returned by every write.
	SaveErr error
}

// NewMemory returns an archive seeded with facts.
func NewMemory(facts ...Fact) *Memory {
	m := &Memory{facts: make([]Fact, 0, len(facts))}
	m.facts = append(m.facts, facts...)
	return m
}

func (m *Memory) Load() ([]Fact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Fact, len(m.facts))
	copy(out, m.facts)
	return out, nil
}

func (m *Memory) Add(text, source string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if text == "" || Contains(m.facts, text) {
		return false, nil
	}
	if m.SaveErr != nil {
		return false, m.SaveErr
	}
	m.facts = Append(m.facts, Fact{Text: text, Source: source})
	return true, nil
}
