package process

// subscriptionSet maps subscriber key to a revocable handle. At most one
// live handle per key: storing under an occupied key revokes the previous
// handle first.
type subscriptionSet struct {
	subs map[string]func()
}

func newSubscriptionSet() subscriptionSet {
	return subscriptionSet{subs: make(map[string]func())}
}

func (s *subscriptionSet) add(key string, cancel func()) {
	if prev, ok := s.subs[key]; ok {
		prev()
	}
	s.subs[key] = cancel
}

func (s *subscriptionSet) remove(key string) {
	if cancel, ok := s.subs[key]; ok {
		cancel()
		delete(s.subs, key)
	}
}

func (s *subscriptionSet) clear() {
	for key, cancel := range s.subs {
		cancel()
		delete(s.subs, key)
	}
}
