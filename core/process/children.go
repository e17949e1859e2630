package process

// childSet is an insertion-ordered mapping from child leaf name to identity,
// plus the round-robin cursor routers build on. Mutated only by the owning
// process, never concurrently.
type childSet struct {
	order  []string
	ids    map[string]Identity
	cursor int
}

func newChildSet() childSet {
	return childSet{ids: make(map[string]Identity)}
}

func (c *childSet) add(id Identity) {
	name := id.Name()
	if _, ok := c.ids[name]; !ok {
		c.order = append(c.order, name)
	}
	c.ids[name] = id
}

func (c *childSet) remove(name string) {
	if _, ok := c.ids[name]; !ok {
		return
	}
	delete(c.ids, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *childSet) len() int { return len(c.ids) }

func (c *childSet) values() []Identity {
	out := make([]Identity, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.ids[name])
	}
	return out
}

// nextIndex returns 0 for an empty set; otherwise it advances the cursor by
// one modulo the current size and returns the new value. The cursor is not
// reset by add/remove, so index stability across mutation is not guaranteed.
func (c *childSet) nextIndex() int {
	if len(c.ids) == 0 {
		return 0
	}
	c.cursor = (c.cursor + 1) % len(c.ids)
	return c.cursor
}
