package changelog

// Changes is an insertion-order-preserving map from change group to its list
// of entries. A deliberate ordered-map implementation keeps iteration
// deterministic instead of leaning on Go's randomized map order.
type Changes struct {
	order   []ChangeGroup
	entries map[ChangeGroup][]string
}

// NewChanges returns an empty change set.
func NewChanges() *Changes {
	return &Changes{entries: make(map[ChangeGroup][]string)}
}

// Add appends an entry under group, creating the group on first use.
func (c *Changes) Add(group ChangeGroup, text string) {
	if c.entries == nil {
		c.entries = make(map[ChangeGroup][]string)
	}
	if _, ok := c.entries[group]; !ok {
		c.order = append(c.order, group)
	}
	c.entries[group] = append(c.entries[group], text)
}

// Get returns the entries recorded under group, in insertion order.
func (c *Changes) Get(group ChangeGroup) []string {
	if c.entries == nil {
		return nil
	}
	return c.entries[group]
}

// Groups returns the groups present, in insertion order.
func (c *Changes) Groups() []ChangeGroup {
	return append([]ChangeGroup(nil), c.order...)
}

// IsEmpty reports whether no group holds any entry.
func (c *Changes) IsEmpty() bool {
	for _, items := range c.entries {
		if len(items) > 0 {
			return false
		}
	}
	return true
}

// Len returns the total number of entries across all groups.
func (c *Changes) Len() int {
	n := 0
	for _, items := range c.entries {
		n += len(items)
	}
	return n
}

// Clone returns an independent deep copy.
func (c *Changes) Clone() *Changes {
	out := NewChanges()
	for _, g := range c.order {
		for _, item := range c.entries[g] {
			out.Add(g, item)
		}
	}
	return out
}

// Clear removes every group and entry in place.
func (c *Changes) Clear() {
	c.order = nil
	c.entries = make(map[ChangeGroup][]string)
}
