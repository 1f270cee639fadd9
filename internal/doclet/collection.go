package doclet

import "sort"

// Filter selects doclets by field predicates. Zero values match
// everything; Memberof matching distinguishes "unset filter" from
// "match globals", hence the pointer.
type Filter struct {
	Kind     Kind
	Scope    Scope
	Access   Access
	Memberof *string
}

func (f Filter) matches(d *Doclet) bool {
	if f.Kind != "" && d.Kind != f.Kind {
		return false
	}
	if f.Scope != "" && d.Scope != f.Scope {
		return false
	}
	if f.Access != "" && d.Access != f.Access {
		return false
	}
	if f.Memberof != nil && d.Memberof != *f.Memberof {
		return false
	}
	return true
}

// Collection holds the growing doclet set in discovery order and
// indexes it by longname. The index is a multimap: overloads and
// duplicate siblings legitimately share a longname.
type Collection struct {
	ordered []*Doclet
	byName  map[string][]*Doclet
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{byName: make(map[string][]*Doclet)}
}

// Append adds d to the collection. Doclets must already carry their
// resolved longname; appending re-indexes nothing.
func (c *Collection) Append(d *Doclet) {
	c.ordered = append(c.ordered, d)
	c.byName[d.Longname] = append(c.byName[d.Longname], d)
}

// Len returns the number of doclets.
func (c *Collection) Len() int { return len(c.ordered) }

// All returns the doclets in discovery order. The slice is shared;
// callers must not reorder it.
func (c *Collection) All() []*Doclet { return c.ordered }

// ByLongname returns every doclet recorded under the exact longname.
func (c *Collection) ByLongname(longname string) []*Doclet {
	return c.byName[longname]
}

// First returns the first doclet recorded under longname, or nil.
func (c *Collection) First(longname string) *Doclet {
	if ds := c.byName[longname]; len(ds) > 0 {
		return ds[0]
	}
	return nil
}

// Query returns the doclets matching f, in discovery order.
func (c *Collection) Query(f Filter) []*Doclet {
	var out []*Doclet
	for _, d := range c.ordered {
		if f.matches(d) {
			out = append(out, d)
		}
	}
	return out
}

// Globals returns documented global symbols. Module default exports are
// excluded even though their memberof is empty: their longname belongs
// to the module, not to the global namespace. Anonymous and ignored
// symbols are excluded as well.
func (c *Collection) Globals() []*Doclet {
	var out []*Doclet
	for _, d := range c.ordered {
		if d.Memberof != "" || d.DefaultExport || d.Ignore {
			continue
		}
		if d.Kind == KindModule || d.Kind == KindFile {
			continue
		}
		if d.IsAnonymous() {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Longnames returns the distinct longnames in sorted order.
func (c *Collection) Longnames() []string {
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
