package mockroute

// node is one level of the segment tree. Children are tried literal first,
// then wildcard, then glob, so matches come out most specific first.
type node struct {
	literal  map[string]*node
	wildcard *node
	glob     *node
	route    *route
}

type match struct {
	route  *route
	values []string // captured wildcard segments, in pattern order
}

func (n *node) child(s segment, create bool) *node {
	switch s.kind {
	case segmentWildcard:
		if n.wildcard == nil && create {
			n.wildcard = &node{}
		}
		return n.wildcard
	case segmentGlob:
		if n.glob == nil && create {
			n.glob = &node{}
		}
		return n.glob
	default:
		c := n.literal[s.value]
		if c == nil && create {
			if n.literal == nil {
				n.literal = make(map[string]*node)
			}
			c = &node{}
			n.literal[s.value] = c
		}
		return c
	}
}

// insert stores rt at the node for its pattern and returns the route it
// replaced, if any.
func (n *node) insert(rt *route) *route {
	cur := n
	for _, s := range rt.pattern.segments {
		cur = cur.child(s, true)
	}
	old := cur.route
	cur.route = rt
	return old
}

// remove clears the route at segs and prunes empty branches.
func (n *node) remove(segs []segment) bool {
	if len(segs) == 0 {
		if n.route == nil {
			return false
		}
		n.route = nil
		return true
	}
	c := n.child(segs[0], false)
	if c == nil || !c.remove(segs[1:]) {
		return false
	}
	if c.empty() {
		switch segs[0].kind {
		case segmentWildcard:
			n.wildcard = nil
		case segmentGlob:
			n.glob = nil
		default:
			delete(n.literal, segs[0].value)
		}
	}
	return true
}

func (n *node) empty() bool {
	return n.route == nil && n.wildcard == nil && n.glob == nil && len(n.literal) == 0
}

// collect appends every route matching parts, most specific first.
func (n *node) collect(parts []string, values []string, out []match) []match {
	if len(parts) == 0 {
		if n.route != nil {
			out = append(out, match{route: n.route, values: values})
		}
		if n.glob != nil {
			out = n.glob.collect(nil, values, out)
		}
		return out
	}

	head := parts[0]
	if c := n.literal[head]; c != nil {
		out = c.collect(parts[1:], values, out)
	}
	if n.wildcard != nil {
		captured := append(values[:len(values):len(values)], head)
		out = n.wildcard.collect(parts[1:], captured, out)
	}
	if n.glob != nil {
		for i := 0; i <= len(parts); i++ {
			out = n.glob.collect(parts[i:], values, out)
		}
	}
	return out
}

// lookup returns the distinct routes matching path, most specific first.
func (n *node) lookup(path string) []match {
	all := n.collect(splitPath(path), nil, nil)
	if len(all) < 2 {
		return all
	}
	seen := make(map[*route]bool, len(all))
	uniq := all[:0]
	for _, m := range all {
		if seen[m.route] {
			continue
		}
		seen[m.route] = true
		uniq = append(uniq, m)
	}
	return uniq
}
