package metrics

// Labels selects which dimensions are attached to a collector. The zero
// value attaches none, producing a single unlabeled series.
type Labels struct {
	// Handler attaches the normalized handler label.
	Handler bool
	// Method attaches the request method.
	Method bool
	// Status attaches the normalized status label.
	Status bool
}

// labelSet is the resolved form of Labels: the label names to register on a
// collector and, in the same order, the accessors that read the matching
// value from an Info. Both slices always have equal length, so zipping them
// via values is safe.
type labelSet struct {
	names     []string
	accessors []func(*Info) string
}

func newLabelSet(l Labels) labelSet {
	var ls labelSet
	if l.Handler {
		ls.names = append(ls.names, "handler")
		ls.accessors = append(ls.accessors, func(info *Info) string { return info.Handler })
	}
	if l.Method {
		ls.names = append(ls.names, "method")
		ls.accessors = append(ls.accessors, func(info *Info) string { return info.Method })
	}
	if l.Status {
		ls.names = append(ls.names, "status")
		ls.accessors = append(ls.accessors, func(info *Info) string { return info.Status })
	}
	return ls
}

func (ls labelSet) empty() bool { return len(ls.names) == 0 }

func (ls labelSet) values(info *Info) []string {
	vals := make([]string, len(ls.accessors))
	for i, get := range ls.accessors {
		vals[i] = get(info)
	}
	return vals
}
