package tzresolve

type testBlock struct {
	props map[string]string
	tzid  string
}

func (b testBlock) TZID() string { return b.tzid }

func (b testBlock) Property(name string) (string, bool) {
	v, ok := b.props[name]
	return v, ok
}

type testCalendar []Block

func (c testCalendar) TimezoneBlocks() []Block { return c }

func block(tzid string, props ...string) testBlock {
	b := testBlock{tzid: tzid, props: map[string]string{}}
	for i := 0; i+1 < len(props); i += 2 {
		b.props[props[i]] = props[i+1]
	}
	return b
}

// fixedFinder matches one identifier and counts its calls.
type fixedFinder struct {
	ref   Reference
	tzid  string
	calls int
}

func (f *fixedFinder) Find(tzid string, _ bool) (Reference, bool, error) {
	f.calls++
	if tzid != f.tzid {
		return Reference{}, false, nil
	}
	return f.ref, true, nil
}
