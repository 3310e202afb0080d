package dic

// byteView models a region that is either a zero-copy view over a larger
// mmap'd (or fully-read) byte image, or an owned clone made on first
// mutation. Public accessors always read through view; the owned slice, once
// allocated, is what view points at from then on: public operations are
// read-only on the view and transparently promote to an owned clone on
// first write.
type byteView struct {
	view  []byte
	owned bool
}

func newByteView(b []byte) byteView { return byteView{view: b} }

// ensureOwned clones view into a private buffer the first time it is
// called, and is a no-op afterwards. It never mutates the backing mmap
// region — the shared image remains untouched.
func (v *byteView) ensureOwned() {
	if v.owned {
		return
	}
	clone := make([]byte, len(v.view))
	copy(clone, v.view)
	v.view = clone
	v.owned = true
}

func (v *byteView) bytes() []byte { return v.view }
