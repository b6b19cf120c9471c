// Package preview turns a filesystem path into a bounded, renderable
// Preview and keeps the current and previous previews alive.
package preview

// ErrorLabel is the heading used for previews that do not come from a
// real path, such as source read failures.
const ErrorLabel = "Error"

// Preview is a loaded path. It is owned by the slot manager; renderers
// may only borrow it for the duration of one draw.
type Preview struct {
	Path    string
	Content Content
}

// New pairs a path with already-loaded content
func New(path string, content Content) *Preview {
	return &Preview{Path: path, Content: content}
}

// NewError builds an Error preview under ErrorLabel
func NewError(err error) *Preview {
	return New(ErrorLabel, &Error{Err: err})
}

// Kind returns the content kind, or KindUnknown for an empty preview
func (p *Preview) Kind() Kind {
	if p == nil || p.Content == nil {
		return KindUnknown
	}
	return p.Content.Kind()
}

// Release frees buffers held by the content
func (p *Preview) Release() {
	if p == nil {
		return
	}
	if r, ok := p.Content.(Releaser); ok {
		r.Release()
	}
}
