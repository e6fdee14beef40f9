package hypermedia

// Mason response assembly. Building a body is pure data work: no I/O, no
// validation of the caller's arguments.

const (
	// MasonType is served on every read and error response.
	MasonType = "application/vnd.mason+json"

	// Namespace prefixes every custom link relation of this API.
	Namespace = "trainingmanager"
)

// Control is a single Mason control: where the action lives, how to invoke
// it, and how the request body is encoded when one is needed.
type Control struct {
	Href     string `json:"href"`
	Method   string `json:"method,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Title    string `json:"title,omitempty"`
}

// Body is a Mason document under construction. Data fields live next to the
// reserved "@namespaces", "@controls" and "@error" keys.
type Body map[string]interface{}

// NewBody returns an empty body.
func NewBody() Body {
	return Body{}
}

// NewEnvelope returns a body with the trainingmanager namespace declared,
// the starting point of every successful response that carries custom
// controls.
func NewEnvelope() Body {
	return NewBody().AddNamespace(Namespace, Href(RouteLinkRelations))
}

// AddNamespace declares a link-relation namespace on the body.
func (b Body) AddNamespace(prefix, uri string) Body {
	ns, ok := b["@namespaces"].(map[string]interface{})
	if !ok {
		ns = map[string]interface{}{}
		b["@namespaces"] = ns
	}
	ns[prefix] = map[string]string{"name": uri}
	return b
}

// AddControl attaches a named control to the body, replacing any control
// already registered under the same name.
func (b Body) AddControl(name string, ctrl Control) Body {
	cs, ok := b["@controls"].(map[string]Control)
	if !ok {
		cs = map[string]Control{}
		b["@controls"] = cs
	}
	cs[name] = ctrl
	return b
}

// AddError marks the body as an error document. Error bodies carry nothing
// else structurally required.
func (b Body) AddError(title string, details ...string) Body {
	if details == nil {
		details = []string{}
	}
	b["@error"] = map[string]interface{}{
		"@message":  title,
		"@messages": details,
	}
	return b
}
