package domain

import "strings"

// Resource is one child record returned by a resource directory
type Resource struct {
	Name string // display name
	ID   string // opaque identifier handed to actions
	Aux  string // optional auxiliary field, e.g. a container runtime id
}

// Label returns the display name, falling back to the identifier
func (r Resource) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// ResolvedPath holds one selected resource per hierarchy depth, in depth order.
// It is a snapshot: navigator mutations after capture never reach it.
type ResolvedPath []Resource

// Clone returns an independent copy of the path
func (p ResolvedPath) Clone() ResolvedPath {
	if p == nil {
		return nil
	}
	out := make(ResolvedPath, len(p))
	copy(out, p)
	return out
}

// IDs returns the identifiers in depth order
func (p ResolvedPath) IDs() []string {
	ids := make([]string, len(p))
	for i, r := range p {
		ids[i] = r.ID
	}
	return ids
}

// Last returns the deepest resource, or false for an empty path
func (p ResolvedPath) Last() (Resource, bool) {
	if len(p) == 0 {
		return Resource{}, false
	}
	return p[len(p)-1], true
}

// At returns the resource at depth, or false when the path is shorter
func (p ResolvedPath) At(depth int) (Resource, bool) {
	if depth < 0 || depth >= len(p) {
		return Resource{}, false
	}
	return p[depth], true
}

// Equal reports whether both paths carry the same identifiers
func (p ResolvedPath) Equal(other ResolvedPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i].ID != other[i].ID {
			return false
		}
	}
	return true
}

func (p ResolvedPath) String() string {
	return strings.Join(p.IDs(), " / ")
}

// ArnName returns the last path segment of an ARN-like identifier,
// e.g. "arn:aws:ecs:eu-west-1:1:cluster/prod" -> "prod".
func ArnName(arn string) string {
	if i := strings.LastIndex(arn, "/"); i >= 0 {
		return arn[i+1:]
	}
	return arn
}

// Action is a terminal action that can be dispatched on a resolved path
type Action string

const (
	ActionShell       Action = "shell"
	ActionPortForward Action = "port-forward"
)

func (a Action) Label() string {
	switch a {
	case ActionShell:
		return "shell"
	case ActionPortForward:
		return "port forward"
	}
	return string(a)
}

// Resource kinds
const (
	KindECS = "ecs"
	KindEC2 = "ec2"
)
