package tile

import "github.com/zyedidia/generic/mapset"

// SocketGroup identifies which doorways may connect to each other.
type SocketGroup string

// DefaultSocket is the group assigned to doorways that do not declare one.
const DefaultSocket SocketGroup = "default"

// Normalize maps the empty group to DefaultSocket.
func (g SocketGroup) Normalize() SocketGroup {
	if g == "" {
		return DefaultSocket
	}
	return g
}

// SocketRules is a symmetric socket compatibility relation. Two groups match
// when they are equal or when either one accepts the other.
//
// A nil *SocketRules matches by equality only.
type SocketRules struct {
	accepts map[SocketGroup]mapset.Set[SocketGroup]
}

// NewSocketRules returns an empty rule set (equality only).
func NewSocketRules() *SocketRules {
	return &SocketRules{accepts: make(map[SocketGroup]mapset.Set[SocketGroup])}
}

// Accept declares that group a accepts each of others. The relation is
// symmetric, so declaring it from either side is sufficient.
func (r *SocketRules) Accept(a SocketGroup, others ...SocketGroup) {
	a = a.Normalize()
	set, ok := r.accepts[a]
	if !ok {
		set = mapset.New[SocketGroup]()
		r.accepts[a] = set
	}
	for _, o := range others {
		set.Put(o.Normalize())
	}
}

// Matches reports whether doorways in groups a and b may connect.
//
// Postcondition: Matches(a, b) == Matches(b, a).
func (r *SocketRules) Matches(a, b SocketGroup) bool {
	a, b = a.Normalize(), b.Normalize()
	if a == b {
		return true
	}
	if r == nil {
		return false
	}
	return r.accepts1(a, b) || r.accepts1(b, a)
}

func (r *SocketRules) accepts1(a, b SocketGroup) bool {
	set, ok := r.accepts[a]
	return ok && set.Has(b)
}
