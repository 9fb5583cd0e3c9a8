package contract

import "fmt"

// Group registers operations under a shared route prefix with shared
// manifest tags.
type Group struct {
	registry *Registry
	prefix   string
	tags     []string
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupTags adds default tags to all operations registered on the group.
func WithGroupTags(tags ...string) GroupOption {
	return func(g *Group) {
		g.tags = append(g.tags, tags...)
	}
}

// Group creates an operation group with the given prefix and options.
// The prefix is static: it may not contain placeholder tokens, since
// endpoint parameter checks run against the unprefixed route.
func (r *Registry) Group(prefix string, opts ...GroupOption) *Group {
	if err := checkRoute(prefix); err != nil {
		panic("contract: group " + err.Error())
	}
	if len(RouteTokens(prefix)) > 0 {
		panic(fmt.Sprintf("contract: group prefix %q must not contain placeholder tokens", prefix))
	}
	g := &Group{
		registry: r,
		prefix:   prefix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// addOperation implements Registrar for Group.
func (g *Group) addOperation(op opInfo) {
	op.route = g.prefix + op.route
	op.tags = append(g.tags, op.tags...)
	g.registry.addOperation(op)
}
