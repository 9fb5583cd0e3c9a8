package contract

import (
	"log/slog"
	"reflect"
	"sync"
)

// Registry collects registered endpoint descriptors and derives the API
// manifest from them. It holds no handlers and serves no traffic; the
// contract layer describes operations, it does not dispatch them.
type Registry struct {
	mu  sync.Mutex
	ops []opInfo

	title   string
	version string
	log     *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithTitle sets the API title used in the manifest.
func WithTitle(title string) RegistryOption {
	return func(r *Registry) {
		r.title = title
	}
}

// WithVersion sets the API version used in the manifest.
func WithVersion(version string) RegistryOption {
	return func(r *Registry) {
		r.version = version
	}
}

// WithLogger sets the logger for registration diagnostics.
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry creates a Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) logger() *slog.Logger {
	if r.log == nil {
		return slog.Default()
	}
	return r.log
}

// opInfo holds the metadata recorded for a registered operation, used
// for manifest generation.
type opInfo struct {
	method string
	route  string
	auth   AuthMode
	stream bool

	summary     string
	desc        string
	tags        []string
	deprecated  bool
	operationID string
	errorCodes  []string

	paramKeys  []string
	paramsType reflect.Type
	bodyType   reflect.Type
	dataType   reflect.Type
}

// OperationOption annotates a registered operation in the manifest.
type OperationOption func(*opInfo)

// WithSummary sets the operation summary.
func WithSummary(s string) OperationOption {
	return func(op *opInfo) {
		op.summary = s
	}
}

// WithDescription sets the operation description.
func WithDescription(d string) OperationOption {
	return func(op *opInfo) {
		op.desc = d
	}
}

// WithTags adds manifest tags to the operation.
func WithTags(tags ...string) OperationOption {
	return func(op *opInfo) {
		op.tags = append(op.tags, tags...)
	}
}

// WithDeprecated marks the operation as deprecated in the manifest.
func WithDeprecated() OperationOption {
	return func(op *opInfo) {
		op.deprecated = true
	}
}

// WithOperationID sets a custom manifest operationId.
func WithOperationID(id string) OperationOption {
	return func(op *opInfo) {
		op.operationID = id
	}
}

// WithErrorCodes declares the TagErr code vocabulary shown for the
// operation's 400 response. Widened families list CodeUnauthorised
// automatically.
func WithErrorCodes(codes ...string) OperationOption {
	return func(op *opInfo) {
		op.errorCodes = append(op.errorCodes, codes...)
	}
}

// Register records an endpoint with a Registry or Group. The endpoint's
// payload types are captured for manifest schemas.
func Register[P, B any, C ~string, T any](reg Registrar, ep Endpoint[P, B, C, T], opts ...OperationOption) {
	op := opInfo{
		method:     ep.method,
		route:      ep.route,
		auth:       ep.auth,
		stream:     ep.stream,
		paramKeys:  RouteTokens(ep.route),
		paramsType: reflect.TypeFor[P](),
		bodyType:   reflect.TypeFor[B](),
		dataType:   reflect.TypeFor[T](),
	}

	for _, opt := range opts {
		opt(&op)
	}

	reg.addOperation(op)
}

// Registrar is the interface accepted by Register. Both *Registry and
// *Group implement it.
type Registrar interface {
	addOperation(op opInfo)
}

// addOperation stores an operation. A duplicate (method, route) pair
// logs a warning and replaces the earlier registration.
func (r *Registry) addOperation(op opInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.ops {
		if r.ops[i].method == op.method && r.ops[i].route == op.route {
			r.logger().Warn("duplicate operation registration, replacing",
				"method", op.method,
				"route", op.route,
			)
			r.ops[i] = op
			return
		}
	}
	r.ops = append(r.ops, op)
}
