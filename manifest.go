package contract

import (
	"io"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/contract/jsonutil"
)

// OpenAPISpec is the top-level OpenAPI 3.1 document.
type OpenAPISpec struct {
	OpenAPI    string              `json:"openapi"`
	Info       OpenAPIInfo         `json:"info"`
	Paths      map[string]PathItem `json:"paths"`
	Components *Components         `json:"components,omitempty"`
}

// OpenAPIInfo holds API metadata.
type OpenAPIInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Components holds reusable spec objects.
type Components struct {
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes,omitempty"`
}

// SecurityScheme describes an authentication scheme.
type SecurityScheme struct {
	Type         string `json:"type"`
	Scheme       string `json:"scheme,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty"`
}

// PathItem maps HTTP methods to operations.
type PathItem map[string]Operation

// Operation describes a single API operation on a path.
type Operation struct {
	Summary     string                `json:"summary,omitempty"`
	Description string                `json:"description,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
	OperationID string                `json:"operationId,omitempty"`
	Parameters  []Parameter           `json:"parameters,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty"`
	Responses   OperationResp         `json:"responses"`
	Security    []map[string][]string `json:"security,omitempty"`
	Deprecated  bool                  `json:"deprecated,omitempty"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Name        string     `json:"name"`
	In          string     `json:"in"`
	Description string     `json:"description,omitempty"`
	Required    bool       `json:"required,omitempty"`
	Schema      JSONSchema `json:"schema"`
}

// RequestBody describes the request body.
type RequestBody struct {
	Required bool                `json:"required"`
	Content  map[string]MediaObj `json:"content"`
}

// MediaObj is a media type object with an optional schema.
type MediaObj struct {
	Schema *JSONSchema `json:"schema,omitempty"`
}

// OperationResp maps HTTP status codes to response objects.
type OperationResp map[string]ResponseObj

// ResponseObj describes a single response.
type ResponseObj struct {
	Description string              `json:"description"`
	Content     map[string]MediaObj `json:"content,omitempty"`
}

// Spec generates the OpenAPI 3.1 document from registered operations.
// Every operation describes the three envelope responses; bearer
// operations carry the bearerAuth security requirement.
func (r *Registry) Spec() OpenAPISpec {
	r.mu.Lock()
	defer r.mu.Unlock()

	spec := OpenAPISpec{
		OpenAPI: "3.1.0",
		Info: OpenAPIInfo{
			Title:   r.title,
			Version: r.version,
		},
		Paths: make(map[string]PathItem),
	}

	bearer := false
	for i := range r.ops {
		op := &r.ops[i]
		path := toManifestPath(op.route)
		method := strings.ToLower(op.method)

		if op.auth == AuthBearer {
			bearer = true
		}

		if spec.Paths[path] == nil {
			spec.Paths[path] = make(PathItem)
		}
		spec.Paths[path][method] = buildOperation(op)
	}

	if bearer {
		spec.Components = &Components{
			SecuritySchemes: map[string]SecurityScheme{
				"bearerAuth": {Type: "http", Scheme: "bearer"},
			},
		}
	}

	return spec
}

// WriteSpec writes the manifest as indented JSON to w.
func (r *Registry) WriteSpec(w io.Writer) error {
	data, err := jsonutil.MarshalIndent(r.Spec(), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteSpecYAML writes the manifest as YAML to w.
func (r *Registry) WriteSpecYAML(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(r.Spec())
}

// buildOperation creates an Operation from a registered opInfo.
func buildOperation(op *opInfo) Operation {
	out := Operation{
		Summary:     op.summary,
		Description: op.desc,
		Tags:        op.tags,
		OperationID: op.operationID,
		Deprecated:  op.deprecated,
		Responses:   make(OperationResp),
	}

	for _, key := range op.paramKeys {
		out.Parameters = append(out.Parameters, Parameter{
			Name:     key,
			In:       "path",
			Required: true,
			Schema:   paramSchema(op.paramsType, key),
		})
	}

	if op.bodyType != reflect.TypeFor[Never]() {
		schema := typeToSchema(op.bodyType)
		out.RequestBody = &RequestBody{
			Required: true,
			Content: map[string]MediaObj{
				"application/json": {Schema: &schema},
			},
		}
	}

	if op.stream {
		out.Responses[statusToString(http.StatusOK)] = ResponseObj{
			Description: "Event stream; each event's data field is a response envelope",
			Content: map[string]MediaObj{
				"text/event-stream": {Schema: &JSONSchema{Type: "string"}},
			},
		}
	} else {
		okSchema := envelopeOkSchema(typeToSchema(op.dataType))
		out.Responses[statusToString(http.StatusOK)] = ResponseObj{
			Description: "Successful response",
			Content: map[string]MediaObj{
				"application/json": {Schema: &okSchema},
			},
		}
	}

	errSchema := envelopeErrSchema(errorCodeEnum(op))
	out.Responses[statusToString(http.StatusBadRequest)] = ResponseObj{
		Description: "Domain error",
		Content: map[string]MediaObj{
			"application/json": {Schema: &errSchema},
		},
	}

	srvSchema := envelopeServerErrorSchema()
	out.Responses[statusToString(http.StatusInternalServerError)] = ResponseObj{
		Description: "Server error",
		Content: map[string]MediaObj{
			"application/json": {Schema: &srvSchema},
		},
	}

	if op.auth == AuthBearer {
		out.Security = []map[string][]string{{"bearerAuth": {}}}
	}

	return out
}

// errorCodeEnum returns the 400 code vocabulary for an operation. Bearer
// operations include CodeUnauthorised.
func errorCodeEnum(op *opInfo) []string {
	codes := slices.Clone(op.errorCodes)
	if op.auth == AuthBearer && !slices.Contains(codes, CodeUnauthorised) {
		codes = append(codes, CodeUnauthorised)
	}
	return codes
}

// envelopeOkSchema describes {"_t":"Ok","data":...} with the given data
// schema.
func envelopeOkSchema(data JSONSchema) JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]JSONSchema{
			tagField:  {Type: "string", Enum: []string{string(TagOk)}},
			dataField: data,
		},
		Required: []string{tagField, dataField},
	}
}

// envelopeErrSchema describes {"_t":"Err","code":...}. An empty
// vocabulary leaves the code unconstrained.
func envelopeErrSchema(codes []string) JSONSchema {
	code := JSONSchema{Type: "string"}
	if len(codes) > 0 {
		code.Enum = codes
	}
	return JSONSchema{
		Type: "object",
		Properties: map[string]JSONSchema{
			tagField:  {Type: "string", Enum: []string{string(TagErr)}},
			codeField: code,
		},
		Required: []string{tagField, codeField},
	}
}

// envelopeServerErrorSchema describes {"_t":"ServerError","errorID":...}.
func envelopeServerErrorSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]JSONSchema{
			tagField:     {Type: "string", Enum: []string{string(TagServerError)}},
			errorIDField: {Type: "string"},
		},
		Required: []string{tagField, errorIDField},
	}
}

// paramSchema resolves a path parameter's schema from the params struct
// field bound to it.
func paramSchema(t reflect.Type, key string) JSONSchema {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return JSONSchema{Type: "string"}
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("schema"), ",")
		if name == "" {
			name = f.Name
		}
		if name != key {
			continue
		}
		s := typeToSchema(f.Type)
		if enum := oneofValues(f); len(enum) > 0 {
			s.Enum = enum
		}
		if doc := f.Tag.Get("doc"); doc != "" {
			s.Description = doc
		}
		applyValidateBounds(&s, f)
		return s
	}
	return JSONSchema{Type: "string"}
}

// toManifestPath converts a mux pattern like "/files/{path...}" to an
// OpenAPI path by stripping wildcard ellipses.
func toManifestPath(route string) string {
	return strings.ReplaceAll(route, "...", "")
}

// statusToString converts an HTTP status code to its string form.
func statusToString(code int) string {
	return strconv.Itoa(code)
}
