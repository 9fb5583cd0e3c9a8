// Package contract is a generics-first typed contract layer for HTTP
// API endpoints. Endpoint descriptors are the source of truth — method,
// route, URL parameters, request body, and the response envelope are
// all expressed as Go types with decoders, and the package derives
// decoding, construction-time checks, and OpenAPI 3.1 manifests from
// them. The package performs no I/O: a transport sends the request and
// hands the status code and raw body back to the descriptor's decoders.
//
// Every response travels in a tagged envelope: {"_t":"Ok","data":…} on
// status 200, {"_t":"Err","code":…} on 400, and
// {"_t":"ServerError","errorID":…} on 500. Decoding yields a
// Response[C, T] whose Tag field selects the variant. Any other status
// is a broken contract and panics.
//
// Endpoints are declared with package-level generic constructors:
//
//	getUser = contract.BearerGet("/users/{id}",
//	    decode.Params[UserParams](),
//	    contract.AuthResponseDecoder(userCodes, decode.Struct[User]()))
//
//	resp, err := contract.DecodeResponse(getUser.Response(), status, body)
//	switch resp.Tag {
//	case contract.TagOk:
//	    // resp.Data
//	case contract.TagErr:
//	    // resp.Code — bearer endpoints may report contract.CodeUnauthorised
//	case contract.TagServerError:
//	    // resp.ErrorID
//	}
//
// Payload types use struct tags for binding and validation:
//
//	type UserParams struct {
//	    ID string `schema:"id" validate:"required"`
//	}
//
// Descriptors registered with a Registry produce an OpenAPI 3.1
// manifest describing the envelope responses:
//
//	reg := contract.NewRegistry(contract.WithTitle("My API"))
//	contract.Register(reg, getUser, contract.WithSummary("Get user"))
//	reg.WriteSpec(os.Stdout)
package contract
