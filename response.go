package contract

// Tag discriminates the decoded response envelope variants.
type Tag string

// Envelope variant tags as they appear on the wire in the "_t" field.
const (
	TagOk          Tag = "Ok"
	TagErr         Tag = "Err"
	TagServerError Tag = "ServerError"
)

// CodeUnauthorised is the reserved error code reported when bearer
// authentication or an admin requirement fails. Decoders built by
// AuthResponseDecoder and AdminResponseDecoder accept it in addition to
// the endpoint's own code vocabulary; plain ResponseDecoder decoders
// reject it unless the vocabulary itself carries it.
const CodeUnauthorised = "UNAUTHORISED"

// Response is a decoded response envelope. Tag selects the variant and
// which of the remaining fields is meaningful: Data for TagOk, Code for
// TagErr, ErrorID for TagServerError. Switch on Tag to consume one.
type Response[C ~string, T any] struct {
	Tag     Tag
	Data    T
	Code    C
	ErrorID string
}

// Ok builds a TagOk response carrying data.
func Ok[C ~string, T any](data T) Response[C, T] {
	return Response[C, T]{Tag: TagOk, Data: data}
}

// Err builds a TagErr response carrying an error code.
func Err[C ~string, T any](code C) Response[C, T] {
	return Response[C, T]{Tag: TagErr, Code: code}
}

// ServerErr builds a TagServerError response carrying an opaque error ID.
func ServerErr[C ~string, T any](errorID string) Response[C, T] {
	return Response[C, T]{Tag: TagServerError, ErrorID: errorID}
}
