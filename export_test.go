package contract

// Test-only exports for internal functions.
var (
	CheckRoute     = checkRoute
	CheckTokenKeys = checkTokenKeys

	TypeToSchema   = typeToSchema
	StructToSchema = structToSchema
	JSONFieldName  = jsonFieldName

	EnvelopeOkSchema          = envelopeOkSchema
	EnvelopeErrSchema         = envelopeErrSchema
	EnvelopeServerErrorSchema = envelopeServerErrorSchema
	ToManifestPath            = toManifestPath
)
