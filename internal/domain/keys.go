package domain

type CtxKey string

const (
	// KeyRequestID is set by the RequestID middleware on both the gin and request contexts
	KeyRequestID CtxKey = "RequestID"
)
