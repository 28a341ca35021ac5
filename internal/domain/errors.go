package domain

type errString string

func (e errString) Error() string { return string(e) }

const (
	ErrNotFound          = errString("not found")
	ErrInvalidRequest    = errString("invalid request")
	ErrMissingCredential = errString("backend credential is not configured")
	ErrRateLimited       = errString("rate limit exceeded, please try again later")
	ErrQuotaExhausted    = errString("AI credits exhausted, please add credits to continue")
)
