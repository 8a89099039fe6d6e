package dto

// Actor identifies who performed a mutating call, for audit attribution.
// The ledger does not authenticate it; the surrounding layer supplies an
// opaque user id plus the request's network metadata.
type Actor struct {
	UserID    string
	IPAddress string
	UserAgent string
}
