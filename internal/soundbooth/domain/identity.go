package domain

// ExternalProfile is what the identity provider tells us about a caller.
// Only ExternalID is guaranteed.
type ExternalProfile struct {
	ExternalID string
	Email      *string
	FirstName  *string
	LastName   *string
}
