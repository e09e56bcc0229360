package domain

// Identity carries the attributes asserted by the external identity
// provider. It is only used transiently while linking an account and is
// never persisted as-is.
type Identity struct {
	Email      string
	GivenName  string
	FamilyName string
	AvatarURL  string
}
