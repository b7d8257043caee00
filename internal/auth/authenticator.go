package auth

import "context"

// Authenticator verifies a login credential.
// This abstraction allows swapping between a shared passphrase and other
// methods without changing the service layer code.
type Authenticator interface {
	// Authenticate returns ErrInvalidCredentials when the credential is rejected.
	Authenticate(ctx context.Context, credential string) error
}
