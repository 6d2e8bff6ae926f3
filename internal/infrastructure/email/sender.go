package email

import "context"

// Sender dispatches transactional emails. Implementations must be safe for
// concurrent use; callers treat dispatch as fire-and-forget.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, verificationLink string) error
	SendWelcomeEmail(ctx context.Context, to, anonimaxID string) error
	SendPasswordResetEmail(ctx context.Context, to, resetLink string) error
}
