package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubject holds the verified subject identifier (the caller's CPF).
	CtxKeySubject ctxKey = "subject"

	// CtxKeyRoles holds the role claims decoded from the verified token.
	CtxKeyRoles ctxKey = "roles"
)

// SubjectFromCtx returns the verified subject attached by AuthnMiddleware,
// or "" when the request is unauthenticated.
func SubjectFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}

// RolesFromCtx returns the role claims attached by AuthnMiddleware.
func RolesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyRoles).([]string); ok {
		return v
	}
	return nil
}
