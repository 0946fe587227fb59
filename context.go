package filegate

import "context"

// rejectionKey is the context key for the reason a request fell through.
type rejectionKey struct{}

// WithRejection returns a new context carrying the reason a request was
// passed on to the next handler.
func WithRejection(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, rejectionKey{}, err)
}

// RejectionFromContext returns the fallthrough reason stored by WithRejection,
// or nil if there is none.
func RejectionFromContext(ctx context.Context) error {
	err, _ := ctx.Value(rejectionKey{}).(error)
	return err
}
