package httpapi

import "context"

type operatorKey struct{}

func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, operatorKey{}, operator)
}

func OperatorFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(operatorKey{}).(string)
	return v, ok && v != ""
}
