package handlers

import (
	"context"

	"github.com/iudanet/consolerealm/internal/server/realm"
)

// contextKey тип для ключей контекста
type contextKey string

const (
	// PrincipalKey ключ для хранения аутентифицированного principal в контексте
	PrincipalKey contextKey = "principal"
	// RequestInfoKey ключ для сведений о запросе, заполняемых по ходу цепочки middleware
	RequestInfoKey contextKey = "request_info"
)

// RequestInfo is filled by inner middleware and read by the logging middleware
// after the handler returns.
type RequestInfo struct {
	UserID     string
	AuthMethod realm.AuthMethod
}

// WithPrincipal кладет principal в контекст запроса
func WithPrincipal(ctx context.Context, p *realm.Principal) context.Context {
	if info, ok := GetRequestInfo(ctx); ok {
		info.UserID = p.UserID
		info.AuthMethod = p.Method
	}
	return context.WithValue(ctx, PrincipalKey, p)
}

// GetPrincipal извлекает principal из контекста запроса
func GetPrincipal(ctx context.Context) (*realm.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(*realm.Principal)
	return p, ok && p != nil
}

// WithRequestInfo кладет пустой RequestInfo в контекст
func WithRequestInfo(ctx context.Context) (context.Context, *RequestInfo) {
	info := &RequestInfo{}
	return context.WithValue(ctx, RequestInfoKey, info), info
}

// GetRequestInfo извлекает RequestInfo из контекста
func GetRequestInfo(ctx context.Context) (*RequestInfo, bool) {
	info, ok := ctx.Value(RequestInfoKey).(*RequestInfo)
	return info, ok && info != nil
}
