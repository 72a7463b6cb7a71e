package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// New returns a Context that runs outside of any transaction.
func New(ctx context.Context) Context {
	return Context{Ctx: ctx}
}

// RequestContext returns the request context, never nil.
func (c Context) RequestContext() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// DB resolves the handle a repo should query with: the open transaction when present,
// otherwise fallback. The result is bound to the request context.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	txx := c.Tx
	if txx == nil {
		txx = fallback
	}
	return txx.WithContext(c.RequestContext())
}
