package testutil

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/data/aggregates"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
)

// InjectedTxRunner injects begin, body and commit failures into aggregate writes.
// With DB set the body runs inside a real transaction that is rolled back whenever a
// failure is injected; without it the body sees no tx at all.
type InjectedTxRunner struct {
	mu sync.Mutex

	DB *gorm.DB

	FailBegin  error
	FailCommit error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin, failCommit := r.FailBegin, r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	if fn == nil {
		r.count(&r.CommitCalls)
		return nil
	}

	var err error
	if r.DB != nil {
		err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := fn(dbctx.Context{Ctx: ctx, Tx: tx}); err != nil {
				return err
			}
			return failCommit
		})
	} else {
		err = fn(dbctx.Context{Ctx: ctx})
		if err == nil {
			err = failCommit
		}
	}
	if err != nil {
		r.count(&r.RollbackCalls)
		return err
	}
	r.count(&r.CommitCalls)
	return nil
}

func (r *InjectedTxRunner) count(n *int) {
	r.mu.Lock()
	*n++
	r.mu.Unlock()
}
