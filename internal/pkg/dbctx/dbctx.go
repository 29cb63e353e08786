// Package dbctx threads a request context and an optional transaction into
// the repos as one value.
package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context is what every repo method takes. A nil Tx means the repo runs the
// statement on its own pool handle; services set Tx when several repo calls
// must commit or roll back together.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}
