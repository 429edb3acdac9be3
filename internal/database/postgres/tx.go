// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type txCtxKey struct{}

// WithTx stores a running transaction in the context so repository calls
// made inside a transactional closure execute against it.
func WithTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// TxFrom extracts the transaction carried by the context, if any.
func TxFrom(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(*sqlx.Tx)
	return tx, ok
}

// Executor returns the transaction from the context when present,
// otherwise the plain connection pool.
func (c *Client) Executor(ctx context.Context) sqlx.ExtContext {
	if tx, ok := TxFrom(ctx); ok {
		return tx
	}
	return c.db
}
