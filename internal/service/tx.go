package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx executa fn dentro de uma transação. Com db nulo (testes unitários
// com repositórios stub) fn roda direto, recebendo tx nulo.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
