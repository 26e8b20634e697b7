package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
)

// NewDatabase abre a conexão GORM (driver pgx) e roda AutoMigrate para todas
// as tabelas do domínio. Esquema novo, sem legado, então AutoMigrate basta.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// RunMigrations cria/atualiza o esquema. gen_random_uuid() exige pgcrypto
// (nativo no Postgres 13+).
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Categoria{},
		&model.StockItem{},
		&model.Prato{},
		&model.PratoIngrediente{},
		&model.MovimentoEstoque{},
		&model.Comanda{},
		&model.ComandaItem{},
		&model.ComandaHistorico{},
		&model.Venda{},
		&model.VendaItem{},
		&model.MetaCMV{},
		&model.Usuario{},
	)
}
