// Seed de datos de demostración: un usuario admin, dos bodegas y unos
// productos de ejemplo. Idempotente: si el admin ya existe no hace nada.
//
// Uso:
//
//	DB_HOST=localhost DB_NAME=bodegas go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bodegas-api/pkg/config"
	"github.com/jhoicas/Bodegas-api/pkg/logger"
)

const (
	adminEmail    = "admin@bodegas.local"
	adminPassword = "admin12345"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: cfg.App.Name + "-seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	existing, err := userRepo.FindByEmail(adminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar usuario admin")
	}
	if existing != nil {
		log.Info().Str("email", adminEmail).Msg("seed ya aplicado, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password admin")
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        adminEmail,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("crear usuario admin")
	}
	log.Info().Str("email", adminEmail).Msg("usuario admin creado")

	warehouses := []*entity.Warehouse{
		{ID: uuid.New().String(), Name: "Bodega Central", Description: "Bodega principal de distribución", CreatedAt: now},
		{ID: uuid.New().String(), Name: "Bodega Norte", Description: "Sucursal zona norte", CreatedAt: now},
	}
	for _, w := range warehouses {
		if err := warehouseRepo.Create(w); err != nil {
			log.Fatal().Err(err).Str("name", w.Name).Msg("crear bodega")
		}
		log.Info().Str("name", w.Name).Msg("bodega creada")
	}

	products := []*entity.Product{
		{ID: uuid.New().String(), Name: "Tornillo 3/8", Description: "Caja x100", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Name: "Pintura Blanca 1gal", Description: "Latex interior", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Name: "Cemento 50kg", Description: "Uso general", CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range products {
		if err := productRepo.Create(p); err != nil {
			log.Fatal().Err(err).Str("name", p.Name).Msg("crear producto")
		}
		log.Info().Str("name", p.Name).Msg("producto creado")
	}

	log.Info().Msg("seed completado")
}
