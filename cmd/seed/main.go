// seed crea el usuario administrador inicial y datos maestros de demostración
// (una categoría, una bodega y un proveedor) si no existen todavía.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que cmd/api (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Fitahiana66/GestionStock/internal/domain/entity"
	"github.com/Fitahiana66/GestionStock/internal/infrastructure/postgres"
	"github.com/Fitahiana66/GestionStock/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	now := time.Now()

	adminEmail := envOr("SEED_ADMIN_EMAIL", "admin@gestionstock.local")
	adminPassword := envOr("SEED_ADMIN_PASSWORD", "admin123")

	userRepo := postgres.NewUserRepository(pool)
	existing, err := userRepo.GetByEmail(adminEmail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buscar admin: %v\n", err)
		os.Exit(1)
	}
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash de password: %v\n", err)
			os.Exit(1)
		}
		admin := &entity.User{
			ID:           uuid.New().String(),
			Name:         "Administrador",
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         entity.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			fmt.Fprintf(os.Stderr, "crear admin: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("admin creado: %s\n", adminEmail)
	} else {
		fmt.Printf("admin ya existe: %s\n", adminEmail)
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	categories, err := categoryRepo.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "listar categorías: %v\n", err)
		os.Exit(1)
	}
	if len(categories) == 0 {
		c := &entity.Category{
			ID:          uuid.New().String(),
			Name:        "General",
			Description: "Categoría por defecto",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := categoryRepo.Create(c); err != nil {
			fmt.Fprintf(os.Stderr, "crear categoría: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("categoría 'General' creada")
	}

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	warehouses, err := warehouseRepo.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "listar bodegas: %v\n", err)
		os.Exit(1)
	}
	if len(warehouses) == 0 {
		w := &entity.Warehouse{
			ID:        uuid.New().String(),
			Name:      "Bodega Principal",
			Location:  "Sede central",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := warehouseRepo.Create(w); err != nil {
			fmt.Fprintf(os.Stderr, "crear bodega: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("bodega 'Bodega Principal' creada")
	}

	supplierRepo := postgres.NewSupplierRepository(pool)
	suppliers, err := supplierRepo.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "listar proveedores: %v\n", err)
		os.Exit(1)
	}
	if len(suppliers) == 0 {
		s := &entity.Supplier{
			ID:           uuid.New().String(),
			Name:         "Proveedor Demo",
			ContactEmail: "ventas@proveedor.local",
			Phone:        "3000000000",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := supplierRepo.Create(s); err != nil {
			fmt.Fprintf(os.Stderr, "crear proveedor: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("proveedor 'Proveedor Demo' creado")
	}

	fmt.Println("seed completado")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
