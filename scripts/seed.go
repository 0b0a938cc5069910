// Seeds a fresh database with the elements, roles and a bootstrap admin the
// catalog needs before first use. Safe to re-run: creates resolve to the
// existing rows on name/symbol collisions.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alloyforge/metallurgy-backend/internal/db"
	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
	"github.com/alloyforge/metallurgy-backend/internal/services"
	"github.com/alloyforge/metallurgy-backend/internal/utils"
)

var baseElements = []struct {
	name         string
	atomicNumber int
	symbol       string
}{
	{"Carbon", 6, "C"},
	{"Silicon", 14, "Si"},
	{"Vanadium", 23, "V"},
	{"Chromium", 24, "Cr"},
	{"Manganese", 25, "Mn"},
	{"Iron", 26, "Fe"},
	{"Nickel", 28, "Ni"},
	{"Copper", 29, "Cu"},
	{"Molybdenum", 42, "Mo"},
}

func main() {
	log, err := logger.New("development")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("init postgres", "error", err)
	}
	defer pg.Close()
	if err := pg.AutoMigrateAll(); err != nil {
		log.Fatal("automigrate", "error", err)
	}
	theDB := pg.DB()

	elementRepo := repos.NewChemicalElementRepo(theDB, log)
	alloyElemRepo := repos.NewAlloyElementRepo(theDB, log)
	predicElemRepo := repos.NewPredictionElementRepo(theDB, log)
	roleRepo := repos.NewRoleRepo(theDB, log)
	personRepo := repos.NewPersonRepo(theDB, log)
	predictionRepo := repos.NewPredictionRepo(theDB, log)

	elements := services.NewChemicalElementService(theDB, log, elementRepo, alloyElemRepo, predicElemRepo)
	roles := services.NewRoleService(theDB, log, roleRepo, personRepo)
	persons := services.NewPersonService(theDB, log, personRepo, roleRepo, predictionRepo)

	ctx := context.Background()

	for _, e := range baseElements {
		if _, err := elements.Create(ctx, e.name, e.atomicNumber, e.symbol); err != nil {
			log.Fatal("seed element", "symbol", e.symbol, "error", err)
		}
	}
	log.Info("Elements seeded", "count", len(baseElements))

	admin, err := roles.Create(ctx, "admin", "full access")
	if err != nil {
		log.Fatal("seed admin role", "error", err)
	}
	if _, err := roles.Create(ctx, "researcher", "catalog read/write"); err != nil {
		log.Fatal("seed researcher role", "error", err)
	}

	adminLogin := utils.GetEnv("SEED_ADMIN_LOGIN", "admin", log)
	adminPassword := utils.GetEnv("SEED_ADMIN_PASSWORD", "admin", log)
	if _, err := persons.GetByLogin(ctx, adminLogin); err != nil {
		if _, err := persons.Create(ctx, "Catalog", "Admin", admin.ID, "", adminLogin, adminPassword); err != nil {
			log.Fatal("seed admin person", "error", err)
		}
		log.Info("Admin account created", "login", adminLogin)
	}
	log.Info("Seed complete")
}
