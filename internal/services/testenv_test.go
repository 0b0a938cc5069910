package services

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

// testEnv wires the full repo/service graph onto an in-memory database so
// every test exercises the same call paths the HTTP layer does.
type testEnv struct {
	db *gorm.DB

	elementRepo    repos.ChemicalElementRepo
	patentRepo     repos.PatentRepo
	alloyRepo      repos.AlloyRepo
	roleRepo       repos.RoleRepo
	personRepo     repos.PersonRepo
	modelRepo      repos.MLModelRepo
	predictionRepo repos.PredictionRepo
	alloyElemRepo  repos.AlloyElementRepo
	predicElemRepo repos.PredictionElementRepo

	elements     ChemicalElementService
	patents      PatentService
	alloys       AlloyService
	roles        RoleService
	persons      PersonService
	models       MLModelService
	predictions  PredictionService
	compositions CompositionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	// one shared in-memory database per test, named after it so tests
	// never see each other's rows
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.ChemicalElement{},
		&types.Patent{},
		&types.Alloy{},
		&types.Role{},
		&types.Person{},
		&types.MLModel{},
		&types.Prediction{},
		&types.AlloyElement{},
		&types.PredictionElement{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	env := &testEnv{db: db}
	env.elementRepo = repos.NewChemicalElementRepo(db, log)
	env.patentRepo = repos.NewPatentRepo(db, log)
	env.alloyRepo = repos.NewAlloyRepo(db, log)
	env.roleRepo = repos.NewRoleRepo(db, log)
	env.personRepo = repos.NewPersonRepo(db, log)
	env.modelRepo = repos.NewMLModelRepo(db, log)
	env.predictionRepo = repos.NewPredictionRepo(db, log)
	env.alloyElemRepo = repos.NewAlloyElementRepo(db, log)
	env.predicElemRepo = repos.NewPredictionElementRepo(db, log)

	env.elements = NewChemicalElementService(db, log, env.elementRepo, env.alloyElemRepo, env.predicElemRepo)
	env.patents = NewPatentService(db, log, env.patentRepo, env.alloyRepo)
	env.alloys = NewAlloyService(db, log, env.alloyRepo, env.patentRepo, env.alloyElemRepo)
	env.roles = NewRoleService(db, log, env.roleRepo, env.personRepo)
	env.persons = NewPersonService(db, log, env.personRepo, env.roleRepo, env.predictionRepo)
	env.models = NewMLModelService(db, log, env.modelRepo, env.predictionRepo)
	env.predictions = NewPredictionService(db, log, env.predictionRepo, env.modelRepo, env.personRepo, env.predicElemRepo)
	env.compositions = NewCompositionService(
		db, log,
		env.alloyRepo, env.predictionRepo, env.elementRepo,
		env.patentRepo, env.modelRepo, env.personRepo,
		env.alloyElemRepo, env.predicElemRepo,
	)
	return env
}

func (env *testEnv) seedPatent(t *testing.T) *types.Patent {
	t.Helper()
	patent, err := env.patents.Create(context.Background(), "Smith, J.", "low-carbon steel", "")
	if err != nil {
		t.Fatalf("seed patent: %v", err)
	}
	return patent
}

func (env *testEnv) seedElement(t *testing.T, name string, atomicNumber int, symbol string) *types.ChemicalElement {
	t.Helper()
	element, err := env.elements.Create(context.Background(), name, atomicNumber, symbol)
	if err != nil {
		t.Fatalf("seed element %s: %v", symbol, err)
	}
	return element
}

func (env *testEnv) seedAlloy(t *testing.T, patentID uint) *types.Alloy {
	t.Helper()
	alloy, err := env.alloys.Create(context.Background(), 480.5, "steel", "hot", patentID)
	if err != nil {
		t.Fatalf("seed alloy: %v", err)
	}
	return alloy
}

func (env *testEnv) seedRole(t *testing.T, name string) *types.Role {
	t.Helper()
	role, err := env.roles.Create(context.Background(), name, "")
	if err != nil {
		t.Fatalf("seed role %s: %v", name, err)
	}
	return role
}

func (env *testEnv) seedPerson(t *testing.T, roleID uint, organization, login string) *types.Person {
	t.Helper()
	person, err := env.persons.Create(context.Background(), "Ada", "Lovelace", roleID, organization, login, "secret")
	if err != nil {
		t.Fatalf("seed person %s: %v", login, err)
	}
	return person
}

func (env *testEnv) seedModel(t *testing.T, name string) *types.MLModel {
	t.Helper()
	model, err := env.models.Create(context.Background(), name, "")
	if err != nil {
		t.Fatalf("seed model %s: %v", name, err)
	}
	return model
}
