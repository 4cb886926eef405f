package repository

import (
	"context"
	"database/sql"
	"log"
	"testing"
	"time"

	"pgclosets-api/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var testDB *sql.DB

func setupTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	connStr := "postgres://" + dbUser + ":" + dbPwd + "@" + dbHost + ":" + dbPort.Port() + "/" + dbName + "?sslmode=disable"
	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL REFERENCES categories(name),
			price BIGINT,
			price_min BIGINT,
			price_max BIGINT,
			in_stock BOOLEAN NOT NULL DEFAULT true,
			slug VARCHAR(255) NOT NULL DEFAULT '',
			handle VARCHAR(255) NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS quote_requests (
			id UUID PRIMARY KEY,
			customer_name VARCHAR(255) NOT NULL,
			customer_email VARCHAR(255) NOT NULL,
			customer_phone VARCHAR(50) NOT NULL DEFAULT '',
			door_type VARCHAR(20) NOT NULL,
			hardware_cost BIGINT NOT NULL DEFAULT 0,
			installation_requested BOOLEAN NOT NULL DEFAULT false,
			subtotal BIGINT NOT NULL,
			tax BIGINT NOT NULL,
			total BIGINT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			preferred_date DATE,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	_, err = testDB.Exec(`
		INSERT INTO categories (id, name) VALUES
			(gen_random_uuid(), 'barn-doors'),
			(gen_random_uuid(), 'bypass-doors'),
			(gen_random_uuid(), 'bifold-doors'),
			(gen_random_uuid(), 'pivot-doors'),
			(gen_random_uuid(), 'hardware')
		ON CONFLICT (name) DO NOTHING
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
}

func TestProperty_ProductRoundTripPreservesPrices(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("nullable price fields survive a store and load", prop.ForAll(
		func(hasPrice bool, price int64, hasRange bool, priceMin int64, priceMax int64) bool {
			product := &domain.Product{
				ID:        uuid.New(),
				Name:      "Set Screw Kit",
				Category:  domain.CategoryHardware,
				InStock:   true,
				CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
				UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
			}
			if hasPrice {
				product.Price = &price
			}
			if hasRange {
				product.PriceMin = &priceMin
				product.PriceMax = &priceMax
			}

			if err := repo.Create(ctx, product); err != nil {
				t.Logf("Failed to create product: %v", err)
				return false
			}
			defer repo.Delete(ctx, product.ID)

			got, err := repo.FindByID(ctx, product.ID)
			if err != nil {
				t.Logf("Failed to find product: %v", err)
				return false
			}

			return equalInt64p(got.Price, product.Price) &&
				equalInt64p(got.PriceMin, product.PriceMin) &&
				equalInt64p(got.PriceMax, product.PriceMax)
		},
		gen.Bool(),
		gen.Int64Range(0, 100000),
		gen.Bool(),
		gen.Int64Range(0, 100000),
		gen.Int64Range(0, 100000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func equalInt64p(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func testProduct(name, slug string) *domain.Product {
	now := time.Now().UTC().Truncate(time.Microsecond)
	price := int64(799)
	return &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Category:  domain.CategoryBarnDoors,
		Price:     &price,
		InStock:   true,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestProductRepository_FindBySlug(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	product := testProduct("Rustic Oak Barn Door", "rustic-oak-barn-door-test")
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	defer repo.Delete(ctx, product.ID)

	got, err := repo.FindBySlug(ctx, "rustic-oak-barn-door-test")
	if err != nil {
		t.Fatalf("FindBySlug failed: %v", err)
	}
	if got.ID != product.ID || got.Name != product.Name {
		t.Errorf("got %+v, want %+v", got, product)
	}

	if _, err := repo.FindBySlug(ctx, "no-such-slug"); err != ErrProductNotFound {
		t.Errorf("missing slug error = %v, want ErrProductNotFound", err)
	}
}

func TestProductRepository_ListAllNewestFirst(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	older := testProduct("Older Door", "")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	newer := testProduct("Newer Door", "")

	for _, p := range []*domain.Product{older, newer} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Failed to create product: %v", err)
		}
		defer repo.Delete(ctx, p.ID)
	}

	products, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}

	var newerIdx, olderIdx int = -1, -1
	for i, p := range products {
		switch p.ID {
		case newer.ID:
			newerIdx = i
		case older.ID:
			olderIdx = i
		}
	}
	if newerIdx == -1 || olderIdx == -1 {
		t.Fatal("created products missing from ListAll")
	}
	if newerIdx > olderIdx {
		t.Errorf("newer product at index %d, older at %d; want newest first", newerIdx, olderIdx)
	}
}

func TestProductRepository_UpdateAndDelete(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	product := testProduct("Draft Door", "")
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}

	product.Name = "Published Door"
	product.InStock = false
	product.Price = nil
	min, max := int64(500), int64(900)
	product.PriceMin, product.PriceMax = &min, &max
	product.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	if err := repo.Update(ctx, product); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Name != "Published Door" || got.InStock || got.Price != nil || *got.PriceMin != 500 {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := repo.Delete(ctx, product.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, product.ID); err != ErrProductNotFound {
		t.Errorf("after delete error = %v, want ErrProductNotFound", err)
	}
	if err := repo.Delete(ctx, product.ID); err != ErrProductNotFound {
		t.Errorf("second delete error = %v, want ErrProductNotFound", err)
	}
}

func TestCategoryRepository_ListAndFind(t *testing.T) {
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	categories, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(categories) < 5 {
		t.Fatalf("got %d categories, want the seeded taxonomy", len(categories))
	}

	cat, err := repo.FindByName(ctx, domain.CategoryBarnDoors)
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if cat.Name != domain.CategoryBarnDoors {
		t.Errorf("name = %q", cat.Name)
	}

	if _, err := repo.FindByName(ctx, "garage-doors"); err != ErrCategoryNotFound {
		t.Errorf("missing category error = %v, want ErrCategoryNotFound", err)
	}
}
