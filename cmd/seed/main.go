package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"homeground/internal/config"
	"homeground/internal/domain/models"
	"homeground/internal/repository/postgres"
	"homeground/internal/seed"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Load embedded fixtures
	fixtures, err := seed.Load()
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	principalRepo := postgres.NewPrincipalRepository(repoConfig)
	propertyRepo := postgres.NewPropertyRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	updateRepo := postgres.NewProjectUpdateRepository(repoConfig)
	offerRepo := postgres.NewProjectOfferRepository(repoConfig)
	eventRepo := postgres.NewProjectEventRepository(repoConfig)

	now := time.Now()

	// Seed principals. Demo IDs are generated here; in production the ID
	// is the Supabase auth subject.
	log.Println("👤 Seeding accounts...")
	principalIDs := make(map[string]string, len(fixtures.Principals))
	for _, pf := range fixtures.Principals {
		role, err := models.ParseRole(pf.Role)
		if err != nil {
			log.Fatalf("Fixture account %s: %v", pf.Email, err)
		}
		p := &models.Principal{
			ID:         uuid.NewString(),
			Email:      pf.Email,
			Name:       pf.Name,
			Phone:      pf.Phone,
			Role:       role,
			IsActive:   true,
			IsVerified: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := principalRepo.Create(ctx, p); err != nil {
			log.Printf("❌ Failed to create account %s: %v", pf.Email, err)
			continue
		}
		principalIDs[pf.Email] = p.ID
		log.Printf("✅ Created account: %s (%s)", pf.Email, role)
	}

	// Seed properties
	log.Println("🏠 Seeding properties...")
	for _, pf := range fixtures.Properties {
		sellerID, ok := principalIDs[pf.Seller]
		if !ok {
			log.Fatalf("Fixture property %q references unknown seller %s", pf.Title, pf.Seller)
		}
		p := &models.Property{
			SellerID:    sellerID,
			Title:       pf.Title,
			Description: pf.Description,
			Type:        models.PropertyType(pf.Type),
			ListingType: models.ListingType(pf.ListingType),
			Status:      models.PropertyAvailable,
			Price:       pf.Price,
			Address:     pf.Address,
			City:        pf.City,
			Province:    pf.Province,
			Latitude:    pf.Latitude,
			Longitude:   pf.Longitude,
			AreaSqm:     pf.AreaSqm,
			Bedrooms:    pf.Bedrooms,
			Bathrooms:   pf.Bathrooms,
			Amenities:   pf.Amenities,
			ImageURLs:   []string{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := propertyRepo.Create(ctx, p); err != nil {
			log.Printf("❌ Failed to create property %q: %v", pf.Title, err)
			continue
		}
		log.Printf("✅ Created property: %s (ID: %s)", pf.Title, p.ID)
	}

	// Seed projects and their scheduled content
	log.Println("🏗️  Seeding projects...")
	for _, pf := range fixtures.Projects {
		ownerID, ok := principalIDs[pf.Owner]
		if !ok {
			log.Fatalf("Fixture project %q references unknown owner %s", pf.Slug, pf.Owner)
		}
		project := &models.Project{
			CreatedBy:   ownerID,
			Name:        pf.Name,
			Slug:        pf.Slug,
			Description: pf.Description,
			Location:    pf.Location,
			Developer:   pf.Developer,
			Status:      models.ProjectStatus(pf.Status),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := projectRepo.Create(ctx, project); err != nil {
			log.Printf("❌ Failed to create project %q: %v", pf.Slug, err)
			continue
		}
		log.Printf("✅ Created project: %s (ID: %s)", pf.Slug, project.ID)

		for _, uf := range pf.Updates {
			u := &models.ProjectUpdate{
				ProjectID: project.ID,
				CreatedBy: ownerID,
				Title:     uf.Title,
				Body:      uf.Body,
				Schedule:  fixtureSchedule(uf.Schedule),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := updateRepo.Create(ctx, u); err != nil {
				log.Printf("❌ Failed to create update %q: %v", uf.Title, err)
				continue
			}
			log.Printf("  ✓ Update: %s", uf.Title)
		}

		for _, of := range pf.Offers {
			o := &models.ProjectOffer{
				ProjectID:   project.ID,
				CreatedBy:   ownerID,
				Title:       of.Title,
				Description: of.Description,
				Terms:       of.Terms,
				Schedule:    fixtureSchedule(of.Schedule),
				Window: models.Window{
					StartDatetime: of.Window.Start,
					EndDatetime:   of.Window.End,
				},
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := offerRepo.Create(ctx, o); err != nil {
				log.Printf("❌ Failed to create offer %q: %v", of.Title, err)
				continue
			}
			log.Printf("  ✓ Offer: %s", of.Title)
		}

		for _, ef := range pf.Events {
			e := &models.ProjectEvent{
				ProjectID:   project.ID,
				CreatedBy:   ownerID,
				Title:       ef.Title,
				Description: ef.Description,
				Venue:       ef.Venue,
				Schedule:    fixtureSchedule(ef.Schedule),
				Window: models.Window{
					StartDatetime: ef.Window.Start,
					EndDatetime:   ef.Window.End,
				},
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := eventRepo.Create(ctx, e); err != nil {
				log.Printf("❌ Failed to create event %q: %v", ef.Title, err)
				continue
			}
			log.Printf("  ✓ Event: %s", ef.Title)
		}
	}

	log.Println("🎉 Seeding complete!")
}

func fixtureSchedule(s seed.ScheduleFixture) models.Schedule {
	vis, err := models.ParseScheduleVisibility(s.Visibility)
	if err != nil {
		log.Fatalf("Fixture schedule: %v", err)
	}
	return models.Schedule{Visibility: vis, ScheduledAt: s.ScheduledAt}
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Principals + ` (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Properties + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			seller_id UUID NOT NULL REFERENCES ` + tables.Principals + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			listing_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'available',
			price NUMERIC NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			province TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			area_sqm DOUBLE PRECISION NOT NULL DEFAULT 0,
			bedrooms INTEGER NOT NULL DEFAULT 0,
			bathrooms INTEGER NOT NULL DEFAULT 0,
			amenities TEXT[] NOT NULL DEFAULT '{}',
			image_urls TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			created_by UUID NOT NULL REFERENCES ` + tables.Principals + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			developer TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'draft',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ProjectUpdates + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			created_by UUID NOT NULL REFERENCES ` + tables.Principals + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			schedule_visibility TEXT NOT NULL DEFAULT 'immediate',
			scheduled_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ProjectOffers + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			created_by UUID NOT NULL REFERENCES ` + tables.Principals + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			terms TEXT NOT NULL DEFAULT '',
			schedule_visibility TEXT NOT NULL DEFAULT 'immediate',
			scheduled_at TIMESTAMPTZ,
			start_datetime TIMESTAMPTZ NOT NULL,
			end_datetime TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ProjectEvents + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			created_by UUID NOT NULL REFERENCES ` + tables.Principals + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			venue TEXT NOT NULL DEFAULT '',
			schedule_visibility TEXT NOT NULL DEFAULT 'immediate',
			scheduled_at TIMESTAMPTZ,
			start_datetime TIMESTAMPTZ NOT NULL,
			end_datetime TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Members + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			email TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			created_by UUID NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(project_id, email)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Threads + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			property_id UUID NOT NULL REFERENCES ` + tables.Properties + `(id) ON DELETE CASCADE,
			buyer_id UUID NOT NULL REFERENCES ` + tables.Principals + `(id) ON DELETE CASCADE,
			seller_id UUID NOT NULL REFERENCES ` + tables.Principals + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(property_id, buyer_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Messages + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			thread_id UUID NOT NULL REFERENCES ` + tables.Threads + `(id) ON DELETE CASCADE,
			sender_id UUID NOT NULL REFERENCES ` + tables.Principals + `(id) ON DELETE CASCADE,
			body TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Payments + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			payer_id UUID NOT NULL REFERENCES ` + tables.Principals + `(id) ON DELETE CASCADE,
			property_id UUID NOT NULL REFERENCES ` + tables.Properties + `(id) ON DELETE CASCADE,
			amount NUMERIC NOT NULL,
			reference TEXT NOT NULL,
			proof_url TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'submitted',
			reviewed_by UUID,
			review_note TEXT NOT NULL DEFAULT '',
			submitted_at TIMESTAMPTZ DEFAULT NOW(),
			reviewed_at TIMESTAMPTZ
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `properties_seller ON ` + tables.Properties + `(seller_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `properties_city ON ` + tables.Properties + `(lower(city))`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `updates_project ON ` + tables.ProjectUpdates + `(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `offers_project ON ` + tables.ProjectOffers + `(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `events_project ON ` + tables.ProjectEvents + `(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `threads_participants ON ` + tables.Threads + `(buyer_id, seller_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `messages_thread ON ` + tables.Messages + `(thread_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `payments_payer ON ` + tables.Payments + `(payer_id)`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Payments,
		tables.Messages,
		tables.Threads,
		tables.Members,
		tables.ProjectEvents,
		tables.ProjectOffers,
		tables.ProjectUpdates,
		tables.Projects,
		tables.Properties,
		tables.Principals,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}
