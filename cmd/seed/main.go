package main

import (
	"context"
	"log"

	"gastonauta/internal/models"
	"gastonauta/internal/repository"
	"gastonauta/pkg/config"
	"gastonauta/pkg/logger"
	"gastonauta/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultCategories is the stock Chilean category set. Names and keywords
// mirror the production Gastonauta deployment; users extend them through
// the dashboard settings afterwards.
var defaultCategories = []struct {
	name        string
	description string
	keywords    []string
}{
	{
		name:        "Supermercado",
		description: "Compras en supermercados como Walmart, Tottus, Jumbo, Líder",
		keywords:    []string{"tottus", "jumbo", "lider", "walmart", "unimarc", "santa isabel", "supermercado"},
	},
	{
		name:        "Combustible",
		description: "Bencinas en estaciones como Shell, Copec, Petrobras",
		keywords:    []string{"shell", "copec", "petrobras", "aramco", "bencina", "combustible"},
	},
	{
		name:        "Restaurante",
		description: "Restaurants, cafés, delivery de comida",
		keywords:    []string{"restaurant", "restoran", "cafe", "mcdonald", "burger", "sushi", "pizza", "rappi", "pedidosya"},
	},
	{
		name:        "Transporte",
		description: "Uber, taxis, Metro, buses",
		keywords:    []string{"uber", "cabify", "didi", "metro", "taxi", "bus", "peaje", "autopista"},
	},
	{
		name:        "Servicios",
		description: "Cuentas de luz, agua, teléfono, internet, Netflix, Spotify",
		keywords:    []string{"enel", "aguas andinas", "movistar", "entel", "wom", "vtr", "netflix", "spotify", "servicio"},
	},
	{
		name:        "Entretenimiento",
		description: "Cine, juegos, streaming, eventos",
		keywords:    []string{"cine", "cinemark", "cineplanet", "steam", "playstation", "ticket", "puntoticket"},
	},
	{
		name:        "Otros",
		description: "Cualquier gasto que no encaje en las categorías anteriores",
		keywords:    []string{},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	catRepo := repository.NewCategoryRepository(db, appLogger)

	appLogger.Info("Seeding default categories")
	for _, c := range defaultCategories {
		desc := c.description
		cat := &models.Category{
			ID:          uuid.New(),
			Name:        c.name,
			Description: &desc,
			Keywords:    c.keywords,
			IsActive:    true,
		}
		if err := catRepo.Upsert(ctx, cat); err != nil {
			appLogger.Fatal("Failed to seed category",
				zap.String("name", c.name),
				zap.Error(err),
			)
		}
		appLogger.Info("Seeded category", zap.String("name", c.name))
	}

	appLogger.Info("Seeding complete", zap.Int("categories", len(defaultCategories)))
}
