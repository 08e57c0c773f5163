package postgres

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
)

// CatalogSeeder inserts the starter catalog on first boot. It only runs when
// the games table is empty, so redeploys never duplicate or reset listings.
type CatalogSeeder struct {
	games  repository.GameRepository
	logger *slog.Logger
}

// NewCatalogSeeder is the constructor for CatalogSeeder.
func NewCatalogSeeder(games repository.GameRepository, logger *slog.Logger) *CatalogSeeder {
	return &CatalogSeeder{games: games, logger: logger}
}

// Seed populates the catalog if it is empty.
func (s *CatalogSeeder) Seed(ctx context.Context) error {
	count, err := s.games.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check catalog size")
	}
	if count > 0 {
		return nil
	}

	for _, game := range starterCatalog() {
		if err := s.games.Create(ctx, game); err != nil {
			return errors.Wrapf(err, "failed to seed game %q", game.Title)
		}
	}

	s.logger.Info("seeded starter catalog", slog.Int("games", len(starterCatalog())))

	return nil
}

// starterCatalog returns fresh entities each call so Create side effects on
// one boot attempt cannot leak into a retry.
func starterCatalog() []*entity.Game {
	return []*entity.Game{
		{
			Title:            "Mystic Odyssey",
			Description:      "An epic adventure in a mystic world full of riddles and magic. Explore a vast open world and uncover an ancient secret.",
			ShortDescription: "Open-world RPG with a layered story.",
			Genre:            "RPG",
			Price:            499,
			AgeRating:        12,
			ImageURL:         "https://images.unsplash.com/photo-1518709268805-4e9042af9f23?auto=format&fit=crop&q=80&w=2069",
		},
		{
			Title:            "Space Explorers",
			Description:      "Explore the endless universe, trade with alien races and fight off space pirates.",
			ShortDescription: "Space simulation with strategy elements.",
			Genre:            "Simulation",
			Price:            499,
			AgeRating:        7,
			ImageURL:         "https://images.unsplash.com/photo-1451187580459-43490279c0fa?auto=format&fit=crop&q=80&w=2072",
		},
		{
			Title:            "Cyber Warriors",
			Description:      "Action cyberpunk RPG with a deep combat system and a branching storyline.",
			ShortDescription: "Cyberpunk RPG focused on action.",
			Genre:            "RPG/Action",
			Price:            499,
			AgeRating:        16,
			ImageURL:         "https://images.unsplash.com/photo-1542751371-adc38448a05e?auto=format&fit=crop&q=80&w=2070",
		},
		{
			Title:            "Zombie Apocalypse",
			Description:      "Survive a post-apocalyptic world overrun by the undead. Build bases, gather supplies and fight to stay alive.",
			ShortDescription: "Intense zombie survival game.",
			Genre:            "Survival",
			Price:            299,
			AgeRating:        16,
			ImageURL:         "https://images.unsplash.com/photo-1509248961158-e54f6934749c?auto=format&fit=crop&q=80&w=2070",
		},
		{
			Title:            "Tactical Force",
			Description:      "Realistic tactical shooter built around team coordination and strategic planning.",
			ShortDescription: "Tactical FPS for demanding players.",
			Genre:            "FPS",
			Price:            399,
			AgeRating:        18,
			ImageURL:         "https://images.unsplash.com/photo-1552820728-8b83bb6b773f?auto=format&fit=crop&q=80&w=2070",
		},
		{
			Title:            "Farm Life",
			Description:      "A relaxing game about building your own farm, growing crops and raising animals.",
			ShortDescription: "Peaceful farming simulation.",
			Genre:            "Simulation",
			Price:            199,
			AgeRating:        3,
			ImageURL:         "https://images.unsplash.com/photo-1472214103451-9374bd1c798e?auto=format&fit=crop&q=80&w=2070",
		},
		{
			Title:            "Urban Warfare",
			Description:      "Tactical strategy centered on modern city combat. Command units through complex urban environments.",
			ShortDescription: "Modern combat strategy.",
			Genre:            "Strategy",
			Price:            599,
			AgeRating:        16,
			ImageURL:         "https://images.unsplash.com/photo-1449157291145-7efd050a4d0e?auto=format&fit=crop&q=80&w=2070",
		},
		{
			Title:            "Medieval Kingdom",
			Description:      "Build and manage your medieval kingdom, wage wars and develop diplomacy.",
			ShortDescription: "Medieval strategy.",
			Genre:            "Strategy",
			Price:            349,
			AgeRating:        12,
			ImageURL:         "https://images.unsplash.com/photo-1533154683836-84ea7a0bc310?auto=format&fit=crop&q=80&w=2070",
		},
	}
}
