// Package seed provides the idempotent bootstrap step run once at process
// startup, before the server begins handling requests. Every record is
// guarded by an existence check, so re-running it is safe.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"wellnest/backend/internal/config"
	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// bootstrapTrainer describes one of the starter trainer profiles created
// on an empty directory.
type bootstrapTrainer struct {
	name            string
	email           string
	password        string
	specialization  string
	experienceYears int
	bio             string
	imageURL        string
	age             int
}

var bootstrapTrainers = []bootstrapTrainer{
	{
		name:            "Jack",
		email:           "jacktrainer@wellnest.com",
		password:        "Jack@wellnest",
		specialization:  "Muscle Gain",
		experienceYears: 12,
		bio:             "Elite bodybuilding coach with over a decade of experience.",
		imageURL:        "https://randomuser.me/api/portraits/men/31.jpg",
		age:             34,
	},
	{
		name:            "Hardin",
		email:           "hardintrainer@wellnest.com",
		password:        "Hardin@wellnest",
		specialization:  "Yoga & Mindfulness",
		experienceYears: 8,
		bio:             "Passionate yoga instructor specializing in Vinyasa and stress management.",
		imageURL:        "https://randomuser.me/api/portraits/men/44.jpg",
		age:             30,
	},
}

// Run creates the admin account and the bootstrap trainer profiles if
// they do not exist yet.
func Run(ctx context.Context, cfg config.SeedConfig, userRepo repository.UserRepository, trainerRepo repository.TrainerRepository) error {
	if !cfg.Enabled {
		return nil
	}

	if err := seedAdmin(ctx, cfg, userRepo); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	for _, t := range bootstrapTrainers {
		if err := seedTrainer(ctx, t, userRepo, trainerRepo); err != nil {
			return fmt.Errorf("seed trainer %s: %w", t.name, err)
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, cfg config.SeedConfig, userRepo repository.UserRepository) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("Seed: admin credentials not configured, skipping admin account")
		return nil
	}

	_, err := userRepo.GetByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil // already present
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = userRepo.Create(ctx, &domain.User{
		FullName:     "WellNest Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return err
	}
	log.Printf("Seed: created admin account %s", cfg.AdminEmail)
	return nil
}

// seedTrainer ensures both the user account and the trainer profile exist
// and are linked to each other.
func seedTrainer(ctx context.Context, t bootstrapTrainer, userRepo repository.UserRepository, trainerRepo repository.TrainerRepository) error {
	user, err := userRepo.GetByEmail(ctx, t.email)
	if errors.Is(err, repository.ErrNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(t.password), bcrypt.DefaultCost)
		if hashErr != nil {
			return hashErr
		}
		newUser := &domain.User{
			FullName:     t.name,
			Email:        t.email,
			PasswordHash: string(hash),
			Role:         domain.RoleTrainer,
		}
		if _, err := userRepo.Create(ctx, newUser); err != nil {
			return err
		}
		user = newUser
		log.Printf("Seed: created trainer account %s", t.email)
	} else if err != nil {
		return err
	}

	exists, err := trainerRepo.ExistsByContactEmail(ctx, t.email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	trainer := &domain.Trainer{
		Name:            t.name,
		Specialization:  t.specialization,
		ExperienceYears: t.experienceYears,
		Bio:             t.bio,
		ContactEmail:    t.email,
		ImageURL:        t.imageURL,
		Age:             t.age,
		UserID:          &user.ID,
	}
	if _, err := trainerRepo.Create(ctx, trainer); err != nil {
		return err
	}
	log.Printf("Seed: created trainer profile %s (%s)", t.name, t.specialization)
	return nil
}
