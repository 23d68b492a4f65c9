// Seeds a handful of demo bookings for local development.
package main

import (
	"context"

	"wastebooking/internal/config"
	"wastebooking/internal/database"
	"wastebooking/internal/domain"
	"wastebooking/internal/pkg/token"
	"wastebooking/internal/repository"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := repository.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	repo := repository.NewBookingRepository(db)
	today := domain.Today()

	seeds := []struct {
		municipality string
		description  string
		daysAhead    int
		slot         domain.Slot
		contactInfo  string
		address      string
		transitions  []domain.Status
	}{
		{
			municipality: "LISBOA",
			description:  "Old sofa and two mattresses",
			daysAhead:    2,
			slot:         domain.SlotMorning,
			contactInfo:  "912345678",
			address:      "Rua Augusta 15",
		},
		{
			municipality: "PORTO",
			description:  "Broken washing machine",
			daysAhead:    3,
			slot:         domain.SlotAfternoon,
			contactInfo:  "934567890",
			address:      "Avenida dos Aliados 22",
			transitions:  []domain.Status{domain.StatusAssigned},
		},
		{
			municipality: "LISBOA",
			description:  "Garden waste, roughly ten bags",
			daysAhead:    5,
			slot:         domain.SlotMorning,
			transitions:  []domain.Status{domain.StatusAssigned, domain.StatusInProgress},
		},
		{
			municipality: "COIMBRA",
			description:  "Wooden wardrobe, disassembled",
			daysAhead:    1,
			slot:         domain.SlotAfternoon,
			address:      "Praca da Republica 3",
			transitions:  []domain.Status{domain.StatusCancelled},
		},
	}

	ctx := context.Background()

	for _, s := range seeds {
		b := domain.NewBooking(s.municipality, s.description,
			today.AddDays(s.daysAhead), s.slot, s.contactInfo, s.address)
		b.Token = token.New()

		if err := repo.Create(ctx, b); err != nil {
			logrus.WithError(err).WithField("municipality", s.municipality).
				Error("failed to seed booking")
			continue
		}

		for _, next := range s.transitions {
			if err := repo.AppendStatus(ctx, b.ID, next, b.CreatedAt); err != nil {
				logrus.WithError(err).WithField("token", b.Token).
					Error("failed to seed transition")
				break
			}
		}

		logrus.WithFields(logrus.Fields{
			"token":        b.Token,
			"municipality": s.municipality,
		}).Info("seeded booking")
	}
}
