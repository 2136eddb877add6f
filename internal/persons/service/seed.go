package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/persons/internal/persons/domain"
	"github.com/aussiebroadwan/persons/internal/persons/store"
	"github.com/aussiebroadwan/persons/pkg/idx"
	"github.com/aussiebroadwan/persons/pkg/slogx"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password123"

// DemoEmail is the account the server makes sure exists when demo seeding
// is enabled.
const DemoEmail = "demo@example.com"

type seedEntry struct {
	first, last, email string
	person             seedPerson
}

type seedPerson struct {
	first, last, cnp string
	birth            domain.Date
	birthPlace       string
	idNumber         string
	issue, expiry    domain.Date
	idType           domain.IDType
}

var seedData = []seedEntry{
	{"Ioan", "Popescu", "ioan@example.com", seedPerson{
		"Ioan", "Popescu", "1850515123456", domain.NewDate(1985, time.May, 15), "București",
		"AB123456", domain.NewDate(2020, time.January, 10), domain.NewDate(2030, time.January, 10), domain.IDTypeIdentityCard,
	}},
	{"Maria", "Ionescu", "maria@example.com", seedPerson{
		"Maria", "Ionescu", "2900720456789", domain.NewDate(1990, time.July, 20), "Cluj-Napoca",
		"AB234567", domain.NewDate(2019, time.June, 15), domain.NewDate(2029, time.June, 15), domain.IDTypePassport,
	}},
	{"Andrei", "Mihai", "andrei@example.com", seedPerson{
		"Andrei", "Mihai", "1880310123789", domain.NewDate(1988, time.March, 10), "Timișoara",
		"AB345678", domain.NewDate(2021, time.March, 20), domain.NewDate(2031, time.March, 20), domain.IDTypeDrivingLicence,
	}},
	{"Elena", "Georgescu", "elena@example.com", seedPerson{
		"Elena", "Georgescu", "2870805654321", domain.NewDate(1987, time.August, 5), "Iași",
		"AB456789", domain.NewDate(2018, time.September, 12), domain.NewDate(2028, time.September, 12), domain.IDTypeIdentityCard,
	}},
	{"Mihai", "Stanescu", "mihai@example.com", seedPerson{
		"Mihai", "Stanescu", "1920422987654", domain.NewDate(1992, time.April, 22), "Constanța",
		"AB567890", domain.NewDate(2022, time.February, 14), domain.NewDate(2032, time.February, 14), domain.IDTypePassport,
	}},
	{"Ana", "Cristescu", "ana@example.com", seedPerson{
		"Ana", "Cristescu", "2860612321098", domain.NewDate(1986, time.June, 12), "Brașov",
		"AB678901", domain.NewDate(2020, time.November, 8), domain.NewDate(2030, time.November, 8), domain.IDTypeIdentityCard,
	}},
	{"Demo", "User", DemoEmail, seedPerson{
		"Radu", "Popescu", "1950812456123", domain.NewDate(1995, time.August, 12), "Ploiești",
		"AB789012", domain.NewDate(2021, time.July, 1), domain.NewDate(2031, time.July, 1), domain.IDTypeDrivingLicence,
	}},
}

// SeedReport counts what a Seed run actually inserted.
type SeedReport struct {
	UsersCreated   int
	PersonsCreated int
}

// SeedService loads the demo dataset. Running it again only fills in what is
// missing.
type SeedService struct {
	Store store.Store
}

// Seed inserts every demo user and its person record.
func (s *SeedService) Seed(ctx context.Context) (SeedReport, error) {
	var report SeedReport
	for _, e := range seedData {
		created, err := s.seedOne(ctx, e)
		if err != nil {
			return report, err
		}
		report.UsersCreated += created.users
		report.PersonsCreated += created.persons
	}

	slogx.FromContext(ctx).Info("seed complete",
		slog.Int("users_created", report.UsersCreated),
		slog.Int("persons_created", report.PersonsCreated),
	)
	return report, nil
}

// EnsureDemoUser seeds only the demo account. It reports whether anything
// was created.
func (s *SeedService) EnsureDemoUser(ctx context.Context) (bool, error) {
	for _, e := range seedData {
		if e.email != DemoEmail {
			continue
		}
		created, err := s.seedOne(ctx, e)
		if err != nil {
			return false, err
		}
		return created.users+created.persons > 0, nil
	}
	return false, nil
}

type seedCounts struct{ users, persons int }

func (s *SeedService) seedOne(ctx context.Context, e seedEntry) (seedCounts, error) {
	var c seedCounts
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c = seedCounts{}

		u, err := tx.Users().GetUserByEmail(ctx, e.email)
		if errors.Is(err, store.ErrNotFound) {
			u, err = createUser(ctx, tx.Users(), newUserInput{
				FirstName: e.first,
				LastName:  e.last,
				Email:     e.email,
				Password:  SeedPassword,
				Role:      domain.RoleUser,
			})
			if err != nil {
				return err
			}
			c.users++
		} else if err != nil {
			return err
		}

		_, err = tx.Persons().FindPersonByOwnerCNP(ctx, u.ID, e.person.cnp)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		now := time.Now().UTC()
		sp := e.person
		err = tx.Persons().CreatePerson(ctx, domain.Person{
			ID:          idx.New().String(),
			UserID:      u.ID,
			FirstName:   sp.first,
			LastName:    sp.last,
			CNP:         sp.cnp,
			BirthDate:   sp.birth,
			BirthPlace:  sp.birthPlace,
			Nationality: "Română",
			IDNumber:    sp.idNumber,
			IssueDate:   sp.issue,
			ExpiryDate:  sp.expiry,
			IDType:      sp.idType,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}
		c.persons++
		return nil
	})
	return c, err
}
