package fixtures

import (
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"gopkg.in/yaml.v3"
)

// GenerateRegistrations produces n realistic registration records for
// seeding fixture files. All generated records expect success; fail cases
// are hand-written because they encode specific application rules.
func GenerateRegistrations(n int) []RegistrationUser {
	users := make([]RegistrationUser, 0, n)
	for i := 0; i < n; i++ {
		dob := gofakeit.DateRange(
			time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
		)
		users = append(users, RegistrationUser{
			ID:        fmt.Sprintf("reg-%03d", i+1),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			DOB:       dob.Format("2006-01-02"),
			Street:    gofakeit.Street(),
			PostCode:  gofakeit.Zip(),
			City:      gofakeit.City(),
			State:     gofakeit.StateAbr(),
			Country:   gofakeit.CountryAbr(),
			Phone:     gofakeit.Phone(),
			Email:     gofakeit.Email(),
			Password:  gofakeit.Password(true, true, true, true, false, 12),
			Expected:  ExpectSuccess,
		})
	}
	return users
}

// GenerateLogins produces n login records with fresh credentials.
func GenerateLogins(n int) []LoginUser {
	users := make([]LoginUser, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, LoginUser{
			ID:       fmt.Sprintf("login-%03d", i+1),
			Email:    gofakeit.Email(),
			Password: gofakeit.Password(true, true, true, true, false, 12),
			Expected: ExpectSuccess,
		})
	}
	return users
}

// Save writes records to a YAML fixture file.
func Save[T any](path string, records []T) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal fixtures: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write fixtures %s: %w", path, err)
	}
	return nil
}
