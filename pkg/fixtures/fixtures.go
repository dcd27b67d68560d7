// Package fixtures loads the data-driven test cases for the registration and
// login suites. Records are read once at process start, validated, and
// treated as immutable for the lifetime of the run.
package fixtures

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Expected is the outcome a fixture record expects from the target
// application.
type Expected string

// expected outcomes. fail-case records are deliberately malformed from the
// application's point of view, so only structural validation applies to them.
const (
	ExpectSuccess Expected = "success"
	ExpectFail    Expected = "fail"
)

// RegistrationUser is one registration test case.
type RegistrationUser struct {
	ID        string   `yaml:"id" validate:"required"`
	FirstName string   `yaml:"first_name"`
	LastName  string   `yaml:"last_name"`
	DOB       string   `yaml:"dob" validate:"omitempty,datetime=2006-01-02"`
	Street    string   `yaml:"street"`
	PostCode  string   `yaml:"postcode"`
	City      string   `yaml:"city"`
	State     string   `yaml:"state"`
	Country   string   `yaml:"country" validate:"omitempty,len=2"`
	Phone     string   `yaml:"phone"`
	Email     string   `yaml:"email" validate:"required"`
	Password  string   `yaml:"password" validate:"required"`
	Expected  Expected `yaml:"expected" validate:"required,oneof=success fail"`
}

// LoginUser is one login test case.
type LoginUser struct {
	ID       string   `yaml:"id" validate:"required"`
	Email    string   `yaml:"email" validate:"required"`
	Password string   `yaml:"password" validate:"required"`
	Expected Expected `yaml:"expected" validate:"required,oneof=success fail"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadRegistrations reads registration records from a YAML file. limit > 0
// keeps only the first limit records (fixture order).
func LoadRegistrations(path string, limit int) ([]RegistrationUser, error) {
	var users []RegistrationUser
	if err := loadYAML(path, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if err := validate.Struct(&users[i]); err != nil {
			return nil, fmt.Errorf("registration fixture %q: %w", users[i].ID, err)
		}
	}
	return clamp(users, limit), nil
}

// LoadLogins reads login records from a YAML file. limit > 0 keeps only the
// first limit records.
func LoadLogins(path string, limit int) ([]LoginUser, error) {
	var users []LoginUser
	if err := loadYAML(path, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if err := validate.Struct(&users[i]); err != nil {
			return nil, fmt.Errorf("login fixture %q: %w", users[i].ID, err)
		}
	}
	return clamp(users, limit), nil
}

func loadYAML(path string, target any) error {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from CLI args
	if err != nil {
		return fmt.Errorf("read fixtures %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	return nil
}

func clamp[T any](in []T, limit int) []T {
	if limit > 0 && limit < len(in) {
		return in[:limit]
	}
	return in
}
