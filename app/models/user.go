package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"name" validate:"required,min=3,max=150"`
	Password    string     `gorm:"type:text;not null" json:"-" validate:"required"`
	LastLoginAt *time.Time `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// registration holds the plain form values before hashing.
type registration struct {
	Username string `validate:"required,min=3,max=150"`
	Password string `validate:"required,min=6,max=72,bcryptlen"`
}

// bcrypt rejects passwords longer than 72 bytes; max=72 above counts runes.
const bcryptMaxBytes = 72

var registrationValidator = newRegistrationValidator()

func newRegistrationValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= bcryptMaxBytes
	})
	return v
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser validates the registration input and returns a user with a hashed password.
func CreateUser(username string, password string) (*User, error) {
	in := registration{Username: strings.TrimSpace(username), Password: password}
	if err := registrationValidator.Struct(in); err != nil {
		return nil, err
	}

	pw, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:     in.Username,
		Password: pw,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}
