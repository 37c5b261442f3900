package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/ManuelReschke/ShopFox/app/models"
	"github.com/ManuelReschke/ShopFox/app/repository"
	"github.com/ManuelReschke/ShopFox/internal/pkg/hcaptcha"
	"github.com/ManuelReschke/ShopFox/internal/pkg/usercontext"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgUserExists         = "User already exists"
)

type AuthController struct {
	users   repository.UserRepository
	store   *session.Store
	captcha *hcaptcha.Client
	siteKey string
}

// NewAuthController wires login and registration. captcha may be nil.
func NewAuthController(users repository.UserRepository, store *session.Store, captcha *hcaptcha.Client, siteKey string) *AuthController {
	return &AuthController{users: users, store: store, captcha: captcha, siteKey: siteKey}
}

func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return render(c, "login", " | Log in", nil)
	}

	// notice: login failures never say which part was wrong
	user, err := ac.users.GetByName(c.UserContext(), strings.TrimSpace(c.FormValue("username")))
	if err != nil || !user.CheckPassword(c.FormValue("password")) {
		return flashError(c, msgInvalidCredentials, "/login")
	}

	if err := ac.startSession(c, user); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/login")
	}

	return flashSuccess(c, "Welcome back!", "/")
}

func (ac *AuthController) HandleRegister(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return render(c, "register", " | Register", fiber.Map{"HCaptchaSiteKey": ac.siteKey})
	}

	if ac.captcha.Enabled() {
		ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
		valid, err := ac.captcha.Verify(ctx, c.FormValue("h-captcha-response"))
		cancel()
		if err != nil || !valid {
			log.Printf("[auth] hCaptcha validation error: %v", err)
			return flashError(c, "Captcha validation failed. Please try again.", "/register")
		}
	}

	user, err := models.CreateUser(c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return flashError(c, registrationMessage(verrs), "/register")
		}
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/register")
	}

	exists, err := ac.users.ExistsByName(c.UserContext(), user.Name)
	if err != nil {
		log.Printf("[auth] lookup user %q failed: %v", user.Name, err)
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/register")
	}
	if exists {
		return flashError(c, msgUserExists, "/register")
	}

	// the unique index still catches a concurrent registration
	if err := ac.users.Create(c.UserContext(), user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return flashError(c, msgUserExists, "/register")
		}
		log.Printf("[auth] create user %q failed: %v", user.Name, err)
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/register")
	}

	if err := ac.startSession(c, user); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/login")
	}

	return flashSuccess(c, "Your account is ready.", "/")
}

func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	sess, err := ac.store.Get(c)
	if err != nil {
		return flashError(c, "logged out (no sess)", "/login")
	}

	if err := sess.Destroy(); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/login")
	}

	usercontext.Set(c, usercontext.UserContext{})
	return flashSuccess(c, "Bye bye!", "/login")
}

func (ac *AuthController) startSession(c *fiber.Ctx, user *models.User) error {
	sess, err := ac.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	if err := sess.Save(); err != nil {
		return err
	}

	if err := ac.users.TouchLastLogin(c.UserContext(), user.ID, time.Now()); err != nil {
		log.Printf("[auth] update last login for user %d: %v", user.ID, err)
	}
	return nil
}

func registrationMessage(verrs validator.ValidationErrors) string {
	switch verrs[0].Field() {
	case "Username":
		return "Username must be between 3 and 150 characters"
	case "Password":
		return "Password must be between 6 and 72 characters"
	}
	return "Invalid registration"
}
