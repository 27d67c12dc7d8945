package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Mareenraj/ATS/internal/shared/auth"
)

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9@.+\-_]{3,150}$`)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Session is an authenticated user plus the bearer token issued for them.
type Session struct {
	User  User   `json:"-"`
	Token string `json:"token"`
}

// Register creates a recruiter account and signs a token for it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	user, err := s.create(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return s.issue(user)
}

// Login checks a username or email plus password.
func (s *Service) Login(ctx context.Context, identifier, password string) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	var user User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.Repo.GetByEmail(ctx, identifier)
	} else {
		user, err = s.Repo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if user.PasswordHash == "" || auth.CheckPassword(user.PasswordHash, password) != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(user)
}

// EnsureAccount returns the account with in.Username, creating it when missing.
func (s *Service) EnsureAccount(ctx context.Context, in RegisterInput) (User, bool, error) {
	if err := s.ready(); err != nil {
		return User{}, false, err
	}
	existing, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, false, err
	}
	user, err := s.create(ctx, in)
	if err != nil {
		return User{}, false, err
	}
	return user, true, nil
}

// UpsertFromAuth finds the recruiter with the given verified email or creates a
// password-less account for it.
func (s *Service) UpsertFromAuth(ctx context.Context, email, firstName, lastName string) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return Session{}, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return s.issue(user)
	}
	if !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}

	user = User{
		ID:        uuid.NewString(),
		Username:  usernameFromEmail(email),
		Email:     email,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return Session{}, err
	}
	return s.issue(user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) create(ctx context.Context, in RegisterInput) (User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if !usernamePattern.MatchString(in.Username) {
		return User{}, fmt.Errorf("%w: username must be 3-150 letters, digits or @.+-_", ErrInvalidInput)
	}
	if !validEmail(in.Email) {
		return User{}, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Service) issue(user User) (Session, error) {
	token, err := auth.SignJWT(auth.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Name:     user.FullName(),
	})
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: token}, nil
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	return nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// usernameFromEmail derives a login name from the local part plus a short suffix.
func usernameFromEmail(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}
	var b strings.Builder
	for _, r := range local {
		if strings.ContainsRune("@.+-_", r) || r < 128 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if len(base) > 130 {
		base = base[:130]
	}
	return base + "-" + uuid.NewString()[:8]
}
