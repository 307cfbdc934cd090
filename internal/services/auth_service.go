package services

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"dukaan/internal/domain"
	"dukaan/internal/repos"
	"dukaan/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrWeakPassword  = errors.New("weak password")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrBadResetToken = errors.New("invalid or expired reset token")
)

const resetTokenTTL = time.Hour

type AuthService struct {
	Users  *repos.UserRepo
	Tokens *TokenService
	Sender ResetCodeSender
}

func NewAuthService(users *repos.UserRepo, tokens *TokenService, sender ResetCodeSender) *AuthService {
	if sender == nil {
		sender = LogResetSender{}
	}
	return &AuthService{Users: users, Tokens: tokens, Sender: sender}
}

func (s *AuthService) Register(name, email, password string) (*domain.User, error) {
	name, _ = validate.Name(name)
	email, emailOK := validate.Email(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !emailOK {
		return nil, ErrInvalidEmail
	}
	if !validate.Password(password) {
		return nil, ErrWeakPassword
	}
	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Hash:  string(h),
		Role:  domain.RoleUser,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues an identity token carrying id+role.
// Unknown email and wrong password stay distinct errors; see DESIGN.md on the
// enumeration trade-off.
func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrWrongPassword
	}
	token, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ForgotPassword stores a fresh 6-digit code with a one-hour expiry and hands
// it to the delivery channel. The code is never returned to the caller.
func (s *AuthService) ForgotPassword(email string) error {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	code, err := resetCode()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL).Unix()
	if err := s.Users.SetResetToken(u.ID, code, expires); err != nil {
		return err
	}
	return s.Sender.SendResetCode(u.Email, code)
}

func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	u, err := s.Users.ByResetToken(email, code, time.Now().Unix())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBadResetToken
		}
		return err
	}
	if !validate.Password(newPassword) {
		return ErrWeakPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(u.ID, string(h))
}

// resetCode draws a 6-digit code uniformly from [100000,999999].
func resetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
