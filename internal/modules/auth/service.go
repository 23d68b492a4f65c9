package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// RoleStaff is the only role this service issues; there are no citizen
// accounts, citizens hold booking tokens instead.
const RoleStaff = "staff"

type jwtService interface {
	GenerateToken(username, role string) (string, error)
}

// Service authenticates the staff account configured for the deployment and
// issues short-lived JWTs for the triage endpoints.
type Service struct {
	username     string
	passwordHash []byte
	jwt          jwtService
}

func NewService(username, password string, jwt jwtService) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Service{
		username:     username,
		passwordHash: hash,
		jwt:          jwt,
	}, nil
}

func (s *Service) Login(req LoginRequest) (string, error) {
	if req.Username != s.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwt.GenerateToken(s.username, RoleStaff)
}
