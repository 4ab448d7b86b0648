package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"github.com/kofiasare/pasco/config"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/model"
	"github.com/kofiasare/pasco/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles signup and login; everything downstream only ever sees
// the user id the middleware extracts from the access token.
type AuthService interface {
	Signup(req dto.SignupRequest) (*dto.AuthResponseDTO, error)
	Login(req dto.LoginRequest) (*dto.AuthResponseDTO, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Signup(req dto.SignupRequest) (*dto.AuthResponseDTO, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, fmt.Errorf("%w: user with this email", apperr.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	user := model.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Signup: failed to create user")
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.respond(&user)
}

func (s *authService) Login(req dto.LoginRequest) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthorized)
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthorized)
	}
	return s.respond(user)
}

func (s *authService) respond(user *model.User) (*dto.AuthResponseDTO, error) {
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, fmt.Errorf("mapping user: %w", err)
	}
	return &dto.AuthResponseDTO{User: userDTO, Tokens: *tokens}, nil
}

func (s *authService) generateTokens(user *model.User) (*dto.TokenPairDTO, error) {
	now := time.Now()
	sign := func(secret string, ttl time.Duration) (string, error) {
		claims := jwt.MapClaims{
			"sub":   user.ID.String(),
			"email": user.Email,
			"role":  user.Role,
			"iat":   now.Unix(),
			"exp":   now.Add(ttl).Unix(),
		}
		return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	}

	access, err := sign(s.cfg.Auth.AccessSecret, time.Duration(s.cfg.Auth.AccessTTLMin)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refresh, err := sign(s.cfg.Auth.RefreshSecret, time.Duration(s.cfg.Auth.RefreshTTLMin)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}
