package services

import (
	"errors"
	"strings"

	"github.com/gigflow/backend/internal/config"
	"github.com/gigflow/backend/internal/models"
	"github.com/gigflow/backend/internal/utils"
	"github.com/gigflow/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult carries the authenticated user and their session token.
type AuthResult struct {
	User  *models.User
	Token string
}

// Register creates a new user account and returns a session token.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" || email == "" || req.Password == "" {
		return nil, response.NewValidation("please provide name, email, and password")
	}
	if len(req.Password) < 6 {
		return nil, response.NewValidation("password must be at least 6 characters")
	}

	var existing int64
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&existing)
	if existing > 0 {
		return nil, response.NewConflict("email is already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, response.NewConflict("email is already registered")
		}
		return nil, err
	}

	return s.issueToken(&user)
}

// Login authenticates by email and password and returns a session token.
func (s *AuthService) Login(req *LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, response.NewValidation("please provide email and password")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid email or password")
	}

	return s.issueToken(&user)
}

// GetUserByID returns a user by ID.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(user.ID, user.Name, user.Email, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}
