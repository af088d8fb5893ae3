package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotel-backoffice/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims carried by access tokens. Subject holds the user id.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	ClientID *uint  `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

type AuthService struct {
	DB     *gorm.DB
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &AuthService{DB: db, Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrInvalidInput)
	}
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	token, exp, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (s *AuthService) issue(user models.User) (string, time.Time, error) {
	now := s.Now().UTC()
	exp := now.Add(s.TTL)
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		ClientID: user.ClientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken validates an HS256 access token and returns the caller it names.
func (s *AuthService) ParseToken(raw string) (Actor, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.Now))
	if err != nil || !tok.Valid {
		return Actor{}, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || !IsRole(claims.Role) {
		return Actor{}, fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}
	return Actor{UserID: uint(id), Username: claims.Username, Role: claims.Role, ClientID: claims.ClientID}, nil
}

type UserInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
	ClientID *uint  `json:"client_id"`
}

func (s *AuthService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("username").Find(&users).Error
	return users, err
}

// CreateUser registers an account. Client accounts must be linked to an
// existing client record.
func (s *AuthService) CreateUser(in UserInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: username and a password of at least 6 characters are required", ErrInvalidInput)
	}
	if !IsRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}
	if in.Role == models.RoleClient {
		if in.ClientID == nil {
			return nil, fmt.Errorf("%w: client accounts need a client_id", ErrInvalidInput)
		}
		var c models.Client
		if err := s.DB.First(&c, *in.ClientID).Error; err != nil {
			return nil, notFoundOr(err, "client", *in.ClientID)
		}
	} else {
		in.ClientID = nil
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{Username: in.Username, Password: hash, Role: in.Role, ClientID: in.ClientID}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, user.Username)
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) DeleteUser(actor Actor, id uint) error {
	if actor.UserID == id {
		return fmt.Errorf("%w: cannot delete your own account", ErrInvalidState)
	}
	res := s.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
