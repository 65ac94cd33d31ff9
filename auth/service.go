package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/biosecret/taskmanager/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserStore là phần của database.UserStore mà Service cần
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
}

// Options cấu hình Service
type Options struct {
	Secret     []byte
	TTL        time.Duration // 0: token không hết hạn
	BcryptCost int
}

// Service đăng ký, đăng nhập và xác thực token
type Service struct {
	users UserStore
	opts  Options
	now   func() time.Time
}

func NewService(users UserStore, opts Options) (*Service, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	return &Service{users: users, opts: opts, now: time.Now}, nil
}

// Register tạo user mới với mật khẩu đã hash
func (s *Service) Register(ctx context.Context, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return models.User{}, models.Errorf(models.ErrValidation, "missing required fields")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login kiểm tra thông tin đăng nhập và cấp access token
func (s *Service) Login(ctx context.Context, email, password string) (string, models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", models.User{}, models.Errorf(models.ErrValidation, "missing email or password")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return "", models.User{}, models.Errorf(models.ErrAuth, "invalid credentials")
	}
	if err != nil {
		return "", models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, models.Errorf(models.ErrAuth, "invalid credentials")
	}

	token, err := s.issue(user.ID)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Verify trả về user ID nằm trong token hợp lệ. User phải còn tồn tại,
// token ký đúng nhưng trỏ tới user đã mất vẫn bị từ chối.
func (s *Service) Verify(ctx context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", models.Errorf(models.ErrAuth, "missing token")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.opts.TTL > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.opts.Secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return "", models.Errorf(models.ErrAuth, "invalid or expired token")
	}
	if claims.Subject == "" {
		return "", models.Errorf(models.ErrAuth, "invalid token subject")
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if errors.Is(err, models.ErrNotFound) {
		return "", models.Errorf(models.ErrAuth, "unknown user")
	}
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// issue tạo JWT với sub là user ID
func (s *Service) issue(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.opts.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.opts.TTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.opts.Secret)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
