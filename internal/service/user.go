package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"flowershop-api/internal/apperror"
	"flowershop-api/internal/config"
	"flowershop-api/internal/dto"
	"flowershop-api/internal/model"
	"flowershop-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*model.User, error)
	Delete(ctx context.Context, userID string) error
	ListAll(ctx context.Context) ([]*model.User, error)
	SetRole(ctx context.Context, userID string, isAdmin bool) (*model.User, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
	authCfg  *config.Auth
}

func NewUserService(
	userRepo repository.UserRepository,
	authCfg *config.Auth,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		authCfg:  authCfg,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	missing := missingFields(map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
		"address":  req.Address,
		"gender":   req.Gender,
	})
	if len(missing) > 0 {
		return nil, apperror.Validation("missing required fields: %s", strings.Join(missing, ", "))
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperror.Validation("user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Persistence(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Address:      req.Address,
		Gender:       req.Gender,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.Persistence(err)
	}

	return s.authResponse(user)
}

func (s *userServiceImpl) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	if email == "" || password == "" {
		return nil, apperror.Validation("email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthenticated("invalid email or password")
		}
		return nil, apperror.Persistence(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperror.Unauthenticated("invalid email or password")
	}

	return s.authResponse(user)
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, wrapDBErr(err, "user")
	}
	return user, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, wrapDBErr(err, "user")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.ProfileImage != nil {
		if !strings.HasPrefix(*req.ProfileImage, "data:image") {
			return nil, apperror.Validation("profileImage must be a data:image URI")
		}
		user.ProfileImage = *req.ProfileImage
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, apperror.Persistence(err)
	}

	return user, nil
}

func (s *userServiceImpl) Delete(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return wrapDBErr(err, "user")
	}
	return nil
}

func (s *userServiceImpl) ListAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return users, nil
}

func (s *userServiceImpl) SetRole(ctx context.Context, userID string, isAdmin bool) (*model.User, error) {
	if err := s.userRepo.SetAdmin(ctx, userID, isAdmin); err != nil {
		return nil, wrapDBErr(err, "user")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, wrapDBErr(err, "user")
	}
	return user, nil
}

func (s *userServiceImpl) authResponse(user *model.User) (*dto.AuthResponse, error) {
	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	return &dto.AuthResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
		Gender:  user.Gender,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}

func (s *userServiceImpl) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.authCfg.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authCfg.JWTSecret))
}

// missingFields returns the names of empty required fields in stable order.
func missingFields(fields map[string]string) []string {
	order := []string{
		"name", "email", "password", "address", "gender",
		"subscriptionType", "colorTheme", "startDate",
		"receiverName", "phone",
	}

	var missing []string
	for _, name := range order {
		if value, ok := fields[name]; ok && strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
