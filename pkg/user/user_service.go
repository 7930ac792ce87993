package user

import (
	"campuscook/domain"
	"campuscook/entities"
	"campuscook/internal/utils"
	"campuscook/internal/utils/mailing"
	"campuscook/pkg/jwt"
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.SignupRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		GetCurrentUser(ctx context.Context, userID string) (domain.UserResponse, error)
		EnsureAdmin(ctx context.Context, name, email, password string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		bcryptCost     int
		appURL         string
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	mailer mailing.Mailer,
	bcryptCost int,
	appURL string,
) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		bcryptCost:     bcryptCost,
		appURL:         appURL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPassword(password string) error {
	if utf8.RuneCountInString(password) < domain.MinPasswordLength {
		return domain.NewValidationError(domain.MessagePasswordTooShort)
	}
	if len(password) > domain.MaxPasswordBytes {
		return domain.NewValidationError(domain.MessagePasswordTooLong)
	}
	return nil
}

func (s *userService) Register(ctx context.Context, req domain.SignupRequest) (domain.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return domain.AuthResponse{}, domain.NewValidationError(domain.MessageRegisterRequired)
	}
	if !utils.IsEmail(email) {
		return domain.AuthResponse{}, domain.NewValidationError(domain.MessageInvalidEmail)
	}
	if err := checkPassword(req.Password); err != nil {
		return domain.AuthResponse{}, err
	}

	exists, err := s.userRepository.CheckUserByEmail(ctx, email)
	if err != nil {
		return domain.AuthResponse{}, domain.NewInternalError(domain.MessageFailedRegister, err)
	}
	if exists {
		return domain.AuthResponse{}, domain.ErrEmailTaken
	}

	user, err := s.newUser(name, email, req.Password, domain.RoleUser)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		if utils.IsDuplicateKey(err) {
			return domain.AuthResponse{}, domain.ErrEmailTaken
		}
		return domain.AuthResponse{}, domain.NewInternalError(domain.MessageFailedRegister, err)
	}

	s.sendWelcome(user)

	return s.authResponse(user, domain.MessageFailedRegister)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return domain.AuthResponse{}, domain.NewValidationError(domain.MessageLoginRequired)
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, domain.NewInternalError(domain.MessageFailedLogin, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	return s.authResponse(user, domain.MessageFailedLogin)
}

func (s *userService) GetCurrentUser(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, domain.NewInternalError(domain.MessageFailedGetUser, err)
	}
	return toUserResponse(user), nil
}

// EnsureAdmin creates an admin account for email unless one already exists.
func (s *userService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)
	if !utils.IsEmail(email) {
		return domain.NewValidationError(domain.MessageInvalidEmail)
	}
	if err := checkPassword(password); err != nil {
		return err
	}
	exists, err := s.userRepository.CheckUserByEmail(ctx, email)
	if err != nil || exists {
		return err
	}

	user, err := s.newUser(strings.TrimSpace(name), email, password, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.userRepository.RegisterUser(ctx, user); err != nil && !utils.IsDuplicateKey(err) {
		return err
	}
	log.Infof("bootstrap admin %s created", email)
	return nil
}

func (s *userService) newUser(name, email, password, role string) (*entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.NewValidationError(domain.MessagePasswordTooLong)
	}
	if err != nil {
		return nil, domain.NewInternalError(domain.MessageFailedRegister, err)
	}
	return &entities.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}, nil
}

func (s *userService) authResponse(user *entities.User, failure string) (domain.AuthResponse, error) {
	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return domain.AuthResponse{}, domain.NewInternalError(failure, err)
	}
	return domain.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// sendWelcome never fails the signup.
func (s *userService) sendWelcome(user *entities.User) {
	body, err := mailing.WelcomeBody(user.Name, s.appURL)
	if err != nil {
		log.Warnf("welcome mail for %s: %v", user.Email, err)
		return
	}
	go func() {
		err := s.mailer.SendMail(user.Email, "Welcome to CampusCook", body)
		if err != nil && !errors.Is(err, domain.ErrMailNotConfigured) {
			log.Warnf("welcome mail for %s: %v", user.Email, err)
		}
	}()
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
