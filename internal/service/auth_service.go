package service

import (
	"context"
	"errors"
	"os"
	"time"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/internal/pkg/mailer"
	"persona-chat-be/internal/repository/specification"
	"persona-chat-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenExpiry = time.Hour * 24

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
}

type authService struct {
	uowFactory      unitofwork.RepositoryFactory
	emailService    mailer.IEmailService
	activityService IActivityService
	logger          logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	activityService IActivityService,
	sysLogger logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:      uowFactory,
		emailService:    emailService,
		activityService: activityService,
		logger:          sysLogger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	// Welcome email is best-effort: failure never blocks registration.
	if err := s.emailService.SendWelcome(user.Email, user.FullName); err != nil {
		s.logger.Warn("auth", "Failed to send welcome email", map[string]interface{}{"error": err.Error()})
	}

	s.activityService.Track(user.Id, constant.ActivityUserRegister, map[string]interface{}{
		"email": user.Email,
	})

	return &dto.RegisterResponse{
		Id:       user.Id,
		Email:    user.Email,
		FullName: user.FullName,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(accessTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return nil, err
	}

	s.activityService.Track(user.Id, constant.ActivityUserLogin, map[string]interface{}{
		"email": user.Email,
	})

	return &dto.LoginResponse{
		Token: signedToken,
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return &dto.UserDTO{
		Id:       user.Id,
		Email:    user.Email,
		FullName: user.FullName,
	}, nil
}
