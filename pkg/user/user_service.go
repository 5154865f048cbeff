package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/internal/metrics"
	"recipehub/internal/utils"
	"recipehub/internal/utils/mailing"
	"recipehub/internal/utils/storage"
	"recipehub/pkg/jwt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		RefreshToken(ctx context.Context, req domain.RefreshTokenRequest) (domain.RefreshTokenResponse, error)
		Me(ctx context.Context, userID string) (domain.ProfileResponse, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.ProfileResponse, error)
		DeleteUser(ctx context.Context, req domain.DeleteUserRequest, userID string) error
		UploadAvatar(ctx context.Context, req domain.UploadAvatarRequest, userID string) (domain.ProfileResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
		mailer         mailing.Mailer
		appURL         string
		now            func() time.Time
		location       *time.Location
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	s3 storage.AwsS3,
	mailer mailing.Mailer,
	appURL string,
	location *time.Location,
) UserService {
	if location == nil {
		location = time.UTC
	}
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
		mailer:         mailer,
		appURL:         appURL,
		now:            time.Now,
		location:       location,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)

	if err := s.checkUnique(ctx, username, email, ""); err != nil {
		return domain.RegisterResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := entities.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: string(hashed),
		RegDate:  utils.CalendarDate(s.now(), s.location),
	}
	if req.ImageLink != "" {
		user.ImageLink = &req.ImageLink
	}

	if err := s.userRepository.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RegisterResponse{}, domain.NewError(domain.ErrConflict, "username or email is already in use")
		}
		return domain.RegisterResponse{}, err
	}
	metrics.UsersRegistered.Inc()

	if err := s.mailer.SendMail(user.Email, "Welcome to RecipeHub", mailing.WelcomeBody(user.Username, s.appURL)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to send welcome mail")
	}

	return domain.RegisterResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		ImageLink: stringValue(user.ImageLink),
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	access, err := s.jwtService.GenerateAccessToken(user.ID.String(), domain.RoleUser)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	refresh, err := s.jwtService.GenerateRefreshToken(user.ID.String(), domain.RoleUser)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	profile, err := s.profile(ctx, user)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Access:        access,
		Refresh:       refresh,
		Username:      profile.Username,
		Email:         profile.Email,
		RegDate:       profile.RegDate,
		ImageLink:     profile.ImageLink,
		RecipeCount:   profile.RecipeCount,
		BookmarkCount: profile.BookmarkCount,
	}, nil
}

func (s *userService) RefreshToken(ctx context.Context, req domain.RefreshTokenRequest) (domain.RefreshTokenResponse, error) {
	userID, role, err := s.jwtService.GetUserIDByToken(req.Refresh, domain.TokenTypeRefresh)
	if err != nil {
		return domain.RefreshTokenResponse{}, err
	}

	exists, err := s.userRepository.ExistsByID(ctx, userID)
	if err != nil {
		return domain.RefreshTokenResponse{}, err
	}
	if !exists {
		return domain.RefreshTokenResponse{}, domain.ErrTokenInvalid
	}

	access, err := s.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return domain.RefreshTokenResponse{}, err
	}
	return domain.RefreshTokenResponse{Access: access}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.ProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}
	return s.profile(ctx, user)
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.ProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return domain.ProfileResponse{}, domain.ErrIncorrectOldPassword
	}

	username := user.Username
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
	}
	email := user.Email
	if req.Email != nil {
		email = normalizeEmail(*req.Email)
	}
	if err := s.checkUnique(ctx, username, email, userID); err != nil {
		return domain.ProfileResponse{}, err
	}
	user.Username = username
	user.Email = email

	if req.NewPassword != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return domain.ProfileResponse{}, err
		}
		user.Password = string(hashed)
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ProfileResponse{}, domain.NewError(domain.ErrConflict, "username or email is already in use")
		}
		return domain.ProfileResponse{}, err
	}

	return s.profile(ctx, user)
}

func (s *userService) DeleteUser(ctx context.Context, req domain.DeleteUserRequest, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.ErrIncorrectPassword
	}

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		return err
	}

	if key := s.s3.GetObjectKeyFromLink(stringValue(user.ImageLink)); key != "" {
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to delete avatar")
		}
	}
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, req domain.UploadAvatarRequest, userID string) (domain.ProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	var objectKey string
	if existing := s.s3.GetObjectKeyFromLink(stringValue(user.ImageLink)); existing != "" {
		objectKey, err = s.s3.UpdateFile(ctx, existing, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(ctx, uuid.NewString(), req.Image, "avatars", storage.AllowImage...)
	}
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	link := s.s3.GetPublicLinkKey(objectKey)
	user.ImageLink = &link
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.ProfileResponse{}, err
	}

	return s.profile(ctx, user)
}

func (s *userService) checkUnique(ctx context.Context, username, email, excludeID string) error {
	taken, err := s.userRepository.IsUsernameTaken(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrUsernameTaken
	}

	taken, err = s.userRepository.IsEmailTaken(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrEmailTaken
	}
	return nil
}

func (s *userService) profile(ctx context.Context, user *entities.User) (domain.ProfileResponse, error) {
	recipeCount, err := s.userRepository.CountRecipes(ctx, user.ID.String())
	if err != nil {
		return domain.ProfileResponse{}, err
	}
	bookmarkCount, err := s.userRepository.CountBookmarks(ctx, user.ID.String())
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	return domain.ProfileResponse{
		ID:            user.ID.String(),
		Username:      user.Username,
		Email:         user.Email,
		ImageLink:     stringValue(user.ImageLink),
		RegDate:       user.RegDate.Format(domain.DateFormat),
		RecipeCount:   recipeCount,
		BookmarkCount: bookmarkCount,
	}, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
