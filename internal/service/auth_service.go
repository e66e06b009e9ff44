package service

import (
	"regexp"
	"time"
	"unicode"

	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/repository"
	"github.com/talentsafricains/showcase/internal/utils"
	"github.com/talentsafricains/showcase/pkg/logger"
	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      models.Role
	Bio       string
	Skills    string
	Country   string
}

func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	if err := validateRegisterInput(input); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("email", input.Email),
			zap.Error(err),
		)
		return nil, "", err
	}

	existing, err := s.userRepo.GetByEmail(input.Email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", input.Email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if existing != nil {
		logger.Log.Warn("Email already exists", zap.String("email", input.Email))
		return nil, "", ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, "", err
	}

	role := input.Role
	if role == "" {
		role = models.RoleVisitor
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		Bio:          input.Bio,
		Skills:       input.Skills,
		Country:      input.Country,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Log.Error("Failed to create user",
			zap.String("email", input.Email),
			zap.Error(err),
		)
		return nil, "", err
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password produce the same error to avoid user enumeration.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found", zap.String("email", email))
		return nil, "", ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.Uint("user_id", user.ID),
		)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User logged in", zap.Uint("user_id", user.ID))

	return user, token, nil
}

// GetProfile returns a user's full public profile (the password hash
// is excluded at the model level).
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		logger.Log.Error("Failed to fetch profile",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies a partial update and returns the refreshed
// profile. An empty patch is rejected, not silently accepted.
func (s *AuthService) UpdateProfile(userID uint, patch models.UserPatch) (*models.User, error) {
	updated, err := s.userRepo.Update(userID, patch)
	if err != nil {
		logger.Log.Error("Failed to update profile",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	if !updated {
		return nil, ErrNothingToUpdate
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	logger.Log.Info("Profile updated", zap.Uint("user_id", userID))
	return user, nil
}

func validateRegisterInput(input RegisterInput) error {
	var fields []FieldError

	if input.FirstName == "" {
		fields = append(fields, FieldError{Field: "first_name", Message: "first name is required"})
	}
	if input.LastName == "" {
		fields = append(fields, FieldError{Field: "last_name", Message: "last name is required"})
	}
	if !emailRegex.MatchString(input.Email) {
		fields = append(fields, FieldError{Field: "email", Message: "invalid email format"})
	}
	if msg := checkPassword(input.Password); msg != "" {
		fields = append(fields, FieldError{Field: "password", Message: msg})
	}
	if input.Role != "" && !models.ValidRole(input.Role) {
		fields = append(fields, FieldError{Field: "role", Message: "invalid role"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// checkPassword enforces the minimum policy: 8+ characters with at
// least one uppercase, one lowercase and one digit.
func checkPassword(password string) string {
	if len(password) < 8 {
		return "password must be at least 8 characters"
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return "password must contain an uppercase letter, a lowercase letter and a digit"
	}
	return ""
}
