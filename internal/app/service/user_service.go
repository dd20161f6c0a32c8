package service

import (
	"errors"
	"strings"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"github.com/auca/lostandfound-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

type UserService interface {
	Create(username, email, password, role string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
	GetAll() ([]model.User, error)
	Update(id uint, username, email, password, role string) (*model.User, error)
	Delete(id uint) error
	IsAdmin(id uint) (bool, error)
	ExistsByEmail(email string, excludeID uint) (bool, error)
	ExistsByUsername(username string, excludeID uint) (bool, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(username, email, password, role string) (*model.User, error) {
	logger.Info("Creating user", map[string]interface{}{
		"username": username,
		"email":    email,
	})

	if exists, err := s.userRepo.ExistsByEmail(email); err != nil {
		return nil, err
	} else if exists {
		logger.Warn("User creation failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyExists
	}
	if exists, err := s.userRepo.ExistsByUsername(username); err != nil {
		return nil, err
	} else if exists {
		logger.Warn("User creation failed: username already exists", map[string]interface{}{
			"username": username,
		})
		return nil, ErrUsernameAlreadyExists
	}

	hashed, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     strings.ToUpper(role),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User created", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})
	return user, nil
}

func (s *userService) GetByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetAll() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func (s *userService) Update(id uint, username, email, password, role string) (*model.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	// Only re-hash when a new plain text password was provided. Admin
	// tooling may round-trip the stored hash, which must not be hashed
	// again.
	if password != "" && !util.IsBcryptHash(password) {
		hashed, err := util.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if role != "" {
		user.Role = strings.ToUpper(role)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User updated", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

func (s *userService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("User deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}

func (s *userService) IsAdmin(id uint) (bool, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

func (s *userService) ExistsByEmail(email string, excludeID uint) (bool, error) {
	if excludeID != 0 {
		return s.userRepo.ExistsByEmailExcludingID(email, excludeID)
	}
	return s.userRepo.ExistsByEmail(email)
}

func (s *userService) ExistsByUsername(username string, excludeID uint) (bool, error) {
	if excludeID != 0 {
		return s.userRepo.ExistsByUsernameExcludingID(username, excludeID)
	}
	return s.userRepo.ExistsByUsername(username)
}
