package service

import (
	"fmt"
	"time"

	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	jwtpkg "github.com/miles-brown/The-Words-Record-sub005/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	jwtExpire int
}

func NewAuthService(db *gorm.DB, jwtSecret string, jwtExpire int) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret, jwtExpire: jwtExpire}
}

func (s *AuthService) Register(email, password, name, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleViewer
	}
	switch role {
	case model.RoleAdmin, model.RoleEditor, model.RoleViewer:
	default:
		return nil, fmt.Errorf("40001:invalid role %q", role)
	}

	var count int64
	s.db.Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("40005:email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		IsAdmin:      role == model.RoleAdmin,
		Status:       1,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (*model.User, string, time.Time, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", time.Time{}, fmt.Errorf("40102:invalid email or password")
		}
		return nil, "", time.Time{}, err
	}
	if user.Status == 0 {
		return nil, "", time.Time{}, fmt.Errorf("40104:account disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, fmt.Errorf("40102:invalid email or password")
	}

	now := time.Now()
	s.db.Model(&user).Update("last_login_at", &now)

	token, expireAt, err := jwtpkg.GenerateToken(s.jwtSecret, user.ID, user.Role, user.IsAdmin, s.jwtExpire)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("generate token: %w", err)
	}
	return &user, token, expireAt, nil
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) RefreshToken(userID uint) (string, time.Time, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return "", time.Time{}, err
	}
	return jwtpkg.GenerateToken(s.jwtSecret, user.ID, user.Role, user.IsAdmin, s.jwtExpire)
}

func (s *AuthService) ListUsers(keyword, role string, status *int, page, pageSize int) ([]model.User, int64, error) {
	query := s.db.Model(&model.User{})
	if keyword != "" {
		query = query.Where("name LIKE ? OR email LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	query.Count(&total)

	var users []model.User
	if err := query.Order("created_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *AuthService) UpdateUserRole(userID uint, role string) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	user.Role = role
	user.IsAdmin = role == model.RoleAdmin
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) UpdateUserStatus(userID uint, status int) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	user.Status = status
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) GetOperationLogs(userID *uint, action, resourceType string, startTime, endTime *time.Time, page, pageSize int) ([]model.OperationLog, int64, error) {
	query := s.db.Model(&model.OperationLog{}).Preload("User")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}
	if startTime != nil {
		query = query.Where("created_at >= ?", startTime)
	}
	if endTime != nil {
		query = query.Where("created_at <= ?", endTime)
	}

	var total int64
	query.Count(&total)

	var logs []model.OperationLog
	if err := query.Order("created_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
