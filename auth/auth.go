package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"factionhub/models"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Role is the authorization view derived from a UserProfile. Super-admins
// can edit every faction; everyone else is limited to their explicit list.
type Role struct {
	IsSuperAdmin bool
	FactionIDs   []string
}

func (r Role) CanEdit(factionID string) bool {
	if r.IsSuperAdmin {
		return true
	}
	for _, id := range r.FactionIDs {
		if id == factionID {
			return true
		}
	}
	return false
}

// Service owns profile lookup, credential checks and first-login
// provisioning. It is passed explicitly to the modules that need it rather
// than living in a global.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Login(email, password string) (*models.UserProfile, error) {
	if s.db == nil {
		return nil, errors.New("database not available")
	}

	var profile models.UserProfile
	if err := s.db.Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	profile.LastLoginAt = time.Now()
	if err := s.db.Save(&profile).Error; err != nil {
		log.Printf("Error updating last login for %s: %v", email, err)
	}

	return &profile, nil
}

// EnsureProfile provisions a default, non-privileged profile for an email
// that has none yet. It is a named operation so first-login provisioning is
// auditable instead of a side effect of a read.
func (s *Service) EnsureProfile(email, displayName, password string) (*models.UserProfile, error) {
	if s.db == nil {
		return nil, errors.New("database not available")
	}

	var profile models.UserProfile
	err := s.db.Where("email = ?", email).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	profile = models.UserProfile{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		IsSuperAdmin: false,
		FactionIDs:   "",
		CreatedAt:    time.Now(),
		LastLoginAt:  time.Now(),
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) ProfileByID(id int) (*models.UserProfile, error) {
	if s.db == nil {
		return nil, errors.New("database not available")
	}
	var profile models.UserProfile
	err := s.db.First(&profile, id).Error
	return &profile, err
}

// RoleFor derives the authorization role purely from the stored profile.
func RoleFor(profile *models.UserProfile) Role {
	if profile == nil {
		return Role{}
	}
	return Role{
		IsSuperAdmin: profile.IsSuperAdmin,
		FactionIDs:   profile.FactionIDList(),
	}
}

// JoinFactionIDs normalizes a list of faction ids into the stored comma form.
func JoinFactionIDs(ids []string) string {
	var clean []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			clean = append(clean, id)
		}
	}
	return strings.Join(clean, ",")
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
