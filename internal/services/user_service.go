package services

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/models"
	"github.com/watotocare/sponsorship-backend/internal/pagination"
	"github.com/watotocare/sponsorship-backend/internal/policy"
)

type UserService struct {
	db    *gorm.DB
	guard *policy.Guard
}

func NewUserService(db *gorm.DB, guard *policy.Guard) *UserService {
	return &UserService{db: db, guard: guard}
}

// Create registers a new account. Admin only; usernames and emails must be
// unique across all roles.
func (s *UserService) Create(principal *models.User, req dto.CreateUserRequest) (*models.User, error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}

	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, policy.Validation("Role must be one of: admin, sponsor, child")
	}

	var gender *models.Gender
	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		if !g.Valid() {
			return nil, policy.Validation("Gender must be one of: Male, Female, Other")
		}
		gender = &g
	}

	if req.FirstName == "" || req.LastName == "" || req.Username == "" {
		return nil, policy.Validation("First name, last name and username are required")
	}

	query := s.db.Model(&models.User{}).Where("username = ?", req.Username)
	if req.Email != nil {
		query = s.db.Model(&models.User{}).Where("username = ? OR email = ?", req.Username, *req.Email)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, policy.Conflict("Email or username already registered")
	}

	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:             uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Username:       req.Username,
		HashedPassword: hash,
		Role:           role,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		DateOfBirth:    req.DateOfBirth,
		Gender:         gender,
		BackgroundInfo: req.BackgroundInfo,
		ProfileImage:   req.ProfileImage,
		IsActive:       true,
	}

	if len(req.ImageGallery) > 0 {
		gallery, err := json.Marshal(req.ImageGallery)
		if err != nil {
			return nil, err
		}
		user.ImageGallery = gallery
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type UserFilters struct {
	FirstName string
	LastName  string
	Role      string
	Gender    string
}

// List returns one page of users with optional filters. The response carries
// both the system-wide user count and the count after filtering.
func (s *UserService) List(principal *models.User, filters UserFilters, params pagination.Params) (*dto.UserListResponse, error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}

	if filters.Role != "" && !models.Role(filters.Role).Valid() {
		return nil, policy.Validation("Role must be one of: admin, sponsor, child")
	}
	if filters.Gender != "" && !models.Gender(filters.Gender).Valid() {
		return nil, policy.Validation("Gender must be one of: Male, Female, Other")
	}

	query := s.db.Model(&models.User{})
	if filters.FirstName != "" {
		query = query.Where("LOWER(first_name) LIKE ?", "%"+strings.ToLower(filters.FirstName)+"%")
	}
	if filters.LastName != "" {
		query = query.Where("LOWER(last_name) LIKE ?", "%"+strings.ToLower(filters.LastName)+"%")
	}
	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	}
	if filters.Gender != "" {
		query = query.Where("gender = ?", filters.Gender)
	}

	page, err := pagination.Paginate[models.User](query, params)
	if err != nil {
		return nil, err
	}

	var totalUsers int64
	if err := s.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return nil, err
	}

	users := make([]dto.UserResponse, 0, len(page.Items))
	for i := range page.Items {
		users = append(users, dto.NewUserResponse(&page.Items[i]))
	}

	return &dto.UserListResponse{
		TotalUsers:    totalUsers,
		FilteredCount: page.TotalCount,
		TotalPages:    page.TotalPages,
		Page:          page.Page,
		PageSize:      page.PageSize,
		Users:         users,
	}, nil
}

// Get fetches a user profile by ID.
func (s *UserService) Get(principal *models.User, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.guard.CanReadUser(principal, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update to a user. Admin only; absent fields keep
// their current values.
func (s *UserService) Update(principal *models.User, id uuid.UUID, patch dto.UserPatch) (*models.User, error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("User to update not found")
	}
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Password != nil {
		if err := ValidatePassword(*patch.Password); err != nil {
			return nil, err
		}
		hash, err := HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hash
	}
	if patch.Email != nil {
		user.Email = patch.Email
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}
	if patch.DateOfBirth != nil {
		user.DateOfBirth = patch.DateOfBirth
	}
	if patch.Gender != nil {
		g := models.Gender(*patch.Gender)
		if !g.Valid() {
			return nil, policy.Validation("Gender must be one of: Male, Female, Other")
		}
		user.Gender = &g
	}
	if patch.BackgroundInfo != nil {
		user.BackgroundInfo = *patch.BackgroundInfo
	}
	if patch.ProfileImage != nil {
		user.ProfileImage = *patch.ProfileImage
	}
	if patch.ImageGallery != nil {
		gallery, err := json.Marshal(patch.ImageGallery)
		if err != nil {
			return nil, err
		}
		user.ImageGallery = gallery
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user. Admin only, and never one's own account. Dependent
// sponsorships, payments and reports go with it via cascade.
func (s *UserService) Delete(principal *models.User, id uuid.UUID) error {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policy.NotFound("User to delete not found")
	}
	if err != nil {
		return err
	}

	if err := s.guard.RequireAdmin(principal); err != nil {
		return err
	}
	if err := s.guard.DenySelfDelete(principal, id); err != nil {
		return err
	}

	return s.db.Delete(&user).Error
}
