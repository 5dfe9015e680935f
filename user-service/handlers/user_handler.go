package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"user-service-backend/shared/database/models"
	utils "user-service-backend/shared/utils/auth"
	"user-service-backend/shared/utils/query"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// UserResponse represents user data for API responses
type UserResponse struct {
	ID        uint      `json:"id"`
	UUID      uuid.UUID `json:"uuid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleID    int       `json:"role_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// CreateUserRequest represents request body for creating user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest represents request body for updating user
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateUserByUUIDRequest carries the target uuid alongside the fields
type UpdateUserByUUIDRequest struct {
	UUID  string `json:"uuid" binding:"required,uuid"`
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UUIDRequest selects a user by uuid in the request body
type UUIDRequest struct {
	UUID string `json:"uuid" binding:"required,uuid"`
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		UUID:      user.UUID,
		Name:      user.Name,
		Email:     user.Email,
		RoleID:    user.RoleID,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateUser creates a new user account
// @Summary Create user
// @Description Register a new user with the default USER role
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User data"
// @Success 201 {object} handlers.UserResponse "Created user"
// @Failure 400 {object} map[string]string "Invalid request or email in use"
// @Router /users/create [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create user"})
		return
	}

	user := models.User{
		UUID:     uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		RoleID:   models.RoleUser,
		IsActive: true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create user"})
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(&user))
}

// GetUsers retrieves all users with pagination
// @Summary Get all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} map[string]interface{} "Users with pagination"
// @Router /users/get [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	params := query.ParseListParams(c)

	base := h.db.Model(&models.User{}).Where("is_deleted = ?", false)
	base = query.ApplySearch(base, params.Search, []string{"name", "email"})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not retrieve users"})
		return
	}

	allowedSortFields := map[string]string{
		"id":         "id",
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
	}

	var users []models.User
	listQuery := query.ApplyPagination(query.ApplySort(base, params, allowedSortFields), params)
	if err := listQuery.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not retrieve users"})
		return
	}

	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": query.BuildPaginationResponse(params, total),
	})
}

// GetUserByID retrieves a user by numeric ID
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} handlers.UserResponse "User"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/get/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	var user models.User
	if err := h.db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(&user))
}

// GetUserByUUID retrieves a user by UUID
// @Summary Get user by UUID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "User UUID"
// @Success 200 {object} handlers.UserResponse "User"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/get-uuid/{uuid} [get]
func (h *UserHandler) GetUserByUUID(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user UUID"})
		return
	}

	var user models.User
	if err := h.db.Where("uuid = ? AND is_deleted = ?", userUUID, false).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(&user))
}

// UpdateUser updates a user by numeric ID
// @Summary Update user by ID
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "Fields to update"
// @Success 200 {object} handlers.UserResponse "Updated user"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/update/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	h.applyUserUpdate(c, &user, req.Name, req.Email)
}

// UpdateUserByUUID updates a user selected by the uuid in the body
// @Summary Update user by UUID
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UpdateUserByUUIDRequest true "Target uuid and fields to update"
// @Success 200 {object} handlers.UserResponse "Updated user"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/update-uuid/ [put]
func (h *UserHandler) UpdateUserByUUID(c *gin.Context) {
	var req UpdateUserByUUIDRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Where("uuid = ? AND is_deleted = ?", req.UUID, false).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	h.applyUserUpdate(c, &user, req.Name, req.Email)
}

func (h *UserHandler) applyUserUpdate(c *gin.Context, user *models.User, name, email string) {
	if name != "" {
		user.Name = name
	}
	if email != "" && email != user.Email {
		var existing models.User
		if err := h.db.Where("email = ? AND id <> ?", email, user.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update user"})
			return
		}
		user.Email = email
	}

	if err := h.db.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update user"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser soft deletes a user by numeric ID
// @Summary Delete user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/delete/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	h.softDelete(c, "id = ?", id)
}

// DeleteUserByUUID soft deletes a user selected by the uuid in the body
// @Summary Delete user by UUID
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UUIDRequest true "Target uuid"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/delete-uuid/ [delete]
func (h *UserHandler) DeleteUserByUUID(c *gin.Context) {
	var req UUIDRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	h.softDelete(c, "uuid = ?", req.UUID)
}

func (h *UserHandler) softDelete(c *gin.Context, query string, arg interface{}) {
	result := h.db.Model(&models.User{}).
		Where(query, arg).
		Where("is_deleted = ?", false).
		Update("is_deleted", true)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// ToggleUserActivity flips the active flag of a user by numeric ID
// @Summary Toggle user activity by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} handlers.UserResponse "Updated user"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/toggle/useractivity/{id} [patch]
func (h *UserHandler) ToggleUserActivity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	h.toggleActivity(c, "id = ?", id)
}

// ToggleUserActivityByUUID flips the active flag of a user selected by the uuid in the body
// @Summary Toggle user activity by UUID
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UUIDRequest true "Target uuid"
// @Success 200 {object} handlers.UserResponse "Updated user"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/toggle-uuid/useractivity/ [patch]
func (h *UserHandler) ToggleUserActivityByUUID(c *gin.Context) {
	var req UUIDRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	h.toggleActivity(c, "uuid = ?", req.UUID)
}

func (h *UserHandler) toggleActivity(c *gin.Context, query string, arg interface{}) {
	var user models.User
	if err := h.db.Where(query, arg).Where("is_deleted = ?", false).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	user.IsActive = !user.IsActive
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update user"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(&user))
}
