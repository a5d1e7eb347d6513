package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-crm/internal/config"
	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
	"github.com/BruksfildServices01/booking-crm/internal/models"
	"github.com/BruksfildServices01/booking-crm/internal/timezone"
	"github.com/BruksfildServices01/booking-crm/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config

	emailDomainOK func(email string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		db:            db,
		config:        cfg,
		emailDomainOK: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	BusinessName     string `json:"business_name" binding:"required"`
	BusinessSlug     string `json:"business_slug" binding:"required"`
	BusinessPhone    string `json:"business_phone"`
	BusinessAddress  string `json:"business_address"`
	BusinessTimezone string `json:"business_timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var errSlugTaken = httperr.ErrBusiness("slug_taken")

// --------- Handlers ---------

// Register creates a business, its owner and the default working hours in
// one transaction.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.BusinessSlug))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.emailDomainOK(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not look valid.")
		return
	}

	tz := strings.TrimSpace(req.BusinessTimezone)
	if tz == "" {
		tz = timezone.Default()
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Failed to process password.")
		return
	}

	business := models.Business{
		Name:     req.BusinessName,
		Slug:     slug,
		Phone:    req.BusinessPhone,
		Address:  req.BusinessAddress,
		Timezone: tz,
		Active:   true,
	}
	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleOwner,
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Business{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errSlugTaken
		}

		if err := tx.Create(&business).Error; err != nil {
			return err
		}

		user.BusinessID = business.ID
		if err := tx.Omit("Business").Create(&user).Error; err != nil {
			return err
		}

		hours := models.FromAvailability(business.ID, availability.DefaultWorkingHours())
		return tx.Create(&hours).Error
	})

	switch {
	case err == nil:
	case errors.Is(err, errSlugTaken):
		httperr.Conflict(c, "slug_taken", "That slug is already in use.")
		return
	case httperr.IsUniqueViolation(err):
		httperr.Conflict(c, "email_taken", "That e-mail is already registered.")
		return
	default:
		httperr.Internal(c, "failed_to_register", "Failed to create the account.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Failed to issue token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":     userView(&user),
		"business": business,
		"token":    token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Business").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Internal error.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Failed to issue token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     userView(&user),
		"business": user.Business,
		"token":    token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"businessId": user.BusinessID,
		"role":       user.Role,
		"exp":        now.Add(h.config.JWTTTL()).Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"phone":       u.Phone,
		"role":        u.Role,
		"business_id": u.BusinessID,
	}
}
