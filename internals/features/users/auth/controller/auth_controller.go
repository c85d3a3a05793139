package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Tresorbana/school-sub000/internals/configs"
	authDTO "github.com/Tresorbana/school-sub000/internals/features/users/auth/dto"
	authModel "github.com/Tresorbana/school-sub000/internals/features/users/auth/model"
	helper "github.com/Tresorbana/school-sub000/internals/helpers"
	"github.com/Tresorbana/school-sub000/internals/helpers/errs"
)

const accessTokenTTL = 12 * time.Hour

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validator: validator.New()}
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var in authDTO.LoginDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}

	var user authModel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("user_email = ? AND user_is_active", in.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.FromError(c, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(in.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"role":    user.UserRole,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.FromError(c, err)
	}

	return helper.Success(c, "Login successful", authDTO.LoginResponse{
		AccessToken: signed,
		User: authDTO.UserResponse{
			UserID: user.UserID,
			Name:   user.UserName,
			Email:  user.UserEmail,
			Role:   user.UserRole,
		},
	})
}

// GET /api/auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var user authModel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromError(c, errs.NotFound("user not found"))
		}
		return helper.FromError(c, err)
	}

	return helper.Success(c, "OK", authDTO.UserResponse{
		UserID: user.UserID,
		Name:   user.UserName,
		Email:  user.UserEmail,
		Role:   user.UserRole,
	})
}

// POST /api/auth/users (admin only)
func (ctl *AuthController) CreateUser(c *fiber.Ctx) error {
	var in authDTO.CreateUserDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&in); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.FromError(c, err)
	}

	user := authModel.UserModel{
		UserName:     in.Name,
		UserEmail:    in.Email,
		UserPassword: string(hash),
		UserRole:     in.Role,
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		if errs.IsDuplicateKey(err) {
			return helper.FromError(c, errs.Conflict("a user with this email already exists"))
		}
		return helper.FromError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "User created", authDTO.UserResponse{
		UserID: user.UserID,
		Name:   user.UserName,
		Email:  user.UserEmail,
		Role:   user.UserRole,
	})
}
