package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/iCodeLakshay/fit-tracker-backend/middlewares"
	"github.com/iCodeLakshay/fit-tracker-backend/models"
	"github.com/iCodeLakshay/fit-tracker-backend/services"
	"github.com/iCodeLakshay/fit-tracker-backend/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// profileResponse decorates the user with a derived BMI category. Stored
// metrics are returned exactly as persisted.
type profileResponse struct {
	*models.User
	BMICategory string `json:"bmiCategory,omitempty"`
}

// GetProfile resolves the target from the :id parameter when present,
// falling back to the authenticated caller's identity.
func (u *UserController) GetProfile(c *gin.Context) {
	var id uint
	if param := c.Param("id"); param != "" {
		parsed, err := strconv.ParseUint(param, 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		id = uint(parsed)
	} else {
		id = middlewares.GetUserID(c)
	}

	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}

	user, err := u.Users.GetProfile(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching profile"})
		return
	}

	resp := profileResponse{User: user}
	if user.BMI > 0 {
		resp.BMICategory = utils.BMICategory(user.BMI)
	}
	c.JSON(http.StatusOK, resp)
}

type CreateUserInput struct {
	Username string  `json:"username" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	BMI      float64 `json:"bmi"`
}

// CreateUser is the admin-only raw creation path. No hashing happens here;
// the route is gated by the admin key middleware.
func (u *UserController) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Weight:   input.Weight,
		Height:   input.Height,
		BMI:      input.BMI,
	}

	if err := u.Users.Create(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

type BodyMetricsInput struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	BMI    float64 `json:"bmi"`
}

func (u *UserController) UpdateBodyMetrics(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var input BodyMetricsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := u.Users.UpdateBodyMetrics(uint(id), input.Weight, input.Height, input.BMI)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating metrics"})
		return
	}

	c.JSON(http.StatusOK, user)
}
