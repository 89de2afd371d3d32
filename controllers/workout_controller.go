package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iCodeLakshay/fit-tracker-backend/middlewares"
	"github.com/iCodeLakshay/fit-tracker-backend/models"
	"github.com/iCodeLakshay/fit-tracker-backend/services"

	"github.com/gin-gonic/gin"
)

type WorkoutController struct {
	Workouts *services.WorkoutService
}

func NewWorkoutController(workouts *services.WorkoutService) *WorkoutController {
	return &WorkoutController{Workouts: workouts}
}

func (w *WorkoutController) GetAllWorkouts(c *gin.Context) {
	workouts, err := w.Workouts.List(middlewares.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching workouts"})
		return
	}
	c.JSON(http.StatusOK, workouts)
}

type WorkoutInput struct {
	UserID      uint      `json:"userId" binding:"required"`
	WorkoutName string    `json:"workoutName" binding:"required"`
	BodyPart    string    `json:"bodyPart" binding:"required"`
	Sets        int       `json:"sets" binding:"required"`
	Reps        int       `json:"reps" binding:"required"`
	Weight      float64   `json:"weight" binding:"required"`
	Date        time.Time `json:"date"`
}

func (w *WorkoutController) CreateWorkout(c *gin.Context) {
	var input WorkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	workout := models.Workout{
		UserID:      input.UserID,
		WorkoutName: input.WorkoutName,
		BodyPart:    input.BodyPart,
		Sets:        input.Sets,
		Reps:        input.Reps,
		Weight:      input.Weight,
		Date:        input.Date,
	}

	if err := w.Workouts.Create(&workout); err != nil {
		if errors.Is(err, services.ErrOwnerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating workout"})
		return
	}

	c.JSON(http.StatusCreated, workout)
}

func (w *WorkoutController) UpdateWorkout(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Workout not found"})
		return
	}

	var input services.WorkoutUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	workout, err := w.Workouts.Update(uint(id), middlewares.GetUserID(c), input)
	if err != nil {
		if errors.Is(err, services.ErrWorkoutNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Workout not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating workout"})
		return
	}

	c.JSON(http.StatusOK, workout)
}

func (w *WorkoutController) DeleteWorkout(c *gin.Context) {
	id, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		// Unresolvable ids read the same as already-deleted ones.
		c.JSON(http.StatusOK, gin.H{"message": "Workout deleted successfully", "workout": nil})
		return
	}

	workout, err := w.Workouts.Delete(uint(id), middlewares.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting workout"})
		return
	}

	if workout == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Workout deleted successfully", "workout": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted successfully", "workout": workout})
}
