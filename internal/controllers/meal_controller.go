package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"meal-planner-be/internal/apperrors"
	"meal-planner-be/internal/export"
	"meal-planner-be/internal/models"
	"meal-planner-be/internal/service"
)

type MealController struct {
	mealService service.MealService
	logger      *slog.Logger
}

func NewMealController(mealService service.MealService, logger *slog.Logger) *MealController {
	return &MealController{
		mealService: mealService,
		logger:      loggerOrDiscard(logger),
	}
}

// ListMeals handles GET /meals
func (mc *MealController) ListMeals(c *gin.Context) {
	meals, err := mc.mealService.ListMeals(c.Request.Context())
	if err != nil {
		respondError(c, mc.logger, err, "Failed to fetch meals")
		return
	}

	c.JSON(http.StatusOK, meals)
}

// GetMeal handles GET /meals/:id
func (mc *MealController) GetMeal(c *gin.Context) {
	id, err := mealID(c)
	if err != nil {
		respondError(c, mc.logger, err, "Failed to fetch meal")
		return
	}

	meal, err := mc.mealService.GetMeal(c.Request.Context(), id)
	if err != nil {
		respondError(c, mc.logger, err, "Failed to fetch meal")
		return
	}

	c.JSON(http.StatusOK, meal)
}

// CreateMeal handles POST /meals
func (mc *MealController) CreateMeal(c *gin.Context) {
	var req models.MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, mc.logger, err)
		return
	}

	meal, err := mc.mealService.CreateMeal(c.Request.Context(), &req)
	if err != nil {
		respondError(c, mc.logger, err, "Failed to add meal")
		return
	}

	c.JSON(http.StatusCreated, models.MealResponse{
		Message: "Meal added successfully",
		Meal:    meal,
	})
}

// BulkCreate handles POST /meals/bulk. 201 when every record was stored,
// 207 with per-record errors otherwise.
func (mc *MealController) BulkCreate(c *gin.Context) {
	var records []json.RawMessage
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Meals must be a non-empty array"})
		return
	}

	result, err := mc.mealService.BulkCreate(c.Request.Context(), records)
	if err != nil {
		respondError(c, mc.logger, err, "Failed to add meals")
		return
	}

	if result.Partial() {
		c.JSON(http.StatusMultiStatus, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Weekly handles GET /meals/weekly
func (mc *MealController) Weekly(c *gin.Context) {
	meals, err := mc.mealService.WeeklySelection(c.Request.Context())
	if err != nil {
		respondError(c, mc.logger, err, "Failed to fetch meals")
		return
	}

	c.JSON(http.StatusOK, meals)
}

// WeeklyPDF handles GET /meals/weekly/pdf
func (mc *MealController) WeeklyPDF(c *gin.Context) {
	meals, err := mc.mealService.WeeklySelection(c.Request.Context())
	if err != nil {
		respondError(c, mc.logger, err, "Failed to fetch meals")
		return
	}

	pdf, err := export.BuildWeeklyPlanPDF(meals, time.Now())
	if err != nil {
		respondError(c, mc.logger, err, "Failed to generate weekly plan")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=weekly-plan.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// MarkUsed handles PUT /meals/:id
func (mc *MealController) MarkUsed(c *gin.Context) {
	id, err := mealID(c)
	if err != nil {
		respondError(c, mc.logger, err, "Failed to update meal")
		return
	}

	meal, err := mc.mealService.MarkUsed(c.Request.Context(), id)
	if err != nil {
		respondError(c, mc.logger, err, "Failed to update meal")
		return
	}

	c.JSON(http.StatusOK, models.MealResponse{
		Message: "Meal updated successfully",
		Meal:    meal,
	})
}

func mealID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validationf("Invalid meal id")
	}
	return id, nil
}
