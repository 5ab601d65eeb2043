package controllers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"meal-planner-be/internal/service"
)

const qrCodeSize = 256

type QRCodeController struct {
	mealService service.MealService
	logger      *slog.Logger
}

func NewQRCodeController(mealService service.MealService, logger *slog.Logger) *QRCodeController {
	return &QRCodeController{
		mealService: mealService,
		logger:      loggerOrDiscard(logger),
	}
}

// GenerateQRCode handles GET /meals/:id/qrcode and encodes the meal's recipe URL
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	id, err := mealID(c)
	if err != nil {
		respondError(c, qc.logger, err, "Failed to generate QR code")
		return
	}

	meal, err := qc.mealService.GetMeal(c.Request.Context(), id)
	if err != nil {
		respondError(c, qc.logger, err, "Failed to fetch meal")
		return
	}

	qrCode, err := qrcode.New(meal.URL, qrcode.Medium)
	if err != nil {
		respondError(c, qc.logger, fmt.Errorf("encode qr code: %w", err), "Failed to generate QR code")
		return
	}

	pngData, err := qrCode.PNG(qrCodeSize)
	if err != nil {
		respondError(c, qc.logger, fmt.Errorf("render qr code: %w", err), "Failed to generate QR code image")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=meal-%d.png", meal.ID))
	c.Data(http.StatusOK, "image/png", pngData)
}
