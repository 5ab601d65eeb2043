package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"meal-planner-be/internal/entities"
)

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// BuildWeeklyPlanPDF renders the weekly selection as a one-page plan,
// assigning meals to weekdays in the order given.
func BuildWeeklyPlanPDF(meals []*entities.Meal, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Weekly Meal Plan", false)
	pdf.AddPage()

	// Core fonts are cp1252; text is translated from UTF-8 before drawing.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Weekly Meal Plan")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", generatedAt.UTC().Format("2006-01-02 15:04 MST")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(30, 8, "Day", "B", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Meal", "B", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Ingredients", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i, meal := range meals {
		day := ""
		if i < len(weekdays) {
			day = weekdays[i]
		}
		pdf.CellFormat(30, 7, day, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, tr(meal.Name), "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 7, tr(strings.Join(meal.Ingredients, ", ")), "", "L", false)
		if meal.URL != "" {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(30, 5, "", "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5, tr(meal.URL), "", 1, "L", false, 0, meal.URL)
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render weekly plan: %w", err)
	}
	return buf.Bytes(), nil
}
