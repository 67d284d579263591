package quizValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/piotrniepolak/watchtower2-sub003/middleware"
	"github.com/piotrniepolak/watchtower2-sub003/models"
)

// SubmitAnswer validates a quiz answer submission
func SubmitAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username      string `json:"username"`
			SelectedIndex *int   `json:"selectedIndex"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Username) == "" {
			errors["username"] = "Username is required!"
		}
		if reqData.SelectedIndex == nil {
			errors["selectedIndex"] = "Selected index is required!"
		} else if *reqData.SelectedIndex < 0 {
			errors["selectedIndex"] = "Selected index must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmitAnswer", &models.QuizResponse{
			Username:      strings.TrimSpace(reqData.Username),
			SelectedIndex: *reqData.SelectedIndex,
		})
		return c.Next()
	}
}
