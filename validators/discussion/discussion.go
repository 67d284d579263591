package discussionValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/piotrniepolak/watchtower2-sub003/middleware"
	"github.com/piotrniepolak/watchtower2-sub003/models"
)

// CreateDiscussion validates a new discussion thread request
func CreateDiscussion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Sector string `json:"sector"`
			Author string `json:"author"`
			Title  string `json:"title"`
			Body   string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !models.ValidSector(reqData.Sector) {
			errors["sector"] = "Sector must be defense, health, or energy!"
		}
		if strings.TrimSpace(reqData.Author) == "" {
			errors["author"] = "Author is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if len(reqData.Title) > 200 {
			errors["title"] = "Title must be at most 200 characters!"
		}
		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Body is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateDiscussion", &models.Discussion{
			Sector: reqData.Sector,
			Author: strings.TrimSpace(reqData.Author),
			Title:  strings.TrimSpace(reqData.Title),
			Body:   reqData.Body,
		})
		return c.Next()
	}
}

// CreateReply validates a reply to an existing discussion
func CreateReply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Author string `json:"author"`
			Body   string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Author) == "" {
			errors["author"] = "Author is required!"
		}
		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Body is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateReply", &models.DiscussionReply{
			Author: strings.TrimSpace(reqData.Author),
			Body:   reqData.Body,
		})
		return c.Next()
	}
}
