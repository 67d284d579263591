package discussionController

import (
	"github.com/gofiber/fiber/v2"

	"github.com/piotrniepolak/watchtower2-sub003/database"
	"github.com/piotrniepolak/watchtower2-sub003/middleware"
	"github.com/piotrniepolak/watchtower2-sub003/models"
)

// ListDiscussions returns discussions, optionally filtered by sector
func ListDiscussions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("sizePerPage", 20)
	sector := c.Query("sector")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.Discussion{})
	if sector != "" {
		if !models.ValidSector(sector) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown sector!", nil)
		}
		query = query.Where("sector = ?", sector)
	}

	var total int64
	query.Count(&total)

	var discussions []models.Discussion
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&discussions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch discussions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussions fetched!", fiber.Map{
		"totalRecords": total,
		"totalPages":   (total + int64(limit) - 1) / int64(limit),
		"currentPage":  page,
		"discussions":  discussions,
	})
}

// CreateDiscussion starts a new discussion thread
func CreateDiscussion(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCreateDiscussion").(*models.Discussion)

	if err := database.Database.Db.Create(reqData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create discussion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Discussion created!", reqData)
}

// GetDiscussion returns one discussion with its replies
func GetDiscussion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid discussion ID!", nil)
	}

	var discussion models.Discussion
	if err := database.Database.Db.
		Preload("Replies").
		First(&discussion, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussion fetched!", discussion)
}

// CreateReply adds a reply to a discussion and bumps its reply count
func CreateReply(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid discussion ID!", nil)
	}

	var discussion models.Discussion
	if err := database.Database.Db.First(&discussion, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	reply := c.Locals("validatedCreateReply").(*models.DiscussionReply)
	reply.DiscussionID = discussion.ID

	db := database.Database.Db
	if err := db.Create(reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create reply!", nil)
	}

	db.Model(&discussion).Update("reply_count", discussion.ReplyCount+1)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply created!", reply)
}
