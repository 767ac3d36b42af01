package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"library-api/model"
)

type BookController struct {
	DB  *gorm.DB
	Log *zap.Logger
}

type createBookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Year   *int   `json:"year" validate:"required,gte=0"`
	Genre  string `json:"genre" validate:"required"`
}

func (bc *BookController) Create(c *fiber.Ctx) error {
	var req createBookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validationErrors(err)})
	}

	book := model.Book{
		Title:  req.Title,
		Author: req.Author,
		Year:   *req.Year,
		Genre:  req.Genre,
	}
	if err := bc.DB.Create(&book).Error; err != nil {
		bc.Log.Error("failed to add book", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error while adding book"})
	}

	userID, _ := c.Locals("user_id").(uint)
	bc.Log.Info("book added",
		zap.String("title", book.Title),
		zap.String("author", book.Author),
		zap.Uint("user_id", userID),
	)
	return c.JSON(fiber.Map{"message": "book added", "book": book})
}
