package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"library-api/model"
)

type ReaderController struct {
	DB  *gorm.DB
	Log *zap.Logger
}

type createReaderRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

func (rc *ReaderController) Create(c *fiber.Ctx) error {
	var req createReaderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validationErrors(err)})
	}

	reader := model.Reader{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	// a duplicate email trips the unique index and surfaces as a 500
	if err := rc.DB.Create(&reader).Error; err != nil {
		rc.Log.Error("failed to add reader", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error while adding reader"})
	}

	rc.Log.Info("reader added", zap.String("name", reader.Name))
	return c.JSON(fiber.Map{"message": "reader added", "reader": reader})
}
