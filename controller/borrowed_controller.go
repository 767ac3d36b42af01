package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"library-api/cache"
	"library-api/model"
)

type BorrowedController struct {
	DB    *gorm.DB
	Cache *cache.BorrowedCache
	Log   *zap.Logger
}

// List serves the open-loans snapshot through the cache.
func (bc *BorrowedController) List(c *fiber.Ctx) error {
	ctx := c.Context()

	items, ok, err := bc.Cache.Get(ctx)
	if err != nil {
		// a broken cache degrades to a miss
		bc.Log.Warn("cache read failed", zap.Error(err))
	}
	if ok {
		return c.JSON(items)
	}

	if err := bc.DB.Where("return_date IS NULL").Find(&items).Error; err != nil {
		bc.Log.Error("failed to fetch borrowed books", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error while fetching borrowed books"})
	}
	if items == nil {
		items = []model.BorrowedBook{}
	}
	if err := bc.Cache.Set(ctx, items); err != nil {
		bc.Log.Warn("cache write failed", zap.Error(err))
	}

	userID, _ := c.Locals("user_id").(uint)
	bc.Log.Info("borrowed books listed", zap.Uint("user_id", userID))
	return c.JSON(items)
}

type borrowRequest struct {
	BookID   *uint `json:"book_id" validate:"required"`
	ReaderID *uint `json:"reader_id" validate:"required"`
}

// Borrow opens a new loan. The book is checked before the reader, so the
// first missing one determines the 404.
func (bc *BorrowedController) Borrow(c *fiber.Ctx) error {
	var req borrowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validationErrors(err)})
	}

	var book model.Book
	if err := bc.DB.First(&book, *req.BookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "book not found"})
		}
		bc.Log.Error("failed to look up book", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error while borrowing book"})
	}
	var reader model.Reader
	if err := bc.DB.First(&reader, *req.ReaderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "reader not found"})
		}
		bc.Log.Error("failed to look up reader", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error while borrowing book"})
	}

	borrowed := model.BorrowedBook{
		BookID:     *req.BookID,
		ReaderID:   *req.ReaderID,
		BorrowDate: time.Now(),
	}
	if err := bc.DB.Create(&borrowed).Error; err != nil {
		bc.Log.Error("failed to borrow book", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error while borrowing book"})
	}

	if err := bc.Cache.Invalidate(c.Context()); err != nil {
		bc.Log.Warn("cache invalidation failed", zap.Error(err))
	}

	userID, _ := c.Locals("user_id").(uint)
	bc.Log.Info("book borrowed",
		zap.Uint("book_id", borrowed.BookID),
		zap.Uint("reader_id", borrowed.ReaderID),
		zap.Uint("user_id", userID),
	)
	return c.JSON(fiber.Map{"message": "book borrowed", "borrowedBook": borrowed})
}

// Return closes an open loan. The update is conditional on the loan still
// being open, so concurrent returns produce exactly one state change.
func (bc *BorrowedController) Return(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a number"})
	}

	var borrowed model.BorrowedBook
	if err := bc.DB.First(&borrowed, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "borrow record not found"})
		}
		bc.Log.Error("failed to look up borrow record", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error while returning book"})
	}
	if borrowed.ReturnDate != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "book already returned"})
	}

	res := bc.DB.Model(&model.BorrowedBook{}).
		Where("id = ? AND return_date IS NULL", borrowed.ID).
		Update("return_date", time.Now())
	if res.Error != nil {
		bc.Log.Error("failed to return book", zap.Error(res.Error))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error while returning book"})
	}
	if res.RowsAffected == 0 {
		// lost the race to a concurrent return
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "book already returned"})
	}

	if err := bc.Cache.Invalidate(c.Context()); err != nil {
		bc.Log.Warn("cache invalidation failed", zap.Error(err))
	}

	adminID, _ := c.Locals("user_id").(uint)
	bc.Log.Info("book returned", zap.Uint("id", borrowed.ID), zap.Uint("admin_id", adminID))
	return c.JSON(fiber.Map{"message": "book returned"})
}
