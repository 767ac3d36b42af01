package routes

import (
	"github.com/gofiber/fiber/v2"

	"library-api/controller"
	"library-api/middleware"
)

// Register wires every endpoint with its middleware chain. Authentication
// always runs before the role check.
func Register(
	app *fiber.App,
	ac *controller.AuthController,
	bkc *controller.BookController,
	rc *controller.ReaderController,
	brc *controller.BorrowedController,
	jwtSecret string,
) {
	auth := middleware.AuthRequired(jwtSecret)
	admin := middleware.AdminRequired()

	a := app.Group("/auth")
	a.Post("/register", ac.Register)
	a.Post("/login", ac.Login)

	app.Post("/books", auth, bkc.Create)
	app.Post("/readers", rc.Create)

	b := app.Group("/borrowed")
	b.Get("/", auth, brc.List)
	b.Post("/borrow", auth, brc.Borrow)
	b.Put("/return/:id", auth, admin, brc.Return)
}
