package routes

import "github.com/gofiber/fiber/v2"

// RegisterDocs serves the OpenAPI document for the HTTP surface.
func RegisterDocs(app *fiber.App) {
	app.Get("/api-docs", func(c *fiber.Ctx) error {
		return c.JSON(openAPIDoc)
	})
}

var openAPIDoc = fiber.Map{
	"openapi": "3.0.0",
	"info": fiber.Map{
		"title":       "Library API",
		"version":     "1.0.0",
		"description": "API for managing a library",
	},
	"paths": fiber.Map{
		"/auth/register": fiber.Map{
			"post": fiber.Map{
				"summary": "Register a user",
				"responses": fiber.Map{
					"201": fiber.Map{"description": "User created"},
					"400": fiber.Map{"description": "Validation error"},
					"500": fiber.Map{"description": "Server error"},
				},
			},
		},
		"/auth/login": fiber.Map{
			"post": fiber.Map{
				"summary": "Log a user in",
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Login successful, token returned"},
					"401": fiber.Map{"description": "Invalid email or password"},
					"500": fiber.Map{"description": "Server error"},
				},
			},
		},
		"/books": fiber.Map{
			"post": fiber.Map{
				"summary": "Add a book",
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Book added"},
					"400": fiber.Map{"description": "Validation error"},
					"500": fiber.Map{"description": "Server error"},
				},
			},
		},
		"/readers": fiber.Map{
			"post": fiber.Map{
				"summary": "Add a reader",
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Reader added"},
					"400": fiber.Map{"description": "Validation error"},
					"500": fiber.Map{"description": "Server error"},
				},
			},
		},
		"/borrowed": fiber.Map{
			"get": fiber.Map{
				"summary": "List borrowed books",
				"responses": fiber.Map{
					"200": fiber.Map{"description": "List of borrowed books"},
					"500": fiber.Map{"description": "Server error"},
				},
			},
		},
		"/borrowed/borrow": fiber.Map{
			"post": fiber.Map{
				"summary": "Lend a book to a reader",
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Book borrowed"},
					"400": fiber.Map{"description": "Validation error"},
					"404": fiber.Map{"description": "Book or reader not found"},
					"500": fiber.Map{"description": "Server error"},
				},
			},
		},
		"/borrowed/return/{id}": fiber.Map{
			"put": fiber.Map{
				"summary": "Return a book",
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Book returned"},
					"400": fiber.Map{"description": "Book already returned or bad id"},
					"404": fiber.Map{"description": "Borrow record not found"},
					"500": fiber.Map{"description": "Server error"},
				},
			},
		},
		"/health": fiber.Map{
			"get": fiber.Map{
				"summary": "Server health check",
				"responses": fiber.Map{
					"200": fiber.Map{"description": "Server is up"},
				},
			},
		},
	},
}
