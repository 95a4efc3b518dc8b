package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookstore-api/internal/application/auth"
	"github.com/jhoicas/bookstore-api/internal/application/sales"
	"github.com/jhoicas/bookstore-api/internal/application/usecase"
	"github.com/jhoicas/bookstore-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SaleUC      *sales.SaleUseCase
	AuthorUC    *usecase.AuthorUseCase
	EditorialUC *usecase.EditorialUseCase
	CategoryUC  *usecase.CategoryUseCase
	BookUC      *usecase.BookUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
// Las rutas fijas (/name, /search, ...) van antes de /:id.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth (register y login públicos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/me", requireAuth, authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Log)
	salesGroup.Get("/", saleHandler.Index)
	salesGroup.Post("/", saleHandler.Store)
	salesGroup.Get("/search", saleHandler.Show)
	salesGroup.Delete("/delete", saleHandler.Delete)
	salesGroup.Get("/user", saleHandler.ShowByUser)
	salesGroup.Get("/receipt", saleHandler.Receipt)

	// Authors
	authors := protected.Group("/authors")
	authorHandler := NewAuthorHandler(deps.AuthorUC)
	authors.Get("/", authorHandler.List)
	authors.Post("/", authorHandler.Create)
	authors.Get("/name", authorHandler.ByName)
	authors.Get("/last_name", authorHandler.ByLastName)
	authors.Get("/nationality", authorHandler.ByNationality)
	authors.Get("/:id", authorHandler.GetByID)
	authors.Put("/:id", authorHandler.Update)
	authors.Delete("/:id", authorHandler.Delete)

	// Editorials
	editorials := protected.Group("/editorials")
	editorialHandler := NewEditorialHandler(deps.EditorialUC)
	editorials.Get("/", editorialHandler.List)
	editorials.Post("/", editorialHandler.Create)
	editorials.Get("/name", editorialHandler.ByName)
	editorials.Get("/country", editorialHandler.ByCountry)
	editorials.Get("/:id", editorialHandler.GetByID)
	editorials.Put("/:id", editorialHandler.Update)
	editorials.Delete("/:id", editorialHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/name", categoryHandler.ByName)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Books
	books := protected.Group("/books")
	bookHandler := NewBookHandler(deps.BookUC)
	books.Get("/", bookHandler.List)
	books.Post("/", bookHandler.Create)
	books.Get("/author", bookHandler.ByAuthor)
	books.Get("/editorial", bookHandler.ByEditorial)
	books.Get("/category", bookHandler.ByCategory)
	books.Get("/filters", bookHandler.Filters)
	books.Get("/title", bookHandler.ByTitle)
	books.Post("/search", bookHandler.Search)
	books.Get("/random", bookHandler.Random)
	books.Put("/:id", bookHandler.Update)
	books.Delete("/:id", bookHandler.Delete)
}
