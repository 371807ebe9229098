package handler

import (
	"github.com/gin-gonic/gin"

	"booknook/internal/middleware"
)

// RegisterRoutes wires every route onto the engine. Mutating routes plus
// logout sit behind RequireAuth; everything else is reachable anonymously.
func RegisterRoutes(r *gin.Engine, resolver middleware.Resolver, authHandler *AuthHandler, bookHandler *BookHandler, searchHandler *SearchHandler) {
	r.Use(middleware.Session(resolver))

	r.GET("/", bookHandler.Index)

	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)

	r.GET("/search_book", searchHandler.SearchForm)
	r.POST("/search_book", searchHandler.Search)

	protected := r.Group("", middleware.RequireAuth())
	protected.GET("/add_book", bookHandler.AddBookForm)
	protected.POST("/add_book", bookHandler.AddBook)
	protected.GET("/edit_book/:book_id", bookHandler.EditBookForm)
	protected.POST("/edit_book/:book_id", bookHandler.EditBook)
	protected.POST("/delete_book/:book_id", bookHandler.DeleteBook)
	protected.GET("/logout", authHandler.Logout)
}
