package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"marketapi/internal/service"
)

// Services bundles the domain services the HTTP surface depends on.
type Services struct {
	Categories service.CategoryService
	Locations  service.LocationService
	Items      service.ItemService
	Reviews    service.ReviewService
	Messages   service.MessageService
	Users      service.UserService
}

// RegisterRoutes attaches the HTTP routes to the provided Fiber app. Handlers
// stay thin; every rule lives in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	cats := app.Group("/categories")
	cats.Post("/", CreateCategory(svcs.Categories))
	cats.Get("/", ListCategories(svcs.Categories))
	cats.Get("/:id", GetCategory(svcs.Categories))
	cats.Put("/:id", UpdateCategory(svcs.Categories))
	cats.Patch("/:id", PatchCategory(svcs.Categories))
	cats.Delete("/:id", DeleteCategory(svcs.Categories))

	locs := app.Group("/locations")
	locs.Post("/", CreateLocation(svcs.Locations))
	locs.Get("/", ListLocations(svcs.Locations))
	locs.Get("/:id", GetLocation(svcs.Locations))
	locs.Put("/:id", UpdateLocation(svcs.Locations))
	locs.Patch("/:id", PatchLocation(svcs.Locations))
	locs.Delete("/:id", DeleteLocation(svcs.Locations))

	items := app.Group("/items")
	items.Post("/", CreateItem(svcs.Items))
	items.Get("/", ListItems(svcs.Items))
	items.Get("/my", ListMyItems(svcs.Items))
	items.Get("/user/:id", ListUserItems(svcs.Items))
	items.Get("/:id", GetItem(svcs.Items))
	items.Put("/:id", UpdateItem(svcs.Items))
	items.Patch("/:id", PatchItem(svcs.Items))
	items.Delete("/:id", DeleteItem(svcs.Items))
	items.Post("/:id/photo", UploadItemPhoto(svcs.Items))
	items.Get("/:id/photo-url", GetItemPhotoURL(svcs.Items))

	reviews := app.Group("/reviews")
	reviews.Post("/", CreateReview(svcs.Reviews))
	reviews.Get("/", ListReviews(svcs.Reviews))
	reviews.Get("/item/:id", ListItemReviews(svcs.Reviews))
	reviews.Get("/item/:id/average-rating", GetItemRating(svcs.Reviews))
	reviews.Get("/:id", GetReview(svcs.Reviews))
	reviews.Put("/:id", UpdateReview(svcs.Reviews))
	reviews.Patch("/:id", PatchReview(svcs.Reviews))
	reviews.Delete("/:id", DeleteReview(svcs.Reviews))

	msgs := app.Group("/messages")
	msgs.Post("/", SendMessage(svcs.Messages))
	msgs.Get("/", ListMyMessages(svcs.Messages))
	msgs.Get("/all", ListAllMessages(svcs.Messages))
	msgs.Get("/user/:id", ListUserMessages(svcs.Messages))
	msgs.Get("/:id", GetMessage(svcs.Messages))
	msgs.Put("/:id", UpdateMessage(svcs.Messages))
	msgs.Patch("/:id", PatchMessage(svcs.Messages))
	msgs.Delete("/:id", DeleteMessage(svcs.Messages))

	users := app.Group("/users")
	users.Post("/", RegisterUser(svcs.Users))
	users.Get("/me", GetMe(svcs.Users))
	users.Get("/:id", GetUser(svcs.Users))
	users.Put("/:id", UpdateUser(svcs.Users))
	users.Patch("/:id", PatchUser(svcs.Users))
	users.Delete("/:id", DeleteUser(svcs.Users))
}
