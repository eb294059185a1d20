package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketapi/internal/http/middleware"
	"marketapi/internal/model"
	"marketapi/internal/service"
	svcMocks "marketapi/internal/service/mocks"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequestID())
	app.Use(middleware.CurrentUser())
	return app
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestCreateCategoryHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(svcMocks.MockCategoryService)
		app := newTestApp()
		app.Post("/categories", CreateCategory(svc))

		svc.On("Create", mock.Anything, model.CategoryCreate{Name: "books"}).
			Return(&model.Category{ID: 1, Name: "books"}, nil)

		req := httptest.NewRequest("POST", "/categories", jsonBody(t, fiber.Map{"name": "books"}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var cat model.Category
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&cat))
		assert.Equal(t, int64(1), cat.ID)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		svc := new(svcMocks.MockCategoryService)
		app := newTestApp()
		app.Post("/categories", CreateCategory(svc))

		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrCategoryExists)

		req := httptest.NewRequest("POST", "/categories", jsonBody(t, fiber.Map{"name": "books"}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

		var payload errorPayload
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "ALREADY_EXISTS", payload.Error.Code)
		assert.NotEmpty(t, payload.RequestID)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		svc := new(svcMocks.MockCategoryService)
		app := newTestApp()
		app.Post("/categories", CreateCategory(svc))

		req := httptest.NewRequest("POST", "/categories", jsonBody(t, fiber.Map{}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGetCategoryHandler(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := new(svcMocks.MockCategoryService)
		app := newTestApp()
		app.Get("/categories/:id", GetCategory(svc))

		svc.On("Get", mock.Anything, int64(99)).Return(nil, service.ErrCategoryNotFound)

		resp, err := app.Test(httptest.NewRequest("GET", "/categories/99", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := new(svcMocks.MockCategoryService)
		app := newTestApp()
		app.Get("/categories/:id", GetCategory(svc))

		resp, err := app.Test(httptest.NewRequest("GET", "/categories/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestSendMessageHandler(t *testing.T) {
	svc := new(svcMocks.MockMessageService)
	app := newTestApp()
	app.Post("/messages", SendMessage(svc))

	svc.On("Send", mock.Anything, model.MessageCreate{RecipientID: 2, ItemID: 7, Text: "hi"}, int64(41)).
		Return(&model.Message{ID: 1, SenderID: 41, RecipientID: 2, ItemID: 7, Text: "hi"}, nil)

	req := httptest.NewRequest("POST", "/messages",
		jsonBody(t, fiber.Map{"recipient_id": 2, "item_id": 7, "text": "hi"}))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, "41")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestDeleteMessageHandler(t *testing.T) {
	t.Run("forbidden for non-sender", func(t *testing.T) {
		svc := new(svcMocks.MockMessageService)
		app := newTestApp()
		app.Delete("/messages/:id", DeleteMessage(svc))

		svc.On("DeleteAsUser", mock.Anything, int64(5), int64(99)).
			Return(service.ErrMessageAccessDenied)

		req := httptest.NewRequest("DELETE", "/messages/5", nil)
		req.Header.Set(middleware.UserIDHeader, "99")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		var payload errorPayload
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "ACCESS_DENIED", payload.Error.Code)
	})

	t.Run("sender deletes", func(t *testing.T) {
		svc := new(svcMocks.MockMessageService)
		app := newTestApp()
		app.Delete("/messages/:id", DeleteMessage(svc))

		svc.On("DeleteAsUser", mock.Anything, int64(5), int64(41)).Return(nil)

		req := httptest.NewRequest("DELETE", "/messages/5", nil)
		req.Header.Set(middleware.UserIDHeader, "41")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})
}

func TestListReviewsHandler(t *testing.T) {
	t.Run("item filter is passed through", func(t *testing.T) {
		svc := new(svcMocks.MockReviewService)
		app := newTestApp()
		app.Get("/reviews", ListReviews(svc))

		itemID := int64(3)
		svc.On("List", mock.Anything, &model.ReviewFilter{ItemID: &itemID}, 0, service.DefaultLimit).
			Return([]model.Review{{ID: 9, ItemID: 3, UserID: 1, Rating: 4.5}}, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/reviews?item_id=3", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var revs []model.Review
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&revs))
		require.Len(t, revs, 1)
		assert.Equal(t, int64(3), revs[0].ItemID)
		svc.AssertExpectations(t)
	})

	t.Run("no filters means nil filter", func(t *testing.T) {
		svc := new(svcMocks.MockReviewService)
		app := newTestApp()
		app.Get("/reviews", ListReviews(svc))

		svc.On("List", mock.Anything, (*model.ReviewFilter)(nil), 0, service.DefaultLimit).
			Return([]model.Review{}, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/reviews", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("malformed filter is rejected", func(t *testing.T) {
		svc := new(svcMocks.MockReviewService)
		app := newTestApp()
		app.Get("/reviews", ListReviews(svc))

		resp, err := app.Test(httptest.NewRequest("GET", "/reviews?user_id=abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListAllMessagesHandler(t *testing.T) {
	svc := new(svcMocks.MockMessageService)
	app := newTestApp()
	app.Get("/messages/all", ListAllMessages(svc))
	app.Get("/messages/:id", GetMessage(svc))

	svc.On("List", mock.Anything, 10, 20).
		Return([]model.Message{{ID: 1}, {ID: 2}}, nil)

	// The literal segment wins over the :id route.
	resp, err := app.Test(httptest.NewRequest("GET", "/messages/all?skip=10&limit=20", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var msgs []model.Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msgs))
	assert.Len(t, msgs, 2)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestUpdateMessageHandler(t *testing.T) {
	t.Run("rewrites and echoes the message", func(t *testing.T) {
		svc := new(svcMocks.MockMessageService)
		app := newTestApp()
		app.Put("/messages/:id", UpdateMessage(svc))

		text := "sold, sorry"
		svc.On("Update", mock.Anything, int64(5), model.MessageUpdate{Text: &text}).
			Return(&model.Message{ID: 5, Text: text}, nil)

		req := httptest.NewRequest("PUT", "/messages/5", jsonBody(t, fiber.Map{"text": text}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var msg model.Message
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
		assert.Equal(t, text, msg.Text)
		svc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(svcMocks.MockMessageService)
		app := newTestApp()
		app.Put("/messages/:id", UpdateMessage(svc))

		svc.On("Update", mock.Anything, int64(99), mock.Anything).
			Return(nil, service.ErrMessageNotFound)

		req := httptest.NewRequest("PUT", "/messages/99", jsonBody(t, fiber.Map{"text": "x"}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGetItemRatingHandler(t *testing.T) {
	svc := new(svcMocks.MockReviewService)
	app := newTestApp()
	app.Get("/reviews/item/:id/average-rating", GetItemRating(svc))

	svc.On("ItemAverageRating", mock.Anything, int64(3)).Return(4.5, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/reviews/item/3/average-rating", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4.5, body["average_rating"])
}

func TestHealthCheckHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		dbMock.ExpectPing()

		app := newTestApp()
		app.Get("/health", HealthCheck(db))

		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("database down", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		dbMock.ExpectPing().WillReturnError(errors.New("connection refused"))

		app := newTestApp()
		app.Get("/health", HealthCheck(db))

		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestListItemsHandler(t *testing.T) {
	t.Run("passes the query filters through", func(t *testing.T) {
		svc := new(svcMocks.MockItemService)
		app := newTestApp()
		app.Get("/items", ListItems(svc))

		catID := int64(3)
		active := true
		svc.On("List", mock.Anything, &model.ItemFilter{CategoryID: &catID, IsActive: &active}, 0, 20).
			Return([]model.Item{}, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/items?category_id=3&is_active=true&limit=20", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("no filters means nil filter", func(t *testing.T) {
		svc := new(svcMocks.MockItemService)
		app := newTestApp()
		app.Get("/items", ListItems(svc))

		svc.On("List", mock.Anything, (*model.ItemFilter)(nil), 0, service.DefaultLimit).
			Return([]model.Item{}, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/items", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("malformed filter is rejected", func(t *testing.T) {
		svc := new(svcMocks.MockItemService)
		app := newTestApp()
		app.Get("/items", ListItems(svc))

		resp, err := app.Test(httptest.NewRequest("GET", "/items?category_id=abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
