package config

import (
	"bytes"
	"campuscook/domain"
	"campuscook/entities"
	"campuscook/internal/api/presenters"
	"campuscook/internal/utils"
	"campuscook/internal/utils/testdb"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testdb.New(t)
	app, err := NewApp(db, utils.Config{
		AppEnv:        "test",
		JWTSecret:     "test-secret",
		JWTExpiresIn:  "1h",
		BcryptRounds:  "4",
		RateLimitMax:  "0",
		LogFile:       os.DevNull,
		CORSOrigin:    "http://localhost:3001",
		AdminName:     "Root",
		AdminEmail:    "root@campuscook.test",
		AdminPassword: "rootpassword",
	})
	require.NoError(t, err)
	return app, db
}

// call sends body as JSON and decodes the response into out when out is non-nil.
func call(t *testing.T, app *fiber.App, method, path, token string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func signup(t *testing.T, app *fiber.App, name, email string) domain.AuthResponse {
	t.Helper()
	var res domain.AuthResponse
	status := call(t, app, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name": name, "email": email, "password": "password123",
	}, &res)
	require.Equal(t, fiber.StatusCreated, status)
	return res
}

func validRecipe() fiber.Map {
	return fiber.Map{
		"title":       "Garlic fried rice",
		"description": "Leftover rice, upgraded",
		"ingredients": []string{"rice", "garlic", "egg"},
		"steps":       []string{"fry garlic", "add rice", "add egg"},
		"category":    "dinner",
		"difficulty":  "easy",
		"prep_time":   15,
	}
}

func TestSignupLoginRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	registered := signup(t, app, "Ann", "ann@x.com")
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "Ann", registered.User.Name)
	assert.Equal(t, domain.RoleUser, registered.User.Role)

	var login domain.AuthResponse
	status := call(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "ann@x.com", "password": "password123",
	}, &login)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEqual(t, registered.Token, login.Token)
	assert.Equal(t, registered.User.ID, login.User.ID)

	var me domain.MeResponse
	status = call(t, app, fiber.MethodGet, "/api/auth/me", login.Token, nil, &me)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, registered.User.ID, me.User.ID)
	assert.Equal(t, "ann@x.com", me.User.Email)

	var errBody presenters.ErrorBody
	status = call(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "ann@x.com", "password": "wrong-password",
	}, &errBody)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Authentication Error", errBody.Error)
	assert.Equal(t, domain.ErrInvalidCredentials.Error(), errBody.Message)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app, db := newTestApp(t)
	signup(t, app, "Ann", "ann@x.com")

	var errBody presenters.ErrorBody
	status := call(t, app, fiber.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name": "Other Ann", "email": "ANN@x.com", "password": "password123",
	}, &errBody)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Conflict", errBody.Error)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Where("email = ?", "ann@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSignupRejectsUnhashablePasswordAndOddEmails(t *testing.T) {
	app, db := newTestApp(t)

	bodies := []fiber.Map{
		{"name": "Ann", "email": "ann@x.com", "password": strings.Repeat("p", 80)},
		{"name": "Ann", "email": "Ann <ann@x.com>", "password": "password123"},
		{"name": "Bob", "email": "bob@localhost", "password": "password123"},
	}
	for _, body := range bodies {
		var errBody presenters.ErrorBody
		status := call(t, app, fiber.MethodPost, "/api/auth/signup", "", body, &errBody)
		assert.Equal(t, fiber.StatusBadRequest, status, body["email"])
		assert.Equal(t, domain.KindValidation.Category(), errBody.Error)
	}

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Where("role = ?", domain.RoleUser).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecipeCreateThenFetch(t *testing.T) {
	app, _ := newTestApp(t)
	ann := signup(t, app, "Ann", "ann@x.com")

	var created struct {
		Recipe domain.Recipe `json:"recipe"`
	}
	status := call(t, app, fiber.MethodPost, "/api/recipes", ann.Token, validRecipe(), &created)
	require.Equal(t, fiber.StatusCreated, status)
	require.NotEmpty(t, created.Recipe.ID)

	var fetched struct {
		Recipe domain.RecipeDetail `json:"recipe"`
	}
	status = call(t, app, fiber.MethodGet, "/api/recipes/"+created.Recipe.ID, "", nil, &fetched)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Garlic fried rice", fetched.Recipe.Title)
	assert.Equal(t, []string{"rice", "garlic", "egg"}, fetched.Recipe.Ingredients)
	assert.Equal(t, []string{"fry garlic", "add rice", "add egg"}, fetched.Recipe.Steps)
	assert.Equal(t, "Ann", fetched.Recipe.Author.Name)
	assert.False(t, fetched.Recipe.IsFavorited)

	var list domain.RecipeListResponse
	status = call(t, app, fiber.MethodGet, "/api/recipes?search=garlic", "", nil, &list)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, list.Recipes, 1)
	assert.Equal(t, int64(1), list.Pagination.TotalRecipes)

	status = call(t, app, fiber.MethodPost, "/api/recipes", "", validRecipe(), nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRecipeCategoryMustExist(t *testing.T) {
	app, db := newTestApp(t)
	ann := signup(t, app, "Ann", "ann@x.com")

	body := validRecipe()
	body["category"] = "NotReal"
	var errBody presenters.ErrorBody
	status := call(t, app, fiber.MethodPost, "/api/recipes", ann.Token, body, &errBody)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation Error", errBody.Error)

	var count int64
	require.NoError(t, db.Model(&entities.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecipeOwnership(t *testing.T) {
	app, _ := newTestApp(t)
	ann := signup(t, app, "Ann", "ann@x.com")
	bob := signup(t, app, "Bob", "bob@x.com")

	var created struct {
		Recipe domain.Recipe `json:"recipe"`
	}
	require.Equal(t, fiber.StatusCreated, call(t, app, fiber.MethodPost, "/api/recipes", ann.Token, validRecipe(), &created))
	path := "/api/recipes/" + created.Recipe.ID

	var errBody presenters.ErrorBody
	status := call(t, app, fiber.MethodPut, path, bob.Token, fiber.Map{"title": "Hijacked recipe"}, &errBody)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Authorization Error", errBody.Error)
	assert.Equal(t, fiber.StatusForbidden, call(t, app, fiber.MethodDelete, path, bob.Token, nil, nil))

	var fetched struct {
		Recipe domain.RecipeDetail `json:"recipe"`
	}
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, path, "", nil, &fetched))
	assert.Equal(t, "Garlic fried rice", fetched.Recipe.Title)

	var admin domain.AuthResponse
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "root@campuscook.test", "password": "rootpassword",
	}, &admin))
	assert.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodPut, path, admin.Token, fiber.Map{"title": "Moderated title"}, nil))
	assert.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodDelete, path, ann.Token, nil, nil))
	assert.Equal(t, fiber.StatusNotFound, call(t, app, fiber.MethodGet, path, "", nil, nil))
}

func TestRatingsAndFavorites(t *testing.T) {
	app, _ := newTestApp(t)
	ann := signup(t, app, "Ann", "ann@x.com")
	bob := signup(t, app, "Bob", "bob@x.com")

	var created struct {
		Recipe domain.Recipe `json:"recipe"`
	}
	require.Equal(t, fiber.StatusCreated, call(t, app, fiber.MethodPost, "/api/recipes", ann.Token, validRecipe(), &created))
	id := created.Recipe.ID

	assert.Equal(t, fiber.StatusCreated, call(t, app, fiber.MethodPost, "/api/ratings/"+id, bob.Token, fiber.Map{"rating": 3}, nil))
	var updated domain.RatingResponse
	assert.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodPost, "/api/ratings/"+id, bob.Token, fiber.Map{"rating": 5, "review": "great"}, &updated))
	assert.Equal(t, 5, updated.Rating.Rating)
	assert.Equal(t, fiber.StatusCreated, call(t, app, fiber.MethodPost, "/api/ratings/"+id, ann.Token, fiber.Map{"rating": 4}, nil))
	assert.Equal(t, fiber.StatusBadRequest, call(t, app, fiber.MethodPost, "/api/ratings/"+id, ann.Token, fiber.Map{"rating": 4.5}, nil))
	assert.Equal(t, fiber.StatusBadRequest, call(t, app, fiber.MethodPost, "/api/ratings/"+id, ann.Token, fiber.Map{"rating": 9}, nil))

	var ratings domain.RecipeRatingsResponse
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, "/api/ratings/recipe/"+id, "", nil, &ratings))
	assert.Equal(t, int64(2), ratings.TotalRatings)
	assert.Equal(t, 4.5, ratings.AverageRating)

	assert.Equal(t, fiber.StatusCreated, call(t, app, fiber.MethodPost, "/api/favorites/"+id, bob.Token, nil, nil))
	assert.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodPost, "/api/favorites/"+id, bob.Token, nil, nil))

	var detail struct {
		Recipe domain.RecipeDetail `json:"recipe"`
	}
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, "/api/recipes/"+id, bob.Token, nil, &detail))
	assert.True(t, detail.Recipe.IsFavorited)
	assert.Equal(t, 4.5, detail.Recipe.AverageRating)

	var favorites domain.FavoritesResponse
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, "/api/favorites", bob.Token, nil, &favorites))
	require.Len(t, favorites.Recipes, 1)

	assert.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodDelete, "/api/favorites/"+id, bob.Token, nil, nil))
	assert.Equal(t, fiber.StatusNotFound, call(t, app, fiber.MethodDelete, "/api/favorites/"+id, bob.Token, nil, nil))
}

func TestAdminDashboard(t *testing.T) {
	app, _ := newTestApp(t)
	ann := signup(t, app, "Ann", "ann@x.com")

	var errBody presenters.ErrorBody
	status := call(t, app, fiber.MethodGet, "/api/admin/dashboard", ann.Token, nil, &errBody)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, domain.MessageUserNotAllowed, errBody.Message)

	var admin domain.AuthResponse
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "root@campuscook.test", "password": "rootpassword",
	}, &admin))
	assert.Equal(t, domain.RoleAdmin, admin.User.Role)

	var dashboard domain.DashboardResponse
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, "/api/admin/dashboard", admin.Token, nil, &dashboard))
	assert.Equal(t, int64(2), dashboard.Statistics.TotalUsers)
	assert.NotNil(t, dashboard.RecentRecipes)
}

func TestHealthCategoriesAndNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/health", "/api/health"} {
		var health map[string]string
		require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, path, "", nil, &health))
		assert.Equal(t, "ok", health["status"])
	}

	var categories domain.CategoriesResponse
	require.Equal(t, fiber.StatusOK, call(t, app, fiber.MethodGet, "/api/categories", "", nil, &categories))
	assert.Len(t, categories.Categories, len(domain.DefaultCategories))

	var errBody presenters.ErrorBody
	assert.Equal(t, fiber.StatusNotFound, call(t, app, fiber.MethodGet, "/api/nothing-here", "", nil, &errBody))
	assert.Equal(t, "Not Found", errBody.Error)
	assert.Equal(t, domain.MessageRouteNotFound, errBody.Message)

	assert.Equal(t, fiber.StatusBadRequest, call(t, app, fiber.MethodGet, "/api/recipes/not-a-uuid", "", nil, nil))
}
