package controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardtag/GuardTag/app/models"
)

// Session issuance needs the Redis store; these tests cover the
// credential checks that run before any session is touched.
func TestHandleLoginRejections(t *testing.T) {
	db := setupTestDB(t)
	ac := NewAuthController(db)

	app := fiber.New()
	app.Post("/api/admin/login", ac.HandleLogin)

	admin, err := models.CreateUser("Administrator", "admin@guardtag.test", "correct-horse", models.ROLE_ADMIN)
	require.NoError(t, err)
	require.NoError(t, db.Create(admin).Error)

	operator, err := models.CreateUser("Operator", "operator@guardtag.test", "correct-horse", models.ROLE_USER)
	require.NoError(t, err)
	require.NoError(t, db.Create(operator).Error)

	tests := []struct {
		name string
		body fiber.Map
		want int
	}{
		{"missing fields", fiber.Map{"email": "admin@guardtag.test"}, fiber.StatusBadRequest},
		{"unknown email", fiber.Map{"email": "nobody@guardtag.test", "password": "correct-horse"}, fiber.StatusUnauthorized},
		{"wrong password", fiber.Map{"email": "admin@guardtag.test", "password": "wrong"}, fiber.StatusUnauthorized},
		{"non-admin account", fiber.Map{"email": "operator@guardtag.test", "password": "correct-horse"}, fiber.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/admin/login", tc.body), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestHandleLoginDisabledAccount(t *testing.T) {
	db := setupTestDB(t)
	ac := NewAuthController(db)

	app := fiber.New()
	app.Post("/api/admin/login", ac.HandleLogin)

	disabled, err := models.CreateUser("Former Admin", "former@guardtag.test", "correct-horse", models.ROLE_ADMIN)
	require.NoError(t, err)
	disabled.Status = models.STATUS_DISABLED
	require.NoError(t, db.Create(disabled).Error)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/admin/login", fiber.Map{
		"email":    "former@guardtag.test",
		"password": "correct-horse",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
