package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	ok := PingerFunc(func(context.Context) error { return nil })
	down := PingerFunc(func(context.Context) error { return errors.New("connection refused") })

	cases := []struct {
		name   string
		checks map[string]Pinger
		status int
	}{
		{"all up", map[string]Pinger{"database": ok}, fiber.StatusOK},
		{"redis down", map[string]Pinger{"database": ok, "redis": down}, fiber.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/healthz", NewHealthHandler(tc.checks).Health)

			resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body struct {
				Status     string            `json:"status"`
				Components map[string]string `json:"components"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Len(t, body.Components, len(tc.checks))
		})
	}
}
