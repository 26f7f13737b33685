package helper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"hostelhub_backend/internals/helpers/apperror"
)

func errorApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return FromError(c, err) })
	return app
}

func call(t *testing.T, app *fiber.App) (int, ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestFromErrorHidesUnknownErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	driverErr := errors.New(`ERROR: relation "rooms" does not exist (SQLSTATE 42P01)`)
	code, body := call(t, errorApp(fmt.Errorf("list rooms: %w", driverErr)))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL_ERROR", body.ErrorCode)
	assert.Equal(t, fiber.ErrInternalServerError.Message, body.Message)
	assert.NotContains(t, body.Message, "relation")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "relation")
}

func TestFromErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		want string
	}{
		{"not found", apperror.NotFound("Room", 7), http.StatusNotFound, apperror.CodeNotFound},
		{"business rule", apperror.CapacityExceeded("101"), http.StatusBadRequest, apperror.CodeCapacityExceeded},
		{"fiber error", fiber.NewError(http.StatusBadRequest, "invalid status"), http.StatusBadRequest, "BAD_REQUEST"},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "TIMEOUT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := call(t, errorApp(tc.err))
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.want, body.ErrorCode)
		})
	}
}
