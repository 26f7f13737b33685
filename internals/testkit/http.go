package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"hostelhub_backend/internals/constants"
	helper "hostelhub_backend/internals/helpers"
)

// Envelope mirrors the JSON shape written by the helper response functions.
type Envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	ErrorCode  string              `json:"error_code"`
	Errors     map[string][]string `json:"errors"`
	Data       json.RawMessage     `json:"data"`
	Pagination *helper.Pagination  `json:"pagination"`
}

// Decode unmarshals Data into out.
func (e Envelope) Decode(t testing.TB, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, out))
}

// App returns a fiber app whose requests carry the given role, and a
// resident id when one is passed, as if the auth middleware had run. JSON
// goes through sonic like the served app.
func App(role string, residentID ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(constants.LocalUserRole, role)
		if len(residentID) > 0 {
			c.Locals(constants.LocalResidentID, residentID[0])
		}
		return c.Next()
	})
	return app
}

// Do sends a JSON request through app.Test and decodes the envelope.
func Do(t testing.TB, app *fiber.App, method, path string, body any) (int, Envelope) {
	t.Helper()
	return DoAs(t, app, "", method, path, body)
}

// DoAs is Do with a bearer token; an empty token sends none.
func DoAs(t testing.TB, app *fiber.App, token, method, path string, body any) (int, Envelope) {
	t.Helper()
	req, err := newRequest(method, path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

// Status sends a request and reports only the status code. It is safe to
// call from goroutines other than the test's own.
func Status(app *fiber.App, method, path string, body any) (int, error) {
	req, err := newRequest(method, path, body)
	if err != nil {
		return 0, err
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func newRequest(method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req, nil
}
