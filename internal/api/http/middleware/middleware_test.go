package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/pkg/constants"
	"github.com/Alijeyrad/dentclinic/pkg/reqctx"
)

type fakeClinics struct {
	active map[uuid.UUID]bool
	err    error
}

func (f fakeClinics) IsActive(_ context.Context, id uuid.UUID) (bool, error) {
	return f.active[id], f.err
}

func TestClinicHeader(t *testing.T) {
	activeID := uuid.New()

	tests := []struct {
		name   string
		header string
		err    error
		want   int
	}{
		{"missing", "", nil, fiber.StatusBadRequest},
		{"malformed", "clinic-1", nil, fiber.StatusBadRequest},
		{"unknown", uuid.NewString(), nil, fiber.StatusNotFound},
		{"store failure", activeID.String(), errors.New("db down"), fiber.StatusInternalServerError},
		{"active", activeID.String(), nil, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ClinicHeader(fakeClinics{active: map[uuid.UUID]bool{activeID: true}, err: tt.err}))
			app.Get("/", func(c fiber.Ctx) error {
				fromLocals, ok := ClinicIDFromFiber(c)
				fromCtx, ctxOK := reqctx.ClinicIDFromContext(c.Context())
				if !ok || !ctxOK || fromLocals != activeID || fromCtx != activeID {
					return c.SendStatus(fiber.StatusTeapot)
				}
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(constants.HeaderClinicID, tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString(reqctx.RequestIDFromContext(c.Context()))
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got := resp.Header.Get(HeaderRequestID); got != "req-123" {
		t.Errorf("echoed id = %q", got)
	}

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if _, err := uuid.Parse(resp.Header.Get(HeaderRequestID)); err != nil {
		t.Errorf("generated id %q is not a uuid", resp.Header.Get(HeaderRequestID))
	}
}
