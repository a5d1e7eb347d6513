package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/infra/repository"
	"github.com/BruksfildServices01/booking-crm/internal/middleware"
	"github.com/BruksfildServices01/booking-crm/internal/models"
	ucAppointment "github.com/BruksfildServices01/booking-crm/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// 2024-07-01 is a Monday.
var monday = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *repository.AppointmentMemoryRepository
	business models.Business
	service  models.Service
	deps     ucAppointment.Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := repository.NewAppointmentMemoryRepository()
	business := repo.AddBusiness(models.Business{
		Name:     "Studio",
		Slug:     "studio",
		Timezone: "UTC",
		Active:   true,
	})
	repo.SetWorkingHours(business.ID, availability.DefaultWorkingHours())

	service := repo.AddService(models.Service{
		BusinessID:  business.ID,
		Name:        "Cut",
		DurationMin: 30,
		Active:      true,
		Category:    "hair",
	})
	repo.AddService(models.Service{
		BusinessID:  business.ID,
		Name:        "Massage",
		DurationMin: 90,
		Active:      true,
		Category:    "body",
	})

	return &fixture{
		repo:     repo,
		business: business,
		service:  service,
		deps: ucAppointment.Deps{
			Repo:  repo,
			Clock: availability.FixedClock(monday),
		},
	}
}

// staff mimics AuthMiddleware for the fixture business.
func (f *fixture) staff() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(42))
		c.Set(middleware.ContextBusinessID, f.business.ID)
		c.Set(middleware.ContextUserRole, models.RoleOwner)
		c.Next()
	}
}

func do(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type errorBody struct {
	Code string `json:"error_code"`
}
