package statistics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/api/v1/statistics"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/services"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/state"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/store"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewMemoryStore()
	c, err := state.NewContainer(s, zap.NewNop())
	assert.NoError(t, err)
	services.AppState, services.AppStore = c, s
	t.Cleanup(func() { c.Close() })

	c.AddRecord(models.MealRecord{ID: "r-1", UserID: "u-1", UserName: "山田太郎",
		UserGroup: "A型", Date: "2025-04-01", EatingRatio: 8, Price: 300})

	r := gin.New()
	statistics.RegisterRoutes(r.Group("/"))
	return r
}

func TestDailyRejectsMalformedBounds(t *testing.T) {
	r := setupRouter(t)

	for _, query := range []string{"from=garbage", "to=2025/04/01", "from=2025-04-01&to=x"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/stats/daily?"+query, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.Contains(t, w.Body.String(), "日付の形式が不正です")
	}
}

func TestDailyValidBounds(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/stats/daily?from=2025-04-01&to=2025-04-30", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2025-04-01")
}

func TestDistributionRejectsMalformedBounds(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/stats/distribution?from=garbage", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
