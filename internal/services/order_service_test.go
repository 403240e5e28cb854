package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/state"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/store"
)

// setupAppState swaps the process-wide state for an empty in-memory
// one and restores the previous state when the test finishes.
func setupAppState(t *testing.T) *state.Container {
	t.Helper()
	prevState, prevStore := AppState, AppStore

	s := store.NewMemoryStore()
	c, err := state.NewContainer(s, zap.NewNop())
	assert.NoError(t, err)
	AppState, AppStore = c, s

	t.Cleanup(func() {
		c.Close()
		AppState, AppStore = prevState, prevStore
	})
	return c
}

func seedUser(t *testing.T, c *state.Container) models.User {
	t.Helper()
	user := models.User{
		ID: "u-1", Name: "山田太郎", Group: "A型", Price: 300,
		IsActive: true, CreatedAt: "2024-04-01", DisplayNumber: 1,
	}
	c.AddUser(user)
	return user
}

func TestPlaceOrderDenormalizesUser(t *testing.T) {
	c := setupAppState(t)
	user := seedUser(t, c)
	SetCurrentMenu("カレーライス", "2025-04-07", "", 300, "和食")

	record, err := PlaceOrder(user.ID, "2025-04-07", "早めに配膳")
	assert.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, user.ID, record.UserID)
	assert.Equal(t, "山田太郎", record.UserName)
	assert.Equal(t, "A型", record.UserGroup)
	assert.Equal(t, 300, record.Price)
	assert.Equal(t, "カレーライス", record.MenuName)
	assert.Equal(t, models.EatingRatioPending, record.EatingRatio)
	assert.Equal(t, "早めに配膳", record.Notes)
	assert.Len(t, c.Records(), 1)
}

func TestPlaceOrderSurvivesRosterEdits(t *testing.T) {
	c := setupAppState(t)
	user := seedUser(t, c)

	record, err := PlaceOrder(user.ID, "2025-04-07", "")
	assert.NoError(t, err)

	user.Name = "山田次郎"
	user.Price = 500
	assert.NoError(t, c.ReplaceUser(user))

	got := c.Records()[0]
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, "山田太郎", got.UserName)
	assert.Equal(t, 300, got.Price)
}

func TestPlaceOrderDuplicateSameDay(t *testing.T) {
	c := setupAppState(t)
	user := seedUser(t, c)

	_, err := PlaceOrder(user.ID, "2025-04-07", "")
	assert.NoError(t, err)

	_, err = PlaceOrder(user.ID, "2025-04-07", "")
	assert.ErrorIs(t, err, ErrDuplicateOrder)
	assert.Len(t, c.Records(), 1)

	// a different day is a fresh order
	_, err = PlaceOrder(user.ID, "2025-04-08", "")
	assert.NoError(t, err)
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	setupAppState(t)
	_, err := PlaceOrder("nope", "2025-04-07", "")
	assert.ErrorIs(t, err, ErrUserNotOrdering)
}

func TestPlaceOrderDefaultsToToday(t *testing.T) {
	c := setupAppState(t)
	user := seedUser(t, c)

	record, err := PlaceOrder(user.ID, "", "")
	assert.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), record.Date)
}

func TestRateRecord(t *testing.T) {
	c := setupAppState(t)
	user := seedUser(t, c)
	record, err := PlaceOrder(user.ID, "2025-04-07", "")
	assert.NoError(t, err)

	rated, err := RateRecord(record.ID, 8, "完食")
	assert.NoError(t, err)
	assert.Equal(t, 8, rated.EatingRatio)
	assert.Equal(t, "完食", rated.Notes)
	assert.Equal(t, 8, c.Records()[0].EatingRatio)
}

func TestRateRecordBounds(t *testing.T) {
	setupAppState(t)
	for _, ratio := range []int{0, -1, 11} {
		_, err := RateRecord("r-1", ratio, "")
		assert.ErrorIs(t, err, ErrInvalidRating)
	}

	_, err := RateRecord("nope", 5, "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCreateUserDefaultPrice(t *testing.T) {
	c := setupAppState(t)

	user, err := CreateUser("佐藤花子", "B型", -1, false, "")
	assert.NoError(t, err)
	assert.Equal(t, 100, user.Price)
	assert.Equal(t, 1, user.DisplayNumber)
	assert.True(t, user.IsActive)

	second, err := CreateUser("鈴木一郎", "B型", 150, false, "")
	assert.NoError(t, err)
	assert.Equal(t, 150, second.Price)
	assert.Equal(t, 2, second.DisplayNumber)
	assert.Len(t, c.Users(), 2)
}

func TestCreateUserRejectsInvalid(t *testing.T) {
	setupAppState(t)
	_, err := CreateUser("", "A型", 300, false, "")
	assert.ErrorIs(t, err, ErrUserInvalid)

	_, err = CreateUser("山田太郎", "廃止グループ", 300, false, "")
	assert.ErrorIs(t, err, ErrUserInvalid)
}

func TestUpdateUserKeepsCreatedAt(t *testing.T) {
	c := setupAppState(t)
	user := seedUser(t, c)

	edited := user
	edited.Name = "山田次郎"
	edited.CreatedAt = "1999-01-01"

	updated, err := UpdateUser(edited)
	assert.NoError(t, err)
	assert.Equal(t, "山田次郎", updated.Name)
	assert.Equal(t, "2024-04-01", updated.CreatedAt)
}

func TestBulkAction(t *testing.T) {
	c := setupAppState(t)
	seedUser(t, c)
	c.AddUser(models.User{ID: "u-2", Name: "佐藤花子", Group: "A型", Price: 300,
		IsActive: true, CreatedAt: "2024-04-01", DisplayNumber: 2})

	affected, err := BulkAction([]string{"u-1", "u-2", "不明"}, "deactivate", "")
	assert.NoError(t, err)
	assert.Equal(t, 2, affected)
	for _, u := range c.Users() {
		assert.False(t, u.IsActive)
	}

	affected, err = BulkAction([]string{"u-1"}, "change-group", "B型")
	assert.NoError(t, err)
	assert.Equal(t, 1, affected)

	_, err = BulkAction([]string{"u-1"}, "change-group", "廃止グループ")
	assert.Error(t, err)

	affected, err = BulkAction([]string{"u-2"}, "delete", "")
	assert.NoError(t, err)
	assert.Equal(t, 1, affected)
	assert.Len(t, c.Users(), 1)
}

func TestImportRosterAppends(t *testing.T) {
	c := setupAppState(t)
	seedUser(t, c)

	csv := "鈴木一郎,A型,300,2024-06-01,有効\n体験者,体験,0,2025-01-15,有効\n"
	count, warnings, err := ImportRoster([]byte(csv))
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Empty(t, warnings)

	users := c.Users()
	assert.Len(t, users, 3)
	// imported display numbers continue after the existing roster
	assert.Equal(t, 2, users[1].DisplayNumber)
	assert.Equal(t, "A型", users[1].Group)
	assert.Equal(t, 1, users[2].DisplayNumber)
}
