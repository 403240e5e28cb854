package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
)

func validUser() models.User {
	return models.User{
		ID:            "u-1",
		Name:          "山田太郎",
		Group:         "A型",
		Price:         300,
		IsActive:      true,
		CreatedAt:     "2024-04-01",
		DisplayNumber: 1,
	}
}

func validRecord() models.MealRecord {
	return models.MealRecord{
		ID:          "r-1",
		UserID:      "u-1",
		UserName:    "山田太郎",
		UserGroup:   "A型",
		Date:        "2025-04-07",
		EatingRatio: 8,
		Price:       300,
	}
}

func TestValidateUser(t *testing.T) {
	assert.True(t, ValidateUser(validUser()).IsValid)

	u := validUser()
	u.Name = ""
	assert.False(t, ValidateUser(u).IsValid)

	u = validUser()
	u.Group = "未知"
	assert.False(t, ValidateUser(u).IsValid)

	u = validUser()
	u.Price = -100
	assert.False(t, ValidateUser(u).IsValid)

	// Trial users eat free
	u = validUser()
	u.Price = 0
	u.TrialUser = true
	assert.True(t, ValidateUser(u).IsValid)
}

func TestValidateMealRecord(t *testing.T) {
	assert.True(t, ValidateMealRecord(validRecord()).IsValid)

	r := validRecord()
	r.EatingRatio = 0 // pending evaluation is valid
	assert.True(t, ValidateMealRecord(r).IsValid)

	r = validRecord()
	r.EatingRatio = 11
	assert.False(t, ValidateMealRecord(r).IsValid)

	r = validRecord()
	r.Date = "07/04/2025"
	assert.False(t, ValidateMealRecord(r).IsValid)

	r = validRecord()
	r.UserID = ""
	assert.False(t, ValidateMealRecord(r).IsValid)
}

func TestValidatorsAreIdempotent(t *testing.T) {
	u := validUser()
	first := ValidateUser(u)
	second := ValidateUser(u)
	assert.Equal(t, first, second)

	r := validRecord()
	r.EatingRatio = 11
	firstR := ValidateMealRecord(r)
	secondR := ValidateMealRecord(r)
	assert.Equal(t, firstR, secondR)
}

func TestValidateDataIntegrity(t *testing.T) {
	now := time.Date(2025, 4, 7, 12, 0, 0, 0, time.UTC)

	t.Run("Clean Data", func(t *testing.T) {
		result := ValidateDataIntegrity([]models.User{validUser()}, []models.MealRecord{validRecord()}, now)
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Warnings)
	})

	t.Run("Duplicate User IDs Are Errors", func(t *testing.T) {
		users := []models.User{validUser(), validUser()}
		result := ValidateDataIntegrity(users, nil, now)
		assert.False(t, result.IsValid)
	})

	t.Run("Orphan Record Is Warning Only", func(t *testing.T) {
		r := validRecord()
		r.UserID = "gone"
		result := ValidateDataIntegrity([]models.User{validUser()}, []models.MealRecord{r}, now)
		assert.True(t, result.IsValid)
		assert.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings[0], "gone")
	})

	t.Run("Stale Denormalized Name Is Warning", func(t *testing.T) {
		u := validUser()
		u.Name = "改名後"
		result := ValidateDataIntegrity([]models.User{u}, []models.MealRecord{validRecord()}, now)
		assert.True(t, result.IsValid)
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("Today Order For Inactive User Is Warning", func(t *testing.T) {
		u := validUser()
		u.IsActive = false
		r := validRecord()
		r.Date = now.Format("2006-01-02")
		result := ValidateDataIntegrity([]models.User{u}, []models.MealRecord{r}, now)
		assert.True(t, result.IsValid)
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("Duplicate Display Numbers Are Warnings", func(t *testing.T) {
		u1 := validUser()
		u2 := validUser()
		u2.ID = "u-2"
		u2.Name = "佐藤花子"
		result := ValidateDataIntegrity([]models.User{u1, u2}, nil, now)
		assert.True(t, result.IsValid)
		assert.NotEmpty(t, result.Warnings)
	})
}
