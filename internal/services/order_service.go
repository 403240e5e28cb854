package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/validation"
)

var (
	ErrDuplicateOrder  = errors.New("本日の注文は既に登録されています")
	ErrOrderNotFound   = errors.New("注文が見つかりません")
	ErrInvalidRating   = errors.New("喫食率は1〜10で入力してください")
	ErrUserNotOrdering = errors.New("利用者が見つかりません")
)

// PlaceOrder records a meal order for the user on the given date
// (today when empty). Name, group and price are copied from the user
// at order time so later roster edits never rewrite this record. A
// second order for the same user and day is rejected here; the data
// layer itself tolerates duplicates arriving via restore or import.
func PlaceOrder(userID, date, notes string) (*models.MealRecord, error) {
	user, err := findUser(userID)
	if err != nil {
		return nil, ErrUserNotOrdering
	}

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	for _, r := range AppState.Records() {
		if r.UserID == userID && r.Date == date {
			return nil, ErrDuplicateOrder
		}
	}

	menuName := ""
	if menu := AppState.Menu(); menu != nil {
		menuName = menu.Name
	}

	record := models.MealRecord{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		UserName:     user.Name,
		UserGroup:    user.Group,
		UserCategory: user.Group,
		Date:         date,
		EatingRatio:  models.EatingRatioPending,
		Price:        user.Price,
		MenuName:     menuName,
		Notes:        notes,
	}

	if result := validation.ValidateMealRecord(record); !result.IsValid {
		return nil, fmt.Errorf("記録の内容に誤りがあります: %s", strings.Join(result.Errors, ", "))
	}

	AppState.AddRecord(record)
	return &record, nil
}

// RateRecord sets the eating ratio of an existing record. The whole
// record is replaced, never edited in place.
func RateRecord(recordID string, ratio int, notes string) (*models.MealRecord, error) {
	if ratio < 1 || ratio > 10 {
		return nil, ErrInvalidRating
	}

	for _, r := range AppState.Records() {
		if r.ID == recordID {
			r.EatingRatio = ratio
			if notes != "" {
				r.Notes = notes
			}
			if err := AppState.ReplaceRecord(r); err != nil {
				return nil, err
			}
			return &r, nil
		}
	}
	return nil, ErrOrderNotFound
}

// SetCurrentMenu replaces the menu singleton.
func SetCurrentMenu(name, date, description string, price int, category string) *models.MenuItem {
	menu := &models.MenuItem{
		ID:          uuid.New().String(),
		Name:        name,
		Date:        date,
		Description: description,
		Price:       price,
		Category:    category,
	}
	AppState.SetMenu(menu)
	return menu
}
