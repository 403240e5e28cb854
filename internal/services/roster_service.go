package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/export"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/validation"
)

var ErrUserInvalid = errors.New("利用者の入力内容に誤りがあります")

// CreateUser registers a facility user. Price falls back to the
// group's default when not given (negative means "not given").
func CreateUser(name, group string, price int, trial bool, notes string) (*models.User, error) {
	if price < 0 {
		price = models.DefaultPrices[models.Group(group)]
	}

	user := models.User{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(name),
		Group:         group,
		Price:         price,
		IsActive:      true,
		TrialUser:     trial,
		CreatedAt:     time.Now().Format("2006-01-02"),
		Notes:         notes,
		DisplayNumber: nextDisplayNumber(group),
	}

	if result := validation.ValidateUser(user); !result.IsValid {
		return nil, fmt.Errorf("%w: %s", ErrUserInvalid, strings.Join(result.Errors, ", "))
	}

	AppState.AddUser(user)
	return &user, nil
}

// UpdateUser replaces the stored user wholesale with the edited copy.
// CreatedAt is immutable and always kept from the stored record.
// Historical meal records keep their denormalized name and group.
func UpdateUser(updated models.User) (*models.User, error) {
	current, err := findUser(updated.ID)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = current.CreatedAt

	if result := validation.ValidateUser(updated); !result.IsValid {
		return nil, fmt.Errorf("%w: %s", ErrUserInvalid, strings.Join(result.Errors, ", "))
	}

	if err := AppState.ReplaceUser(updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// BulkAction applies one admin action to a set of users. Supported
// actions: activate, deactivate, delete, change-group (with group).
// Returns how many users were affected.
func BulkAction(ids []string, action, group string) (int, error) {
	affected := 0
	for _, id := range ids {
		user, err := findUser(id)
		if err != nil {
			continue
		}
		switch action {
		case "activate":
			user.IsActive = true
			err = AppState.ReplaceUser(user)
		case "deactivate":
			user.IsActive = false
			err = AppState.ReplaceUser(user)
		case "delete":
			err = AppState.RemoveUser(id)
		case "change-group":
			if !models.IsValidGroup(group) {
				return affected, fmt.Errorf("無効なグループです: %s", group)
			}
			user.Group = group
			err = AppState.ReplaceUser(user)
		default:
			return affected, fmt.Errorf("不明な操作です: %s", action)
		}
		if err == nil {
			affected++
		}
	}
	return affected, nil
}

// ImportRoster parses an uploaded roster CSV and appends the parsed
// users to the roster. Existing users are kept; the import never
// replaces the collection.
func ImportRoster(data []byte) (int, []string, error) {
	users, warnings, err := export.ParseUserRoster(data)
	if err != nil {
		return 0, warnings, err
	}

	existing := AppState.Users()
	numbers := make(map[string]int)
	for _, u := range existing {
		if u.DisplayNumber > numbers[u.Group] {
			numbers[u.Group] = u.DisplayNumber
		}
	}
	for i := range users {
		numbers[users[i].Group]++
		users[i].DisplayNumber = numbers[users[i].Group]
	}

	AppState.SetUsers(append(existing, users...))
	return len(users), warnings, nil
}

func findUser(id string) (models.User, error) {
	for _, u := range AppState.Users() {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("利用者が見つかりません: %s", id)
}

func nextDisplayNumber(group string) int {
	max := 0
	for _, u := range AppState.Users() {
		if u.Group == group && u.DisplayNumber > max {
			max = u.DisplayNumber
		}
	}
	return max + 1
}
