package validation

import (
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
)

// ValidateUser runs the field-level validators against a candidate
// user and merges their results. Warnings never affect validity.
func ValidateUser(u models.User) Result {
	result := NewResult()

	result.Merge(ValidateString(u.ID, "ID", StringOptions{}))
	result.Merge(ValidateString(u.Name, "利用者名", StringOptions{MaxLength: 50}))
	result.Merge(ValidateGroup(u.Group, "グループ"))
	result.Merge(ValidateNumber(u.Price, "単価", NumberOptions{
		RequireInteger: true,
		AllowZero:      true,
	}))
	result.Merge(ValidateNumber(u.DisplayNumber, "表示番号", NumberOptions{
		RequireInteger: true,
	}))
	result.Merge(ValidateDate(u.CreatedAt, "登録日", DateOptions{}))
	if u.Notes != "" {
		result.Merge(ValidateString(u.Notes, "備考", StringOptions{AllowEmpty: true, MaxLength: 500}))
	}

	return result
}

// ValidateMealRecord runs the field-level validators against a
// candidate meal record. EatingRatio 0 is valid and means "ordered,
// not yet evaluated".
func ValidateMealRecord(r models.MealRecord) Result {
	result := NewResult()

	result.Merge(ValidateString(r.ID, "ID", StringOptions{}))
	result.Merge(ValidateString(r.UserID, "利用者ID", StringOptions{}))
	result.Merge(ValidateString(r.UserName, "利用者名", StringOptions{MaxLength: 50}))
	result.Merge(ValidateGroup(r.UserGroup, "グループ"))
	result.Merge(ValidateDate(r.Date, "日付", DateOptions{}))

	ten := 10.0
	zero := 0.0
	result.Merge(ValidateNumber(r.EatingRatio, "喫食率", NumberOptions{
		Min:            &zero,
		Max:            &ten,
		RequireInteger: true,
		AllowZero:      true,
	}))
	result.Merge(ValidateNumber(r.Price, "金額", NumberOptions{
		RequireInteger: true,
		AllowZero:      true,
	}))
	if r.Notes != "" {
		result.Merge(ValidateString(r.Notes, "備考", StringOptions{AllowEmpty: true, MaxLength: 500}))
	}

	return result
}
