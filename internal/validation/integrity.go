package validation

import (
	"fmt"
	"time"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
)

// ValidateDataIntegrity inspects the full collections for
// cross-record inconsistencies. Duplicate user ids are errors;
// everything else (orphans, stale denormalized names, today's orders
// for inactive users, duplicate display numbers) is reported as a
// warning for the admin diagnostics panel and never blocks anything.
func ValidateDataIntegrity(users []models.User, records []models.MealRecord, now time.Time) Result {
	result := NewResult()

	for _, id := range FindDuplicates(users, func(u models.User) string { return u.ID }) {
		result.AddError(fmt.Sprintf("利用者IDが重複しています: %s", id))
	}

	// Display numbers should be unique within a group, but legacy data
	// breaks this, so only warn.
	type groupNumber struct {
		group  string
		number int
	}
	for _, gn := range FindDuplicates(users, func(u models.User) groupNumber {
		return groupNumber{u.Group, u.DisplayNumber}
	}) {
		result.AddWarning(fmt.Sprintf("表示番号が重複しています: %s %d", gn.group, gn.number))
	}

	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	today := now.Format("2006-01-02")
	for _, r := range records {
		u, exists := byID[r.UserID]
		if !exists {
			result.AddWarning(fmt.Sprintf("存在しない利用者IDを参照しています: %s (記録 %s)", r.UserID, r.ID))
			continue
		}
		if u.Name != r.UserName {
			result.AddWarning(fmt.Sprintf("利用者名が現在の登録と一致しません: %s (記録 %s)", r.UserName, r.ID))
		}
		if r.Date == today && !u.IsActive {
			result.AddWarning(fmt.Sprintf("無効化された利用者の本日の記録があります: %s", u.Name))
		}
	}

	return result
}
