package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
)

// ParseUserRoster parses an uploaded roster CSV. Expected column
// order: name, group, price, created-date, active-status. Rows with
// fewer than five columns are skipped with a warning; extra trailing
// columns are tolerated. Returns the parsed users and per-row
// warnings; only a fully empty result is an error.
func ParseUserRoster(data []byte) ([]models.User, []string, error) {
	text := strings.TrimPrefix(string(data), BOM)
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var users []models.User
	var warnings []string

	displayNumbers := make(map[string]int)

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line)
		if i == 0 && looksLikeHeader(fields) {
			continue
		}
		if len(fields) < 5 {
			warnings = append(warnings, fmt.Sprintf("%d行目: 列数が不足しているためスキップしました", i+1))
			continue
		}

		name := strings.TrimSpace(fields[0])
		group := strings.TrimSpace(fields[1])
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("%d行目: 利用者名が空のためスキップしました", i+1))
			continue
		}
		if !models.IsValidGroup(group) {
			warnings = append(warnings, fmt.Sprintf("%d行目: 無効なグループのためスキップしました: %s", i+1, group))
			continue
		}

		price, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil || price < 0 {
			warnings = append(warnings, fmt.Sprintf("%d行目: 単価が不正のためスキップしました: %s", i+1, fields[2]))
			continue
		}

		createdAt := strings.TrimSpace(fields[3])
		if _, err := time.Parse("2006-01-02", createdAt); err != nil {
			createdAt = time.Now().Format("2006-01-02")
		}

		active := parseActive(fields[4])

		displayNumbers[group]++
		users = append(users, models.User{
			ID:            uuid.New().String(),
			Name:          name,
			Group:         group,
			Price:         price,
			IsActive:      active,
			TrialUser:     group == string(models.GroupTrial),
			CreatedAt:     createdAt,
			DisplayNumber: displayNumbers[group],
		})
	}

	if len(users) == 0 {
		return nil, warnings, fmt.Errorf("取り込める利用者がありません")
	}
	return users, warnings, nil
}

func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		f = strings.TrimSpace(f)
		f = strings.TrimPrefix(f, `"`)
		f = strings.TrimSuffix(f, `"`)
		fields[i] = f
	}
	return fields
}

func looksLikeHeader(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	first := fields[0]
	return strings.Contains(first, "名前") || strings.Contains(first, "利用者")
}

func parseActive(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "無効", "false", "0", "inactive":
		return false
	default:
		return true
	}
}
