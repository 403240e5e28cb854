package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/stats"
)

func sampleRecords() []models.MealRecord {
	return []models.MealRecord{
		{
			ID: "r-1", UserID: "u-1", UserName: "山田太郎", UserGroup: "A型",
			Date: "2025-04-01", EatingRatio: 8, Price: 300, MenuName: "カレーライス",
		},
		{
			ID: "r-2", UserID: "u-1", UserName: "山田太郎", UserGroup: "A型",
			Date: "2025-04-02", EatingRatio: 0, Price: 300, MenuName: "焼き魚定食",
		},
		{
			ID: "r-3", UserID: "u-2", UserName: "佐藤花子", UserGroup: "体験",
			Date: "2025-04-01", EatingRatio: 10, Price: 0,
		},
	}
}

func TestDailyRecords(t *testing.T) {
	f, err := DailyRecords(sampleRecords(), "2025-04-01", "2025-04-30")
	assert.NoError(t, err)

	content := string(f.Content)
	assert.True(t, strings.HasPrefix(content, "\ufeff"), "content must start with a UTF-8 BOM")
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, f.Content[:3])
	assert.NotContains(t, content, "\r")

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(content, BOM), "\n"), "\n")
	assert.Len(t, lines, 4) // header + 3 records
	assert.Equal(t, `"日付","利用者名","グループ","メニュー","喫食率","金額","備考"`, lines[0])
	// pending evaluation renders as an empty ratio field
	assert.Contains(t, content, `"2025-04-02","山田太郎","A型","焼き魚定食","","300",""`)

	assert.Equal(t, "給食記録_2025-04-01_2025-04-30.csv", f.Filename)
}

func TestDailyRecordsEmptyRange(t *testing.T) {
	_, err := DailyRecords(sampleRecords(), "2030-01-01", "2030-01-31")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestMonthlyReport(t *testing.T) {
	records := sampleRecords()
	userSummaries := stats.UserMonthlySummaries(records, 2025, time.April)
	groupSummaries := stats.GroupSummaries(records, 2025, time.April)

	f, err := MonthlyReport(userSummaries, groupSummaries, "2025-04")
	assert.NoError(t, err)

	content := string(f.Content)
	assert.Contains(t, content, "利用者別集計")
	assert.Contains(t, content, "グループ別集計")
	assert.Contains(t, content, `"合計"`)
	assert.Equal(t, "月次レポート_2025-04.csv", f.Filename)
}

func TestBilling(t *testing.T) {
	records := sampleRecords()
	summaries := stats.UserMonthlySummaries(records, 2025, time.April)

	f, err := Billing(summaries, "2025-04")
	assert.NoError(t, err)

	content := string(f.Content)
	// u-1: two meals at 300 -> unit price back-computed as 300
	assert.Contains(t, content, `"山田太郎","A型","2","300","600"`)
	// trial users never appear on an invoice
	assert.NotContains(t, content, "佐藤花子")
	assert.Contains(t, content, `"合計","","","","600"`)
}

func TestBillingNoPaidUsers(t *testing.T) {
	trialOnly := []models.MealRecord{
		{ID: "r", UserID: "u", UserName: "体験者", UserGroup: "体験",
			Date: "2025-04-01", EatingRatio: 5, Price: 0},
	}
	summaries := stats.UserMonthlySummaries(trialOnly, 2025, time.April)
	_, err := Billing(summaries, "2025-04")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRatingAnalysis(t *testing.T) {
	records := sampleRecords()
	f, err := RatingAnalysis(records,
		stats.RatingDistribution(records),
		stats.MonthlyTrend(records, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 6),
		"2025-04")
	assert.NoError(t, err)

	content := string(f.Content)
	assert.Contains(t, content, "喫食率分布")
	assert.Contains(t, content, "月別推移")
	assert.Contains(t, content, "メニュー別平均")
	assert.Contains(t, content, `"カレーライス","1","8.00"`)
}

func TestRatingAnalysisNoEvaluations(t *testing.T) {
	pending := []models.MealRecord{
		{ID: "r", UserName: "x", UserGroup: "A型", Date: "2025-04-01", EatingRatio: 0},
	}
	_, err := RatingAnalysis(pending, stats.RatingDistribution(pending), nil, "2025-04")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestUserRoster(t *testing.T) {
	users := []models.User{
		{ID: "u-1", Name: "山田太郎", Group: "A型", Price: 300, IsActive: true,
			CreatedAt: "2024-04-01", DisplayNumber: 1},
		{ID: "u-2", Name: "佐藤花子", Group: "体験", Price: 0, IsActive: false,
			TrialUser: true, CreatedAt: "2025-01-15", DisplayNumber: 1},
	}

	f, err := UserRoster(users)
	assert.NoError(t, err)

	content := string(f.Content)
	assert.Contains(t, content, `"1","山田太郎","A型","300","2024-04-01","有効",""`)
	assert.Contains(t, content, `"無効","体験"`)

	_, err = UserRoster(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestComprehensive(t *testing.T) {
	records := sampleRecords()
	users := []models.User{
		{ID: "u-1", Name: "山田太郎", Group: "A型", Price: 300, IsActive: true,
			CreatedAt: "2024-04-01", DisplayNumber: 1},
	}

	f, err := Comprehensive(users, records, "2025-04",
		stats.UserMonthlySummaries(records, 2025, time.April),
		stats.GroupSummaries(records, 2025, time.April),
		stats.RatingDistribution(records),
		stats.MonthlyTrend(records, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 6))
	assert.NoError(t, err)

	content := string(f.Content)
	assert.True(t, strings.HasPrefix(content, BOM))
	// section bodies keep only the leading BOM
	assert.Equal(t, 1, strings.Count(content, BOM))
	assert.Contains(t, content, "総合レポート 2025-04")
	assert.Contains(t, content, "==== 月次レポート_2025-04")
	assert.Contains(t, content, "==== 利用者一覧")
}
