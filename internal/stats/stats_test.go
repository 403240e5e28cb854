package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
)

func rec(date string, ratio int, price int) models.MealRecord {
	return models.MealRecord{
		ID:          date + "-x",
		UserID:      "u-1",
		UserName:    "山田太郎",
		UserGroup:   "A型",
		Date:        date,
		EatingRatio: ratio,
		Price:       price,
	}
}

func TestRatingDistribution(t *testing.T) {
	records := []models.MealRecord{
		rec("2025-04-01", 1, 300),
		rec("2025-04-02", 3, 300),
		rec("2025-04-03", 3, 300),
		rec("2025-04-04", 10, 300),
		rec("2025-04-05", 10, 300),
		rec("2025-04-06", 10, 300),
		rec("2025-04-07", 0, 300),  // pending, excluded
		rec("2025-04-08", 15, 300), // out of range, excluded
	}

	buckets := RatingDistribution(records)
	assert.Len(t, buckets, 10)

	byRatio := make(map[int]RatingBucket)
	for _, b := range buckets {
		byRatio[b.Ratio] = b
	}

	assert.Equal(t, 1, byRatio[1].Count)
	assert.Equal(t, 16.7, byRatio[1].Percentage)
	assert.Equal(t, 2, byRatio[3].Count)
	assert.Equal(t, 33.3, byRatio[3].Percentage)
	assert.Equal(t, 3, byRatio[10].Count)
	assert.Equal(t, 50.0, byRatio[10].Percentage)
	for _, r := range []int{2, 4, 5, 6, 7, 8, 9} {
		assert.Equal(t, 0, byRatio[r].Count)
		assert.Equal(t, 0.0, byRatio[r].Percentage)
	}
}

func TestRatingDistributionPercentagesSum(t *testing.T) {
	records := []models.MealRecord{
		rec("2025-04-01", 2, 300),
		rec("2025-04-02", 5, 300),
		rec("2025-04-03", 5, 300),
		rec("2025-04-04", 7, 300),
		rec("2025-04-05", 9, 300),
		rec("2025-04-06", 9, 300),
		rec("2025-04-07", 9, 300),
	}

	sum := 0.0
	for _, b := range RatingDistribution(records) {
		sum += b.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.1)
}

func TestRatingDistributionEmpty(t *testing.T) {
	buckets := RatingDistribution([]models.MealRecord{rec("2025-04-01", 0, 300)})
	sum := 0.0
	for _, b := range buckets {
		assert.Equal(t, 0, b.Count)
		sum += b.Percentage
	}
	assert.Equal(t, 0.0, sum)
}

func TestDailyStats(t *testing.T) {
	records := []models.MealRecord{
		rec("2025-04-01", 8, 300),
		rec("2025-04-01", 0, 100),
		rec("2025-04-02", 5, 300),
		rec("broken-date", 5, 300), // silently excluded
	}

	days := DailyStats(records)
	assert.Len(t, days, 2)

	assert.Equal(t, "2025-04-01", days[0].Date)
	assert.Equal(t, 2, days[0].OrderCount)
	assert.Equal(t, 1, days[0].EvaluatedCount)
	assert.Equal(t, 8.0, days[0].AverageRatio)
	assert.Equal(t, 400, days[0].TotalPrice)

	assert.Equal(t, "2025-04-02", days[1].Date)
	assert.Equal(t, 1, days[1].OrderCount)
}

func TestMonthlyTrendIncludesEmptyMonths(t *testing.T) {
	now := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	records := []models.MealRecord{
		rec("2025-08-01", 6, 300),
		rec("2025-06-10", 4, 300),
		rec("2025-06-11", 8, 300),
		rec("2024-01-01", 10, 300), // outside the window
	}

	trend := MonthlyTrend(records, now, 6)
	assert.Len(t, trend, 6)
	assert.Equal(t, "2025-03", trend[0].Month)
	assert.Equal(t, "2025-08", trend[5].Month)

	byMonth := make(map[string]MonthlyStat)
	for _, m := range trend {
		byMonth[m.Month] = m
	}
	assert.Equal(t, 0, byMonth["2025-04"].OrderCount)
	assert.Equal(t, 2, byMonth["2025-06"].OrderCount)
	assert.Equal(t, 6.0, byMonth["2025-06"].AverageRatio)
	assert.Equal(t, 1, byMonth["2025-08"].OrderCount)
}

func TestCalculateTodayStatsInvariant(t *testing.T) {
	now := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)
	today := now.Format("2006-01-02")

	records := []models.MealRecord{
		rec(today, 0, 300),
		rec(today, 0, 300),
		rec(today, 7, 300),
		rec(today, 9, 300),
		rec("2025-04-06", 5, 300), // yesterday, ignored
	}

	s := CalculateTodayStats(records, now)
	assert.Equal(t, 4, s.TotalOrders)
	assert.Equal(t, 2, s.PendingEvaluations)
	assert.Equal(t, 2, s.CompletedEvaluations)
	assert.Equal(t, s.TotalOrders, s.PendingEvaluations+s.CompletedEvaluations)
	assert.Equal(t, 8.0, s.AverageRatio)
}

func TestCalculateTodayStatsEmpty(t *testing.T) {
	s := CalculateTodayStats(nil, time.Now())
	assert.Equal(t, 0, s.TotalOrders)
	assert.Equal(t, 0.0, s.AverageRatio)
}

func TestUserMonthlySummaries(t *testing.T) {
	records := []models.MealRecord{
		rec("2025-04-01", 8, 300),
		rec("2025-04-02", 6, 300),
		rec("2025-05-01", 10, 300), // other month
	}
	other := rec("2025-04-03", 4, 100)
	other.UserID = "u-2"
	other.UserName = "佐藤花子"
	other.UserGroup = "B型"
	records = append(records, other)

	summaries := UserMonthlySummaries(records, 2025, time.April)
	assert.Len(t, summaries, 2)

	// April 2025 has 22 weekdays
	assert.Equal(t, 22, WeekdayCount(2025, time.April))

	byUser := make(map[string]UserMonthlySummary)
	for _, s := range summaries {
		byUser[s.UserID] = s
	}
	u1 := byUser["u-1"]
	assert.Equal(t, 2, u1.TotalMeals)
	assert.Equal(t, 600, u1.TotalPrice)
	assert.Equal(t, 7.0, u1.AverageRating)
	assert.Equal(t, 9.1, u1.AttendanceRate) // 2/22*100 = 9.09 -> 9.1

	u2 := byUser["u-2"]
	assert.Equal(t, 1, u2.TotalMeals)
	assert.Equal(t, "B型", u2.Group)
}

func TestGroupSummariesDropUnknownLabels(t *testing.T) {
	known := rec("2025-04-01", 8, 300)
	unknown := rec("2025-04-02", 5, 200)
	unknown.UserGroup = "廃止グループ"

	summaries := GroupSummaries([]models.MealRecord{known, unknown}, 2025, time.April)
	assert.Len(t, summaries, len(models.AllGroups))

	total := 0
	for _, s := range summaries {
		total += s.TotalMeals
	}
	assert.Equal(t, 1, total) // the unknown label never shows up

	assert.Equal(t, "A型", summaries[0].Group)
	assert.Equal(t, 1, summaries[0].TotalMeals)
	assert.Equal(t, 1, summaries[0].UserCount)
}

func TestUsagePattern(t *testing.T) {
	records := []models.MealRecord{
		rec("2025-04-07", 8, 300), // Monday
		rec("2025-04-14", 6, 300), // Monday
		rec("2025-04-08", 4, 300), // Tuesday
	}

	patterns := UsagePattern(records)
	assert.Len(t, patterns, 7)
	assert.Equal(t, "月曜日", patterns[0].Weekday)
	assert.Equal(t, 2, patterns[0].Count)
	assert.Equal(t, 7.0, patterns[0].AverageRating)
	assert.Equal(t, "火曜日", patterns[1].Weekday)
	assert.Equal(t, 1, patterns[1].Count)
	assert.Equal(t, 0, patterns[6].Count) // Sunday, empty
}

func TestFilterApply(t *testing.T) {
	records := []models.MealRecord{
		rec("2025-04-01", 8, 300),
		rec("2025-04-15", 6, 300),
		rec("2025-05-01", 4, 300),
	}
	bType := rec("2025-04-10", 5, 100)
	bType.UserGroup = "B型"
	records = append(records, bType)

	filtered := Filter{From: "2025-04-01", To: "2025-04-30"}.Apply(records)
	assert.Len(t, filtered, 3)

	filtered = Filter{Group: "B型"}.Apply(records)
	assert.Len(t, filtered, 1)

	filtered = Filter{From: "2025-04-05", To: "2025-04-30", Group: "A型"}.Apply(records)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "2025-04-15", filtered[0].Date)
}

func TestFilterValidate(t *testing.T) {
	assert.NoError(t, Filter{}.Validate())
	assert.NoError(t, Filter{From: "2025-04-01", To: "2025-04-30"}.Validate())
	assert.NoError(t, Filter{Group: "A型"}.Validate())

	assert.Error(t, Filter{From: "garbage"}.Validate())
	assert.Error(t, Filter{To: "2025/04/01"}.Validate())
	assert.Error(t, Filter{From: "2025-04-01", To: "not-a-date"}.Validate())
}
