package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
)

// Everything in this package is a pure function over in-memory
// collections: deterministic, no side effects, safe to recompute on
// every request. Records with unparsable dates are silently excluded
// from every date-based aggregate.

// Filter narrows the record set before aggregation. Zero values mean
// "no restriction".
type Filter struct {
	From  string // yyyy-MM-dd inclusive
	To    string // yyyy-MM-dd inclusive
	Group string
}

// Validate rejects a non-empty bound that is not a yyyy-MM-dd date.
// Apply skips bounds it cannot parse, so callers taking user input
// should validate first instead of silently returning the full set.
func (f Filter) Validate() error {
	for _, s := range []string{f.From, f.To} {
		if s == "" {
			continue
		}
		if _, ok := parseDay(s); !ok {
			return fmt.Errorf("日付の形式が不正です: %s", s)
		}
	}
	return nil
}

// Apply returns the records matching the filter.
func (f Filter) Apply(records []models.MealRecord) []models.MealRecord {
	out := make([]models.MealRecord, 0, len(records))
	for _, r := range records {
		if f.Group != "" && r.UserGroup != f.Group {
			continue
		}
		if f.From != "" || f.To != "" {
			day, ok := parseDay(r.Date)
			if !ok {
				continue
			}
			if f.From != "" {
				if from, ok := parseDay(f.From); ok && day.Before(from) {
					continue
				}
			}
			if f.To != "" {
				if to, ok := parseDay(f.To); ok && day.After(to) {
					continue
				}
			}
		}
		out = append(out, r)
	}
	return out
}

// RatingBucket is one row of the eating-ratio distribution.
type RatingBucket struct {
	Ratio      int     `json:"ratio"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RatingDistribution buckets evaluated records (ratio 1..10) into the
// ten fixed buckets. Records with ratio 0 or out of range are excluded
// from both numerator and denominator. With no evaluated records every
// percentage is 0, never NaN.
func RatingDistribution(records []models.MealRecord) []RatingBucket {
	counts := make([]int, 11)
	total := 0
	for _, r := range records {
		if r.Evaluated() {
			counts[r.EatingRatio]++
			total++
		}
	}

	buckets := make([]RatingBucket, 0, 10)
	for ratio := 1; ratio <= 10; ratio++ {
		pct := 0.0
		if total > 0 {
			pct = round1(float64(counts[ratio]) / float64(total) * 100)
		}
		buckets = append(buckets, RatingBucket{Ratio: ratio, Count: counts[ratio], Percentage: pct})
	}
	return buckets
}

// DailyStat aggregates one calendar day.
type DailyStat struct {
	Date           string  `json:"date"`
	OrderCount     int     `json:"orderCount"`
	EvaluatedCount int     `json:"evaluatedCount"`
	AverageRatio   float64 `json:"averageRatio"`
	TotalPrice     int     `json:"totalPrice"`
}

// DailyStats groups records by calendar day, ascending.
func DailyStats(records []models.MealRecord) []DailyStat {
	byDay := make(map[string]*DailyStat)
	ratioSums := make(map[string]int)

	for _, r := range records {
		if _, ok := parseDay(r.Date); !ok {
			continue
		}
		s, ok := byDay[r.Date]
		if !ok {
			s = &DailyStat{Date: r.Date}
			byDay[r.Date] = s
		}
		s.OrderCount++
		s.TotalPrice += r.Price
		if r.Evaluated() {
			s.EvaluatedCount++
			ratioSums[r.Date] += r.EatingRatio
		}
	}

	days := make([]DailyStat, 0, len(byDay))
	for date, s := range byDay {
		if s.EvaluatedCount > 0 {
			s.AverageRatio = round2(float64(ratioSums[date]) / float64(s.EvaluatedCount))
		}
		days = append(days, *s)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// MonthlyStat aggregates one calendar month.
type MonthlyStat struct {
	Month          string  `json:"month"` // yyyy-MM
	OrderCount     int     `json:"orderCount"`
	EvaluatedCount int     `json:"evaluatedCount"`
	AverageRatio   float64 `json:"averageRatio"`
	TotalPrice     int     `json:"totalPrice"`
}

// DefaultTrendMonths is the trailing window of the monthly trend,
// including the current month.
const DefaultTrendMonths = 6

// MonthlyTrend produces one bucket per calendar month for the trailing
// window ending at now's month. Empty months are present with zero
// counts.
func MonthlyTrend(records []models.MealRecord, now time.Time, months int) []MonthlyStat {
	if months <= 0 {
		months = DefaultTrendMonths
	}

	type acc struct {
		orders    int
		evaluated int
		ratioSum  int
		price     int
	}
	byMonth := make(map[string]*acc)
	for _, r := range records {
		day, ok := parseDay(r.Date)
		if !ok {
			continue
		}
		key := day.Format("2006-01")
		a, ok := byMonth[key]
		if !ok {
			a = &acc{}
			byMonth[key] = a
		}
		a.orders++
		a.price += r.Price
		if r.Evaluated() {
			a.evaluated++
			a.ratioSum += r.EatingRatio
		}
	}

	trend := make([]MonthlyStat, 0, months)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		stat := MonthlyStat{Month: key}
		if a, ok := byMonth[key]; ok {
			stat.OrderCount = a.orders
			stat.EvaluatedCount = a.evaluated
			stat.TotalPrice = a.price
			if a.evaluated > 0 {
				stat.AverageRatio = round2(float64(a.ratioSum) / float64(a.evaluated))
			}
		}
		trend = append(trend, stat)
	}
	return trend
}

// TodayStats is the dashboard snapshot for the current day.
// PendingEvaluations + CompletedEvaluations always equals TotalOrders.
type TodayStats struct {
	Date                 string  `json:"date"`
	TotalOrders          int     `json:"totalOrders"`
	PendingEvaluations   int     `json:"pendingEvaluations"`
	CompletedEvaluations int     `json:"completedEvaluations"`
	AverageRatio         float64 `json:"averageRatio"`
}

// CalculateTodayStats filters to records dated now's local calendar day.
func CalculateTodayStats(records []models.MealRecord, now time.Time) TodayStats {
	today := now.Format("2006-01-02")
	stats := TodayStats{Date: today}

	ratioSum := 0
	for _, r := range records {
		if r.Date != today {
			continue
		}
		stats.TotalOrders++
		if r.Evaluated() {
			stats.CompletedEvaluations++
			ratioSum += r.EatingRatio
		} else {
			stats.PendingEvaluations++
		}
	}
	if stats.CompletedEvaluations > 0 {
		stats.AverageRatio = round2(float64(ratioSum) / float64(stats.CompletedEvaluations))
	}
	return stats
}

// UserMonthlySummary is one user's totals for a given month.
// AttendanceRate is meals over weekdays in the month, as a percentage;
// weekends are excluded from the denominator by definition.
type UserMonthlySummary struct {
	UserID         string  `json:"userId"`
	UserName       string  `json:"userName"`
	Group          string  `json:"group"`
	TotalMeals     int     `json:"totalMeals"`
	TotalPrice     int     `json:"totalPrice"`
	AverageRating  float64 `json:"averageRating"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// UserMonthlySummaries groups the month's records by user. Names and
// groups come from the denormalized record fields, so deleted users
// still appear with the identity they had at order time.
func UserMonthlySummaries(records []models.MealRecord, year int, month time.Month) []UserMonthlySummary {
	weekdays := WeekdayCount(year, month)
	prefix := fmt.Sprintf("%04d-%02d", year, int(month))

	type acc struct {
		summary   UserMonthlySummary
		ratioSum  int
		evaluated int
	}
	byUser := make(map[string]*acc)
	var order []string

	for _, r := range records {
		day, ok := parseDay(r.Date)
		if !ok || day.Format("2006-01") != prefix {
			continue
		}
		a, ok := byUser[r.UserID]
		if !ok {
			a = &acc{summary: UserMonthlySummary{
				UserID:   r.UserID,
				UserName: r.UserName,
				Group:    r.UserGroup,
			}}
			byUser[r.UserID] = a
			order = append(order, r.UserID)
		}
		a.summary.TotalMeals++
		a.summary.TotalPrice += r.Price
		if r.Evaluated() {
			a.evaluated++
			a.ratioSum += r.EatingRatio
		}
	}

	summaries := make([]UserMonthlySummary, 0, len(byUser))
	for _, id := range order {
		a := byUser[id]
		if a.evaluated > 0 {
			a.summary.AverageRating = round2(float64(a.ratioSum) / float64(a.evaluated))
		}
		if weekdays > 0 {
			a.summary.AttendanceRate = round1(float64(a.summary.TotalMeals) / float64(weekdays) * 100)
		}
		summaries = append(summaries, a.summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Group != summaries[j].Group {
			return summaries[i].Group < summaries[j].Group
		}
		return summaries[i].UserName < summaries[j].UserName
	})
	return summaries
}

// GroupSummary is one billing group's totals for a given month.
type GroupSummary struct {
	Group         string  `json:"group"`
	UserCount     int     `json:"userCount"`
	TotalMeals    int     `json:"totalMeals"`
	TotalPrice    int     `json:"totalPrice"`
	AverageRating float64 `json:"averageRating"`
}

// GroupSummaries aggregates the month's records over the fixed group
// set, in display order. Unknown or legacy group labels are dropped.
func GroupSummaries(records []models.MealRecord, year int, month time.Month) []GroupSummary {
	prefix := fmt.Sprintf("%04d-%02d", year, int(month))

	type acc struct {
		meals     int
		price     int
		ratioSum  int
		evaluated int
		users     map[string]struct{}
	}
	byGroup := make(map[string]*acc)
	for _, g := range models.AllGroups {
		byGroup[string(g)] = &acc{users: make(map[string]struct{})}
	}

	for _, r := range records {
		day, ok := parseDay(r.Date)
		if !ok || day.Format("2006-01") != prefix {
			continue
		}
		a, ok := byGroup[r.UserGroup]
		if !ok {
			continue // unknown label, dropped
		}
		a.meals++
		a.price += r.Price
		a.users[r.UserID] = struct{}{}
		if r.Evaluated() {
			a.evaluated++
			a.ratioSum += r.EatingRatio
		}
	}

	summaries := make([]GroupSummary, 0, len(models.AllGroups))
	for _, g := range models.AllGroups {
		a := byGroup[string(g)]
		s := GroupSummary{
			Group:      string(g),
			UserCount:  len(a.users),
			TotalMeals: a.meals,
			TotalPrice: a.price,
		}
		if a.evaluated > 0 {
			s.AverageRating = round2(float64(a.ratioSum) / float64(a.evaluated))
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// WeekdayPattern is usage aggregated over one weekday.
type WeekdayPattern struct {
	Weekday       string  `json:"weekday"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
}

var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "月曜日",
	time.Tuesday:   "火曜日",
	time.Wednesday: "水曜日",
	time.Thursday:  "木曜日",
	time.Friday:    "金曜日",
	time.Saturday:  "土曜日",
	time.Sunday:    "日曜日",
}

// UsagePattern groups all records by weekday, Monday first.
func UsagePattern(records []models.MealRecord) []WeekdayPattern {
	counts := make(map[time.Weekday]int)
	ratioSums := make(map[time.Weekday]int)
	evaluated := make(map[time.Weekday]int)

	for _, r := range records {
		day, ok := parseDay(r.Date)
		if !ok {
			continue
		}
		wd := day.Weekday()
		counts[wd]++
		if r.Evaluated() {
			evaluated[wd]++
			ratioSums[wd] += r.EatingRatio
		}
	}

	ordered := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	patterns := make([]WeekdayPattern, 0, len(ordered))
	for _, wd := range ordered {
		p := WeekdayPattern{Weekday: weekdayLabels[wd], Count: counts[wd]}
		if evaluated[wd] > 0 {
			p.AverageRating = round2(float64(ratioSums[wd]) / float64(evaluated[wd]))
		}
		patterns = append(patterns, p)
	}
	return patterns
}

// WeekdayCount returns the number of Monday-to-Friday days in the
// given month.
func WeekdayCount(year int, month time.Month) int {
	count := 0
	day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day.Month() == month {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
