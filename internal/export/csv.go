package export

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/stats"
)

// ErrNoData is returned when the filtered input for a report is empty,
// so callers can show a message instead of downloading a blank file.
var ErrNoData = errors.New("エクスポート対象のデータがありません")

// BOM is prepended to every CSV so double-byte text opens correctly in
// common spreadsheet software.
const BOM = "\uFEFF"

// File is a built report ready for download.
type File struct {
	Filename string
	Content  []byte
}

// rows collects double-quoted comma-joined lines. Fields are wrapped
// as-is; embedded quotes do not occur in practice and are not escaped.
type rows struct {
	b strings.Builder
}

func newRows() *rows {
	r := &rows{}
	r.b.WriteString(BOM)
	return r
}

func (r *rows) add(fields ...string) {
	for i, f := range fields {
		if i > 0 {
			r.b.WriteByte(',')
		}
		r.b.WriteByte('"')
		r.b.WriteString(f)
		r.b.WriteByte('"')
	}
	r.b.WriteByte('\n')
}

func (r *rows) bytes() []byte {
	return []byte(r.b.String())
}

// DailyRecords builds the record listing for a date range.
func DailyRecords(records []models.MealRecord, from, to string) (*File, error) {
	filtered := stats.Filter{From: from, To: to}.Apply(records)
	if len(filtered) == 0 {
		return nil, ErrNoData
	}

	sorted := make([]models.MealRecord, len(filtered))
	copy(sorted, filtered)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].UserName < sorted[j].UserName
	})

	r := newRows()
	r.add("日付", "利用者名", "グループ", "メニュー", "喫食率", "金額", "備考")
	for _, rec := range sorted {
		ratio := ""
		if rec.Evaluated() {
			ratio = strconv.Itoa(rec.EatingRatio)
		}
		r.add(rec.Date, rec.UserName, rec.UserGroup, rec.MenuName, ratio,
			strconv.Itoa(rec.Price), rec.Notes)
	}

	return &File{
		Filename: fmt.Sprintf("給食記録_%s_%s.csv", from, to),
		Content:  r.bytes(),
	}, nil
}

// MonthlyReport builds the per-user and per-group monthly aggregate
// with a trailing totals row.
func MonthlyReport(userSummaries []stats.UserMonthlySummary, groupSummaries []stats.GroupSummary, period string) (*File, error) {
	if len(userSummaries) == 0 {
		return nil, ErrNoData
	}

	r := newRows()
	r.add(fmt.Sprintf("月次レポート %s", period))
	r.add()
	r.add("利用者別集計")
	r.add("利用者名", "グループ", "喫食数", "金額合計", "平均評価", "出席率(%)")
	totalMeals, totalPrice := 0, 0
	for _, s := range userSummaries {
		r.add(s.UserName, s.Group, strconv.Itoa(s.TotalMeals), strconv.Itoa(s.TotalPrice),
			formatAvg(s.AverageRating), format1(s.AttendanceRate))
		totalMeals += s.TotalMeals
		totalPrice += s.TotalPrice
	}
	r.add()
	r.add("グループ別集計")
	r.add("グループ", "利用者数", "喫食数", "金額合計", "平均評価")
	for _, s := range groupSummaries {
		r.add(s.Group, strconv.Itoa(s.UserCount), strconv.Itoa(s.TotalMeals),
			strconv.Itoa(s.TotalPrice), formatAvg(s.AverageRating))
	}
	r.add()
	r.add("合計", "", strconv.Itoa(totalMeals), strconv.Itoa(totalPrice), "")

	return &File{
		Filename: fmt.Sprintf("月次レポート_%s.csv", period),
		Content:  r.bytes(),
	}, nil
}

// RatingAnalysis builds the eating-ratio report: distribution, monthly
// trend and per-menu correlation.
func RatingAnalysis(records []models.MealRecord, distribution []stats.RatingBucket, trend []stats.MonthlyStat, period string) (*File, error) {
	evaluated := 0
	for _, rec := range records {
		if rec.Evaluated() {
			evaluated++
		}
	}
	if evaluated == 0 {
		return nil, ErrNoData
	}

	r := newRows()
	r.add(fmt.Sprintf("喫食率分析 %s", period))
	r.add()
	r.add("喫食率分布")
	r.add("喫食率", "件数", "割合(%)")
	for _, b := range distribution {
		r.add(strconv.Itoa(b.Ratio), strconv.Itoa(b.Count), format1(b.Percentage))
	}
	r.add()
	r.add("月別推移")
	r.add("月", "注文数", "評価済", "平均喫食率")
	for _, m := range trend {
		r.add(m.Month, strconv.Itoa(m.OrderCount), strconv.Itoa(m.EvaluatedCount), formatAvg(m.AverageRatio))
	}
	r.add()
	r.add("メニュー別平均")
	r.add("メニュー", "件数", "平均喫食率")
	for _, m := range menuAverages(records) {
		r.add(m.name, strconv.Itoa(m.count), formatAvg(m.average))
	}

	return &File{
		Filename: fmt.Sprintf("喫食率分析_%s.csv", period),
		Content:  r.bytes(),
	}, nil
}

// Billing builds the monthly billing extract. Only paid groups appear;
// the unit price is back-computed from the totals.
func Billing(userSummaries []stats.UserMonthlySummary, period string) (*File, error) {
	r := newRows()
	r.add(fmt.Sprintf("請求データ %s", period))
	r.add("利用者名", "グループ", "喫食数", "単価", "請求額")

	count := 0
	total := 0
	for _, s := range userSummaries {
		if !models.IsPaidGroup(s.Group) || s.TotalMeals == 0 {
			continue
		}
		unit := s.TotalPrice / s.TotalMeals
		r.add(s.UserName, s.Group, strconv.Itoa(s.TotalMeals), strconv.Itoa(unit),
			strconv.Itoa(s.TotalPrice))
		total += s.TotalPrice
		count++
	}
	if count == 0 {
		return nil, ErrNoData
	}
	r.add("合計", "", "", "", strconv.Itoa(total))

	return &File{
		Filename: fmt.Sprintf("請求データ_%s.csv", period),
		Content:  r.bytes(),
	}, nil
}

// UserRoster builds the full user listing.
func UserRoster(users []models.User) (*File, error) {
	if len(users) == 0 {
		return nil, ErrNoData
	}

	sorted := make([]models.User, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Group != sorted[j].Group {
			return sorted[i].Group < sorted[j].Group
		}
		return sorted[i].DisplayNumber < sorted[j].DisplayNumber
	})

	r := newRows()
	r.add("表示番号", "利用者名", "グループ", "単価", "登録日", "状態", "体験", "備考")
	for _, u := range sorted {
		status := "有効"
		if !u.IsActive {
			status = "無効"
		}
		trial := ""
		if u.TrialUser {
			trial = "体験"
		}
		r.add(strconv.Itoa(u.DisplayNumber), u.Name, u.Group, strconv.Itoa(u.Price),
			u.CreatedAt, status, trial, u.Notes)
	}

	return &File{
		Filename: "利用者一覧.csv",
		Content:  r.bytes(),
	}, nil
}

// Comprehensive concatenates the monthly report sections, the rating
// analysis and the roster into one file with section header lines. It
// is not machine-parseable as a single flat table by design.
func Comprehensive(users []models.User, records []models.MealRecord, period string,
	userSummaries []stats.UserMonthlySummary, groupSummaries []stats.GroupSummary,
	distribution []stats.RatingBucket, trend []stats.MonthlyStat) (*File, error) {

	if len(records) == 0 {
		return nil, ErrNoData
	}

	sections := []*File{}
	if f, err := MonthlyReport(userSummaries, groupSummaries, period); err == nil {
		sections = append(sections, f)
	}
	if f, err := RatingAnalysis(records, distribution, trend, period); err == nil {
		sections = append(sections, f)
	}
	if f, err := UserRoster(users); err == nil {
		sections = append(sections, f)
	}
	if len(sections) == 0 {
		return nil, ErrNoData
	}

	r := newRows()
	r.add(fmt.Sprintf("総合レポート %s", period))
	for _, s := range sections {
		r.add()
		r.add(fmt.Sprintf("==== %s", strings.TrimSuffix(s.Filename, ".csv")))
		r.b.WriteString(strings.TrimPrefix(string(s.Content), BOM))
	}

	return &File{
		Filename: fmt.Sprintf("総合レポート_%s.csv", period),
		Content:  r.bytes(),
	}, nil
}

type menuAverage struct {
	name    string
	count   int
	average float64
}

func menuAverages(records []models.MealRecord) []menuAverage {
	sums := make(map[string]int)
	counts := make(map[string]int)
	var order []string
	for _, rec := range records {
		if !rec.Evaluated() || rec.MenuName == "" {
			continue
		}
		if _, seen := counts[rec.MenuName]; !seen {
			order = append(order, rec.MenuName)
		}
		counts[rec.MenuName]++
		sums[rec.MenuName] += rec.EatingRatio
	}
	sort.Strings(order)

	out := make([]menuAverage, 0, len(order))
	for _, name := range order {
		avg := float64(sums[name]) / float64(counts[name])
		out = append(out, menuAverage{name: name, count: counts[name], average: roundTo2(avg)})
	}
	return out
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatAvg(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func format1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
