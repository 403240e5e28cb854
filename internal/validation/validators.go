package validation

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"time"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
)

// Patterns that are never legitimate in facility data. Matching is
// advisory sanitization for operator-entered text, not a security
// boundary.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)\bon\w+\s*=`),
}

var controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

type StringOptions struct {
	AllowEmpty bool
	MinLength  int
	MaxLength  int
}

// ValidateString checks a raw candidate value as a string field.
func ValidateString(value interface{}, field string, opts StringOptions) Result {
	result := NewResult()

	s, ok := value.(string)
	if !ok {
		result.AddError(fmt.Sprintf("%s: 文字列ではありません", field))
		return result
	}

	if s == "" {
		if !opts.AllowEmpty {
			result.AddError(fmt.Sprintf("%s: 必須項目です", field))
		}
		return result
	}

	if opts.MinLength > 0 && len([]rune(s)) < opts.MinLength {
		result.AddError(fmt.Sprintf("%s: %d文字以上で入力してください", field, opts.MinLength))
	}
	if opts.MaxLength > 0 && len([]rune(s)) > opts.MaxLength {
		result.AddError(fmt.Sprintf("%s: %d文字以内で入力してください", field, opts.MaxLength))
	}

	for _, p := range dangerousPatterns {
		if p.MatchString(s) {
			result.AddError(fmt.Sprintf("%s: 危険な文字列が含まれています", field))
			break
		}
	}

	if controlChars.MatchString(s) {
		result.AddWarning(fmt.Sprintf("%s: 制御文字が含まれています", field))
	}

	return result
}

type NumberOptions struct {
	Min            *float64
	Max            *float64
	RequireInteger bool
	AllowZero      bool
	AllowNegative  bool
}

// ValidateNumber checks a raw candidate value as a number. Numeric
// strings are accepted by coercion, matching operator form input.
func ValidateNumber(value interface{}, field string, opts NumberOptions) Result {
	result := NewResult()

	var n float64
	switch v := value.(type) {
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case float64:
		n = v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			result.AddError(fmt.Sprintf("%s: 数値ではありません", field))
			return result
		}
		n = parsed
	default:
		result.AddError(fmt.Sprintf("%s: 数値ではありません", field))
		return result
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		result.AddError(fmt.Sprintf("%s: 無効な数値です", field))
		return result
	}

	if opts.RequireInteger && n != math.Trunc(n) {
		result.AddError(fmt.Sprintf("%s: 整数で入力してください", field))
	}
	if !opts.AllowZero && n == 0 {
		result.AddError(fmt.Sprintf("%s: 0は指定できません", field))
	}
	if !opts.AllowNegative && n < 0 {
		result.AddError(fmt.Sprintf("%s: 負の値は指定できません", field))
	}
	if opts.Min != nil && n < *opts.Min {
		result.AddError(fmt.Sprintf("%s: %v以上で入力してください", field, *opts.Min))
	}
	if opts.Max != nil && n > *opts.Max {
		result.AddError(fmt.Sprintf("%s: %v以下で入力してください", field, *opts.Max))
	}

	return result
}

type DateOptions struct {
	DisallowPast   bool
	DisallowFuture bool
	Min            *time.Time
	Max            *time.Time
}

// ValidateDate checks a raw candidate as a date. Accepts time.Time or
// an ISO string (date-only or RFC3339).
func ValidateDate(value interface{}, field string, opts DateOptions) Result {
	result := NewResult()

	t, ok := parseDateValue(value)
	if !ok {
		result.AddError(fmt.Sprintf("%s: 日付として解釈できません", field))
		return result
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())

	if opts.DisallowPast && day.Before(today) {
		result.AddError(fmt.Sprintf("%s: 過去の日付は指定できません", field))
	}
	if opts.DisallowFuture && day.After(today) {
		result.AddError(fmt.Sprintf("%s: 未来の日付は指定できません", field))
	}
	if opts.Min != nil && t.Before(*opts.Min) {
		result.AddError(fmt.Sprintf("%s: %sより前の日付は指定できません", field, opts.Min.Format("2006-01-02")))
	}
	if opts.Max != nil && t.After(*opts.Max) {
		result.AddError(fmt.Sprintf("%s: %sより後の日付は指定できません", field, opts.Max.Format("2006-01-02")))
	}

	if diff := t.Year() - now.Year(); diff > 100 || diff < -100 {
		result.AddWarning(fmt.Sprintf("%s: 年が現在から100年以上離れています", field))
	}

	return result
}

// LongRangeDays is the span beyond which a date range draws a warning.
const LongRangeDays = 366

// ValidateDateRange checks a start/end pair. Both must be present or
// both absent (nil); start must not be after end.
func ValidateDateRange(start, end interface{}, field string) Result {
	result := NewResult()

	if start == nil && end == nil {
		return result
	}
	if start == nil || end == nil {
		result.AddError(fmt.Sprintf("%s: 開始日と終了日は両方指定してください", field))
		return result
	}

	result.Merge(ValidateDate(start, field+"(開始)", DateOptions{}))
	result.Merge(ValidateDate(end, field+"(終了)", DateOptions{}))
	if !result.IsValid {
		return result
	}

	s, _ := parseDateValue(start)
	e, _ := parseDateValue(end)

	if s.After(e) {
		result.AddError(fmt.Sprintf("%s: 開始日が終了日より後になっています", field))
		return result
	}
	if s.Equal(e) {
		result.AddWarning(fmt.Sprintf("%s: 開始日と終了日が同じです", field))
	}
	if e.Sub(s) > LongRangeDays*24*time.Hour {
		result.AddWarning(fmt.Sprintf("%s: 期間が%d日を超えています", field, LongRangeDays))
	}

	return result
}

// ValidateGroup checks membership in the fixed group set.
func ValidateGroup(value interface{}, field string) Result {
	result := NewResult()

	s, ok := value.(string)
	if !ok {
		result.AddError(fmt.Sprintf("%s: 文字列ではありません", field))
		return result
	}
	if !models.IsValidGroup(s) {
		result.AddError(fmt.Sprintf("%s: 無効なグループです: %s", field, s))
	}
	return result
}

// ValidateArray checks a raw candidate is a slice within length bounds.
// Pass max < 0 for no upper bound.
func ValidateArray(value interface{}, field string, min, max int) Result {
	result := NewResult()

	rv := reflect.ValueOf(value)
	if value == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		result.AddError(fmt.Sprintf("%s: 配列ではありません", field))
		return result
	}

	n := rv.Len()
	if n < min {
		result.AddError(fmt.Sprintf("%s: %d件以上必要です", field, min))
	}
	if max >= 0 && n > max {
		result.AddError(fmt.Sprintf("%s: %d件以下にしてください", field, max))
	}
	return result
}

// FindDuplicates returns each key value appearing more than once, in
// first-seen order.
func FindDuplicates[T any, K comparable](items []T, key func(T) K) []K {
	seen := make(map[K]int, len(items))
	var dups []K
	for _, item := range items {
		k := key(item)
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}

func parseDateValue(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
