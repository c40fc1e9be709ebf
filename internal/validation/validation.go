// Package validation содержит функции валидации входных данных.
package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/mmeshcher/bakkerij/internal/model"
)

// DateLayout — формат даты самовывоза в формах.
const DateLayout = "2006-01-02"

const (
	pickupMinDays = 1
	pickupMaxDays = 30
)

// IsValidFirstName проверяет, что имя непустое и состоит только из латинских букв.
func IsValidFirstName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}

	for i := 0; i < len(name); i++ {
		ch := name[i]
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') {
			return false
		}
	}

	return true
}

// PickupWindow возвращает первую и последнюю допустимые даты самовывоза относительно now.
func PickupWindow(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, pickupMinDays), today.AddDate(0, 0, pickupMaxDays)
}

// IsValidPickupDate проверяет, что дата в формате DateLayout попадает в окно самовывоза.
func IsValidPickupDate(date string, now time.Time) bool {
	t, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false
	}

	minDate, maxDate := PickupWindow(now)
	return !t.Before(minDate) && !t.After(maxDate)
}

// ParseQuantity разбирает количество товара. Пустая строка даёт значение def.
// Значения по модулю больше model.MaxLineQuantity отклоняются.
func ParseQuantity(raw string, def int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	if n > model.MaxLineQuantity || n < -model.MaxLineQuantity {
		return 0, false
	}
	return n, true
}
