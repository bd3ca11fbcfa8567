package analytics

import (
	"sort"
	"time"

	"tradelog/internal/models"
)

// bucketTime is the UTC instant a trade is bucketed under. Unparseable
// timestamps collapse to the epoch, matching the curve's sort key.
func bucketTime(t models.Trade) time.Time {
	ts, ok := tradeTime(t)
	if !ok {
		return time.Unix(0, 0)
	}
	return ts
}

// PnLByDay sums trade PnL per UTC calendar day (YYYY-MM-DD), ascending
// by date. Days without trades are absent.
func PnLByDay(trades []models.Trade) []models.DayPoint {
	buckets := make(map[string]float64)
	for _, t := range trades {
		key := bucketTime(t).UTC().Format("2006-01-02")
		buckets[key] += PnL(t)
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]models.DayPoint, 0, len(days))
	for _, day := range days {
		points = append(points, models.DayPoint{Day: day, PnL: buckets[day]})
	}
	return points
}

// PnLByHour sums trade PnL per UTC hour of day. All 24 hours are always
// present, zero-filled, sorted ascending by hour.
func PnLByHour(trades []models.Trade) []models.HourPoint {
	var buckets [24]float64
	for _, t := range trades {
		buckets[bucketTime(t).UTC().Hour()] += PnL(t)
	}

	points := make([]models.HourPoint, 24)
	for h := 0; h < 24; h++ {
		points[h] = models.HourPoint{Hour: h, PnL: buckets[h]}
	}
	return points
}

// WorstTradingHour returns the hour bucket with the minimum summed PnL.
// Ties, including the all-zero case, break to the lowest hour index.
// Empty input yields hour 0 with PnL 0.
func WorstTradingHour(points []models.HourPoint) models.HourPoint {
	worst := models.HourPoint{}
	for i, p := range points {
		if i == 0 || p.PnL < worst.PnL {
			worst = p
		}
	}
	return worst
}
