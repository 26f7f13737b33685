package helper

import "gorm.io/gorm"

// CountBy groups q by column and returns per-value counts plus the total.
// q must already carry its Model (and any Where).
func CountBy(q *gorm.DB, column string) (map[string]int64, int64, error) {
	type row struct {
		Value string
		N     int64
	}
	var rows []row
	if err := q.Select(column + " AS value, COUNT(*) AS n").Group(column).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make(map[string]int64, len(rows))
	var total int64
	for _, r := range rows {
		out[r.Value] = r.N
		total += r.N
	}
	return out, total, nil
}
