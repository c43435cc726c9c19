package posts

// Month is one (year, month) pair in a download range.
type Month struct {
	Year  int
	Month int
}

// MonthRange expands an inclusive range into the months it covers, in
// chronological order. An end before the start yields nothing.
func MonthRange(startYear, startMonth, endYear, endMonth int) []Month {
	var months []Month
	year, month := startYear, startMonth
	for year < endYear || (year == endYear && month <= endMonth) {
		months = append(months, Month{Year: year, Month: month})
		month++
		if month > 12 {
			year++
			month = 1
		}
	}
	return months
}
