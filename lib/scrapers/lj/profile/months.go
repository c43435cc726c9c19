package profile

import "strings"

// month-name lookup across the languages the profile page is known
// to localize into. Names shared between languages (april, mai,
// august...) agree on the month number, so merge order doesn't
// matter.
var monthNames = map[string]int{}

var monthNamesByLanguage = []map[string]int{
	// English
	{
		"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
		"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7,
		"aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	},
	// Russian
	{
		"января": 1, "февраля": 2, "марта": 3, "апреля": 4, "мая": 5, "июня": 6,
		"июля": 7, "августа": 8, "сентября": 9, "октября": 10, "ноября": 11, "декабря": 12,
		"янв": 1, "фев": 2, "мар": 3, "апр": 4, "июн": 6, "июл": 7,
		"авг": 8, "сен": 9, "окт": 10, "ноя": 11, "дек": 12,
	},
	// German
	{
		"januar": 1, "februar": 2, "märz": 3, "april": 4, "mai": 5, "juni": 6,
		"juli": 7, "august": 8, "september": 9, "oktober": 10, "november": 11, "dezember": 12,
	},
	// French
	{
		"janvier": 1, "février": 2, "mars": 3, "avril": 4, "mai": 5, "juin": 6,
		"juillet": 7, "août": 8, "septembre": 9, "octobre": 10, "novembre": 11, "décembre": 12,
	},
	// Spanish
	{
		"enero": 1, "febrero": 2, "marzo": 3, "abril": 4, "mayo": 5, "junio": 6,
		"julio": 7, "agosto": 8, "septiembre": 9, "octubre": 10, "noviembre": 11, "diciembre": 12,
	},
}

func init() {
	for _, language := range monthNamesByLanguage {
		for name, number := range language {
			monthNames[name] = number
		}
	}
}

// MonthNumber resolves a localized month name case-insensitively.
func MonthNumber(name string) (int, bool) {
	n, ok := monthNames[strings.ToLower(name)]
	return n, ok
}
