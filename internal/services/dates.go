package services

import (
	"fmt"
	"time"
)

var ruMonthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// FormatDate renders a unix timestamp (seconds) in the local zone as
// "24 марта 2011 г.". Zero yields "".
func FormatDate(timestamp int64) string {
	return FormatDateIn(timestamp, time.Local)
}

func FormatDateIn(timestamp int64, loc *time.Location) string {
	if timestamp == 0 {
		return ""
	}
	t := time.Unix(timestamp, 0).In(loc)
	return fmt.Sprintf("%d %s %d г.", t.Day(), ruMonthsGenitive[t.Month()-1], t.Year())
}
