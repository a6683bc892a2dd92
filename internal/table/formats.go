package table

import (
	"regexp"
	"strings"
)

type numClass int

const (
	classNumber numClass = iota
	classDate
	classTime
)

// встроенные форматы дат, включая японские (27-36, 50-58)
func isDateFormat(fmtID int) bool {
	switch fmtID {
	case 14, 15, 16, 17, 22, 27, 28, 29, 30, 31, 34, 35, 36, 50, 51, 52, 53, 54, 57, 58:
		return true
	}
	return false
}

func isTimeFormat(fmtID int) bool {
	switch fmtID {
	case 18, 19, 20, 21, 32, 33, 45, 46, 47, 55, 56:
		return true
	}
	return false
}

var (
	fmtSections = regexp.MustCompile(`\[[^\]]*\]|"[^"]*"|\\.`)
)

// classifyCustom разбирает пользовательский формат числа
func classifyCustom(code string) numClass {
	code = strings.ToLower(fmtSections.ReplaceAllString(code, ""))
	switch {
	case code == "general":
		return classNumber
	case strings.ContainsAny(code, "yd"):
		return classDate
	case strings.Contains(code, "h") || strings.Contains(code, "s"):
		return classTime
	}
	return classNumber
}

func classify(fmtID int, custom *string) numClass {
	if custom != nil && *custom != "" {
		return classifyCustom(*custom)
	}
	switch {
	case isDateFormat(fmtID):
		return classDate
	case isTimeFormat(fmtID):
		return classTime
	}
	return classNumber
}
