package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Backend datetime fields are MySQL DATETIMEs pinned to Thai wall-clock time;
// they are exchanged verbatim, never shifted through UTC.
const DateTimeLayout = "2006-01-02 15:04:05"

// InputDateTimeLayout is the datetime-local form input format.
const InputDateTimeLayout = "2006-01-02T15:04"

var bangkok = mustLoadBangkok()

func mustLoadBangkok() *time.Location {
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		log.Fatalf("utils.LoadLocation: %v", err)
	}
	return loc
}

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// FormatDateTime renders t as a backend DATETIME in Thai time.
func FormatDateTime(t time.Time) string {
	return t.In(bangkok).Format(DateTimeLayout)
}

// ParseDateTime accepts either the backend DATETIME format or the
// datetime-local input format, both read as Thai wall-clock time.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateTimeLayout, s, bangkok); err == nil {
		return t, nil
	}
	return time.ParseInLocation(InputDateTimeLayout, s, bangkok)
}

// CountWords counts whitespace-separated words; detail fields carry a
// word ceiling that is checked before submit.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// Getwd tries to find the project root "courseadmin".
// go-test changes the working directory to the test package being run during tests... this breaks our code...
// see: https://stackoverflow.com/questions/23847003/golang-tests-and-working-directory
// this is a temporary fix for now :(
func Getwd() string {
	root := "courseadmin"
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if fi, err := os.Stat(currDir); err == nil {
			dirBase := filepath.Base(currDir)
			if dirBase == root && fi.IsDir() {
				return currDir
			}
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
