// Package identity validates the identity fields a submission can carry:
// PESEL numbers and identity-document numbers.
package identity

import (
	"regexp"
	"time"
)

var peselPattern = regexp.MustCompile(`^\d{11}$`)

var peselWeights = [10]int{1, 3, 7, 9, 1, 3, 7, 9, 1, 3}

// ValidPesel reports whether pesel is 11 digits with a correct control digit.
// Anything that is not exactly 11 digits is invalid, not an error.
func ValidPesel(pesel string) bool {
	if !peselPattern.MatchString(pesel) {
		return false
	}
	sum := 0
	for i, weight := range peselWeights {
		sum += int(pesel[i]-'0') * weight
	}
	control := (10 - sum%10) % 10
	return control == int(pesel[10]-'0')
}

// BirthDate derives the birth date encoded in a PESEL. The month pair carries
// the century: +80 means 1800s, +60 means 2200s, +40 means 2100s, +20 means
// 2000s, unshifted means 1900s. Returns ok=false for non-11-digit input.
func BirthDate(pesel string) (time.Time, bool) {
	if !peselPattern.MatchString(pesel) {
		return time.Time{}, false
	}
	year := int(pesel[0]-'0')*10 + int(pesel[1]-'0')
	month := int(pesel[2]-'0')*10 + int(pesel[3]-'0')
	day := int(pesel[4]-'0')*10 + int(pesel[5]-'0')

	switch {
	case month > 80:
		year += 1800
		month -= 80
	case month > 60:
		year += 2200
		month -= 60
	case month > 40:
		year += 2100
		month -= 40
	case month > 20:
		year += 2000
		month -= 20
	default:
		year += 1900
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

const (
	DocumentTypeIDCard   = "dowod"
	DocumentTypePassport = "paszport"
)

var (
	idCardPattern   = regexp.MustCompile(`^[A-Z]{3}\d{6}$`)
	passportPattern = regexp.MustCompile(`^[A-Z]{2}\d{7}$`)
)

// ValidDocumentNumber checks the document number format for the given
// document type. Unknown document types never validate.
func ValidDocumentNumber(documentType, number string) bool {
	switch documentType {
	case DocumentTypeIDCard:
		return idCardPattern.MatchString(number)
	case DocumentTypePassport:
		return passportPattern.MatchString(number)
	default:
		return false
	}
}
