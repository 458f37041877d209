package submission

import (
	"net/mail"
	"strings"
	"time"

	"enroll/internal/domain/identity"
)

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

var genders = map[string]bool{
	"kobieta":   true,
	"mezczyzna": true,
}

// Validate checks a submission and normalizes it: on any PESEL identity path
// the birth date is derived from the PESEL and overwrites the client value.
// An empty result means the submission is ready to encode.
func Validate(sub *Submission) []Issue {
	var issues []Issue
	add := func(field, reason string) {
		issues = append(issues, Issue{Field: field, Reason: reason})
	}

	switch sub.Type {
	case TypeEmployee:
		if sub.Family != nil {
			add("family", "must be omitted for employee submissions")
		}
	case TypeFamily:
		if sub.Family == nil {
			add("family", "is required for family submissions")
		}
	default:
		add("submissionType", "must be employee or family")
	}

	validateEmployee(&sub.Employee, add)

	if sub.Type == TypeFamily && sub.Family != nil {
		validateFamilyMember(sub.Family, add)
	}

	if !sub.Consents.Truthful {
		add("consents.truthful", "consent is required")
	}
	if !sub.Consents.Processing {
		add("consents.processing", "consent is required")
	}
	if !sub.Consents.ProcedureRead {
		add("consents.procedureRead", "consent is required")
	}

	return issues
}

func validateEmployee(emp *Employee, add func(field, reason string)) {
	required(add, "employee.name", emp.Name)
	required(add, "employee.surname", emp.Surname)
	if !genders[emp.Gender] {
		add("employee.gender", "must be kobieta or mezczyzna")
	}

	if emp.Pesel == "" {
		add("employee.pesel", "is required")
	} else if !identity.ValidPesel(emp.Pesel) {
		add("employee.pesel", "failed checksum validation")
	} else if birth, ok := identity.BirthDate(emp.Pesel); ok {
		emp.BirthDate = birth.Format("2006-01-02")
	}

	if emp.Email == "" {
		add("employee.email", "is required")
	} else if _, err := mail.ParseAddress(emp.Email); err != nil {
		add("employee.email", "must be a valid email address")
	}
	required(add, "employee.phone", emp.Phone)

	required(add, "employee.address.street", emp.Address.Street)
	required(add, "employee.address.houseNumber", emp.Address.HouseNumber)
	required(add, "employee.address.zip", emp.Address.Zip)
	required(add, "employee.address.postOffice", emp.Address.PostOffice)
	required(add, "employee.address.city", emp.Address.City)
	required(add, "employee.address.country", emp.Address.Country)
	required(add, "employee.address.region", emp.Address.Region)
}

func validateFamilyMember(member *FamilyMember, add func(field, reason string)) {
	required(add, "family.name", member.Name)
	required(add, "family.surname", member.Surname)
	if !genders[member.Gender] {
		add("family.gender", "must be kobieta or mezczyzna")
	}

	switch member.IdentityMethod {
	case MethodPesel:
		if member.Pesel == "" {
			add("family.pesel", "is required")
		} else if !identity.ValidPesel(member.Pesel) {
			add("family.pesel", "failed checksum validation")
		} else if birth, ok := identity.BirthDate(member.Pesel); ok {
			member.BirthDate = birth.Format("2006-01-02")
		}
		if member.DocumentType != "" || member.DocNumber != "" || member.IssuingCountry != "" {
			add("family.identityMethod", "document fields must be empty on the pesel path")
		}
	case MethodBirthDoc:
		if member.Pesel != "" {
			add("family.identityMethod", "pesel must be empty on the birthDoc path")
		}
		if member.BirthDate == "" {
			add("family.birthDate", "is required")
		} else if _, err := time.Parse("2006-01-02", member.BirthDate); err != nil {
			add("family.birthDate", "must be a valid date in YYYY-MM-DD format")
		}
		switch member.DocumentType {
		case identity.DocumentTypeIDCard:
			if !identity.ValidDocumentNumber(member.DocumentType, member.DocNumber) {
				add("family.docNumber", "id card format is 3 letters and 6 digits")
			}
		case identity.DocumentTypePassport:
			if !identity.ValidDocumentNumber(member.DocumentType, member.DocNumber) {
				add("family.docNumber", "passport format is 2 letters and 7 digits")
			}
		default:
			add("family.documentType", "must be dowod or paszport")
		}
		required(add, "family.issuingCountry", member.IssuingCountry)
	default:
		add("family.identityMethod", "must be pesel or birthDoc")
	}
}

func required(add func(field, reason string), field, value string) {
	if strings.TrimSpace(value) == "" {
		add(field, "is required")
	}
}
