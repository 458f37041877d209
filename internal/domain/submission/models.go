package submission

import "time"

type Type string

const (
	TypeEmployee Type = "employee"
	TypeFamily   Type = "family"
)

type IdentityMethod string

const (
	MethodPesel    IdentityMethod = "pesel"
	MethodBirthDoc IdentityMethod = "birthDoc"
)

// Submission is one form entry. The type tag decides whether the family
// member block is present; employee submissions must not carry one.
type Submission struct {
	Type     Type          `json:"submissionType"`
	Employee Employee      `json:"employee"`
	Family   *FamilyMember `json:"family,omitempty"`
	Consents Consents      `json:"consents"`
}

// Employee identity is always PESEL-based; the birth date is derived from
// the PESEL on the server and overwrites whatever the client sent.
type Employee struct {
	Name      string  `json:"name"`
	Surname   string  `json:"surname"`
	Gender    string  `json:"gender"`
	Pesel     string  `json:"pesel"`
	BirthDate string  `json:"birthDate"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Address   Address `json:"address"`
}

type Address struct {
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	FlatNumber  string `json:"flatNumber,omitempty"`
	Zip         string `json:"zip"`
	PostOffice  string `json:"postOffice"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Region      string `json:"region"`
}

// FamilyMember carries exactly one active identity method: pesel (birth date
// derived) or birthDoc (birth date plus document data entered directly).
type FamilyMember struct {
	Name           string         `json:"name"`
	Surname        string         `json:"surname"`
	Gender         string         `json:"gender"`
	IdentityMethod IdentityMethod `json:"identityMethod"`
	Pesel          string         `json:"pesel,omitempty"`
	BirthDate      string         `json:"birthDate,omitempty"`
	DocumentType   string         `json:"documentType,omitempty"`
	DocNumber      string         `json:"docNumber,omitempty"`
	IssuingCountry string         `json:"issuingCountry,omitempty"`
}

type Consents struct {
	Truthful      bool `json:"truthful"`
	Processing    bool `json:"processing"`
	ProcedureRead bool `json:"procedureRead"`
}

// StoredRecord is the persisted form of a Submission: whatever public
// columns the deployment keeps in plaintext, plus the encrypted remainder.
type StoredRecord struct {
	ID         int64
	Name       string
	Surname    string
	Pesel      string
	Ciphertext []byte
	CreatedAt  time.Time
}

// DecodedRecord is a StoredRecord whose payload decrypted successfully.
type DecodedRecord struct {
	ID         int64      `json:"id"`
	CreatedAt  time.Time  `json:"createdAt"`
	Submission Submission `json:"submission"`
}
