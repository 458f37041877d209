package submission

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	cryptoutil "enroll/internal/platform/crypto"
)

const (
	testKey      = "0123456789abcdef0123456789abcdef"
	testWrongKey = "ffffffffffffffffffffffffffffffff"
)

func newTestCodec(t *testing.T, key string, publicFields []string) *Codec {
	t.Helper()
	svc, err := cryptoutil.New(key)
	if err != nil {
		t.Fatalf("crypto service: %v", err)
	}
	return NewCodec(svc, publicFields)
}

func sampleSubmission() Submission {
	return Submission{
		Type: TypeFamily,
		Employee: Employee{
			Name:      "Anna",
			Surname:   "Kowalska",
			Gender:    "kobieta",
			Pesel:     "44051401458",
			BirthDate: "1944-05-14",
			Email:     "anna.kowalska@example.com",
			Phone:     "+48123456789",
			Address: Address{
				Street:      "Polna",
				HouseNumber: "12",
				FlatNumber:  "3",
				Zip:         "00-001",
				PostOffice:  "Warszawa",
				City:        "Warszawa",
				Country:     "Polska",
				Region:      "mazowieckie",
			},
		},
		Family: &FamilyMember{
			Name:           "Jan",
			Surname:        "Kowalski",
			Gender:         "mezczyzna",
			IdentityMethod: MethodBirthDoc,
			BirthDate:      "2010-06-01",
			DocumentType:   "paszport",
			DocNumber:      "AB1234567",
			IssuingCountry: "Polska",
		},
		Consents: Consents{Truthful: true, Processing: true, ProcedureRead: true},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := newTestCodec(t, testKey, nil)
	sub := sampleSubmission()

	rec, err := codec.Encode(sub)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if rec.Name != "" || rec.Surname != "" || rec.Pesel != "" {
		t.Fatalf("expected no plaintext columns by default, got %+v", rec)
	}

	got, err := codec.Decode(rec)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, sub) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, sub)
	}
}

func TestEncodePublicFieldPartition(t *testing.T) {
	codec := newTestCodec(t, testKey, []string{"name", "surname", "pesel"})
	sub := sampleSubmission()

	rec, err := codec.Encode(sub)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if rec.Name != "Anna" || rec.Surname != "Kowalska" || rec.Pesel != "44051401458" {
		t.Fatalf("public columns not populated: %+v", rec)
	}

	got, err := codec.Decode(rec)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, sub) {
		t.Fatalf("merged decode mismatch:\n got %+v\nwant %+v", got, sub)
	}
}

func TestEncodeCiphertextIsRandomized(t *testing.T) {
	codec := newTestCodec(t, testKey, nil)
	sub := sampleSubmission()

	first, err := codec.Encode(sub)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := codec.Encode(sub)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if bytes.Equal(first.Ciphertext, second.Ciphertext) {
		t.Fatal("equal submissions must not produce equal ciphertext")
	}
}

func TestDecodeWithWrongKeyIsDecodeError(t *testing.T) {
	encoder := newTestCodec(t, testKey, nil)
	decoder := newTestCodec(t, testWrongKey, nil)

	rec, err := encoder.Encode(sampleSubmission())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	rec.ID = 42

	_, err = decoder.Decode(rec)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.RecordID != 42 {
		t.Fatalf("expected record id 42, got %d", decodeErr.RecordID)
	}
}

func TestDecodeGarbagePlaintextIsDecodeError(t *testing.T) {
	codec := newTestCodec(t, testKey, nil)

	svc, err := cryptoutil.New(testKey)
	if err != nil {
		t.Fatalf("crypto service: %v", err)
	}
	ciphertext, err := svc.Encrypt([]byte("not json at all"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	_, err = codec.Decode(StoredRecord{ID: 7, Ciphertext: ciphertext})
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError for garbage plaintext, got %v", err)
	}
}

func TestDecodeSchemaDriftIsDecodeError(t *testing.T) {
	codec := newTestCodec(t, testKey, nil)

	svc, err := cryptoutil.New(testKey)
	if err != nil {
		t.Fatalf("crypto service: %v", err)
	}
	// Valid JSON from an older encoding without a submission type tag.
	ciphertext, err := svc.Encrypt([]byte(`{"name":"Anna"}`))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	_, err = codec.Decode(StoredRecord{ID: 9, Ciphertext: ciphertext})
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError for schema drift, got %v", err)
	}
}

func TestDecodeAllIsolatesCorruptRows(t *testing.T) {
	codec := newTestCodec(t, testKey, nil)
	sub := sampleSubmission()

	var recs []StoredRecord
	for i := int64(1); i <= 3; i++ {
		rec, err := codec.Encode(sub)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		rec.ID = i
		recs = append(recs, rec)
	}
	// Corrupt the middle row only.
	recs[1].Ciphertext[len(recs[1].Ciphertext)-1] ^= 0x01

	decoded, failures := codec.DecodeAll(recs)
	if len(decoded) != 2 {
		t.Fatalf("expected 2 usable records, got %d", len(decoded))
	}
	if len(failures) != 1 {
		t.Fatalf("expected exactly 1 failure, got %d", len(failures))
	}
	if failures[0].RecordID != 2 {
		t.Fatalf("expected failure for record 2, got %d", failures[0].RecordID)
	}
	if decoded[0].ID != 1 || decoded[1].ID != 3 {
		t.Fatalf("expected records 1 and 3 in order, got %d and %d", decoded[0].ID, decoded[1].ID)
	}
}
