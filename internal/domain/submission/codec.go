package submission

import (
	"encoding/json"
	"errors"
	"fmt"

	cryptoutil "enroll/internal/platform/crypto"
)

// Codec turns submissions into stored records and back. The public field set
// decides which identity columns stay in plaintext for search; everything is
// always present in the encrypted payload, so decode merges the plaintext
// columns over the decrypted submission.
type Codec struct {
	crypto *cryptoutil.Service
	public map[string]bool
}

func NewCodec(crypto *cryptoutil.Service, publicFields []string) *Codec {
	public := make(map[string]bool, len(publicFields))
	for _, field := range publicFields {
		public[field] = true
	}
	return &Codec{crypto: crypto, public: public}
}

// DecodeError marks a single stored record as unreadable: wrong key,
// corrupted ciphertext, or a payload that no longer deserializes.
type DecodeError struct {
	RecordID int64
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("record %d undecodable: %v", e.RecordID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode serializes the whole submission, encrypts it, and copies the
// configured public subset into plaintext columns. Ciphertext is randomized
// per encode; equal submissions never imply equal ciphertext.
func (c *Codec) Encode(sub Submission) (StoredRecord, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return StoredRecord{}, err
	}
	ciphertext, err := c.crypto.Encrypt(payload)
	if err != nil {
		return StoredRecord{}, err
	}

	rec := StoredRecord{Ciphertext: ciphertext}
	if c.public["name"] {
		rec.Name = sub.Employee.Name
	}
	if c.public["surname"] {
		rec.Surname = sub.Employee.Surname
	}
	if c.public["pesel"] {
		rec.Pesel = sub.Employee.Pesel
	}
	return rec, nil
}

// Decode decrypts one stored record and merges the plaintext columns back
// over the payload. Any failure is reported as a *DecodeError for that
// record alone.
func (c *Codec) Decode(rec StoredRecord) (Submission, error) {
	plain, err := c.crypto.Decrypt(rec.Ciphertext)
	if err != nil {
		return Submission{}, &DecodeError{RecordID: rec.ID, Err: err}
	}

	var sub Submission
	if err := json.Unmarshal(plain, &sub); err != nil {
		return Submission{}, &DecodeError{RecordID: rec.ID, Err: err}
	}
	if sub.Type != TypeEmployee && sub.Type != TypeFamily {
		return Submission{}, &DecodeError{RecordID: rec.ID, Err: fmt.Errorf("unknown submission type %q", sub.Type)}
	}

	if rec.Name != "" {
		sub.Employee.Name = rec.Name
	}
	if rec.Surname != "" {
		sub.Employee.Surname = rec.Surname
	}
	if rec.Pesel != "" {
		sub.Employee.Pesel = rec.Pesel
	}
	return sub, nil
}

// DecodeAll decodes a batch with per-record isolation: one corrupt row never
// aborts the rest. Input order (the store's created_at DESC) is preserved.
func (c *Codec) DecodeAll(recs []StoredRecord) ([]DecodedRecord, []*DecodeError) {
	decoded := make([]DecodedRecord, 0, len(recs))
	var failures []*DecodeError
	for _, rec := range recs {
		sub, err := c.Decode(rec)
		if err != nil {
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				decodeErr = &DecodeError{RecordID: rec.ID, Err: err}
			}
			failures = append(failures, decodeErr)
			continue
		}
		decoded = append(decoded, DecodedRecord{ID: rec.ID, CreatedAt: rec.CreatedAt, Submission: sub})
	}
	return decoded, failures
}
