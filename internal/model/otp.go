package model

// PhoneOTP is a one-time login code issued for a phone number.
// Timestamps are absolute epoch seconds. At most one row exists per phone;
// issuing a new code replaces any prior row, and a row never survives a
// verification attempt that matches or finds it expired.
type PhoneOTP struct {
	ID        int64  `db:"id"`
	Phone     string `db:"phone"`
	CodeHash  string `db:"code_hash"` // salted hash only, plaintext is never stored
	ExpiresAt int64  `db:"expires_at"`
	CreatedAt int64  `db:"created_at"`
}

func (o *PhoneOTP) Expired(now int64) bool {
	return o.ExpiresAt < now
}
