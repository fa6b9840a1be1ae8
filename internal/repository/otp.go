package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dailabs/dai/internal/model"
)

var ErrOTPNotFound = errors.New("otp not found")

type OTPRepository interface {
	// Replace deletes all codes for the phone and inserts the new one,
	// keeping at most one active row per phone.
	Replace(otp *model.PhoneOTP) error
	// Latest returns the most recently created code for the phone.
	Latest(phone string) (*model.PhoneOTP, error)
	Delete(id int64) error
}

type otpRepository struct {
	db *sqlx.DB
}

func NewOTPRepository(db *sqlx.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Replace(otp *model.PhoneOTP) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(`DELETE FROM phone_otps WHERE phone = $1`, otp.Phone)
	if err != nil {
		return fmt.Errorf("delete prior codes: %w", err)
	}

	res, err := tx.Exec(
		`INSERT INTO phone_otps (phone, code_hash, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		otp.Phone, otp.CodeHash, otp.ExpiresAt, otp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert code: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	otp.ID = id

	return tx.Commit()
}

func (r *otpRepository) Latest(phone string) (*model.PhoneOTP, error) {
	otp := &model.PhoneOTP{}
	query := `SELECT * FROM phone_otps WHERE phone = $1 ORDER BY created_at DESC, id DESC LIMIT 1`

	err := r.db.Get(otp, query, phone)
	if err == sql.ErrNoRows {
		return nil, ErrOTPNotFound
	}

	return otp, err
}

func (r *otpRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM phone_otps WHERE id = $1`, id)
	return err
}
