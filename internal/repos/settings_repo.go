package repos

import (
	"dukaan/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get returns the store settings, creating the row with defaults on first read.
func (r *SettingsRepo) Get() (domain.Settings, error) {
	if _, err := r.db.Exec(`INSERT INTO settings(id) VALUES(1) ON CONFLICT(id) DO NOTHING`); err != nil {
		return domain.Settings{}, err
	}
	var s domain.Settings
	err := r.db.Get(&s, `SELECT delivery_fee,discount_percent,min_order_for_discount FROM settings WHERE id=1`)
	return s, err
}

// Update patches the provided fields; nil means leave unchanged.
func (r *SettingsRepo) Update(deliveryFee, discountPercent, minOrderForDiscount *float64) (domain.Settings, error) {
	if _, err := r.Get(); err != nil {
		return domain.Settings{}, err
	}
	set := ""
	args := []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + "=?"
		args = append(args, v)
	}
	if deliveryFee != nil {
		add("delivery_fee", *deliveryFee)
	}
	if discountPercent != nil {
		add("discount_percent", *discountPercent)
	}
	if minOrderForDiscount != nil {
		add("min_order_for_discount", *minOrderForDiscount)
	}
	if set != "" {
		if _, err := r.db.Exec(`UPDATE settings SET `+set+` WHERE id=1`, args...); err != nil {
			return domain.Settings{}, err
		}
	}
	return r.Get()
}
