package repos

import (
	"database/sql"
	"encoding/json"

	"dukaan/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id,user_id,user_name,user_email,items_json,subtotal,delivery_fee,total,status,created_at`

func (r *OrderRepo) Create(o *domain.Order) error {
	b, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	o.ItemsJSON = string(b)
	_, err = r.db.Exec(`
		INSERT INTO orders(id,user_id,user_name,user_email,items_json,subtotal,delivery_fee,total,status)
		VALUES(?,?,?,?,?,?,?,?,?)
	`, o.ID, o.UserID, o.UserName, o.UserEmail, o.ItemsJSON, o.Subtotal, o.DeliveryFee, o.Total, o.Status)
	return err
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id=?`, id); err != nil {
		return domain.Order{}, err
	}
	decodeItems(&o)
	return o, nil
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		WHERE user_id=?
		ORDER BY datetime(created_at) DESC, rowid DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	for i := range out {
		decodeItems(&out[i])
	}
	return out, nil
}

// ListLatest returns the most recent orders for the admin panel.
func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		ORDER BY datetime(created_at) DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	for i := range out {
		decodeItems(&out[i])
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(id, status string) (bool, error) {
	res, err := r.db.Exec(`UPDATE orders SET status=? WHERE id=?`, status, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

// SumTotal returns the aggregate revenue; Valid is false when no rows exist.
func (r *OrderRepo) SumTotal() (sql.NullFloat64, error) {
	var s sql.NullFloat64
	err := r.db.Get(&s, `SELECT SUM(total) FROM orders`)
	return s, err
}

// AllTotals returns every order's raw total for the manual revenue fallback.
func (r *OrderRepo) AllTotals() ([]string, error) {
	out := []string{}
	err := r.db.Select(&out, `SELECT CAST(total AS TEXT) FROM orders`)
	return out, err
}

func decodeItems(o *domain.Order) {
	if o.ItemsJSON == "" {
		o.Items = []domain.OrderItem{}
		return
	}
	if err := json.Unmarshal([]byte(o.ItemsJSON), &o.Items); err != nil {
		o.Items = []domain.OrderItem{}
	}
}
