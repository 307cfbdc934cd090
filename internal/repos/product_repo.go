package repos

import (
	"database/sql"

	"dukaan/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id,title,price,image,category,created_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products
		ORDER BY datetime(created_at) DESC
	`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id=?`, id)
	return p, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id,title,price,image,category)
		VALUES(?,?,?,?,?)
	`, p.ID, p.Title, p.Price, p.Image, p.Category)
	return err
}

// Update patches the provided fields; nil means leave unchanged.
func (r *ProductRepo) Update(id string, title *string, price *float64, image, category *string) (domain.Product, error) {
	set := ""
	args := []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + "=?"
		args = append(args, v)
	}
	if title != nil {
		add("title", *title)
	}
	if price != nil {
		add("price", *price)
	}
	if image != nil {
		add("image", *image)
	}
	if category != nil {
		add("category", *category)
	}
	if set != "" {
		args = append(args, id)
		res, err := r.db.Exec(`UPDATE products SET `+set+` WHERE id=?`, args...)
		if err != nil {
			return domain.Product{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.Product{}, sql.ErrNoRows
		}
	}
	return r.Get(id)
}

func (r *ProductRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Categories returns distinct non-empty category names, sorted.
func (r *ProductRepo) Categories() ([]string, error) {
	out := []string{}
	err := r.db.Select(&out, `
		SELECT DISTINCT category FROM products
		WHERE category != ''
		ORDER BY category
	`)
	return out, err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

// RenameCategory moves every product from one category name to another.
func (r *ProductRepo) RenameCategory(oldName, newName string) (int64, error) {
	res, err := r.db.Exec(`UPDATE products SET category=? WHERE category=?`, newName, oldName)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearCategory detaches products from a category by blanking the field.
// Product rows are kept.
func (r *ProductRepo) ClearCategory(name string) (int64, error) {
	res, err := r.db.Exec(`UPDATE products SET category='' WHERE category=?`, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
