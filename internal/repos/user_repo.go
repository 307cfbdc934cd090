package repos

import (
	"database/sql"

	"dukaan/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id,name,email,password_hash,role,reset_token,reset_expires,created_at`

// ByEmail looks a user up by exact email match.
func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE email=?`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id,name,email,password_hash,role)
		VALUES(?,?,?,?,?)
	`, u.ID, u.Name, u.Email, u.Hash, u.Role)
	return err
}

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `
		SELECT `+userCols+` FROM users
		ORDER BY datetime(created_at) DESC
	`)
	return out, err
}

func (r *UserRepo) Count() (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users`)
	return n, err
}

// SetResetToken stores a pending reset code and its expiry (unix seconds),
// overwriting any previous one. Only the latest issued code stays valid.
func (r *UserRepo) SetResetToken(id, code string, expires int64) error {
	_, err := r.DB.Exec(`UPDATE users SET reset_token=?, reset_expires=? WHERE id=?`, code, expires, id)
	return err
}

// ByResetToken matches a user on email, code and a strictly-in-the-future
// expiry in one query. An expired-but-uncleared code never matches.
func (r *UserRepo) ByResetToken(email, code string, now int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT `+userCols+` FROM users
		WHERE email=? AND reset_token=? AND reset_expires > ?
	`, email, code, now)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePassword sets a new digest and clears the reset fields together.
func (r *UserRepo) UpdatePassword(id, hash string) error {
	_, err := r.DB.Exec(`
		UPDATE users SET password_hash=?, reset_token=NULL, reset_expires=NULL
		WHERE id=?
	`, hash, id)
	return err
}

// Update patches the provided fields; nil means leave unchanged.
func (r *UserRepo) Update(id string, name, email, role *string) (*domain.User, error) {
	set := ""
	args := []any{}
	if name != nil {
		set += "name=?"
		args = append(args, *name)
	}
	if email != nil {
		if set != "" {
			set += ", "
		}
		set += "email=?"
		args = append(args, *email)
	}
	if role != nil {
		if set != "" {
			set += ", "
		}
		set += "role=?"
		args = append(args, *role)
	}
	if set != "" {
		args = append(args, id)
		res, err := r.DB.Exec(`UPDATE users SET `+set+` WHERE id=?`, args...)
		if err != nil {
			return nil, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, sql.ErrNoRows
		}
	}
	return r.ByID(id)
}

func (r *UserRepo) Delete(id string) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
