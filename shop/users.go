package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asaidimu/storefront/core/statement"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Users is the repository of the users table.
type Users struct {
	repository
	hasher   PasswordHasher
	validate *validator.Validate
	topCount int
}

// Pair is a column and the value it must equal.
type Pair struct {
	Column string
	Value  any
}

func (u *Users) one(ctx context.Context, column string, value any) (*User, error) {
	row, err := u.first(ctx, statement.Config{
		Filter: statement.Col(column),
		Limit:  statement.IntPtr(1),
	}, value)
	if err != nil {
		return nil, err
	}
	user := userFromRow(row)
	return &user, nil
}

// GetByID returns the user with id.
func (u *Users) GetByID(ctx context.Context, id int64) (*User, error) {
	return u.one(ctx, "id", id)
}

// GetByUsername returns the user called username, ignoring case.
func (u *Users) GetByUsername(ctx context.Context, username string) (*User, error) {
	return u.one(ctx, "username", username)
}

// GetByEmail returns the user with email. Emails are stored lowercased.
func (u *Users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return u.one(ctx, "email", strings.ToLower(email))
}

// Find returns the first user matching any of pairs.
func (u *Users) Find(ctx context.Context, pairs ...Pair) (*User, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("users: at least one column is required")
	}
	columns := make([]string, len(pairs))
	params := make([]any, len(pairs))
	for i, p := range pairs {
		columns[i] = p.Column
		params[i] = p.Value
	}
	row, err := u.first(ctx, statement.Config{
		Filter: statement.Of(statement.Match(columns...)),
		Limit:  statement.IntPtr(1),
	}, params...)
	if err != nil {
		return nil, err
	}
	user := userFromRow(row)
	return &user, nil
}

// TopRated returns up to n reviewed users, best average rating first. A
// non-positive n means the store's default count.
func (u *Users) TopRated(ctx context.Context, n int) ([]User, error) {
	if n <= 0 {
		n = u.topCount
	}
	rows, err := u.query(ctx, statement.Config{
		Filter:  statement.Of(statement.Cond("reviewcount", ">", statement.Literal{SQL: "0"})),
		OrderBy: []statement.Order{{Direction: statement.Desc, Expression: "CAST(stars AS REAL)/reviewcount"}},
		Limit:   statement.IntPtr(n),
	})
	if err != nil {
		return nil, err
	}
	users := make([]User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromRow(row))
	}
	return users, nil
}

// Login returns the user whose email or username is login and whose password
// matches.
func (u *Users) Login(ctx context.Context, login, password string) (*User, error) {
	row, err := u.first(ctx, statement.Config{
		Filter: statement.Of(statement.Match("email", "username")),
		Limit:  statement.IntPtr(1),
	}, strings.ToLower(login), login)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	user := userFromRow(row)
	if err := u.hasher.Compare(user.PassHash, password); err != nil {
		u.logger.Debug("Password mismatch", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Register validates r, rejects a taken username or email and creates the
// account.
func (u *Users) Register(ctx context.Context, r Registration) (*User, error) {
	if err := validateRegistration(u.validate, r); err != nil {
		return nil, err
	}
	email := strings.ToLower(r.Email)

	existing, err := u.first(ctx, statement.Config{
		Filter: statement.Of(statement.Match("email", "username")),
		Limit:  statement.IntPtr(1),
	}, email, r.Username)
	switch {
	case err == nil:
		if strings.EqualFold(asString(existing["username"]), r.Username) {
			return nil, ErrUsernameTaken
		}
		return nil, ErrEmailTaken
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	hash, err := u.hasher.Hash(r.Password)
	if err != nil {
		return nil, err
	}
	id, err := u.insert(ctx, "", []string{"username", "email", "pass_hash", "birth"},
		r.Username, email, hash, r.BirthDate)
	if err != nil {
		return nil, err
	}
	u.logger.Info("Registered user", zap.Int64("user_id", id), zap.String("username", r.Username))
	return u.GetByID(ctx, id)
}

// SetPassword replaces the stored hash of user; Save persists it.
func (u *Users) SetPassword(user *User, password string) error {
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	user.PassHash = hash
	return nil
}

// Save writes the editable columns of user.
func (u *Users) Save(ctx context.Context, user *User) error {
	admin := 0
	if user.Admin {
		admin = 1
	}
	n, err := u.update(ctx, statement.Config{
		Set:    statement.SetCols("username", "email", "pass_hash", "birth", "description", "admin"),
		Filter: statement.Col("id"),
	}, user.Username, strings.ToLower(user.Email), user.PassHash, user.Birth, user.Description, admin, user.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user together with the parts and comments of their
// products, every profile comment they wrote or received, and their
// products. Statements run one after another.
func (u *Users) Delete(ctx context.Context, id int64) error {
	ownedProducts := statement.Config{
		Table:   TableProducts,
		Columns: statement.Cols("id"),
		Filter:  statement.Col("user_id"),
	}
	steps := []struct {
		cfg    statement.Config
		params []any
	}{
		{statement.Config{Table: TableProductParts, Filter: statement.Of(statement.In("product_id", ownedProducts))}, []any{id}},
		{statement.Config{Table: TableProductComments, Filter: statement.Of(statement.In("product_id", ownedProducts))}, []any{id}},
		{statement.Config{Table: TableProfileComments, Filter: statement.Of(statement.Match("user_id", "visitor_id"))}, []any{id, id}},
		{statement.Config{Table: TableProducts, Filter: statement.Col("user_id")}, []any{id}},
	}
	for _, step := range steps {
		if _, err := u.delete(ctx, step.cfg, step.params...); err != nil {
			return err
		}
	}

	n, err := u.delete(ctx, statement.Config{Filter: statement.Col("id")}, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
