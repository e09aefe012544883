package shop

import (
	"context"
	"errors"
	"time"

	"github.com/asaidimu/storefront/core/statement"
)

// ProductComments is the repository of the product_comments table.
type ProductComments struct {
	repository
	now func() time.Time
}

// ProfileComments is the repository of the profile_comments table.
type ProfileComments struct {
	repository
	now func() time.Time
}

// review describes a comment table keyed by (subject, author) whose ratings
// are summed into the subject's stars and reviewcount columns.
type review struct {
	repository
	now           func() time.Time
	subjectTable  string
	subjectColumn string
	authorColumn  string
}

// set creates or updates the author's comment on subject. A first comment
// adds one review and its rating to the subject; a changed rating adds the
// difference, which may be negative. An identical comment changes nothing.
func (r review) set(ctx context.Context, subjectID, authorID int64, comment string, rating int) error {
	if rating < 0 || rating > 5 {
		return ErrInvalidRating
	}
	keys := statement.Match(r.subjectColumn, r.authorColumn)

	current, err := r.first(ctx, statement.Config{
		Columns: statement.Cols("rating", "comment"),
		Filter:  keys,
		Limit:   statement.IntPtr(1),
	}, subjectID, authorID)
	now := r.now().Format(timestampLayout)

	switch {
	case errors.Is(err, ErrNotFound):
		if _, err := r.insert(ctx, "", []string{r.subjectColumn, r.authorColumn, "timestamp", "rating", "comment"},
			subjectID, authorID, now, rating, comment); err != nil {
			return err
		}
		_, err := r.update(ctx, statement.Config{
			Table:  r.subjectTable,
			Set:    []statement.Assignment{statement.Add("reviewcount"), statement.Add("stars")},
			Filter: statement.Col("id"),
		}, 1, rating, subjectID)
		return err
	case err != nil:
		return err
	}

	previous := asInt64(current["rating"])
	if previous == int64(rating) && asString(current["comment"]) == comment {
		return nil
	}
	if _, err := r.update(ctx, statement.Config{
		Table:  r.subjectTable,
		Set:    []statement.Assignment{statement.Add("stars")},
		Filter: statement.Col("id"),
	}, int64(rating)-previous, subjectID); err != nil {
		return err
	}
	_, err = r.update(ctx, statement.Config{
		Set:    statement.SetCols("timestamp", "rating", "comment"),
		Filter: keys,
	}, now, rating, comment, subjectID, authorID)
	return err
}

// Set records userID's review of productID. rating must be within 0..5.
func (c *ProductComments) Set(ctx context.Context, userID, productID int64, comment string, rating int) error {
	return review{
		repository:    c.repository,
		now:           c.now,
		subjectTable:  TableProducts,
		subjectColumn: "product_id",
		authorColumn:  "user_id",
	}.set(ctx, productID, userID, comment, rating)
}

// ListByProduct returns the comments on a product with their authors'
// usernames, oldest first.
func (c *ProductComments) ListByProduct(ctx context.Context, productID int64) ([]ProductComment, error) {
	rows, err := c.query(ctx, statement.Config{
		Columns: statement.Cols("product_comments.*", "users.username"),
		Joins:   []statement.Join{{Table: TableUsers, On: "product_comments.user_id = users.id"}},
		Filter:  statement.Col("product_comments.product_id"),
		OrderBy: []statement.Order{{Direction: statement.Asc, Expression: "product_comments.id"}},
	}, productID)
	if err != nil {
		return nil, err
	}
	comments := make([]ProductComment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, ProductComment{
			ID:        asInt64(row["id"]),
			UserID:    asInt64(row["user_id"]),
			Username:  asString(row["username"]),
			ProductID: asInt64(row["product_id"]),
			Timestamp: asString(row["timestamp"]),
			Rating:    asInt64(row["rating"]),
			Comment:   asString(row["comment"]),
		})
	}
	return comments, nil
}

// Set records visitorID's review of userID's profile. rating must be within
// 0..5.
func (c *ProfileComments) Set(ctx context.Context, userID, visitorID int64, comment string, rating int) error {
	return review{
		repository:    c.repository,
		now:           c.now,
		subjectTable:  TableUsers,
		subjectColumn: "user_id",
		authorColumn:  "visitor_id",
	}.set(ctx, userID, visitorID, comment, rating)
}

// ListByUser returns the comments on a user's profile with the visitors'
// usernames, oldest first.
func (c *ProfileComments) ListByUser(ctx context.Context, userID int64) ([]ProfileComment, error) {
	rows, err := c.query(ctx, statement.Config{
		Columns: statement.Cols("profile_comments.*", "users.username"),
		Joins:   []statement.Join{{Table: TableUsers, On: "profile_comments.visitor_id = users.id"}},
		Filter:  statement.Col("profile_comments.user_id"),
		OrderBy: []statement.Order{{Direction: statement.Asc, Expression: "profile_comments.id"}},
	}, userID)
	if err != nil {
		return nil, err
	}
	comments := make([]ProfileComment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, ProfileComment{
			ID:        asInt64(row["id"]),
			UserID:    asInt64(row["user_id"]),
			VisitorID: asInt64(row["visitor_id"]),
			Username:  asString(row["username"]),
			Timestamp: asString(row["timestamp"]),
			Rating:    asInt64(row["rating"]),
			Comment:   asString(row["comment"]),
		})
	}
	return comments, nil
}
