package postgres

import (
	"context"

	"marketapi/internal/model"
	"marketapi/internal/repository"
)

// CategoryTable adds the name lookup used for pre-insert uniqueness checks.
type CategoryTable struct {
	*Table[model.Category]
}

var _ repository.NamedStore[model.Category] = (*CategoryTable)(nil)

// NewCategoryTable creates the categories store.
func NewCategoryTable() *CategoryTable {
	return &CategoryTable{Table: NewTable(Mapping[model.Category]{
		Table:      "categories",
		Columns:    []string{"id", "name", "description"},
		NaturalKey: []string{"name"},
		Scan: func(rs RowScanner) (*model.Category, error) {
			var c model.Category
			if err := rs.Scan(&c.ID, &c.Name, &c.Description); err != nil {
				return nil, err
			}
			return &c, nil
		},
	})}
}

// GetByName fetches a category by its unique name, or nil.
func (t *CategoryTable) GetByName(ctx context.Context, q repository.Querier, name string) (*model.Category, error) {
	return t.GetOneOrNone(ctx, q, repository.Filters{"name": name})
}

// NewLocationTable creates the locations store. Locations declare no natural
// key, so duplicate-tolerant adds cannot construct a match for them.
func NewLocationTable() *Table[model.Location] {
	return NewTable(Mapping[model.Location]{
		Table:   "locations",
		Columns: []string{"id", "city", "region", "country", "address"},
		Scan: func(rs RowScanner) (*model.Location, error) {
			var l model.Location
			if err := rs.Scan(&l.ID, &l.City, &l.Region, &l.Country, &l.Address); err != nil {
				return nil, err
			}
			return &l, nil
		},
	})
}

// NewItemTable creates the items store.
func NewItemTable() *Table[model.Item] {
	return NewTable(Mapping[model.Item]{
		Table: "items",
		Columns: []string{
			"id", "user_id", "category_id", "location_id",
			"title", "description", "price", "is_active", "photo_path", "created_at",
		},
		Scan: func(rs RowScanner) (*model.Item, error) {
			var i model.Item
			if err := rs.Scan(
				&i.ID, &i.UserID, &i.CategoryID, &i.LocationID,
				&i.Title, &i.Description, &i.Price, &i.IsActive, &i.PhotoPath, &i.CreatedAt,
			); err != nil {
				return nil, err
			}
			return &i, nil
		},
	})
}

// NewReviewTable creates the reviews store. One review per (item, user).
func NewReviewTable() *Table[model.Review] {
	return NewTable(Mapping[model.Review]{
		Table:      "reviews",
		Columns:    []string{"id", "item_id", "user_id", "rating", "text", "created_at"},
		NaturalKey: []string{"item_id", "user_id"},
		Scan: func(rs RowScanner) (*model.Review, error) {
			var r model.Review
			if err := rs.Scan(&r.ID, &r.ItemID, &r.UserID, &r.Rating, &r.Text, &r.CreatedAt); err != nil {
				return nil, err
			}
			return &r, nil
		},
	})
}

// NewMessageTable creates the messages store. The natural key excludes the
// server-assigned timestamp, so a resent message resolves to the stored row.
func NewMessageTable() *Table[model.Message] {
	return NewTable(Mapping[model.Message]{
		Table:      "messages",
		Columns:    []string{"id", "sender_id", "recipient_id", "item_id", "text", "is_read", "created_at"},
		NaturalKey: []string{"sender_id", "recipient_id", "item_id", "text"},
		Scan: func(rs RowScanner) (*model.Message, error) {
			var m model.Message
			if err := rs.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.ItemID, &m.Text, &m.IsRead, &m.CreatedAt); err != nil {
				return nil, err
			}
			return &m, nil
		},
	})
}

// NewUserTable creates the users store keyed by unique email.
func NewUserTable() *Table[model.User] {
	return NewTable(Mapping[model.User]{
		Table: "users",
		Columns: []string{
			"id", "email", "hashed_password", "name",
			"phone", "is_verified", "role_id", "created_at",
		},
		NaturalKey: []string{"email"},
		Scan: func(rs RowScanner) (*model.User, error) {
			var u model.User
			if err := rs.Scan(
				&u.ID, &u.Email, &u.HashedPassword, &u.Name,
				&u.Phone, &u.IsVerified, &u.RoleID, &u.CreatedAt,
			); err != nil {
				return nil, err
			}
			return &u, nil
		},
	})
}
