package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"smartstay/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertListing(ctx context.Context, l domain.Listing) error {
	amen, _ := json.Marshal(emptyIfNil(l.Amenities))
	imgs, _ := json.Marshal(emptyIfNil(l.Images))
	_, err := r.db.ExecContext(ctx, upsertListingSQL,
		l.ID,
		l.Title,
		l.Description,
		l.Location,
		l.Price,
		string(amen),
		string(imgs),
	)
	return err
}

func (r *Repo) DeleteListing(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteListingSQL, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) GetListing(ctx context.Context, id int64) (domain.Listing, error) {
	row := r.db.QueryRowContext(ctx, getListingSQL, id)
	l, err := scanListing(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Listing{}, domain.ErrNotFound
	}
	return l, err
}

func (r *Repo) FindListings(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, error) {
	q := findListingsSQL
	var where []string
	var args []any
	if f.Location != nil && strings.TrimSpace(*f.Location) != "" {
		where = append(where, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*f.Location))+"%")
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if len(where) > 0 {
		q += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 500
	}
	q += "ORDER BY id\nLIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanListing(scan func(...any) error) (domain.Listing, error) {
	var l domain.Listing
	var desc sql.NullString
	var amenitiesJSON, imagesJSON []byte
	if err := scan(&l.ID, &l.Title, &desc, &l.Location, &l.Price, &amenitiesJSON, &imagesJSON); err != nil {
		return domain.Listing{}, err
	}
	if desc.Valid {
		l.Description = desc.String
	}
	_ = json.Unmarshal(amenitiesJSON, &l.Amenities)
	_ = json.Unmarshal(imagesJSON, &l.Images)
	return l, nil
}

// emptyIfNil keeps the JSON columns as "[]" rather than "null".
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
