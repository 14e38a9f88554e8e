package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Catalog serves the villa list from an in-memory SQLite database.
// Nothing is written to disk.
type Catalog struct {
	db *sql.DB
}

func NewCatalog(ctx context.Context, villas []Villa) (*Catalog, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	// every connection to ":memory:" gets its own empty database
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.initialize(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog: %w", err)
	}
	if err := c.load(ctx, villas); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load villas: %w", err)
	}

	return c, nil
}

func (c *Catalog) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE villas (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		name_lower TEXT NOT NULL,
		location TEXT NOT NULL,
		location_lower TEXT NOT NULL,
		price INTEGER NOT NULL,
		rating REAL NOT NULL,
		reviews INTEGER NOT NULL,
		bedrooms INTEGER NOT NULL,
		guests INTEGER NOT NULL,
		image TEXT NOT NULL,
		description TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL
	);
	CREATE TABLE amenities (
		villa_id TEXT NOT NULL REFERENCES villas(id),
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (villa_id, position)
	);
	`

	_, err := c.db.ExecContext(ctx, schema)
	return err
}

func (c *Catalog) load(ctx context.Context, villas []Villa) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	villaSQL := `
	INSERT INTO villas (position, id, name, name_lower, location, location_lower, price, rating, reviews, bedrooms, guests, image, description, lat, lng)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	amenitySQL := `INSERT INTO amenities (villa_id, position, name) VALUES (?, ?, ?)`

	for i, v := range villas {
		// lowercased in Go so the SQL match agrees with Matches for non-ASCII names
		_, err := tx.ExecContext(ctx, villaSQL,
			i,
			v.ID,
			v.Name,
			strings.ToLower(v.Name),
			v.Location,
			strings.ToLower(v.Location),
			v.Price,
			v.Rating,
			v.Reviews,
			v.Bedrooms,
			v.Guests,
			v.Image,
			v.Description,
			v.Coordinates.Lat,
			v.Coordinates.Lng,
		)
		if err != nil {
			return fmt.Errorf("villa %s: %w", v.ID, err)
		}
		for j, amenity := range v.Amenities {
			if _, err := tx.ExecContext(ctx, amenitySQL, v.ID, j, amenity); err != nil {
				return fmt.Errorf("villa %s amenity %q: %w", v.ID, amenity, err)
			}
		}
	}

	return tx.Commit()
}

const villaColumns = `id, name, location, price, rating, reviews, bedrooms, guests, image, description, lat, lng`

func scanVilla(row interface{ Scan(...any) error }) (Villa, error) {
	var v Villa
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Location,
		&v.Price,
		&v.Rating,
		&v.Reviews,
		&v.Bedrooms,
		&v.Guests,
		&v.Image,
		&v.Description,
		&v.Coordinates.Lat,
		&v.Coordinates.Lng,
	)
	return v, err
}

// Filter returns the villas accepted by Matches, in catalog order.
func (c *Catalog) Filter(ctx context.Context, category Category, query string) ([]Villa, error) {
	if category == "" {
		category = CategoryAll
	}

	q := `
	SELECT ` + villaColumns + `
	FROM villas
	WHERE (? = 'all' OR instr(location, ?) > 0)
	  AND (? = '' OR instr(name_lower, ?) > 0 OR instr(location_lower, ?) > 0)
	ORDER BY position
	`

	cat, needle := string(category), strings.ToLower(query)
	villas, err := c.queryVillas(ctx, q, cat, cat, needle, needle, needle)
	if err != nil {
		return nil, fmt.Errorf("failed to filter villas: %w", err)
	}

	// rows are closed by now; the pool holds a single connection
	if err := c.attachAmenities(ctx, villas); err != nil {
		return nil, err
	}
	return villas, nil
}

func (c *Catalog) queryVillas(ctx context.Context, query string, args ...any) ([]Villa, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var villas []Villa
	for rows.Next() {
		v, err := scanVilla(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan villa: %w", err)
		}
		villas = append(villas, v)
	}
	return villas, rows.Err()
}

func (c *Catalog) Get(ctx context.Context, id string) (Villa, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+villaColumns+` FROM villas WHERE id = ?`, id)

	v, err := scanVilla(row)
	if err == sql.ErrNoRows {
		return Villa{}, fmt.Errorf("%w: %s", ErrVillaNotFound, id)
	}
	if err != nil {
		return Villa{}, err
	}

	villas := []Villa{v}
	if err := c.attachAmenities(ctx, villas); err != nil {
		return Villa{}, err
	}
	return villas[0], nil
}

func (c *Catalog) attachAmenities(ctx context.Context, villas []Villa) error {
	if len(villas) == 0 {
		return nil
	}

	byID := make(map[string]*Villa, len(villas))
	for i := range villas {
		byID[villas[i].ID] = &villas[i]
	}

	rows, err := c.db.QueryContext(ctx, `SELECT villa_id, name FROM amenities ORDER BY villa_id, position`)
	if err != nil {
		return fmt.Errorf("failed to load amenities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var villaID, name string
		if err := rows.Scan(&villaID, &name); err != nil {
			return fmt.Errorf("failed to scan amenity: %w", err)
		}
		if v, ok := byID[villaID]; ok {
			v.Amenities = append(v.Amenities, name)
		}
	}
	return rows.Err()
}

func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
