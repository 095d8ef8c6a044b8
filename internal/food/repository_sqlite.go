package food

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SQLiteRepository persists foods in the normalized SQLite schema. Queries
// are a closed set of typed, parameterized statements; nothing composes SQL
// from request input.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ExistsByDescription(ctx context.Context, description string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM foods WHERE description = ?
		)
	`, description).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by description: %w", err)
	}
	return exists, nil
}

// Insert writes the food and all of its relations in one transaction. The
// description pre-check keeps ingestion logs readable; the UNIQUE constraint
// plus INSERT OR IGNORE keeps the operation correct if two inserts race.
func (r *SQLiteRepository) Insert(ctx context.Context, f *Food) error {
	exists, err := r.ExistsByDescription(ctx, f.Description)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%q: %w", f.Description, ErrAlreadyExists)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert food: %w", err)
	}
	defer tx.Rollback()

	sourceID, err := ensureDimension(ctx, tx, "food_sources", "description", f.Source)
	if err != nil {
		return fmt.Errorf("ensure source: %w", err)
	}

	imageID, err := ensureDimension(ctx, tx, "food_images", "image_url", f.ImageURL)
	if err != nil {
		return fmt.Errorf("ensure image: %w", err)
	}

	var foodID int64
	err = tx.QueryRowContext(ctx, `
		INSERT OR IGNORE INTO foods (
			slug, description, verified, image_id, source_id,
			glycemic_index, energy, carbohydrate, protein, fat,
			saturated_fat, trans_fat, sugar, fiber, cholesterol,
			sodium, potassium, iron, magnesium, calcium, zinc,
			vitamin_a, vitamin_b6, vitamin_b12, vitamin_c, vitamin_d,
			vitamin_e, vitamin_k
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		f.Slug, f.Description, f.Verified, imageID, sourceID,
		f.GlycemicIndex, f.Energy, f.Carbohydrate, f.Protein, f.Fat,
		f.SaturatedFat, f.TransFat, f.Sugar, f.Fiber, f.Cholesterol,
		f.Sodium, f.Potassium, f.Iron, f.Magnesium, f.Calcium, f.Zinc,
		f.VitaminA, f.VitaminB6, f.VitaminB12, f.VitaminC, f.VitaminD,
		f.VitaminE, f.VitaminK,
	).Scan(&foodID)
	if errors.Is(err, sql.ErrNoRows) {
		// The OR IGNORE swallowed a concurrent duplicate.
		return fmt.Errorf("%q: %w", f.Description, ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("insert food row: %w", err)
	}

	// Tags and allergens are canonicalized to lowercase so every distinct
	// value has exactly one row regardless of input casing.
	for _, tag := range f.Tags {
		id, err := ensureDimension(ctx, tx, "tags", "description", strings.ToLower(tag))
		if err != nil {
			return fmt.Errorf("ensure tag: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO food_tags (food_id, tag_id) VALUES (?, ?)`, foodID, id); err != nil {
			return fmt.Errorf("link tag: %w", err)
		}
	}

	for _, allergen := range f.Allergens {
		id, err := ensureDimension(ctx, tx, "allergens", "description", strings.ToLower(allergen))
		if err != nil {
			return fmt.Errorf("ensure allergen: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO food_allergens (food_id, allergen_id) VALUES (?, ?)`, foodID, id); err != nil {
			return fmt.Errorf("link allergen: %w", err)
		}
	}

	for serving, weight := range f.Servings {
		id, err := ensureDimension(ctx, tx, "serving_descriptions", "description", strings.ToLower(serving))
		if err != nil {
			return fmt.Errorf("ensure serving: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO food_servings (food_id, serving_description_id, weight) VALUES (?, ?, ?)`,
			foodID, id, weight); err != nil {
			return fmt.Errorf("link serving: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert food: %w", err)
	}

	f.ID = foodID
	return nil
}

// ensureDimension inserts the value if absent and resolves its id. The table
// and column names are compile-time constants at every call site.
func ensureDimension(ctx context.Context, tx *sql.Tx, table, column, value string) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT OR IGNORE INTO %s (%s) VALUES (?)`, table, column), value); err != nil {
		return 0, err
	}

	var id int64
	err := tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE %s = ? LIMIT 1`, table, column), value).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// foodColumns is the shared select list for single-food and search queries.
// The three scalar subqueries fold each join table into JSON so one round
// trip returns the whole nested record.
const foodColumns = `
	f.id, f.slug, f.description, f.verified,
	IFNULL(i.image_url, ''), IFNULL(s.description, ''),
	IFNULL((
		SELECT json_group_array(t.description)
		FROM food_tags ft JOIN tags t ON t.id = ft.tag_id
		WHERE ft.food_id = f.id
	), '[]'),
	IFNULL((
		SELECT json_group_array(a.description)
		FROM food_allergens fa JOIN allergens a ON a.id = fa.allergen_id
		WHERE fa.food_id = f.id
	), '[]'),
	IFNULL((
		SELECT json_group_object(sd.description, fs.weight)
		FROM food_servings fs JOIN serving_descriptions sd ON sd.id = fs.serving_description_id
		WHERE fs.food_id = f.id
	), '{}'),
	f.glycemic_index, f.energy, f.carbohydrate, f.protein, f.fat,
	f.saturated_fat, f.trans_fat, f.sugar, f.fiber, f.cholesterol,
	f.sodium, f.potassium, f.iron, f.magnesium, f.calcium, f.zinc,
	f.vitamin_a, f.vitamin_b6, f.vitamin_b12, f.vitamin_c, f.vitamin_d,
	f.vitamin_e, f.vitamin_k`

const foodFrom = `
	FROM foods f
	LEFT JOIN food_images i ON i.id = f.image_id
	LEFT JOIN food_sources s ON s.id = f.source_id`

func (r *SQLiteRepository) GetBySlug(ctx context.Context, slug string) (*Food, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+foodColumns+foodFrom+` WHERE f.slug = ?`, slug)

	f, err := scanFood(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("slug %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get by slug: %w", err)
	}
	return f, nil
}

func (r *SQLiteRepository) SearchByDescription(ctx context.Context, substring string, limit int) ([]Food, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+foodColumns+foodFrom+`
		WHERE LOWER(f.description) LIKE '%' || LOWER(?) || '%'
		ORDER BY f.id
		LIMIT ?
	`, substring, limit)
	if err != nil {
		return nil, fmt.Errorf("search by description: %w", err)
	}
	defer rows.Close()

	var foods []Food
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("search by description: %w", err)
		}
		foods = append(foods, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search by description: %w", err)
	}
	return foods, nil
}

func (r *SQLiteRepository) ListVerifiedSlugs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slug FROM foods WHERE verified = 1 ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list verified slugs: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("list verified slugs: %w", err)
		}
		slugs = append(slugs, slug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list verified slugs: %w", err)
	}
	return slugs, nil
}

func (r *SQLiteRepository) ListTags(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT description FROM tags ORDER BY description`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("list tags: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (*Food, error) {
	var (
		f                                     Food
		tagsJSON, allergensJSON, servingsJSON string
	)

	err := row.Scan(
		&f.ID, &f.Slug, &f.Description, &f.Verified,
		&f.ImageURL, &f.Source,
		&tagsJSON, &allergensJSON, &servingsJSON,
		&f.GlycemicIndex, &f.Energy, &f.Carbohydrate, &f.Protein, &f.Fat,
		&f.SaturatedFat, &f.TransFat, &f.Sugar, &f.Fiber, &f.Cholesterol,
		&f.Sodium, &f.Potassium, &f.Iron, &f.Magnesium, &f.Calcium, &f.Zinc,
		&f.VitaminA, &f.VitaminB6, &f.VitaminB12, &f.VitaminC, &f.VitaminD,
		&f.VitaminE, &f.VitaminK,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tagsJSON), &f.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if err := json.Unmarshal([]byte(allergensJSON), &f.Allergens); err != nil {
		return nil, fmt.Errorf("decode allergens: %w", err)
	}
	if err := json.Unmarshal([]byte(servingsJSON), &f.Servings); err != nil {
		return nil, fmt.Errorf("decode servings: %w", err)
	}
	return &f, nil
}
