package menu

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository loads catalog snapshots from storage.
type Repository interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
}

type postgresRepo struct {
	db *sql.DB
}

// NewRepository returns a Postgres-backed catalog repository.
func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) LoadCatalog(ctx context.Context) (*Catalog, error) {
	query := `
		SELECT fi.food_id, fi.food_name, fc.category_name, fi.description, fi.price,
		       fi.contains_gluten, fi.contains_lactose, fi.purine_level,
		       nf.calories, nf.sodium_mg, nf.sugar_g, nf.protein_g, nf.fiber_g, nf.fat_g, nf.carbs_g
		FROM food_items fi
		JOIN food_categories fc ON fi.category_id = fc.category_id
		LEFT JOIN nutrition_facts nf ON fi.food_id = nf.food_id
		ORDER BY fi.sort_order`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query food items: %w", err)
	}
	defer rows.Close()

	var foods []FoodItem
	position := make(map[string]int)
	for rows.Next() {
		var (
			f           FoodItem
			description sql.NullString
			calories    sql.NullFloat64
			sodium      sql.NullFloat64
			sugar       sql.NullFloat64
			protein     sql.NullFloat64
			fiber       sql.NullFloat64
			fat         sql.NullFloat64
			carbs       sql.NullFloat64
		)
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Category, &description, &f.Price,
			&f.ContainsGluten, &f.ContainsLactose, &f.PurineLevel,
			&calories, &sodium, &sugar, &protein, &fiber, &fat, &carbs,
		); err != nil {
			return nil, fmt.Errorf("scan food item: %w", err)
		}
		f.Description = description.String
		f.Nutrients = Nutrients{
			Calories: calories.Float64,
			SodiumMg: sodium.Float64,
			SugarG:   sugar.Float64,
			ProteinG: protein.Float64,
			FiberG:   fiber.Float64,
			FatG:     fat.Float64,
			CarbsG:   carbs.Float64,
		}
		position[f.ID] = len(foods)
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food items: %w", err)
	}

	allergenQuery := `
		SELECT fa.food_id, a.allergen_name
		FROM food_allergens fa
		JOIN allergens a ON fa.allergen_id = a.allergen_id
		ORDER BY fa.food_id, a.allergen_name`

	allergenRows, err := r.db.QueryContext(ctx, allergenQuery)
	if err != nil {
		return nil, fmt.Errorf("query allergens: %w", err)
	}
	defer allergenRows.Close()

	for allergenRows.Next() {
		var foodID, name string
		if err := allergenRows.Scan(&foodID, &name); err != nil {
			return nil, fmt.Errorf("scan allergen: %w", err)
		}
		if i, ok := position[foodID]; ok {
			foods[i].Allergens = append(foods[i].Allergens, name)
		}
	}
	if err := allergenRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate allergens: %w", err)
	}

	return NewCatalog(foods), nil
}
