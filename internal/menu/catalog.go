package menu

// Catalog is an immutable, insertion-ordered food collection keyed by
// identifier. A reload builds a fresh Catalog and swaps it in whole, so a
// reader holding a snapshot never observes a partial update.
type Catalog struct {
	foods []FoodItem
	index map[string]int
}

// NewCatalog builds a catalog preserving the given order. A duplicated
// identifier replaces the earlier item in place.
func NewCatalog(foods []FoodItem) *Catalog {
	c := &Catalog{index: make(map[string]int, len(foods))}
	for _, f := range foods {
		if i, exists := c.index[f.ID]; exists {
			c.foods[i] = f
			continue
		}
		c.index[f.ID] = len(c.foods)
		c.foods = append(c.foods, f)
	}
	return c
}

// Get returns the food with the given identifier.
func (c *Catalog) Get(id string) (FoodItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return FoodItem{}, false
	}
	return c.foods[i], true
}

// Foods returns all items in catalog order. The slice is a copy; the catalog
// itself stays immutable.
func (c *Catalog) Foods() []FoodItem {
	out := make([]FoodItem, len(c.foods))
	copy(out, c.foods)
	return out
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int { return len(c.foods) }

// SeedCatalog returns the built-in menu. It doubles as the fallback when the
// database is unreachable and as the fixture catalog in tests; the same
// items ship as SQL seed data in migrations.
func SeedCatalog() *Catalog {
	return NewCatalog([]FoodItem{
		{
			ID: "biryani", Name: "Biryani", Category: "Indian", Price: 8.99,
			Description: "Fragrant rice layered with spiced meat",
			Nutrients:   Nutrients{Calories: 450, SodiumMg: 850, SugarG: 2, ProteinG: 18, FiberG: 3, FatG: 12, CarbsG: 65},
			ContainsGluten: true, PurineLevel: PurineHigh,
			Allergens: []string{"gluten"},
		},
		{
			ID: "tandoori", Name: "Tandoori Chicken", Category: "Protein", Price: 9.99,
			Description: "Chicken roasted in a clay oven",
			Nutrients:   Nutrients{Calories: 280, SodiumMg: 650, SugarG: 1, ProteinG: 35, FiberG: 0, FatG: 8, CarbsG: 5},
			PurineLevel: PurineMedium,
		},
		{
			ID: "salmon", Name: "Grilled Salmon", Category: "Seafood", Price: 14.99,
			Description: "Salmon fillet grilled with herbs",
			Nutrients:   Nutrients{Calories: 350, SodiumMg: 500, SugarG: 0, ProteinG: 40, FiberG: 0, FatG: 20, CarbsG: 0},
			PurineLevel: PurineHigh,
			Allergens:   []string{"fish"},
		},
		{
			ID: "steak", Name: "Grilled Steak", Category: "Meat", Price: 16.99,
			Description: "Char-grilled beef steak",
			Nutrients:   Nutrients{Calories: 420, SodiumMg: 700, SugarG: 0, ProteinG: 45, FiberG: 0, FatG: 25, CarbsG: 0},
			PurineLevel: PurineVeryHigh,
		},
		{
			ID: "pizza", Name: "Vegetable Pizza", Category: "Fast Food", Price: 10.99,
			Description: "Stone-baked pizza with mixed vegetables",
			Nutrients:   Nutrients{Calories: 380, SodiumMg: 920, SugarG: 4, ProteinG: 14, FiberG: 5, FatG: 14, CarbsG: 52},
			ContainsGluten: true, ContainsLactose: true, PurineLevel: PurineLow,
			Allergens: []string{"gluten", "dairy"},
		},
		{
			ID: "hamburger", Name: "Hamburger", Category: "Fast Food", Price: 7.99,
			Description: "Beef patty in a sesame bun",
			Nutrients:   Nutrients{Calories: 520, SodiumMg: 1100, SugarG: 8, ProteinG: 28, FiberG: 2, FatG: 28, CarbsG: 48},
			ContainsGluten: true, ContainsLactose: true, PurineLevel: PurineHigh,
			Allergens: []string{"gluten", "dairy"},
		},
		{
			ID: "chocolate_cake", Name: "Chocolate Cake", Category: "Dessert", Price: 5.99,
			Description: "Rich layered chocolate cake",
			Nutrients:   Nutrients{Calories: 380, SodiumMg: 200, SugarG: 45, ProteinG: 4, FiberG: 2, FatG: 18, CarbsG: 52},
			ContainsGluten: true, ContainsLactose: true, PurineLevel: PurineLow,
			Allergens: []string{"gluten", "dairy", "eggs"},
		},
		{
			ID: "grilled_meat", Name: "Grilled Meat", Category: "Meat", Price: 12.99,
			Description: "Mixed grill platter",
			Nutrients:   Nutrients{Calories: 340, SodiumMg: 600, SugarG: 0, ProteinG: 40, FiberG: 0, FatG: 18, CarbsG: 0},
			PurineLevel: PurineHigh,
		},
		{
			ID: "rice", Name: "Rice", Category: "Indian", Price: 3.99,
			Description: "Steamed white rice",
			Nutrients:   Nutrients{Calories: 206, SodiumMg: 2, SugarG: 0, ProteinG: 4, FiberG: 0.3, FatG: 0.3, CarbsG: 45},
			PurineLevel: PurineLow,
		},
		{
			ID: "lentils", Name: "Lentil Curry", Category: "Vegetarian", Price: 6.99,
			Description: "Slow-cooked lentils in curry sauce",
			Nutrients:   Nutrients{Calories: 230, SodiumMg: 500, SugarG: 2, ProteinG: 18, FiberG: 8, FatG: 3, CarbsG: 40},
			PurineLevel: PurineMedium,
		},
		{
			ID: "fruit", Name: "Mixed Fruit Salad", Category: "Vegetarian", Price: 5.49,
			Description: "Seasonal fruit, freshly cut",
			Nutrients:   Nutrients{Calories: 80, SodiumMg: 20, SugarG: 18, ProteinG: 1, FiberG: 3, FatG: 0, CarbsG: 21},
			PurineLevel: PurineLow,
		},
		{
			ID: "green_tea", Name: "Green Tea", Category: "Drink", Price: 2.99,
			Description: "Unsweetened brewed green tea",
			Nutrients:   Nutrients{Calories: 2, SodiumMg: 5},
			PurineLevel: PurineLow,
		},
		{
			ID: "bottle", Name: "Water Bottle", Category: "Drink", Price: 1.99,
			Description: "Still mineral water",
			Nutrients:   Nutrients{},
			PurineLevel: PurineLow,
		},
	})
}
