package main

import (
	"errors"
	"flag"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/logger"
	"github.com/pageza/recipe-share/backend/internal/models"
)

type seedRecipe struct {
	owner        string
	title        string
	description  string
	imageURL     string
	prepTime     int
	cookTime     int
	servings     int
	difficulty   string
	public       bool
	ingredients  []models.Ingredient
	instructions []string
}

var recipes = []seedRecipe{
	{
		owner: "chef_alice", title: "Classic Spaghetti Carbonara",
		description: "A traditional Italian pasta dish with eggs, cheese, and pancetta",
		imageURL:    "https://images.unsplash.com/photo-1621996346565-e3dbc353d2e5?w=500",
		prepTime:    10, cookTime: 15, servings: 4, difficulty: models.DifficultyMedium, public: true,
		ingredients:  []models.Ingredient{{Name: "Spaghetti", Amount: "400g"}, {Name: "Pancetta", Amount: "200g"}, {Name: "Eggs", Amount: "4"}},
		instructions: []string{"Cook spaghetti.", "Fry pancetta.", "Toss with eggs and cheese off the heat."},
	},
	{
		owner: "cooking_bob", title: "Chocolate Chip Cookies",
		description: "Soft and chewy homemade chocolate chip cookies",
		imageURL:    "https://images.unsplash.com/photo-1499636136210-6f4ee915583e?w=500",
		prepTime:    15, cookTime: 12, servings: 24, difficulty: models.DifficultyEasy, public: true,
		ingredients:  []models.Ingredient{{Name: "Flour", Amount: "2¼", Unit: "cups"}, {Name: "Chocolate chips", Amount: "2", Unit: "cups"}},
		instructions: []string{"Mix dry ingredients.", "Cream butter and sugar.", "Fold in chips and bake."},
	},
	{
		owner: "chef_alice", title: "Beef Wellington",
		description: "An elegant beef tenderloin wrapped in puff pastry",
		imageURL:    "https://images.unsplash.com/photo-1544025162-d76694265947?w=500",
		prepTime:    45, cookTime: 30, servings: 6, difficulty: models.DifficultyHard, public: true,
		ingredients:  []models.Ingredient{{Name: "Beef tenderloin", Amount: "2", Unit: "lbs"}, {Name: "Puff pastry", Amount: "1", Unit: "sheet"}},
		instructions: []string{"Sear beef.", "Wrap in pastry and bake."},
	},
	{
		owner: "bryan", title: "Spicy Chicken Tacos",
		description: "Quick and easy chicken tacos with a kick",
		imageURL:    "https://images.unsplash.com/photo-1552332386-da2425501300?w=500",
		prepTime:    20, cookTime: 10, servings: 2, difficulty: models.DifficultyEasy, public: true,
		ingredients:  []models.Ingredient{{Name: "Chicken thighs", Amount: "500g"}, {Name: "Tortillas", Amount: "6"}, {Name: "Chipotle", Amount: "2"}},
		instructions: []string{"Marinate chicken.", "Grill and slice.", "Serve in warm tortillas."},
	},
	{
		owner: "bryan", title: "Mushroom Risotto",
		description: "Creamy Italian rice dish with mushrooms and parmesan",
		imageURL:    "https://images.unsplash.com/photo-1594950462719-7561858a7413?w=500",
		prepTime:    15, cookTime: 30, servings: 4, difficulty: models.DifficultyMedium, public: true,
		ingredients:  []models.Ingredient{{Name: "Arborio rice", Amount: "300g"}, {Name: "Mushrooms", Amount: "250g"}, {Name: "Parmesan", Amount: "50g"}},
		instructions: []string{"Saute mushrooms.", "Toast rice.", "Add stock gradually while stirring."},
	},
	{
		owner: "bryan", title: "Simple Tomato Soup",
		description: "A comforting and easy-to-make tomato soup",
		imageURL:    "https://images.unsplash.com/photo-1543339321-c7d01869e574?w=500",
		prepTime:    5, cookTime: 25, servings: 2, difficulty: models.DifficultyEasy, public: true,
		ingredients:  []models.Ingredient{{Name: "Tomatoes", Amount: "800g"}, {Name: "Onion", Amount: "1"}},
		instructions: []string{"Soften onion.", "Simmer tomatoes.", "Blend until smooth."},
	},
	{
		owner: "binu", title: "Dal Makhani",
		description: "A creamy and rich lentil dish from Northern India",
		imageURL:    "https://images.unsplash.com/photo-1628122108119-948967f62d47?w=500",
		prepTime:    20, cookTime: 60, servings: 4, difficulty: models.DifficultyMedium, public: true,
		ingredients:  []models.Ingredient{{Name: "Black lentils", Amount: "1", Unit: "cup"}, {Name: "Butter", Amount: "3", Unit: "tbsp"}, {Name: "Cream", Amount: "½", Unit: "cup"}},
		instructions: []string{"Soak lentils overnight.", "Pressure cook.", "Simmer with butter and cream."},
	},
	{
		owner: "binu", title: "Palak Paneer",
		description: "Indian cottage cheese in a spinach gravy",
		imageURL:    "https://images.unsplash.com/photo-1668853400585-70335e360b0e?w=500",
		prepTime:    15, cookTime: 30, servings: 4, difficulty: models.DifficultyEasy, public: true,
		ingredients:  []models.Ingredient{{Name: "Spinach", Amount: "500g"}, {Name: "Paneer", Amount: "250g"}},
		instructions: []string{"Blanch and puree spinach.", "Cook spices.", "Add paneer and simmer."},
	},
	{
		owner: "foodie_carol", title: "Grandma's Secret Stew",
		description: "Family recipe, not for sharing yet",
		prepTime:    30, cookTime: 120, servings: 6, difficulty: models.DifficultyHard, public: false,
		ingredients:  []models.Ingredient{{Name: "Beef chuck", Amount: "1", Unit: "kg"}, {Name: "Root vegetables", Amount: "600g"}},
		instructions: []string{"Brown beef.", "Add vegetables and stock.", "Braise low and slow."},
	},
}

type seedCook struct {
	user   string
	recipe string
	rating int
	notes  string
}

var saves = map[string][]string{
	"cooking_bob":  {"Classic Spaghetti Carbonara", "Beef Wellington"},
	"foodie_carol": {"Chocolate Chip Cookies", "Dal Makhani", "Mushroom Risotto"},
	"chris":        {"Spicy Chicken Tacos", "Palak Paneer"},
	"kiraah":       {"Simple Tomato Soup"},
}

var cooks = []seedCook{
	{"cooking_bob", "Classic Spaghetti Carbonara", 5, "Perfect weeknight dinner"},
	{"foodie_carol", "Chocolate Chip Cookies", 4, "Added sea salt on top"},
	{"foodie_carol", "Chocolate Chip Cookies", 5, ""},
	{"chris", "Spicy Chicken Tacos", 3, "Too spicy for the kids"},
	{"kiraah", "Dal Makhani", 5, ""},
	{"chef_alice", "Mushroom Risotto", 4, "Used porcini"},
}

func main() {
	migrationsDir := flag.String("migrations", "migrations", "directory holding the SQL migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	log := logger.Must(cfg.LogLevel, "console")
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, *migrationsDir, log); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	users, err := loadUsers(db)
	if err != nil {
		log.Fatal("failed to load users", zap.Error(err))
	}
	if len(users) == 0 {
		log.Fatal("no users found, run seed_test_users first")
	}

	byTitle := make(map[string]uint)
	for _, r := range recipes {
		ownerID, ok := users[r.owner]
		if !ok {
			log.Warn("owner missing, skipping recipe", zap.String("owner", r.owner), zap.String("title", r.title))
			continue
		}
		id, err := ensureRecipe(db, ownerID, r)
		if err != nil {
			log.Fatal("failed to create recipe", zap.String("title", r.title), zap.Error(err))
		}
		byTitle[r.title] = id
	}
	log.Info("recipes ready", zap.Int("count", len(byTitle)))

	now := time.Now().UTC()
	for username, titles := range saves {
		for i, title := range titles {
			userID, recipeID := users[username], byTitle[title]
			if userID == 0 || recipeID == 0 {
				continue
			}
			save := models.SavedRecipe{UserID: userID, RecipeID: recipeID, SavedAt: now.Add(-time.Duration(i+1) * time.Hour)}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&save).Error; err != nil {
				log.Fatal("failed to save recipe", zap.String("user", username), zap.Error(err))
			}
		}
	}

	var existingCooks int64
	if err := db.Model(&models.CookedRecipe{}).Count(&existingCooks).Error; err != nil {
		log.Fatal("failed to count cooks", zap.Error(err))
	}
	if existingCooks > 0 {
		log.Info("cook log already seeded, skipping")
		return
	}
	for i, c := range cooks {
		userID, recipeID := users[c.user], byTitle[c.recipe]
		if userID == 0 || recipeID == 0 {
			continue
		}
		rating := c.rating
		cooked := models.CookedRecipe{
			UserID:   userID,
			RecipeID: recipeID,
			Rating:   &rating,
			CookedAt: now.Add(-time.Duration(len(cooks)-i) * 24 * time.Hour),
		}
		if c.notes != "" {
			notes := c.notes
			cooked.Notes = &notes
		}
		if err := db.Create(&cooked).Error; err != nil {
			log.Fatal("failed to log cook", zap.String("user", c.user), zap.Error(err))
		}
	}
	log.Info("seeding complete", zap.Int("cooks", len(cooks)))
}

func loadUsers(db *gorm.DB) (map[string]uint, error) {
	var rows []models.User
	if err := db.Select("id", "username").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make(map[string]uint, len(rows))
	for _, u := range rows {
		users[u.Username] = u.ID
	}
	return users, nil
}

// ensureRecipe returns the id of the owner's recipe with this title, creating it when missing
func ensureRecipe(db *gorm.DB, ownerID uint, r seedRecipe) (uint, error) {
	var existing models.Recipe
	err := db.Select("id").Where("user_id = ? AND title = ?", ownerID, r.title).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	steps := make(models.JSONList[models.Instruction], len(r.instructions))
	for i, text := range r.instructions {
		steps[i] = models.Instruction{Step: i + 1, Text: text}
	}
	recipe := models.Recipe{
		UserID:       ownerID,
		Title:        r.title,
		PrepTime:     &r.prepTime,
		CookTime:     &r.cookTime,
		Servings:     &r.servings,
		Difficulty:   r.difficulty,
		IsPublic:     r.public,
		Ingredients:  models.JSONList[models.Ingredient](r.ingredients),
		Instructions: steps,
	}
	if r.description != "" {
		recipe.Description = &r.description
	}
	if r.imageURL != "" {
		recipe.ImageURL = &r.imageURL
	}
	if err := db.Omit(clause.Associations).Create(&recipe).Error; err != nil {
		return 0, err
	}
	return recipe.ID, nil
}
