// Package grocery guesses the category of a shopping item from its name.
package grocery

import (
	"strings"

	"github.com/dukerupert/dispensa/internal/model"
)

// Categorize returns the category for the given item name.
// It performs case-insensitive matching: exact match first, then substring match.
// Falls back to model.DefaultCategory if nothing matches.
func Categorize(itemName string) model.Category {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return model.DefaultCategory
	}

	if cat, ok := exactMatch[name]; ok {
		return cat
	}

	// Ordered longer/more-specific first
	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return model.DefaultCategory
}

const (
	food      = model.CategoryFood
	home      = model.CategoryHome
	detergent = model.CategoryDetergent
)

var exactMatch = map[string]model.Category{
	// Alimentari
	"latte":       food,
	"pane":        food,
	"pasta":       food,
	"riso":        food,
	"uova":        food,
	"burro":       food,
	"farina":      food,
	"zucchero":    food,
	"sale":        food,
	"olio":        food,
	"aceto":       food,
	"caffè":       food,
	"caffe":       food,
	"tè":          food,
	"te":          food,
	"acqua":       food,
	"vino":        food,
	"birra":       food,
	"mele":        food,
	"banane":      food,
	"arance":      food,
	"limoni":      food,
	"pomodori":    food,
	"patate":      food,
	"cipolle":     food,
	"aglio":       food,
	"insalata":    food,
	"carote":      food,
	"zucchine":    food,
	"pollo":       food,
	"manzo":       food,
	"prosciutto":  food,
	"tonno":       food,
	"mozzarella":  food,
	"parmigiano":  food,
	"yogurt":      food,
	"biscotti":    food,
	"cereali":     food,
	"marmellata":  food,
	"legumi":      food,
	"ceci":        food,
	"lenticchie":  food,
	"fagioli":     food,
	"passata":     food,
	"basilico":    food,
	"prezzemolo":  food,

	// Casa
	"carta igienica": home,
	"scottex":        home,
	"tovaglioli":     home,
	"sacchi":         home,
	"spugne":         home,
	"pellicola":      home,
	"alluminio":      home,
	"lampadine":      home,
	"pile":           home,
	"batterie":       home,
	"candele":        home,
	"fiammiferi":     home,
	"shampoo":        home,
	"dentifricio":    home,
	"spazzolino":     home,
	"cotton fioc":    home,
	"rasoi":          home,
	"deodorante":     home,

	// Detersivi
	"detersivo":    detergent,
	"candeggina":   detergent,
	"ammorbidente": detergent,
	"sapone":       detergent,
	"sgrassatore":  detergent,
	"anticalcare":  detergent,
	"brillantante": detergent,
	"pastiglie lavastoviglie": detergent,
}

type substringEntry struct {
	keyword  string
	category model.Category
}

var substringMatches = []substringEntry{
	// Detersivi before Casa so "sapone per piatti" is not caught by a
	// generic household keyword.
	{"lavastoviglie", detergent},
	{"lavatrice", detergent},
	{"detersivo", detergent},
	{"detergente", detergent},
	{"sgrassatore", detergent},
	{"candeggina", detergent},
	{"ammorbidente", detergent},
	{"igienizzante", detergent},
	{"sapone", detergent},

	{"carta igienica", home},
	{"carta da cucina", home},
	{"sacchi", home},
	{"spugn", home},
	{"pellicola", home},
	{"lampadin", home},
	{"batteri", home},
	{"dentifricio", home},
	{"shampoo", home},
	{"bagnoschiuma", home},

	{"latte", food},
	{"formaggio", food},
	{"pasta", food},
	{"pane", food},
	{"riso", food},
	{"farina", food},
	{"olio", food},
	{"pomodor", food},
	{"carne", food},
	{"pesce", food},
	{"frutta", food},
	{"verdura", food},
	{"surgelat", food},
	{"biscott", food},
	{"succo", food},
	{"acqua", food},
}
