// Package catalog holds the static cup skin reference table. The core treats
// it as read-only collaborator input: prices and categories here drive the
// store screen, while ownership and selection live in the stores.
package catalog

// Category groups cups on the store screen.
type Category string

const (
	Classic Category = "classic"
	Special Category = "special"
	Limited Category = "limited"
)

// Cup is one purchasable skin. Price is in coins; the default cup is free.
type Cup struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Price    int      `json:"price"`
	Category Category `json:"category"`
}

var cups = []Cup{
	{ID: 1, Name: "Classic White", Price: 0, Category: Classic},
	{ID: 2, Name: "Minimal Glass", Price: 800, Category: Classic},
	{ID: 3, Name: "Peach Blush", Price: 1000, Category: Classic},
	{ID: 4, Name: "Matcha Cup", Price: 1200, Category: Classic},
	{ID: 5, Name: "Lavender Dream", Price: 1500, Category: Special},
	{ID: 6, Name: "Sunset Glow", Price: 1500, Category: Special},
	{ID: 7, Name: "Ocean Breeze", Price: 1800, Category: Special},
	{ID: 8, Name: "Rose Gold", Price: 2000, Category: Special},
	{ID: 9, Name: "Holiday Special", Price: 3000, Category: Limited},
	{ID: 10, Name: "Galaxy Cup", Price: 3500, Category: Limited},
}

// All returns every cup in catalog order.
func All() []Cup {
	out := make([]Cup, len(cups))
	copy(out, cups)
	return out
}

// Lookup returns the cup with the given id.
func Lookup(id int) (Cup, bool) {
	for _, c := range cups {
		if c.ID == id {
			return c, true
		}
	}
	return Cup{}, false
}

// ByCategory returns the cups of one category in catalog order.
func ByCategory(cat Category) []Cup {
	var out []Cup
	for _, c := range cups {
		if c.Category == cat {
			out = append(out, c)
		}
	}
	return out
}
