package domain

import "strings"

// Item is a menu entry kept in compressed form: a short name, expanded only on request.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Category groups items under a heading.
type Category struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Menu is the ordered list of categories served by the restaurant.
type Menu []Category

// Default returns the house menu.
func Default() Menu {
	return Menu{
		{Name: "Starters", Items: []Item{
			{"Soup", "Tomato basil soup"},
			{"Fries", "Classic fries"},
			{"Bruschetta", "Tomato, basil, toasted bread"},
		}},
		{Name: "Mains", Items: []Item{
			{"Pasta", "Penne in alfredo or arrabbiata"},
			{"Pizza", "Margherita / Veg Supreme"},
			{"Bowl", "Grain bowl with seasonal veg"},
		}},
		{Name: "Dessert", Items: []Item{
			{"Brownie", "Warm brownie, ice cream"},
			{"Cheesecake", "Classic baked cheesecake"},
		}},
		{Name: "Drinks", Items: []Item{
			{"Coffee", "Espresso / Americano"},
			{"Tea", "Assorted teas"},
			{"Soda", "Soft drinks"},
		}},
	}
}

// Render formats the menu as chat text. Short form lists names per category; details adds
// one line per item with its description.
func (m Menu) Render(details bool) string {
	lines := []string{"Menu"}
	for _, category := range m {
		if details {
			lines = append(lines, "\n"+category.Name+":")
			for _, item := range category.Items {
				lines = append(lines, "- "+item.Name+": "+item.Description)
			}
			continue
		}
		names := make([]string, 0, len(category.Items))
		for _, item := range category.Items {
			names = append(names, item.Name)
		}
		lines = append(lines, "\n"+category.Name+": "+strings.Join(names, ", "))
	}
	return strings.Join(lines, "\n")
}

// Compact returns a copy without descriptions.
func (m Menu) Compact() Menu {
	compact := make(Menu, 0, len(m))
	for _, category := range m {
		items := make([]Item, 0, len(category.Items))
		for _, item := range category.Items {
			items = append(items, Item{Name: item.Name})
		}
		compact = append(compact, Category{Name: category.Name, Items: items})
	}
	return compact
}
