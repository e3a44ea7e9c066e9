package analysis

import "math"

// Category names for the win-odds groups.
const (
	CategoryFavourites = "Favourites"
	CategoryContenders = "Contenders"
	CategoryLongShots  = "LongShots"
	CategoryVLongShots = "VLongShots"
	CategoryOutsiders  = "Outsiders"
)

// Group is one win-odds range in the ordered category table.
type Group struct {
	Name     string
	Min      float64
	Max      float64
	Category string
}

// DefaultGroups is the ordered category table. The ranges intentionally
// overlap at their boundaries; the first group that matches wins, so a
// horse at exactly 5.0 is a Favourite, never a Contender.
var DefaultGroups = []Group{
	{Name: "Group 1 (Win <=5)", Min: 1, Max: 5, Category: CategoryFavourites},
	{Name: "Group 2 (5 < Win <=10)", Min: 5, Max: 10, Category: CategoryContenders},
	{Name: "Group 3 (10 < Win <=20)", Min: 10, Max: 20, Category: CategoryLongShots},
	{Name: "Group 4 (15 < Win <=35)", Min: 15, Max: 35, Category: CategoryVLongShots},
	{Name: "Group 5 (Win >30)", Min: 30, Max: math.Inf(1), Category: CategoryOutsiders},
}

// CategoryForWinOdds assigns a horse to the first group whose range
// contains its win odds. Odds below 1 (withdrawn horses) match no group
// and return the empty category, which every group filter ignores.
func CategoryForWinOdds(win float64) string {
	for _, g := range DefaultGroups {
		if win >= g.Min && win <= g.Max {
			return g.Category
		}
	}
	return ""
}
