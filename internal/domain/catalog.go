package domain

import "time"

// ItemType is the stable internal identifier for a plantable or placeable
// item. These identifiers are persisted in garden documents and must never
// be renamed.
type ItemType string

// ItemCategory dispatches lifecycle rules: flowers grow and collide, decor
// collides but never grows, landmarks do neither.
type ItemCategory string

const (
	CategoryFlower     ItemCategory = "flower"      // small growing flowers
	CategoryLargePlant ItemCategory = "large_plant" // large growing plants
	CategoryTree       ItemCategory = "tree"
	CategoryDecor      ItemCategory = "decor"
	CategoryLandmark   ItemCategory = "landmark"
)

// Flower types
const (
	ItemDaisy    ItemType = "flower_daisy"
	ItemTulip    ItemType = "flower_tulip"
	ItemPoppy    ItemType = "flower_poppy"
	ItemLavender ItemType = "flower_lavender"
)

// Large plant types
const (
	ItemFern      ItemType = "plant_fern"
	ItemHydrangea ItemType = "plant_hydrangea"
	ItemSunflower ItemType = "plant_sunflower"
)

// Tree types
const (
	ItemOak    ItemType = "tree_oak"
	ItemCherry ItemType = "tree_cherry"
	ItemWillow ItemType = "tree_willow"
)

// Decor types
const (
	ItemBench    ItemType = "decor_bench"
	ItemFountain ItemType = "decor_fountain"
	ItemGnome    ItemType = "decor_gnome"
	ItemBirdbath ItemType = "decor_birdbath"
	ItemLantern  ItemType = "decor_lantern"
)

// Landmark types
const (
	ItemPond    ItemType = "landmark_pond"
	ItemPath    ItemType = "landmark_path"
	ItemRainbow ItemType = "landmark_rainbow"
)

// VariantCount is the number of cosmetic skins per growing plant type.
const VariantCount = 3

// ItemSpec describes the static properties of an item type.
type ItemSpec struct {
	Type     ItemType
	Category ItemCategory

	// BaseRadius is the raw sprite collision radius. Growing plants have it
	// scaled down in the geometry package; decor uses it as configured.
	BaseRadius float64

	// Cost is the original purchase price in gold, used for refunds.
	Cost int

	// MatureAfter is the sapling-to-mature threshold. Zero for non-growing
	// categories, which render mature immediately.
	MatureAfter time.Duration
}

// DefaultDecorRadius applies to decor types with no explicit radius.
const DefaultDecorRadius = 50

const (
	flowerMatureAfter     = 30 * time.Minute
	largePlantMatureAfter = 6 * time.Hour
	treeMatureAfter       = 12 * time.Hour
)

var catalog = map[ItemType]ItemSpec{
	ItemDaisy:    {Type: ItemDaisy, Category: CategoryFlower, BaseRadius: 60, Cost: 5, MatureAfter: flowerMatureAfter},
	ItemTulip:    {Type: ItemTulip, Category: CategoryFlower, BaseRadius: 60, Cost: 5, MatureAfter: flowerMatureAfter},
	ItemPoppy:    {Type: ItemPoppy, Category: CategoryFlower, BaseRadius: 64, Cost: 8, MatureAfter: flowerMatureAfter},
	ItemLavender: {Type: ItemLavender, Category: CategoryFlower, BaseRadius: 70, Cost: 10, MatureAfter: flowerMatureAfter},

	ItemFern:      {Type: ItemFern, Category: CategoryLargePlant, BaseRadius: 110, Cost: 25, MatureAfter: largePlantMatureAfter},
	ItemHydrangea: {Type: ItemHydrangea, Category: CategoryLargePlant, BaseRadius: 120, Cost: 30, MatureAfter: largePlantMatureAfter},
	ItemSunflower: {Type: ItemSunflower, Category: CategoryLargePlant, BaseRadius: 100, Cost: 25, MatureAfter: largePlantMatureAfter},

	ItemOak:    {Type: ItemOak, Category: CategoryTree, BaseRadius: 220, Cost: 80, MatureAfter: treeMatureAfter},
	ItemCherry: {Type: ItemCherry, Category: CategoryTree, BaseRadius: 200, Cost: 100, MatureAfter: treeMatureAfter},
	ItemWillow: {Type: ItemWillow, Category: CategoryTree, BaseRadius: 240, Cost: 120, MatureAfter: treeMatureAfter},

	ItemBench:    {Type: ItemBench, Category: CategoryDecor, BaseRadius: 90, Cost: 40},
	ItemFountain: {Type: ItemFountain, Category: CategoryDecor, BaseRadius: 120, Cost: 150},
	ItemGnome:    {Type: ItemGnome, Category: CategoryDecor, BaseRadius: 40, Cost: 20},
	ItemBirdbath: {Type: ItemBirdbath, Category: CategoryDecor, BaseRadius: 60, Cost: 60},
	ItemLantern:  {Type: ItemLantern, Category: CategoryDecor, Cost: 30}, // falls back to DefaultDecorRadius

	ItemPond:    {Type: ItemPond, Category: CategoryLandmark, Cost: 200},
	ItemPath:    {Type: ItemPath, Category: CategoryLandmark, Cost: 120},
	ItemRainbow: {Type: ItemRainbow, Category: CategoryLandmark, Cost: 300},
}

// SpecFor returns the catalog entry for an item type.
func SpecFor(t ItemType) (ItemSpec, bool) {
	spec, ok := catalog[t]
	return spec, ok
}

// IsGrowing reports whether the category has a sapling phase and a cosmetic
// variant.
func (c ItemCategory) IsGrowing() bool {
	return c == CategoryFlower || c == CategoryLargePlant || c == CategoryTree
}

// AllItemTypes returns every catalog entry, for validation and admin listings.
func AllItemTypes() []ItemSpec {
	specs := make([]ItemSpec, 0, len(catalog))
	for _, spec := range catalog {
		specs = append(specs, spec)
	}
	return specs
}
