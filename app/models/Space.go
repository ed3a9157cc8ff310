package models

const BoardSize = 40

// Space kinds as stored in spaces.json
const (
	KindProperty = "property"
	KindStation  = "station"
	KindUtility  = "utility"
	KindDraw     = "draw"
	KindSpecial  = "special"
)

// Draw types
const (
	DrawChance         = "chance"
	DrawCommunityChest = "community_chest"
)

// Names of the special spaces the engine dispatches on
const (
	SpaceGo          = "Go"
	SpaceIncomeTax   = "Income Tax"
	SpaceLuxuryTax   = "Luxury Tax"
	SpaceGoToJail    = "Go To Jail"
	SpaceFreeParking = "Free Parking"
	SpaceJail        = "Jail"
)

type Space struct {
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Index        int    `json:"index"`
	Group        string `json:"group"`
	Price        int    `json:"price"`
	HousePrice   int    `json:"house_price"`
	StandardRent int    `json:"rent"`
	HouseRents   []int  `json:"house_rents"` // 1..4 houses
	HotelRent    int    `json:"hotel_rent"`
	DrawType     string `json:"draw_type"`
}

// Mortgage value is always half the purchase price.
func (s Space) MortgageValue() int {
	return s.Price / 2
}

// Ownable reports whether the space can be bought and charge rent.
func (s Space) Ownable() bool {
	return s.Kind == KindProperty || s.Kind == KindStation || s.Kind == KindUtility
}
