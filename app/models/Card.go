package models

// Card effect types as stored in cards.json
const (
	EffectPay        = "pay"
	EffectPayAll     = "pay_all"
	EffectReceive    = "receive"
	EffectReceiveAll = "receive_all"
	EffectMove       = "move"
	EffectSpecial    = "special"
)

// Names of the special-effect cards the engine dispatches on
const (
	CardGoToJail        = "Go to Jail"
	CardStreetRepairs   = "Street Repairs"
	CardPropertyRepairs = "Property Repairs"
	CardAdvanceUtility  = "Advance to Utility"
	CardAdvanceRail1    = "Advance to Railroad 1"
	CardAdvanceRail2    = "Advance to Railroad 2"
)

type Card struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DrawType    string `json:"draw_type"`
	Effect      string `json:"effect"`
	Amount      int    `json:"amount"`
	TargetIndex int    `json:"index"`
	HouseFee    int    `json:"house_fee"`
	HotelFee    int    `json:"hotel_fee"`
	Multiplier  int    `json:"multiplier"`
}
