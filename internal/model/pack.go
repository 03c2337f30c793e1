package model

import "github.com/shopspring/decimal"

// CreditPack is one purchasable bundle from the static catalog.
type CreditPack struct {
	ID      string          `json:"pack_id"`
	Name    string          `json:"display_name"`
	Price   decimal.Decimal `json:"price"`
	Credits int             `json:"credits"`
}

// UnitAmount returns the pack price in the smallest currency unit, the
// form Stripe expects.
func (p CreditPack) UnitAmount() int64 {
	return p.Price.Mul(decimal.NewFromInt(100)).IntPart()
}

// creditPacks is the static catalog. The catalog is code, not data: packs
// change with releases, not at runtime.
var creditPacks = map[string]CreditPack{
	"starter": {ID: "starter", Name: "20 Credits Pack", Price: decimal.NewFromInt(5), Credits: 20},
	"creator": {ID: "creator", Name: "50 Credits Pack", Price: decimal.NewFromInt(10), Credits: 50},
	"studio":  {ID: "studio", Name: "120 Credits Pack", Price: decimal.NewFromInt(20), Credits: 120},
}

// LookupPack returns the pack for id, or false for unknown ids.
func LookupPack(id string) (CreditPack, bool) {
	pack, ok := creditPacks[id]
	return pack, ok
}
