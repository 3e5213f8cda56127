package catalog

// Pack is a bundle of coins sold for real currency.
type Pack struct {
	Name     string `json:"name"`
	Coins    int64  `json:"coins"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
}

// Packs returns the coin packs offered in the shop, cheapest first.
func Packs() []Pack {
	return []Pack{
		{Name: "Bronze Pack", Coins: 30, Price: 30, Currency: "TND"},
		{Name: "Silver Pack", Coins: 80, Price: 75, Currency: "TND"},
		{Name: "Gold Pack", Coins: 120, Price: 110, Currency: "TND"},
		{Name: "Diamond Pack", Coins: 180, Price: 150, Currency: "TND"},
	}
}
