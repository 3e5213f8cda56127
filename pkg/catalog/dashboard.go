package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"net/url"
	"slices"
	"strings"

	"github.com/dashmarket/storefront/pkg/cart"
)

// ID accepts both JSON strings and JSON numbers.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrInvalidID
	}
	*id = ID(n.String())
	return nil
}

// Dashboard is a catalog entry as served by the backend.
type Dashboard struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	PriceCoins  *float64 `json:"price_coins,omitempty"`
	Image       string   `json:"image,omitempty"`
	PreviewURL  string   `json:"preview_url,omitempty"`
	Tech        string   `json:"tech"`
	Rating      float64  `json:"rating,omitempty"`
	DemoURL     string   `json:"demo_url,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// Coins returns the coin price. price_coins wins when both fields are set.
func (d Dashboard) Coins() (float64, bool) {
	switch {
	case d.PriceCoins != nil:
		return *d.PriceCoins, true
	case d.Price != nil:
		return *d.Price, true
	default:
		return 0, false
	}
}

// PreviewImage returns the preview image URL in either shape.
func (d Dashboard) PreviewImage() string {
	if d.PreviewURL != "" {
		return d.PreviewURL
	}
	return d.Image
}

// CartItem validates the dashboard and converts it into a cart item.
func (d Dashboard) CartItem() (cart.Item, error) {
	id := strings.TrimSpace(string(d.ID))
	title := strings.TrimSpace(d.Title)
	tech := strings.TrimSpace(d.Tech)
	image := strings.TrimSpace(d.PreviewImage())
	coins, hasPrice := d.Coins()

	conflicting := d.Price != nil && d.PriceCoins != nil && *d.Price != *d.PriceCoins

	if err := apply(
		rule{id != "", ValidationError{"id", "is required"}},
		rule{title != "", ValidationError{"title", "is required"}},
		rule{tech != "", ValidationError{"tech", "is required"}},
		rule{hasPrice, ValidationError{"price", "is required"}},
		rule{!hasPrice || coins >= 0, ValidationError{"price", "must not be negative"}},
		rule{!hasPrice || isWhole(coins), ValidationError{"price", "must be a whole number of coins"}},
		rule{!conflicting, ValidationError{"price", "price and price_coins disagree"}},
		rule{isHTTPURL(image), ValidationError{"image", "must be an absolute http(s) URL"}},
	); err != nil {
		return cart.Item{}, err
	}

	return cart.Item{
		ID:    id,
		Title: title,
		Price: int64(coins),
		Image: image,
		Tech:  tech,
	}, nil
}

func isWhole(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) && math.Abs(f) < 1e15
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// AllTech is the filter value that disables technology filtering.
const AllTech = "All"

// FilterByTech keeps dashboards whose tech matches, ignoring case.
// An empty filter or AllTech returns every dashboard.
func FilterByTech(dashboards []Dashboard, tech string) []Dashboard {
	tech = strings.TrimSpace(tech)
	if tech == "" || strings.EqualFold(tech, AllTech) {
		return slices.Clone(dashboards)
	}

	out := make([]Dashboard, 0, len(dashboards))
	for _, d := range dashboards {
		if strings.EqualFold(strings.TrimSpace(d.Tech), tech) {
			out = append(out, d)
		}
	}
	return out
}

// Technologies lists the distinct tech tags, sorted, prefixed with AllTech.
func Technologies(dashboards []Dashboard) []string {
	seen := make(map[string]bool)
	techs := make([]string, 0, len(dashboards))
	for _, d := range dashboards {
		t := strings.TrimSpace(d.Tech)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		techs = append(techs, t)
	}
	slices.SortFunc(techs, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return append([]string{AllTech}, techs...)
}
