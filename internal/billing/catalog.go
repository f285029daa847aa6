package billing

import (
	"context"
	"encoding/json"
	"net/http"
)

// CatalogItem is one purchasable product: a data plan, cable package,
// electricity provider or internet plan.
type CatalogItem struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Validity string `json:"validity,omitempty"`
}

// rawCatalogItem tolerates the naming drift across the provider's catalog
// endpoints: each product family reports its price under a different key.
type rawCatalogItem struct {
	Code            string   `json:"code"`
	ID              string   `json:"id"`
	PlanID          string   `json:"plan_id"`
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	PlanName        string   `json:"plan_name"`
	Amount          *float64 `json:"amount"`
	Price           *float64 `json:"price"`
	PlanAmount      *float64 `json:"plan_amount"`
	VariationAmount *float64 `json:"variation_amount"`
	Cost            *float64 `json:"cost"`
	Validity        string   `json:"validity"`
}

func (r *rawCatalogItem) normalize() CatalogItem {
	item := CatalogItem{
		Code:     firstString(r.Code, r.ID, r.PlanID),
		Name:     firstString(r.Name, r.Title, r.PlanName),
		Validity: r.Validity,
	}

	if amount := firstSet(r.Amount, r.Price, r.PlanAmount, r.VariationAmount, r.Cost); amount != nil {
		item.Amount = int64(*amount)
	}

	return item
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstSet(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

type catalogResponse struct {
	Items []json.RawMessage `json:"items"`
	Plans []json.RawMessage `json:"plans"`
	Data  []json.RawMessage `json:"data"`
}

func (c *Client) fetchCatalog(ctx context.Context, path string) ([]CatalogItem, error) {
	resp, err := c.doService(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var body catalogResponse
	if err := decodeEnvelope(resp, &body); err != nil {
		return nil, err
	}

	raws := body.Items
	if len(raws) == 0 {
		raws = body.Plans
	}
	if len(raws) == 0 {
		raws = body.Data
	}

	items := make([]CatalogItem, 0, len(raws))
	for _, raw := range raws {
		var ri rawCatalogItem
		if err := json.Unmarshal(raw, &ri); err != nil {
			continue
		}
		items = append(items, ri.normalize())
	}

	return items, nil
}

// DataPlans lists purchasable data bundles for a carrier.
func (c *Client) DataPlans(ctx context.Context, carrier string) ([]CatalogItem, error) {
	return c.fetchCatalog(ctx, "/data/plans/"+carrier)
}

// CablePackages lists subscription packages for a cable operator.
func (c *Client) CablePackages(ctx context.Context, operator string) ([]CatalogItem, error) {
	return c.fetchCatalog(ctx, "/cable/packages/"+operator)
}

// ElectricityProviders lists the supported electricity distributors.
func (c *Client) ElectricityProviders(ctx context.Context) ([]CatalogItem, error) {
	return c.fetchCatalog(ctx, "/electricity/providers")
}

// InternetPlans lists plans for an internet provider.
func (c *Client) InternetPlans(ctx context.Context, providerCode string) ([]CatalogItem, error) {
	return c.fetchCatalog(ctx, "/internet/provider/"+providerCode+"/plans")
}
