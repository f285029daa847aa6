package billing

import (
	"context"
	"net/http"
)

type validateResponse struct {
	CustomerName string `json:"customerName"`
	Customer     string `json:"customer"`
	Name         string `json:"name"`
}

func (v *validateResponse) name() string {
	return firstString(v.CustomerName, v.Customer, v.Name)
}

type validateSmartcardRequest struct {
	Operator  string `json:"operator"`
	Smartcard string `json:"smartcard"`
}

// ValidateSmartcard resolves a cable smartcard number to the subscriber's
// display name. The name is shown for user confidence before payment; a
// lookup failure does not structurally block submission.
func (c *Client) ValidateSmartcard(ctx context.Context, operator, smartcard string) (string, error) {
	resp, err := c.doService(ctx, http.MethodPost, "/cable/validate-smartcard", nil, validateSmartcardRequest{
		Operator:  operator,
		Smartcard: smartcard,
	})
	if err != nil {
		return "", err
	}

	var body validateResponse
	if err := decodeEnvelope(resp, &body); err != nil {
		return "", err
	}

	return body.name(), nil
}

type validateMeterRequest struct {
	Provider  string `json:"provider"`
	Meter     string `json:"meter"`
	MeterType string `json:"meterType"`
}

// ValidateMeter resolves an electricity meter number to the account holder's
// display name.
func (c *Client) ValidateMeter(ctx context.Context, provider, meter, meterType string) (string, error) {
	resp, err := c.doService(ctx, http.MethodPost, "/electricity/validate-meter", nil, validateMeterRequest{
		Provider:  provider,
		Meter:     meter,
		MeterType: meterType,
	})
	if err != nil {
		return "", err
	}

	var body validateResponse
	if err := decodeEnvelope(resp, &body); err != nil {
		return "", err
	}

	return body.name(), nil
}
