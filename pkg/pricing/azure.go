package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AzureProvider overlays live pay-as-you-go session host prices from the
// Azure Retail Prices API onto a base rate card. Everything else on the card
// (platform, storage, services rates) comes from the base.
type AzureProvider struct {
	region     string
	baseURL    string
	base       Provider
	cache      *PriceCache
	httpClient *http.Client
}

// Azure Retail Prices API
const azurePricingAPI = "https://prices.azure.com/api/retail/prices"

type azurePriceResponse struct {
	Items        []azurePriceItem `json:"Items"`
	NextPageLink string           `json:"NextPageLink"`
}

type azurePriceItem struct {
	CurrencyCode  string  `json:"currencyCode"`
	RetailPrice   float64 `json:"retailPrice"`
	UnitOfMeasure string  `json:"unitOfMeasure"`
	ServiceName   string  `json:"serviceName"`
	ProductName   string  `json:"productName"`
	SkuName       string  `json:"skuName"`
	ArmSkuName    string  `json:"armSkuName"`
	ArmRegionName string  `json:"armRegionName"`
	Type          string  `json:"type"`
}

func NewAzureProvider(region string, base Provider) *AzureProvider {
	if base == nil {
		base = NewDefaultProvider()
	}
	return &AzureProvider{
		region:  region,
		baseURL: azurePricingAPI,
		base:    base,
		cache:   NewPriceCache(24 * time.Hour),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (a *AzureProvider) Name() string {
	return "azure"
}

func (a *AzureProvider) GetRateCard(ctx context.Context, region string) (*RateCard, error) {
	if region == "" {
		region = a.region
	}

	cacheKey := fmt.Sprintf("azure-%s", region)
	if cached := a.cache.Get(cacheKey); cached != nil {
		return cached, nil
	}

	card, err := a.base.GetRateCard(ctx, region)
	if err != nil {
		return nil, err
	}

	prices, err := a.fetchSKUPrices(ctx, region, skuNames(card))
	if err != nil {
		// Fallback to the base card if the API fails
		slog.Warn("azure retail prices unavailable, using base rate card",
			"region", region, "error", err)
		return card, nil
	}

	for sku, hourly := range prices {
		rate := card.SKUs[sku]
		rate.HourlyRate = hourly
		card.SKUs[sku] = rate
	}
	card.Source = "azure"
	card.Region = region

	a.cache.Set(cacheKey, card)
	return card, nil
}

func skuNames(card *RateCard) []string {
	names := make([]string, 0, len(card.SKUs))
	for name := range card.SKUs {
		names = append(names, name)
	}
	return names
}

func (a *AzureProvider) fetchSKUPrices(ctx context.Context, region string, skus []string) (map[string]float64, error) {
	if len(skus) == 0 {
		return map[string]float64{}, nil
	}

	clauses := make([]string, 0, len(skus))
	for _, sku := range skus {
		clauses = append(clauses, fmt.Sprintf("armSkuName eq 'Standard_%s'", sku))
	}
	filter := fmt.Sprintf("serviceName eq 'Virtual Machines' and armRegionName eq '%s' and priceType eq 'Consumption' and (%s)",
		region, strings.Join(clauses, " or "))
	reqURL := fmt.Sprintf("%s?$filter=%s", a.baseURL, url.QueryEscape(filter))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("azure pricing API returned status %d", resp.StatusCode)
	}

	var priceResp azurePriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return nil, err
	}

	prices := selectHourlyPrices(priceResp.Items)
	if len(prices) == 0 {
		return nil, fmt.Errorf("azure pricing API returned no usable prices for %s", region)
	}
	return prices, nil
}

// selectHourlyPrices keeps Linux pay-as-you-go hourly meters. AVD session
// hosts run Windows multi-session, which is licensed through the user's
// Microsoft 365 entitlement, so the Linux compute meter is the right rate.
func selectHourlyPrices(items []azurePriceItem) map[string]float64 {
	prices := make(map[string]float64)
	for _, item := range items {
		if item.UnitOfMeasure != "1 Hour" || item.RetailPrice <= 0 {
			continue
		}
		if item.Type != "" && item.Type != "Consumption" {
			continue
		}
		if strings.Contains(item.ProductName, "Windows") ||
			strings.Contains(item.SkuName, "Spot") ||
			strings.Contains(item.SkuName, "Low Priority") {
			continue
		}
		sku := strings.TrimPrefix(item.ArmSkuName, "Standard_")
		if current, ok := prices[sku]; !ok || item.RetailPrice < current {
			prices[sku] = item.RetailPrice
		}
	}
	return prices
}
