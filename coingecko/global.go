package coingecko

import (
	"context"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Global returns the figures of the whole crypto market.
func (c *Client) Global(ctx context.Context) (Global, error) {
	var jobj any
	if err := c.get(ctx, "/global", nil, &jobj); err != nil {
		return Global{}, err
	}
	return parseGlobal(jobj)
}

// parseGlobal extracts the Global figures from a decoded /global payload.
func parseGlobal(jobj any) (Global, error) {
	var (
		g   Global
		err error
	)
	active, err := jfloat(jobj, "$.data.active_cryptocurrencies")
	if err != nil {
		return g, err
	}
	g.ActiveCryptocurrencies = int(active)
	if markets, err := jfloat(jobj, "$.data.markets"); err == nil {
		g.Markets = int(markets)
	}
	if g.TotalMarketCap, err = jmap(jobj, "$.data.total_market_cap"); err != nil {
		return g, err
	}
	if g.TotalVolume, err = jmap(jobj, "$.data.total_volume"); err != nil {
		return g, err
	}
	if g.MarketCapPercentage, err = jmap(jobj, "$.data.market_cap_percentage"); err != nil {
		return g, err
	}
	// optional
	g.MarketCapChange24h, _ = jfloat(jobj, "$.data.market_cap_change_percentage_24h_usd")
	return g, nil
}

// jget evaluates path, keeping the first answer when jsonpath returns a list.
func jget(jobj any, path string) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

func jfloat(jobj any, path string) (float64, error) {
	jval, err := jget(jobj, path)
	if err != nil {
		return 0, err
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: not a number %v", path, jval)
	}
	return val, nil
}

func jmap(jobj any, path string) (map[string]float64, error) {
	jval, err := jget(jobj, path)
	if err != nil {
		return nil, err
	}
	obj, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: not an object %v", path, jval)
	}
	m := make(map[string]float64, len(obj))
	for k, v := range obj {
		if f, ok := v.(float64); ok {
			m[k] = f
		}
	}
	return m, nil
}
