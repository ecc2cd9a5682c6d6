package search

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Condition codes as exposed by the marketplace's search form controls.
var ConditionCodes = map[int]string{
	10: "new",
	20: "like new",
	30: "excellent",
	40: "good",
	50: "fair",
	60: "salvage",
}

var conditionNameToCode = func() map[string]int {
	m := make(map[string]int, len(ConditionCodes))
	for code, name := range ConditionCodes {
		m[name] = code
	}
	return m
}()

// Params describes a marketplace search. Site is the site code (e.g.
// "southjersey"); Category defaults to "sss" (for sale by owner). Postal
// enables ZIP+radius search when set together with SearchDistance.
type Params struct {
	Query          string
	Site           string
	Category       string
	Postal         string
	SearchDistance int
	MinPrice       *int
	MaxPrice       *int
	Conditions     []string
	Extra          map[string]string
}

// NormalizeConditions converts condition inputs (numeric codes or labels) to
// numeric codes. Unknown values are a configuration error and propagate.
func NormalizeConditions(conditions []string) ([]int, error) {
	out := make([]int, 0, len(conditions))
	for _, value := range conditions {
		text := strings.ToLower(strings.TrimSpace(value))

		var code int
		if n, err := strconv.Atoi(text); err == nil {
			code = n
		} else if c, ok := conditionNameToCode[text]; ok {
			code = c
		} else {
			return nil, fmt.Errorf("normalize conditions: unknown condition value %q", value)
		}

		if _, ok := ConditionCodes[code]; !ok {
			return nil, fmt.Errorf("normalize conditions: unsupported condition code %d", code)
		}
		out = append(out, code)
	}
	return out, nil
}

// BuildURL assembles a search URL with advanced filter support.
//
//	BuildURL(Params{Query: "iphone", Site: "philadelphia"})
//	-> https://philadelphia.craigslist.org/search/sss?query=iphone
func BuildURL(p Params) (string, error) {
	if strings.TrimSpace(p.Site) == "" {
		return "", fmt.Errorf("build url: site must be non-empty")
	}

	category := p.Category
	if category == "" {
		category = "sss"
	}

	values := url.Values{}
	values.Set("query", p.Query)

	if p.Postal != "" {
		values.Set("postal", p.Postal)
		if p.SearchDistance > 0 {
			values.Set("search_distance", strconv.Itoa(p.SearchDistance))
		}
	}

	if p.MinPrice != nil {
		values.Set("min_price", strconv.Itoa(*p.MinPrice))
	}
	if p.MaxPrice != nil {
		values.Set("max_price", strconv.Itoa(*p.MaxPrice))
	}

	if len(p.Conditions) > 0 {
		codes, err := NormalizeConditions(p.Conditions)
		if err != nil {
			return "", fmt.Errorf("build url: %w", err)
		}
		for _, code := range codes {
			values.Add("condition", strconv.Itoa(code))
		}
	}

	// Arbitrary extra filters (auto_make_model, hasPic, bundleDuplicates, ...).
	extraKeys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		values.Set(k, p.Extra[k])
	}

	base := fmt.Sprintf("https://%s.craigslist.org/search/%s", p.Site, category)
	return base + "?" + values.Encode(), nil
}
