package source

import "math/rand"

// acceptLanguages contains browser Accept-Language values, the monitored pages are in Russian
var acceptLanguages = []string{
	"ru-RU,ru;q=0.9",
	"ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7",
	"ru,en;q=0.9",
	"ru-RU,ru;q=0.8,en;q=0.6",
}

// browserHeaders makes request headers of a regular browser visit, extra headers win
func browserHeaders(userAgent string, extra map[string]string) map[string]string {
	res := map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language":           acceptLanguages[rand.Intn(len(acceptLanguages))], //nolint:gosec // non-cryptographic randomness is fine for header variation
		"Cache-Control":             "no-cache",
		"Pragma":                    "no-cache",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
	}
	if userAgent != "" {
		res["User-Agent"] = userAgent
	}
	// dnt - 30% chance of being set
	if rand.Float32() < 0.3 { //nolint:gosec // non-cryptographic randomness is fine
		res["DNT"] = "1"
	}
	for k, v := range extra {
		res[k] = v
	}
	return res
}

// imageHeaders makes headers for an image request issued from the article page
func imageHeaders(userAgent, referer string) map[string]string {
	res := map[string]string{
		"Accept":         "image/avif,image/webp,image/apng,image/*,*/*;q=0.8",
		"Sec-Fetch-Dest": "image",
		"Sec-Fetch-Mode": "no-cors",
		"Sec-Fetch-Site": "same-origin",
	}
	if userAgent != "" {
		res["User-Agent"] = userAgent
	}
	if referer != "" {
		res["Referer"] = referer
	}
	return res
}
