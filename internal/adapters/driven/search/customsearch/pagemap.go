package customsearch

import (
	"encoding/json"

	"google.golang.org/api/googleapi"
)

// Meta tags read from the first metatags object.
const (
	metaOGImage       = "og:image"
	metaPublishedTime = "article:published_time"
	metaSiteName      = "og:site_name"
)

// pagemap is the subset of a result's structured data that dealwatch reads.
type pagemap struct {
	CSEImage []struct {
		Src string `json:"src"`
	} `json:"cse_image"`
	Metatags []map[string]any `json:"metatags"`
}

// pagemapFields are the values extracted from a pagemap.
type pagemapFields struct {
	CSEImage      string
	OGImage       string
	PublishedTime string
	SiteName      string
}

// parsePagemap extracts image, publication time and site name.
// Missing or malformed pagemaps yield empty fields.
func parsePagemap(raw googleapi.RawMessage) pagemapFields {
	var fields pagemapFields
	if len(raw) == 0 {
		return fields
	}

	var pm pagemap
	if err := json.Unmarshal(raw, &pm); err != nil {
		return fields
	}

	if len(pm.CSEImage) > 0 {
		fields.CSEImage = pm.CSEImage[0].Src
	}
	if len(pm.Metatags) > 0 {
		meta := pm.Metatags[0]
		fields.OGImage = metaString(meta, metaOGImage)
		fields.PublishedTime = metaString(meta, metaPublishedTime)
		fields.SiteName = metaString(meta, metaSiteName)
	}
	return fields
}

func metaString(meta map[string]any, key string) string {
	s, _ := meta[key].(string)
	return s
}
