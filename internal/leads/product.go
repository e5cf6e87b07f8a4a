package leads

import "strings"

const unknownProduct = "Unknown Product"

// ResolveProductName picks the display name for a captured lead. Explicit
// names win over page titles, which win over whatever the widget detected.
func ResolveProductName(productName, productTitle, detectedProduct string) string {
	if name := strings.TrimSpace(productName); name != "" {
		return name
	}
	if title := strings.TrimSpace(productTitle); title != "" {
		return title
	}
	if detected := strings.TrimSpace(detectedProduct); detected != "" {
		return detected
	}
	return unknownProduct
}
