package orders

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/chamseddine-glitch/sha/internal/modules/cart"
)

// WhatsAppHandoff is a prefilled chat link for submitting an order over
// WhatsApp instead of the direct pipeline.
type WhatsAppHandoff struct {
	Number  string `json:"number"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// BuildWhatsAppHandoff renders the order summary and the wa.me link. The
// order is NOT recorded; it only reaches the list if the admin imports the
// conversation later.
func BuildWhatsAppHandoff(number string, details OrderDetails, items []cart.Item, total float64) WhatsAppHandoff {
	msg := whatsAppMessage(details, items, total)
	clean := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	return WhatsAppHandoff{
		Number:  clean,
		Message: msg,
		Link:    "https://wa.me/" + clean + "?text=" + url.QueryEscape(msg),
	}
}

func whatsAppMessage(details OrderDetails, items []cart.Item, total float64) string {
	var b strings.Builder
	b.WriteString("New Order:\n")
	fmt.Fprintf(&b, "Name: %s\n", details.Name)
	fmt.Fprintf(&b, "Phone: %s\n", details.Phone)
	fmt.Fprintf(&b, "Wilaya: %s\n", details.Wilaya)
	fmt.Fprintf(&b, "Commune: %s\n", details.Commune)
	fmt.Fprintf(&b, "Shipping: %s\n", details.ShippingMethod)
	if details.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", details.Address)
	}
	b.WriteString("Items:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s x%d", it.Product.Name, it.Quantity)
		if len(it.SelectedOptions) > 0 {
			b.WriteString(" (")
			b.WriteString(formatOptions(it.SelectedOptions))
			b.WriteString(")")
		}
		fmt.Fprintf(&b, " = %.2f DA\n", it.LineTotal())
	}
	fmt.Fprintf(&b, "Total: %.2f DA", total)
	return b.String()
}

func formatOptions(opts map[string]string) string {
	parts := make([]string, 0, len(opts))
	for k, v := range opts {
		parts = append(parts, k+": "+v)
	}
	// map order is random; keep the summary stable
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
