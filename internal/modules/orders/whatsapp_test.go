package orders

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamseddine-glitch/sha/internal/modules/cart"
)

func TestHandoffStripsNumberFormatting(t *testing.T) {
	h := BuildWhatsAppHandoff("+213 555-12 34 56", validDetails(), nil, 400)
	assert.Equal(t, "213555123456", h.Number)
	assert.True(t, strings.HasPrefix(h.Link, "https://wa.me/213555123456?text="))
}

func TestHandoffMessageListsItemsAndTotal(t *testing.T) {
	items := []cart.Item{
		cartItem("a", "p1", 1000, 2),
		cartItem("b", "p2", 500, 1),
	}
	items[0].SelectedOptions = map[string]string{"Size": "M", "Color": "Red"}

	h := BuildWhatsAppHandoff("0555", validDetails(), items, 2900)

	assert.Contains(t, h.Message, "Amel B")
	assert.Contains(t, h.Message, "Product p1 x2")
	assert.Contains(t, h.Message, "Product p2 x1")
	assert.Contains(t, h.Message, "Color: Red, Size: M")
	assert.Contains(t, h.Message, "Total: 2900.00 DA")
}

func TestHandoffLinkEncodesMessage(t *testing.T) {
	h := BuildWhatsAppHandoff("0555", validDetails(), []cart.Item{cartItem("a", "p1", 100, 1)}, 500)

	u, err := url.Parse(h.Link)
	require.NoError(t, err)
	assert.Equal(t, h.Message, u.Query().Get("text"))
}

func TestHandoffIncludesAddressOnlyWhenPresent(t *testing.T) {
	d := validDetails()
	h := BuildWhatsAppHandoff("0555", d, nil, 0)
	assert.NotContains(t, h.Message, "Address:")

	d.ShippingMethod = "home"
	d.Address = "12 Rue Didouche"
	h = BuildWhatsAppHandoff("0555", d, nil, 0)
	assert.Contains(t, h.Message, "Address: 12 Rue Didouche")
}
