package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(model)
	}
	return m, cmd
}

func testCatalog(t *testing.T) (*catalog.Catalog, *domain.Product, *domain.Product) {
	t.Helper()
	bose, err := domain.NewProduct("Bose", decimal.NewFromInt(250), 500)
	require.NoError(t, err)
	mac, err := domain.NewProduct("MacBook Air M2", decimal.NewFromInt(1450), 100)
	require.NoError(t, err)
	return catalog.New(bose, mac), bose, mac
}

func TestMenu(t *testing.T) {
	c, _, _ := testCatalog(t)
	m := newModel(c)

	m, _ = press(t, m, runes("1"))
	assert.Contains(t, m.output, "Bose, Price: $250.00, Quantity: 500")
	assert.Contains(t, m.output, "MacBook Air M2, Price: $1450.00, Quantity: 100")

	m, _ = press(t, m, runes("2"))
	assert.Equal(t, "Total of 600 items in store", m.output)
	assert.Contains(t, m.View(), "Total of 600 items in store")

	m, _ = press(t, m, runes("x"))
	assert.Equal(t, "Invalid choice. Please enter 1-4.", m.output)

	m, cmd := press(t, m, runes("4"))
	assert.True(t, m.quitting)
	assert.Equal(t, "Goodbye!\n", m.View())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestMenuNavigation(t *testing.T) {
	c, _, _ := testCatalog(t)
	m := newModel(c)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, "Total of 600 items in store", m.output)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
}

func TestMakeOrder(t *testing.T) {
	c, bose, mac := testCatalog(t)
	m := newModel(c)

	m, _ = press(t, m, runes("3"))
	require.Equal(t, screenOrder, m.screen)
	assert.Contains(t, m.View(), "1. Bose")

	right := tea.KeyMsg{Type: tea.KeyRight}
	m, _ = press(t, m, right, right, right, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, right)
	assert.Equal(t, []int{2, 1}, m.basket)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenMenu, m.screen)
	assert.Equal(t, "Order made! Total payment: $1950.00", m.output)
	assert.Equal(t, 498, bose.Quantity())
	assert.Equal(t, 99, mac.Quantity())
}

func TestMakeOrderReportsFailedLines(t *testing.T) {
	small, err := domain.NewProduct("Google Pixel 7", decimal.NewFromInt(500), 1)
	require.NoError(t, err)
	m := newModel(catalog.New(small))

	right := tea.KeyMsg{Type: tea.KeyRight}
	m, _ = press(t, m, runes("3"), right, right, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Could not buy Google Pixel 7: not enough stock available: requested 2, 1 left\nOrder made! Total payment: $0.00", m.output)
	assert.Equal(t, 1, small.Quantity())
}

func TestEmptyOrderAndCancel(t *testing.T) {
	c, _, _ := testCatalog(t)
	m := newModel(c)

	m, _ = press(t, m, runes("3"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "No product were added to the order", m.output)

	m, _ = press(t, m, runes("3"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.screen)
	assert.Equal(t, "Order cancelled", m.output)
	assert.Equal(t, 600, c.TotalQuantity())

	empty := newModel(catalog.New())
	empty, _ = press(t, empty, runes("3"))
	assert.Equal(t, screenMenu, empty.screen)
	assert.Equal(t, "No active products in the store", empty.output)
}
