package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
)

type screen int

const (
	screenMenu screen = iota
	screenOrder
)

var menuItems = []string{
	"List all products in store",
	"Show total amount in store",
	"Make an order",
	"Quit",
}

type model struct {
	catalog *catalog.Catalog
	screen  screen
	cursor  int
	output  string

	// order screen state: a snapshot of the active products and the chosen quantities
	products []*domain.Product
	basket   []int

	quitting bool
}

func newModel(c *catalog.Catalog) model {
	return model{catalog: c}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.screen == screenOrder {
		return m.updateOrder(key)
	}
	return m.updateMenu(key)
}

func (m model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m.choose(3)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter":
		return m.choose(m.cursor)
	case "1", "2", "3", "4":
		return m.choose(int(key.String()[0] - '1'))
	default:
		m.output = fmt.Sprintf("Invalid choice. Please enter 1-%d.", len(menuItems))
	}
	return m, nil
}

func (m model) choose(item int) (tea.Model, tea.Cmd) {
	m.cursor = item
	switch item {
	case 0:
		var b strings.Builder
		b.WriteString("-----\n")
		for _, p := range m.catalog.ActiveProducts() {
			b.WriteString(p.String())
			b.WriteByte('\n')
		}
		b.WriteString("-----")
		m.output = b.String()
	case 1:
		m.output = fmt.Sprintf("Total of %d items in store", m.catalog.TotalQuantity())
	case 2:
		m.products = m.catalog.ActiveProducts()
		if len(m.products) == 0 {
			m.output = "No active products in the store"
			return m, nil
		}
		m.basket = make([]int, len(m.products))
		m.screen = screenOrder
		m.cursor = 0
		m.output = ""
	case 3:
		m.output = "Goodbye!"
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) updateOrder(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "right", "l", "+":
		m.basket[m.cursor]++
	case "left", "h", "-":
		if m.basket[m.cursor] > 0 {
			m.basket[m.cursor]--
		}
	case "esc":
		m.screen = screenMenu
		m.cursor = 2
		m.output = "Order cancelled"
	case "enter":
		m.output = m.placeOrder()
		m.screen = screenMenu
		m.cursor = 2
	}
	return m, nil
}

func (m model) placeOrder() string {
	var items []catalog.LineItem
	for i, quantity := range m.basket {
		if quantity > 0 {
			items = append(items, catalog.Line(m.products[i], quantity))
		}
	}
	if len(items) == 0 {
		return "No product were added to the order"
	}

	receipt := m.catalog.Checkout(context.Background(), items)

	var b strings.Builder
	for _, line := range receipt.Failures() {
		b.WriteString(line.Reason())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Order made! Total payment: $%s", receipt.Total.StringFixed(2))
	return b.String()
}

func (m model) View() string {
	if m.quitting {
		return m.output + "\n"
	}

	b := &strings.Builder{}
	if m.screen == screenOrder {
		fmt.Fprintln(b, "Make an order")
		fmt.Fprintln(b, "")
		for i, p := range m.products {
			marker := " "
			if i == m.cursor {
				marker = ">"
			}
			fmt.Fprintf(b, " %s %d. %s  [x%d]\n", marker, i+1, p.String(), m.basket[i])
		}
		fmt.Fprintln(b, "\nControls: up/down select product, left/right change amount, enter to order, esc to cancel")
		return b.String()
	}

	fmt.Fprintln(b, "Menu")
	for i, item := range menuItems {
		marker := " "
		if i == m.cursor {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %d. %s\n", marker, i+1, item)
	}
	if m.output != "" {
		fmt.Fprintf(b, "\n%s\n", m.output)
	}
	fmt.Fprintln(b, "\nControls: up/down and enter, or 1-4, q to quit")
	return b.String()
}
