package services

import (
	"errors"
	"fmt"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogGateway is the read-only slice of the catalog the order path
// depends on. Lookups return the current price/availability at this
// instant; the pricing engine freezes what it sees.
type CatalogGateway interface {
	GetMenuItem(id uint) (*entity.MenuItem, error)
	GetModifierItem(id uint) (*entity.ModifierItem, error)
	GetModifierGroupsForMenuItem(menuItemID uint) ([]entity.ModifierGroup, error)
}

type CartLine struct {
	MenuItemID      uint   `json:"menuItemId" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
	ModifierItemIDs []uint `json:"modifierItemIds"`
	Note            string `json:"note"`
}

type PricedModifier struct {
	ModifierItemID uint
	Name           string
	UnitPrice      decimal.Decimal
}

type PricedLine struct {
	MenuItemID uint
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	Modifiers  []PricedModifier
	Subtotal   decimal.Decimal
	Note       string
}

type PricedCart struct {
	Lines    []PricedLine
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// PriceCart turns cart lines into frozen line and order totals. Pure
// computation over gateway snapshots; nothing is written.
//
// Line subtotal = (unit price + sum of modifier prices) * quantity,
// rounded half-up to 2 decimal places (decimal.Round rounds half away
// from zero, which is half-up for prices). Tax is applied once at
// order-subtotal level; the default rate is zero.
func PriceCart(catalog CatalogGateway, taxRate decimal.Decimal, lines []CartLine) (*PricedCart, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	cart := &PricedCart{Subtotal: decimal.Zero}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		item, err := catalog.GetMenuItem(line.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: menu item %d", ErrItemUnavailable, line.MenuItemID)
			}
			return nil, err
		}
		if !item.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
		}

		unit := item.Price
		priced := PricedLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   line.Quantity,
			UnitPrice:  item.Price,
			Note:       line.Note,
		}

		for _, modID := range line.ModifierItemIDs {
			mod, err := catalog.GetModifierItem(modID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: modifier %d", ErrModifierUnavailable, modID)
				}
				return nil, err
			}
			if !mod.IsAvailable {
				return nil, fmt.Errorf("%w: %s", ErrModifierUnavailable, mod.Name)
			}
			unit = unit.Add(mod.Price)
			priced.Modifiers = append(priced.Modifiers, PricedModifier{
				ModifierItemID: mod.ID,
				Name:           mod.Name,
				UnitPrice:      mod.Price,
			})
		}

		priced.Subtotal = unit.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		cart.Lines = append(cart.Lines, priced)
		cart.Subtotal = cart.Subtotal.Add(priced.Subtotal)
	}

	cart.Tax = cart.Subtotal.Mul(taxRate).Round(2)
	cart.Total = cart.Subtotal.Add(cart.Tax)
	return cart, nil
}
