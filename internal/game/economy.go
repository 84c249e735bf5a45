package game

import (
	"time"

	"github.com/verte-zerg/scripttyper/internal/model"
	"github.com/verte-zerg/scripttyper/internal/pricing"
)

// Goods names a craftable product.
type Goods string

const (
	Article Goods = "article"
	Book    Goods = "book"
)

// Direction is a price adjustment step.
type Direction int

const (
	PriceDown Direction = iota
	PriceUp
)

// Buy purchases a store item.
func (e *Engine) Buy(id string) bool {
	return e.do(func(now time.Time) bool {
		idx := -1
		for i, it := range e.st.Items {
			if it.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false
		}
		it := e.st.Items[idx]
		p := e.st.Player
		if it.Owned || p.Chars < it.Cost.Chars || p.Money < it.Cost.Money {
			e.logger.Debug("purchase refused", "item", id)
			return false
		}
		p.Chars -= it.Cost.Chars
		p.Money -= it.Cost.Money
		e.st.Player = p
		items := cloneItems(e.st.Items)
		items[idx].Owned = true
		e.st.Items = items
		e.appendLog(model.GameEvent{ID: eventID("buy:"+id, now), TS: now, Message: "Bought " + it.Name})
		return true
	})
}

// UnitCost returns the current chars cost of one unit of goods.
func (e *Engine) UnitCost(g Goods) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unitCost(g)
}

func (e *Engine) unitCost(g Goods) int {
	if g == Book {
		return e.rules.BookCost
	}
	return pricing.CraftCost(e.rules.ArticleBaseCost, e.st.Items)
}

// CraftArticle turns chars into n articles.
func (e *Engine) CraftArticle(n int) bool {
	return e.craft(Article, n)
}

// CraftBook turns chars into n books.
func (e *Engine) CraftBook(n int) bool {
	return e.craft(Book, n)
}

func (e *Engine) craft(g Goods, n int) bool {
	return e.do(func(time.Time) bool {
		unit := e.unitCost(g)
		p := e.st.Player
		// Checked by division so a huge n cannot wrap the total.
		if n < 1 || unit < 1 || n > p.Chars/unit {
			return false
		}
		p.Chars -= unit * n
		if g == Book {
			p.Inventory.Books += n
		} else {
			p.Inventory.Articles += n
		}
		e.st.Player = p
		e.dirty = true
		return true
	})
}

// SellArticle sells n articles at the current price.
func (e *Engine) SellArticle(n int) bool {
	return e.sell(Article, n)
}

// SellBook sells n books at the current price.
func (e *Engine) SellBook(n int) bool {
	return e.sell(Book, n)
}

func (e *Engine) sell(g Goods, n int) bool {
	return e.do(func(time.Time) bool {
		if n < 1 {
			return false
		}
		p := e.st.Player
		stock, price := &p.Inventory.Articles, p.Prices.Article
		if g == Book {
			stock, price = &p.Inventory.Books, p.Prices.Book
		}
		if *stock < n {
			return false
		}
		*stock -= n
		p.Money += pricing.SellUnitPrice(price, e.st.Items) * n
		e.st.Player = p
		e.dirty = true
		return true
	})
}

// AdjustPrice steps a sale price by 5% within its allowed band.
func (e *Engine) AdjustPrice(g Goods, dir Direction) bool {
	return e.do(func(time.Time) bool {
		p := e.st.Player
		base, current := &p.Prices.ArticleBase, &p.Prices.Article
		if g == Book {
			base, current = &p.Prices.BookBase, &p.Prices.Book
		}
		next := pricing.AdjustPrice(*base, *current, dir == PriceUp)
		if next == *current {
			return false
		}
		*current = next
		e.st.Player = p
		e.dirty = true
		return true
	})
}

// BuyPaper trades money for a pack of paper.
func (e *Engine) BuyPaper() bool {
	return e.do(func(time.Time) bool {
		if e.st.Player.Money < e.rules.PaperCost {
			return false
		}
		e.st.Player.Money -= e.rules.PaperCost
		e.st.Player.Paper += e.rules.PaperPack
		e.dirty = true
		return true
	})
}
