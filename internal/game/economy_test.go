package game

import (
	"math"
	"testing"

	"github.com/verte-zerg/scripttyper/internal/model"
)

func TestCraftArticle(t *testing.T) {
	e, _, _ := newEngine(t, playerWith(func(p *model.Player) { p.Chars = 1000 }))
	if !e.CraftArticle(1) {
		t.Fatalf("expected craft")
	}
	p := e.Snapshot().Player
	if p.Chars != 600 || p.Inventory.Articles != 1 {
		t.Fatalf("expected 600 chars and 1 article, got %+v", p)
	}
	if e.CraftArticle(2) {
		t.Fatalf("expected craft beyond funds to be refused")
	}
	if e.CraftArticle(0) {
		t.Fatalf("expected zero count to be refused")
	}
	if got := e.Snapshot().Player; got != p {
		t.Fatalf("expected refused crafts to leave player unchanged")
	}
}

func TestCraftRefusesCountThatWouldOverflow(t *testing.T) {
	e, _, _ := newEngine(t, playerWith(func(p *model.Player) { p.Chars = 10 }))
	before := e.Snapshot().Player
	if e.CraftArticle(math.MaxInt/400 + 1) {
		t.Fatalf("expected oversized article craft to be refused")
	}
	if e.CraftBook(math.MaxInt/2500 + 1) {
		t.Fatalf("expected oversized book craft to be refused")
	}
	if got := e.Snapshot().Player; got != before {
		t.Fatalf("expected player unchanged, got %+v", got)
	}
}

func TestCraftArticleReadsLiveDiscount(t *testing.T) {
	e, _, _ := newEngine(t, playerWith(func(p *model.Player) { p.Chars = 2000; p.Money = 25 }))
	if got := e.UnitCost(Article); got != 400 {
		t.Fatalf("expected 400, got %d", got)
	}
	// Reveal and buy the press directly through a restored save.
	items := DefaultItems()
	for i := range items {
		if items[i].ID == "press" {
			items[i].Owned = true
		}
	}
	e = New(Options{}, &model.SaveGame{Version: 1, Player: e.Snapshot().Player, Items: items})
	if got := e.UnitCost(Article); got != 340 {
		t.Fatalf("expected discounted 340, got %d", got)
	}
	e.CraftArticle(2)
	if got := e.Snapshot().Player.Chars; got != 2000-680 {
		t.Fatalf("expected 1320 chars, got %d", got)
	}
}

func TestCraftBook(t *testing.T) {
	e, _, _ := newEngine(t, playerWith(func(p *model.Player) { p.Chars = 5000 }))
	if !e.CraftBook(2) {
		t.Fatalf("expected craft")
	}
	p := e.Snapshot().Player
	if p.Chars != 0 || p.Inventory.Books != 2 {
		t.Fatalf("unexpected player %+v", p)
	}
	if e.CraftBook(1) {
		t.Fatalf("expected craft without chars to be refused")
	}
}

func TestSell(t *testing.T) {
	e, _, _ := newEngine(t, playerWith(func(p *model.Player) {
		p.Inventory = model.Inventory{Articles: 2, Books: 1}
	}))
	if e.SellArticle(3) {
		t.Fatalf("expected oversell to be refused")
	}
	if !e.SellArticle(2) || !e.SellBook(1) {
		t.Fatalf("expected sales")
	}
	p := e.Snapshot().Player
	if p.Money != 2*25+220 || p.Inventory.Articles != 0 || p.Inventory.Books != 0 {
		t.Fatalf("unexpected player %+v", p)
	}
}

func TestSellAppliesPriceBonus(t *testing.T) {
	items := DefaultItems()
	for i := range items {
		if items[i].ID == "pricing" {
			items[i].Owned = true
		}
	}
	p := DefaultPlayer()
	p.Inventory.Articles = 2
	e := New(Options{}, &model.SaveGame{Version: 1, Player: p, Items: items})
	e.SellArticle(2)
	if got := e.Snapshot().Player.Money; got != 56 {
		t.Fatalf("expected 56 money, got %d", got)
	}
}

func TestAdjustPrice(t *testing.T) {
	e, _, _ := newEngine(t, nil)
	e.AdjustPrice(Book, PriceUp)
	if got := e.Snapshot().Player.Prices.Book; got != 231 {
		t.Fatalf("expected 231, got %d", got)
	}
	for i := 0; i < 50; i++ {
		e.AdjustPrice(Article, PriceDown)
	}
	prices := e.Snapshot().Player.Prices
	if prices.Article != 12 {
		t.Fatalf("expected article price clamped at 12, got %d", prices.Article)
	}
	if e.AdjustPrice(Article, PriceDown) {
		t.Fatalf("expected clamped adjustment to be a no-op")
	}
	for i := 0; i < 50; i++ {
		e.AdjustPrice(Article, PriceUp)
	}
	if got := e.Snapshot().Player.Prices.Article; got != 50 {
		t.Fatalf("expected article price clamped at 50, got %d", got)
	}
}

func TestBuyPaper(t *testing.T) {
	e, _, _ := newEngine(t, playerWith(func(p *model.Player) { p.Money = 15; p.Paper = 0 }))
	if !e.BuyPaper() {
		t.Fatalf("expected paper purchase")
	}
	p := e.Snapshot().Player
	if p.Money != 5 || p.Paper != 100 {
		t.Fatalf("unexpected player %+v", p)
	}
	if e.BuyPaper() {
		t.Fatalf("expected purchase without money to be refused")
	}
}

func TestBuy(t *testing.T) {
	e, _, _ := newEngine(t, playerWith(func(p *model.Player) { p.Chars = 1000 }))
	if e.Buy("missing") {
		t.Fatalf("expected unknown item to be refused")
	}
	if e.Buy("press") {
		t.Fatalf("expected purchase without money to be refused")
	}
	if !e.Buy("kb") {
		t.Fatalf("expected purchase")
	}
	s := e.Snapshot()
	if s.Player.Chars != 200 {
		t.Fatalf("expected 200 chars, got %d", s.Player.Chars)
	}
	if s.Logs[len(s.Logs)-1].Message != "Bought Better Keyboard" {
		t.Fatalf("expected purchase log")
	}
	if e.Buy("kb") {
		t.Fatalf("expected second purchase to be refused")
	}
	for _, it := range VisibleItems(s) {
		if it.ID == "kb" {
			t.Fatalf("expected owned item to leave the shelf")
		}
	}
}

func TestVisibleItemsLimit(t *testing.T) {
	s := State{}
	for i := 0; i < 8; i++ {
		s.Items = append(s.Items, model.StoreItem{ID: string(rune('a' + i)), Visible: true})
	}
	s.Items[0].Owned = true
	got := VisibleItems(s)
	if len(got) != 5 || got[0].ID != "b" {
		t.Fatalf("unexpected shelf: %+v", got)
	}
}

func TestPagesAndBooks(t *testing.T) {
	s := State{Player: model.Player{LifetimeChars: 2_500_000}}
	if Pages(s) != 2500 || Books(s) != 2 {
		t.Fatalf("unexpected pages/books: %d/%d", Pages(s), Books(s))
	}
}
