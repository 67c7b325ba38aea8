package inventory

import (
	"iter"

	"github.com/shopspring/decimal"

	errx "github.com/poskit-v1/terminal/internal/core/error"
	logx "github.com/poskit-v1/terminal/pkg/logger"
)

type node struct {
	product Product
	left    *node
	right   *node
}

// Store is an ordered catalog of products keyed by id. It is a binary search
// tree: every key in a node's left subtree is strictly smaller, every key in
// its right subtree strictly greater. Not safe for concurrent use.
type Store struct {
	root *node
	size int
}

func New() *Store {
	return &Store{}
}

// Len returns the number of distinct product ids in the store.
func (s *Store) Len() int {
	return s.size
}

// Search returns a copy of the product with the given id. Searching an empty
// store is a plain miss, not an error.
func (s *Store) Search(id int) (Product, bool) {
	cur := s.root
	for cur != nil {
		switch {
		case id < cur.product.ID:
			cur = cur.left
		case id > cur.product.ID:
			cur = cur.right
		default:
			return cur.product, true
		}
	}
	return Product{}, false
}

// InsertOrUpdate places a new product by the ordering invariant, or
// overwrites the name, quantity and price of an existing entry in place.
// An update never moves the node, so the id count is unchanged.
func (s *Store) InsertOrUpdate(p Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if s.root == nil {
		s.root = &node{product: p}
		s.size++
		logx.Debug().Int("id", p.ID).Str("name", p.Name).Msg("product inserted")
		return nil
	}

	cur := s.root
	for {
		switch {
		case p.ID < cur.product.ID:
			if cur.left == nil {
				cur.left = &node{product: p}
				s.size++
				logx.Debug().Int("id", p.ID).Str("name", p.Name).Msg("product inserted")
				return nil
			}
			cur = cur.left
		case p.ID > cur.product.ID:
			if cur.right == nil {
				cur.right = &node{product: p}
				s.size++
				logx.Debug().Int("id", p.ID).Str("name", p.Name).Msg("product inserted")
				return nil
			}
			cur = cur.right
		default:
			cur.product.Name = p.Name
			cur.product.Quantity = p.Quantity
			cur.product.UnitPrice = p.UnitPrice
			logx.Debug().Int("id", p.ID).Str("name", p.Name).Msg("product updated")
			return nil
		}
	}
}

// AdjustQuantity applies a stock delta; positive restocks, negative sells.
// The store is left untouched when the product is missing or the delta would
// drive stock below zero.
func (s *Store) AdjustQuantity(id int, delta int) error {
	n := s.find(id)
	if n == nil {
		return errx.ErrProductNotFound
	}
	if n.product.Quantity+delta < 0 {
		return errx.ErrInsufficientStock
	}
	n.product.Quantity += delta
	logx.Debug().Int("id", id).Int("delta", delta).Int("quantity", n.product.Quantity).Msg("stock adjusted")
	return nil
}

func (s *Store) find(id int) *node {
	cur := s.root
	for cur != nil {
		switch {
		case id < cur.product.ID:
			cur = cur.left
		case id > cur.product.ID:
			cur = cur.right
		default:
			return cur
		}
	}
	return nil
}

// All yields every product in ascending id order. The sequence is lazy,
// finite and restartable; products are yielded as copies.
func (s *Store) All() iter.Seq[Product] {
	return func(yield func(Product) bool) {
		inorder(s.root, yield)
	}
}

func inorder(n *node, yield func(Product) bool) bool {
	if n == nil {
		return true
	}
	if !inorder(n.left, yield) {
		return false
	}
	if !yield(n.product) {
		return false
	}
	return inorder(n.right, yield)
}

// SeedDefaults loads the fixed starter catalog used at process start.
func (s *Store) SeedDefaults() error {
	seed := []Product{
		{ID: 101, Name: "Pen", Quantity: 50, UnitPrice: decimal.NewFromFloat(10.0)},
		{ID: 102, Name: "Notebook", Quantity: 30, UnitPrice: decimal.NewFromFloat(25.5)},
		{ID: 103, Name: "Eraser", Quantity: 100, UnitPrice: decimal.NewFromFloat(5.0)},
		{ID: 104, Name: "Marker", Quantity: 20, UnitPrice: decimal.NewFromFloat(40.0)},
	}
	for _, p := range seed {
		if err := s.InsertOrUpdate(p); err != nil {
			return err
		}
	}
	logx.Info().Int("products", len(seed)).Msg("inventory seeded")
	return nil
}
