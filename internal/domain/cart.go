package domain

// CartLine is a product snapshot plus the quantity held in the cart.
// Quantity is always >= 1; a line that would drop to zero is removed instead.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart keeps lines in insertion order. The empty cart is nil.
type Cart []CartLine

func (c Cart) Index(productID int64) int {
	for i, line := range c {
		if line.ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Clone() Cart {
	if len(c) == 0 {
		return nil
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Wishlist holds full product snapshots, at most one per product id.
type Wishlist []Product

func (w Wishlist) Index(productID int64) int {
	for i, p := range w {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

func (w Wishlist) Clone() Wishlist {
	if len(w) == 0 {
		return nil
	}
	out := make(Wishlist, len(w))
	copy(out, w)
	return out
}
