package wishlist

import "github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"

type ActionType string

const (
	ActionInitialize ActionType = "INITIALIZE_WISHLIST"
	ActionToggle     ActionType = "TOGGLE_WISHLIST_ITEM"
	ActionRemove     ActionType = "REMOVE_FROM_WISHLIST"
)

type Action struct {
	Type      ActionType
	Product   domain.Product  // ActionToggle
	ProductID int64           // ActionRemove
	Snapshot  domain.Wishlist // ActionInitialize
}

// Reduce computes the next wishlist without modifying the input.
func Reduce(state domain.Wishlist, action Action) domain.Wishlist {
	switch action.Type {
	case ActionInitialize:
		if validate(action.Snapshot) != nil {
			return nil
		}
		return action.Snapshot.Clone()

	case ActionToggle:
		if i := state.Index(action.Product.ID); i >= 0 {
			return without(state, i)
		}
		next := make(domain.Wishlist, len(state), len(state)+1)
		copy(next, state)
		return append(next, action.Product)

	case ActionRemove:
		i := state.Index(action.ProductID)
		if i < 0 {
			return state
		}
		return without(state, i)

	default:
		return state
	}
}

func without(state domain.Wishlist, i int) domain.Wishlist {
	if len(state) == 1 {
		return nil
	}
	next := make(domain.Wishlist, 0, len(state)-1)
	next = append(next, state[:i]...)
	return append(next, state[i+1:]...)
}
