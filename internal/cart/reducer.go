package cart

import "github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"

type ActionType string

const (
	ActionInitialize ActionType = "INITIALIZE_CART"
	ActionAdd        ActionType = "ADD_TO_CART"
	ActionRemove     ActionType = "REMOVE_FROM_CART"
	ActionIncrement  ActionType = "INCREMENT_QUANTITY"
	ActionDecrement  ActionType = "DECREMENT_QUANTITY"
	ActionEmpty      ActionType = "EMPTY_CART"
)

type Action struct {
	Type      ActionType
	Product   domain.Product // ActionAdd
	ProductID int64          // ActionRemove, ActionIncrement, ActionDecrement
	Snapshot  domain.Cart    // ActionInitialize
}

// Outcome tells the caller which branch ADD_TO_CART took.
type Outcome string

const (
	OutcomeNone        Outcome = ""
	OutcomeAdded       Outcome = "added"
	OutcomeIncremented Outcome = "incremented"
)

// Reduce computes the next cart. The input is never modified.
// Actions that target an absent product id return the state unchanged.
func Reduce(state domain.Cart, action Action) (domain.Cart, Outcome) {
	switch action.Type {
	case ActionInitialize:
		if validate(action.Snapshot) != nil {
			return nil, OutcomeNone
		}
		return action.Snapshot.Clone(), OutcomeNone

	case ActionAdd:
		if i := state.Index(action.Product.ID); i >= 0 {
			next := state.Clone()
			next[i].Quantity++
			return next, OutcomeIncremented
		}
		next := make(domain.Cart, len(state), len(state)+1)
		copy(next, state)
		return append(next, domain.CartLine{Product: action.Product, Quantity: 1}), OutcomeAdded

	case ActionIncrement:
		i := state.Index(action.ProductID)
		if i < 0 {
			return state, OutcomeNone
		}
		next := state.Clone()
		next[i].Quantity++
		return next, OutcomeNone

	case ActionDecrement:
		i := state.Index(action.ProductID)
		if i < 0 {
			return state, OutcomeNone
		}
		if state[i].Quantity <= 1 {
			return without(state, i), OutcomeNone
		}
		next := state.Clone()
		next[i].Quantity--
		return next, OutcomeNone

	case ActionRemove:
		i := state.Index(action.ProductID)
		if i < 0 {
			return state, OutcomeNone
		}
		return without(state, i), OutcomeNone

	case ActionEmpty:
		return nil, OutcomeNone

	default:
		return state, OutcomeNone
	}
}

func without(state domain.Cart, i int) domain.Cart {
	if len(state) == 1 {
		return nil
	}
	next := make(domain.Cart, 0, len(state)-1)
	next = append(next, state[:i]...)
	return append(next, state[i+1:]...)
}
