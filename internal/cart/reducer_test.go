package cart

import (
	"math/rand"
	"testing"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, price float64) domain.Product {
	return domain.Product{ID: id, Title: "product", Price: price, Category: "supplements"}
}

func line(id int64, price float64, qty int) domain.CartLine {
	return domain.CartLine{Product: product(id, price), Quantity: qty}
}

func TestReduce_AddNewProduct(t *testing.T) {
	next, outcome := Reduce(nil, Action{Type: ActionAdd, Product: product(1, 100)})

	assert.Equal(t, OutcomeAdded, outcome)
	assert.Equal(t, domain.Cart{line(1, 100, 1)}, next)
}

func TestReduce_AddExistingProductIncrements(t *testing.T) {
	state := domain.Cart{line(1, 100, 1)}

	next, outcome := Reduce(state, Action{Type: ActionAdd, Product: product(1, 100)})

	assert.Equal(t, OutcomeIncremented, outcome)
	assert.Equal(t, domain.Cart{line(1, 100, 2)}, next)
}

func TestReduce_AddAppendsInInsertionOrder(t *testing.T) {
	var state domain.Cart
	for _, id := range []int64{3, 1, 2, 1} {
		state, _ = Reduce(state, Action{Type: ActionAdd, Product: product(id, 10)})
	}

	require.Len(t, state, 3)
	assert.Equal(t, int64(3), state[0].ID)
	assert.Equal(t, int64(1), state[1].ID)
	assert.Equal(t, int64(2), state[2].ID)
	assert.Equal(t, 2, state[1].Quantity)
}

func TestReduce_DecrementAtOneRemovesLine(t *testing.T) {
	next, _ := Reduce(domain.Cart{line(1, 100, 1)}, Action{Type: ActionDecrement, ProductID: 1})
	assert.Empty(t, next)
}

func TestReduce_DecrementAboveOne(t *testing.T) {
	state := domain.Cart{line(1, 100, 3), line(2, 5, 1)}

	next, _ := Reduce(state, Action{Type: ActionDecrement, ProductID: 1})

	assert.Equal(t, domain.Cart{line(1, 100, 2), line(2, 5, 1)}, next)
}

func TestReduce_Remove(t *testing.T) {
	state := domain.Cart{line(1, 100, 3), line(2, 5, 1)}

	next, _ := Reduce(state, Action{Type: ActionRemove, ProductID: 2})

	assert.Equal(t, domain.Cart{line(1, 100, 3)}, next)
}

func TestReduce_Empty(t *testing.T) {
	next, _ := Reduce(domain.Cart{line(1, 100, 3)}, Action{Type: ActionEmpty})
	assert.Nil(t, next)
}

func TestReduce_AbsentIDIsNoOp(t *testing.T) {
	state := domain.Cart{line(1, 100, 3), line(2, 5, 1)}
	before := state.Clone()

	for _, typ := range []ActionType{ActionIncrement, ActionDecrement, ActionRemove} {
		next, outcome := Reduce(state, Action{Type: typ, ProductID: 42})
		assert.Equal(t, before, next, typ)
		assert.Equal(t, OutcomeNone, outcome, typ)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	state := domain.Cart{line(1, 100, 2), line(2, 5, 1)}
	before := state.Clone()

	Reduce(state, Action{Type: ActionAdd, Product: product(1, 100)})
	Reduce(state, Action{Type: ActionIncrement, ProductID: 2})
	Reduce(state, Action{Type: ActionDecrement, ProductID: 1})
	Reduce(state, Action{Type: ActionRemove, ProductID: 1})
	Reduce(state, Action{Type: ActionEmpty})

	assert.Equal(t, before, state)
}

func TestReduce_InitializeReplacesState(t *testing.T) {
	snapshot := domain.Cart{line(5, 20, 2)}

	next, _ := Reduce(domain.Cart{line(1, 1, 1)}, Action{Type: ActionInitialize, Snapshot: snapshot})

	assert.Equal(t, snapshot, next)
}

func TestReduce_InitializeRejectsInvalidSnapshot(t *testing.T) {
	invalid := []domain.Cart{
		{line(1, 10, 0)},
		{line(1, 10, 1), line(1, 10, 2)},
		{line(1, -1, 1)},
	}
	for _, snapshot := range invalid {
		next, _ := Reduce(domain.Cart{line(9, 1, 1)}, Action{Type: ActionInitialize, Snapshot: snapshot})
		assert.Nil(t, next)
	}
}

func TestReduce_UnknownActionIsNoOp(t *testing.T) {
	state := domain.Cart{line(1, 100, 1)}
	next, _ := Reduce(state, Action{Type: "SOMETHING_ELSE"})
	assert.Equal(t, state, next)
}

// Random action sequences must keep one line per product id and every quantity >= 1.
func TestReduce_InvariantsHoldForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	types := []ActionType{ActionAdd, ActionAdd, ActionIncrement, ActionDecrement, ActionRemove, ActionEmpty}

	for run := 0; run < 200; run++ {
		var state domain.Cart
		for step := 0; step < 50; step++ {
			id := int64(rng.Intn(6) + 1)
			action := Action{Type: types[rng.Intn(len(types))], ProductID: id, Product: product(id, float64(id)*10)}
			state, _ = Reduce(state, action)

			seen := map[int64]bool{}
			for _, l := range state {
				require.False(t, seen[l.ID], "duplicate line for product %d", l.ID)
				seen[l.ID] = true
				require.GreaterOrEqual(t, l.Quantity, 1)
			}
		}
	}
}
