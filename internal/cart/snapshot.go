package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
)

// StorageKey is where the cart snapshot lives in the key-value store.
const StorageKey = "@HealthShopApp:cart"

var ErrMalformedSnapshot = errors.New("malformed cart snapshot")

// EncodeSnapshot serializes the whole cart as a JSON array of lines.
func EncodeSnapshot(c domain.Cart) ([]byte, error) {
	if c == nil {
		c = domain.Cart{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal cart failed: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a stored cart. Anything that could not have been produced by
// the reducer (zero quantity, duplicate ids, negative price) is rejected as a whole.
func DecodeSnapshot(data []byte) (domain.Cart, error) {
	var lines domain.Cart
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	if err := validate(lines); err != nil {
		return nil, err
	}
	return lines.Clone(), nil
}

func validate(lines domain.Cart) error {
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return fmt.Errorf("%w: product %d has quantity %d", ErrMalformedSnapshot, line.ID, line.Quantity)
		}
		if line.Price < 0 {
			return fmt.Errorf("%w: product %d has negative price", ErrMalformedSnapshot, line.ID)
		}
		if _, dup := seen[line.ID]; dup {
			return fmt.Errorf("%w: product %d appears twice", ErrMalformedSnapshot, line.ID)
		}
		seen[line.ID] = struct{}{}
	}
	return nil
}
